package chat

// APIResponse is the relay endpoint's reply.
type APIResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}
