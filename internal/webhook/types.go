package webhook

import "time"

// GitHub delivery headers
const (
	HeaderEvent        = "X-GitHub-Event"
	HeaderDelivery     = "X-GitHub-Delivery"
	HeaderSignature256 = "X-Hub-Signature-256"
	HeaderSignature1   = "X-Hub-Signature"
)

// SecurityConfig holds webhook security settings
type SecurityConfig struct {
	Secret          string   // Shared secret; empty skips signature verification
	AllowedIPs      []string // IP allow list (optional)
	RateLimitPerMin int      // Max requests per minute per source; 0 disables
}

// Config holds everything the webhook handler needs besides its collaborators.
type Config struct {
	Security     SecurityConfig
	MaxBodyBytes int64         // request body cap
	DedupWindow  time.Duration // how long a delivery id is remembered
	DedupSize    int           // how many delivery ids are remembered
}

// Result is returned to the sender for an accepted delivery.
type Result struct {
	DeliveryID string `json:"delivery_id"`
	Event      string `json:"event"`
	Status     string `json:"status"`
	Delivered  int    `json:"delivered"`
	Reason     string `json:"reason,omitempty"`
}

// Result statuses
const (
	StatusAccepted  = "accepted"
	StatusDuplicate = "duplicate"
)
