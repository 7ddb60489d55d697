package model

import "time"

// WebhookEvent is one validated inbound webhook request. It lives only for
// the duration of the request that produced it.
type WebhookEvent struct {
	DeliveryID string    // X-GitHub-Delivery, or a generated id when absent
	EventType  string    // X-GitHub-Event header value
	Signature  string    // raw signature header as received
	Body       []byte    // raw request body
	Payload    Envelope  // fields common to every repository event
	ReceivedAt time.Time // when the request was accepted
}

// Repository returns the lowercased owner/name the event belongs to.
func (e WebhookEvent) Repository() string {
	return e.Payload.Repository.Key()
}

// Envelope holds the payload fields shared by every repository event type.
type Envelope struct {
	Action     string       `json:"action"`
	Repository EnvelopeRepo `json:"repository"`
	Sender     EnvelopeUser `json:"sender"`
}

// EnvelopeRepo is the repository block of a payload.
type EnvelopeRepo struct {
	FullName string `json:"full_name"`
	Name     string `json:"name"`
	HTMLURL  string `json:"html_url"`
}

// Key is the case-insensitive identity used by the subscription store.
func (r EnvelopeRepo) Key() string {
	return NormalizeRepo(r.FullName)
}

// ShortName is the repository name without its owner.
func (r EnvelopeRepo) ShortName() string {
	if r.Name != "" {
		return r.Name
	}
	return RepoShortName(r.FullName)
}

// EnvelopeUser is the sender block of a payload.
type EnvelopeUser struct {
	Login string `json:"login"`
}
