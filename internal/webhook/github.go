package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"repo-relay/internal/model"
)

// GitHubWebhookParser builds WebhookEvents from raw GitHub deliveries
type GitHubWebhookParser struct {
	now func() time.Time
}

func NewGitHubParser() *GitHubWebhookParser {
	return &GitHubWebhookParser{now: time.Now}
}

// Parse validates the envelope common to every repository event. Only the
// event type header decides dispatch; the body is kept raw for renderers.
func (p *GitHubWebhookParser) Parse(eventType, deliveryID, signature string, payload []byte) (model.WebhookEvent, error) {
	eventType = strings.ToLower(strings.TrimSpace(eventType))
	if eventType == "" {
		return model.WebhookEvent{}, ErrMissingEventType
	}

	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return model.WebhookEvent{}, fmt.Errorf("%w: body is not a JSON object", ErrMalformedPayload)
	}

	env, err := decodeEnvelope(trimmed)
	if err != nil {
		return model.WebhookEvent{}, err
	}

	return model.WebhookEvent{
		DeliveryID: deliveryID,
		EventType:  eventType,
		Signature:  signature,
		Body:       trimmed,
		Payload:    env,
		ReceivedAt: p.now(),
	}, nil
}

// decodeEnvelope reads the common fields one at a time. A field of the wrong
// type is left empty; only repository.full_name is required.
func decodeEnvelope(body []byte) (model.Envelope, error) {
	var env model.Envelope

	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return env, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	repo := objectFields(top["repository"])
	if err := json.Unmarshal(repo["full_name"], &env.Repository.FullName); err != nil || env.Repository.Key() == "" {
		return model.Envelope{}, ErrMissingRepository
	}
	optionalString(repo["name"], &env.Repository.Name)
	optionalString(repo["html_url"], &env.Repository.HTMLURL)

	optionalString(top["action"], &env.Action)
	optionalString(objectFields(top["sender"])["login"], &env.Sender.Login)
	return env, nil
}

// objectFields splits a JSON object into its members, or returns nil when
// raw is absent or not an object.
func objectFields(raw json.RawMessage) map[string]json.RawMessage {
	var fields map[string]json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &fields) != nil {
		return nil
	}
	return fields
}

func optionalString(raw json.RawMessage, dst *string) {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return
	}
	*dst = s
}
