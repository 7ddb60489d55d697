package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Relay is the HTTP client for the bot's message relay endpoint.
type Relay struct {
	token      string
	apiURL     string
	httpClient *http.Client
}

// NewRelay creates a relay client posting to apiURL.
func NewRelay(apiURL, token string) *Relay {
	return &Relay{
		token:      token,
		apiURL:     strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{},
	}
}

// SetAPIURL overrides the relay URL for testing purposes.
func (r *Relay) SetAPIURL(url string) {
	r.apiURL = strings.TrimRight(url, "/")
}

// Send posts one line to the relay. A 404 or 409 from the relay means the
// bot cannot reach the channel right now.
func (r *Relay) Send(ctx context.Context, channel, text string) error {
	url := fmt.Sprintf("%s/send", r.apiURL)
	body, err := json.Marshal(OutgoingMessage{Channel: channel, Text: text})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
	case http.StatusNotFound, http.StatusConflict:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: %s: %s", ErrUnreachable, channel, strings.TrimSpace(string(raw)))
	default:
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("relay send API error %d: %s", resp.StatusCode, string(raw))
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	var apiResp APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		// Some relays answer 200 with an empty body.
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("failed to decode relay response: %w", err)
	}
	if !apiResp.OK {
		return fmt.Errorf("relay send failed: %s", apiResp.Description)
	}
	return nil
}
