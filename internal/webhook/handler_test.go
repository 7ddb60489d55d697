package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repo-relay/internal/model"
	"repo-relay/internal/render"
	"repo-relay/internal/router"
	"repo-relay/pkg/log"
)

const testSecret = "It's a Secret to Everybody"

const pushBody = `{"ref": "refs/heads/main", "compare": "https://github.com/acme/widget/compare/a...b",
	"commits": [{"id": "0123456789abcdef", "message": "fix the thing", "url": "https://github.com/acme/widget/commit/0123456"}],
	"repository": {"full_name": "acme/widget", "name": "widget"}, "sender": {"login": "alice"}}`

type fakeLister struct {
	subs map[string][]model.Subscription
	err  error
}

func (f *fakeLister) ListEnabledForRepo(_ context.Context, repo string) ([]model.Subscription, error) {
	return f.subs[repo], f.err
}

type fakeSink struct {
	mu   sync.Mutex
	sent []model.RenderedMessage
}

func (f *fakeSink) Deliver(_ context.Context, msg model.RenderedMessage) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return true
}

func (f *fakeSink) DeliverAll(ctx context.Context, msgs []model.RenderedMessage) int {
	n := 0
	for _, m := range msgs {
		if f.Deliver(ctx, m) {
			n++
		}
	}
	return n
}

func (f *fakeSink) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fixture struct {
	engine *gin.Engine
	lister *fakeLister
	sink   *fakeSink
}

func newFixture(t *testing.T, cfg Config, trustedProxies ...string) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	lister := &fakeLister{subs: map[string][]model.Subscription{
		"acme/widget": {{Channel: "#dev", Repo: "acme/widget", Enabled: true}},
	}}
	sink := &fakeSink{}
	r := router.New(lister, render.NewDefault(nil, log.NewNop()), log.NewNop())
	h := NewHandler(r, sink, cfg, log.NewNop())

	engine := gin.New()
	require.NoError(t, engine.SetTrustedProxies(trustedProxies))
	engine.POST("/webhook", h.HandleGitHubWebhook)
	return &fixture{engine: engine, lister: lister, sink: sink}
}

type request struct {
	event      string
	deliveryID string
	body       string
	signature  string
	remoteAddr string
	header     map[string]string
}

func (f *fixture) do(req request) *httptest.ResponseRecorder {
	httpReq := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(req.body))
	httpReq.Header.Set("Content-Type", "application/json")
	if req.event != "" {
		httpReq.Header.Set(HeaderEvent, req.event)
	}
	if req.deliveryID != "" {
		httpReq.Header.Set(HeaderDelivery, req.deliveryID)
	}
	if req.signature != "" {
		httpReq.Header.Set(HeaderSignature256, req.signature)
	}
	if req.remoteAddr != "" {
		httpReq.RemoteAddr = req.remoteAddr
	}
	for k, v := range req.header {
		httpReq.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, httpReq)
	return w
}

func signed(event, body string) request {
	return request{event: event, body: body, signature: Sign([]byte(body), testSecret)}
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) Result {
	t.Helper()
	var resp struct {
		Data Result `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func secured() Config {
	return Config{Security: SecurityConfig{Secret: testSecret}}
}

func TestHandleSignedPushDelivers(t *testing.T) {
	f := newFixture(t, secured())

	req := signed("push", pushBody)
	req.deliveryID = "d-1"
	w := f.do(req)

	require.Equal(t, http.StatusOK, w.Code)
	res := decodeResult(t, w)
	assert.Equal(t, "d-1", res.DeliveryID)
	assert.Equal(t, StatusAccepted, res.Status)
	assert.Equal(t, 1, res.Delivered)

	require.Equal(t, 1, f.sink.count())
	assert.Equal(t, "#dev", f.sink.sent[0].Channel)
	assert.Contains(t, f.sink.sent[0].Text, "alice")
}

func TestHandleGeneratesDeliveryID(t *testing.T) {
	f := newFixture(t, secured())

	w := f.do(signed("push", pushBody))
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeResult(t, w).DeliveryID)
}

func TestHandleRejections(t *testing.T) {
	tampered := signed("push", pushBody)
	tampered.body = strings.Replace(pushBody, "alice", "mallory", 1)

	unsigned := request{event: "push", body: pushBody}

	tests := []struct {
		name   string
		req    request
		status int
	}{
		{name: "tampered body", req: tampered, status: http.StatusForbidden},
		{name: "missing signature", req: unsigned, status: http.StatusUnauthorized},
		{name: "garbage signature", req: request{event: "push", body: pushBody, signature: "sha256=zz"}, status: http.StatusForbidden},
		{name: "malformed json", req: signed("push", `{"repository": `), status: http.StatusBadRequest},
		{name: "not an object", req: signed("push", `[1, 2]`), status: http.StatusBadRequest},
		{name: "missing repository", req: signed("push", `{"sender": {"login": "alice"}}`), status: http.StatusBadRequest},
		{name: "missing event type", req: signed("", pushBody), status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, secured())
			w := f.do(tt.req)
			assert.Equal(t, tt.status, w.Code)
			assert.Zero(t, f.sink.count())
		})
	}
}

func TestHandleMistypedOptionalFieldsStillDeliver(t *testing.T) {
	f := newFixture(t, secured())

	body := strings.Replace(pushBody, `"ref": "refs/heads/main"`, `"action": 5, "ref": "refs/heads/main"`, 1)
	body = strings.Replace(body, `"name": "widget"`, `"name": 7, "html_url": false`, 1)
	body = strings.Replace(body, `"sender": {"login": "alice"}`, `"sender": {"login": "alice", "id": "x"}, "pusher": {"name": "alice"}`, 1)

	w := f.do(signed("push", body))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, f.sink.count())
}

func TestDecodeEnvelope(t *testing.T) {
	env, err := decodeEnvelope([]byte(`{"action": 5, "repository": {"full_name": "Acme/Widget", "name": 1}, "sender": "alice"}`))
	require.NoError(t, err)
	assert.Equal(t, "acme/widget", env.Repository.Key())
	assert.Empty(t, env.Action)
	assert.Empty(t, env.Repository.Name)
	assert.Empty(t, env.Sender.Login)

	for _, body := range []string{
		`{"repository": {"full_name": 42}}`,
		`{"repository": {"full_name": null}}`,
		`{"repository": "acme/widget"}`,
		`{"sender": {"login": "alice"}}`,
	} {
		_, err := decodeEnvelope([]byte(body))
		assert.ErrorIs(t, err, ErrMissingRepository, body)
	}
}

func TestHandleWithoutSecretSkipsVerification(t *testing.T) {
	f := newFixture(t, Config{})

	w := f.do(request{event: "push", body: pushBody})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, f.sink.count())
}

func TestHandleLegacySHA1Signature(t *testing.T) {
	f := newFixture(t, secured())

	httpReq := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(pushBody))
	httpReq.Header.Set(HeaderEvent, "push")
	httpReq.Header.Set(HeaderSignature1, "sha1=0000000000000000000000000000000000000000")
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, httpReq)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Zero(t, f.sink.count())
}

func TestHandleOversizeBody(t *testing.T) {
	cfg := secured()
	cfg.MaxBodyBytes = 32
	f := newFixture(t, cfg)

	w := f.do(signed("push", pushBody))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, f.sink.count())
}

func TestHandleUnknownEventAcknowledged(t *testing.T) {
	f := newFixture(t, secured())

	w := f.do(signed("deployment_status", pushBody))
	require.Equal(t, http.StatusOK, w.Code)
	res := decodeResult(t, w)
	assert.Equal(t, StatusAccepted, res.Status)
	assert.Zero(t, res.Delivered)
	assert.Equal(t, router.ReasonUnsupportedEvent, res.Reason)
	assert.Zero(t, f.sink.count())
}

func TestHandleNoSubscribersAcknowledged(t *testing.T) {
	f := newFixture(t, secured())
	body := strings.Replace(pushBody, `"full_name": "acme/widget"`, `"full_name": "acme/other"`, 1)

	w := f.do(signed("push", body))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, router.ReasonNoSubscribers, decodeResult(t, w).Reason)
	assert.Zero(t, f.sink.count())
}

func TestHandleDuplicateDelivery(t *testing.T) {
	f := newFixture(t, secured())

	req := signed("push", pushBody)
	req.deliveryID = "same"

	require.Equal(t, http.StatusOK, f.do(req).Code)
	w := f.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, StatusDuplicate, decodeResult(t, w).Status)
	assert.Equal(t, 1, f.sink.count())
}

func TestHandleStoreFailureAllowsRedelivery(t *testing.T) {
	f := newFixture(t, secured())
	f.lister.err = errors.New("database is locked")

	req := signed("push", pushBody)
	req.deliveryID = "retry-me"

	assert.Equal(t, http.StatusInternalServerError, f.do(req).Code)
	assert.Zero(t, f.sink.count())

	f.lister.err = nil
	w := f.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, StatusAccepted, decodeResult(t, w).Status)
	assert.Equal(t, 1, f.sink.count())
}

func TestHandleRateLimit(t *testing.T) {
	cfg := secured()
	cfg.Security.RateLimitPerMin = 1
	f := newFixture(t, cfg)

	first := signed("push", pushBody)
	first.deliveryID = "r-1"
	second := signed("push", pushBody)
	second.deliveryID = "r-2"

	assert.Equal(t, http.StatusOK, f.do(first).Code)
	assert.Equal(t, http.StatusTooManyRequests, f.do(second).Code)
	assert.Equal(t, 1, f.sink.count())
}

func TestHandleIPAllowList(t *testing.T) {
	cfg := secured()
	cfg.Security.AllowedIPs = []string{"10.0.0.0/8", "192.168.1.4"}
	f := newFixture(t, cfg)

	blocked := signed("push", pushBody)
	blocked.remoteAddr = "203.0.113.9:5555"
	assert.Equal(t, http.StatusForbidden, f.do(blocked).Code)

	allowed := signed("push", pushBody)
	allowed.remoteAddr = "10.1.2.3:5555"
	assert.Equal(t, http.StatusOK, f.do(allowed).Code)

	exact := signed("push", pushBody)
	exact.remoteAddr = "192.168.1.4:5555"
	exact.deliveryID = "exact"
	assert.Equal(t, http.StatusOK, f.do(exact).Code)

	assert.Equal(t, 2, f.sink.count())
}

func TestHandleIPAllowListIgnoresForwardedHeaders(t *testing.T) {
	cfg := secured()
	cfg.Security.AllowedIPs = []string{"140.82.112.0/20"}
	f := newFixture(t, cfg)

	for _, header := range []string{"X-Forwarded-For", "X-Real-IP"} {
		spoofed := signed("push", pushBody)
		spoofed.remoteAddr = "6.6.6.6:1234"
		spoofed.header = map[string]string{header: "140.82.112.5"}
		assert.Equal(t, http.StatusForbidden, f.do(spoofed).Code, header)
	}
	assert.Zero(t, f.sink.count())
}

func TestHandleIPAllowListBehindTrustedProxy(t *testing.T) {
	cfg := secured()
	cfg.Security.AllowedIPs = []string{"140.82.112.0/20"}
	f := newFixture(t, cfg, "10.0.0.1")

	forwarded := signed("push", pushBody)
	forwarded.remoteAddr = "10.0.0.1:443"
	forwarded.header = map[string]string{"X-Forwarded-For": "140.82.112.5"}
	assert.Equal(t, http.StatusOK, f.do(forwarded).Code)

	spoofed := signed("push", pushBody)
	spoofed.remoteAddr = "10.0.0.1:443"
	spoofed.header = map[string]string{"X-Forwarded-For": "6.6.6.6"}
	assert.Equal(t, http.StatusForbidden, f.do(spoofed).Code)

	assert.Equal(t, 1, f.sink.count())
}

func TestHandleRateLimitIgnoresForwardedHeaders(t *testing.T) {
	cfg := secured()
	cfg.Security.RateLimitPerMin = 1
	f := newFixture(t, cfg)

	first := signed("push", pushBody)
	first.remoteAddr = "203.0.113.9:5555"
	first.header = map[string]string{"X-Forwarded-For": "198.51.100.1"}
	assert.Equal(t, http.StatusOK, f.do(first).Code)

	second := signed("push", pushBody)
	second.remoteAddr = "203.0.113.9:5555"
	second.header = map[string]string{"X-Forwarded-For": "198.51.100.2"}
	assert.Equal(t, http.StatusTooManyRequests, f.do(second).Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, statusFor(ErrMissingSignature))
	assert.Equal(t, http.StatusForbidden, statusFor(ErrInvalidSignature))
	assert.Equal(t, http.StatusBadRequest, statusFor(ErrMissingRepository))
	assert.Equal(t, http.StatusTooManyRequests, statusFor(ErrRateLimited))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
}
