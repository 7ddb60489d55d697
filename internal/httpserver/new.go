package httpserver

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"repo-relay/internal/subscription"
	"repo-relay/pkg/log"
)

const (
	defaultReadTimeout     = 10 * time.Second
	defaultShutdownTimeout = 5 * time.Second
	defaultWebhookPath     = "/webhook"
)

// WebhookHandler receives platform webhook deliveries.
type WebhookHandler interface {
	HandleGitHubWebhook(c *gin.Context)
}

// AuthHandler finishes the OAuth flow that installs a repository webhook.
type AuthHandler interface {
	HandleCallback(c *gin.Context)
}

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin             *gin.Engine
	l               log.Logger
	host            string
	port            int
	mode            string
	environment     string
	readTimeout     time.Duration
	shutdownTimeout time.Duration

	// Webhook relay
	webhookPath    string
	webhookHandler WebhookHandler
	authHandler    AuthHandler

	// Operator API
	subscriptionUC subscription.UseCase
	apiToken       string
	helpPrefix     string

	// Lifecycle
	mu    sync.Mutex
	state State
	ready chan struct{}
	addr  net.Addr
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger          log.Logger
	Host            string
	Port            int // 0 picks a free port
	Mode            string
	Environment     string
	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration

	// TrustedProxies may set the client address through forwarding headers.
	// Empty trusts none, so the connection's peer address is used.
	TrustedProxies []string

	WebhookPath    string
	WebhookHandler WebhookHandler
	AuthHandler    AuthHandler // optional

	// SubscriptionUC and APIToken together enable the operator API.
	SubscriptionUC subscription.UseCase
	APIToken       string
	HelpPrefix     string
}

// New creates a new HTTPServer instance with every route mounted.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = defaultReadTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	if cfg.WebhookPath == "" {
		cfg.WebhookPath = defaultWebhookPath
	}

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		host:            cfg.Host,
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		readTimeout:     cfg.ReadTimeout,
		shutdownTimeout: cfg.ShutdownTimeout,
		webhookPath:     cfg.WebhookPath,
		webhookHandler:  cfg.WebhookHandler,
		authHandler:     cfg.AuthHandler,
		subscriptionUC:  cfg.SubscriptionUC,
		apiToken:        cfg.APIToken,
		helpPrefix:      cfg.HelpPrefix,
		state:           StateStopped,
		ready:           make(chan struct{}),
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}
	if err := srv.gin.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	srv.mapHandlers()
	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.port < 0 || srv.port > 65535 {
		return errors.New("port out of range")
	}
	if srv.webhookHandler == nil {
		return errors.New("webhook handler is required")
	}
	if srv.webhookPath[0] != '/' {
		return errors.New("webhook path must start with /")
	}
	return nil
}
