package webhook

import (
	"repo-relay/internal/delivery"
	"repo-relay/internal/router"
	pkgLog "repo-relay/pkg/log"
)

type Handler struct {
	router       router.Router
	sink         delivery.Deliverer
	security     *SecurityValidator
	githubParser *GitHubWebhookParser
	deliveries   *deliveryCache
	maxBodyBytes int64
	l            pkgLog.Logger
}

const defaultMaxBodyBytes = 25 << 20

func NewHandler(
	r router.Router,
	sink delivery.Deliverer,
	cfg Config,
	l pkgLog.Logger,
) *Handler {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	return &Handler{
		router:       r,
		sink:         sink,
		security:     NewSecurityValidator(cfg.Security),
		githubParser: NewGitHubParser(),
		deliveries:   newDeliveryCache(cfg.DedupSize, cfg.DedupWindow),
		maxBodyBytes: cfg.MaxBodyBytes,
		l:            l,
	}
}
