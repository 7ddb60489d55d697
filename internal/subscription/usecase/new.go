package usecase

import (
	"repo-relay/internal/subscription"
	"repo-relay/internal/subscription/repository"
	"repo-relay/pkg/log"
)

// implUseCase is the private implementation of subscription.UseCase.
type implUseCase struct {
	repo repository.Repository
	auth subscription.Authorizer
	l    log.Logger
}

// New creates a new subscription UseCase. auth may be nil when hook setup
// is not configured.
func New(repo repository.Repository, auth subscription.Authorizer, l log.Logger) *implUseCase {
	return &implUseCase{
		repo: repo,
		auth: auth,
		l:    l,
	}
}
