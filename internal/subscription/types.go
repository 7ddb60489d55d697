package subscription

import "repo-relay/internal/model"

// --- UseCase Inputs ---

type LinkInput struct {
	Channel string
	Repo    string
	Enabled bool
}

type SetColorsInput struct {
	Channel string
	Repo    string
	Colors  []string // raw operator arguments
	Nick    string   // used for the preview line
}

type ListInput struct {
	Channel     string
	Repo        string
	EnabledOnly bool
}

// --- UseCase Outputs ---

type LinkOutput struct {
	Subscription model.Subscription
	Created      bool
	AuthorizeURL string // empty when hook setup is not configured or the link was disabled
}

type SetColorsOutput struct {
	Subscription model.Subscription
	Preview      string
}
