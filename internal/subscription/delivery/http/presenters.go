package http

import (
	"repo-relay/internal/model"
	"repo-relay/internal/subscription"
	"repo-relay/pkg/response"
)

// --- Request DTOs ---

type listReq struct {
	Channel     string `form:"channel"`
	Repo        string `form:"repo"`
	EnabledOnly bool   `form:"enabled_only"`
}

func (r listReq) toInput() subscription.ListInput {
	return subscription.ListInput{
		Channel:     r.Channel,
		Repo:        r.Repo,
		EnabledOnly: r.EnabledOnly,
	}
}

type detailReq struct {
	Channel string `form:"channel" binding:"required"`
	Repo    string `form:"repo"    binding:"required"`
}

type linkReq struct {
	Channel string `json:"channel" binding:"required"`
	Repo    string `json:"repo"    binding:"required"`
	Enabled *bool  `json:"enabled"`
}

func (r linkReq) toInput() subscription.LinkInput {
	enabled := true
	if r.Enabled != nil {
		enabled = *r.Enabled
	}
	return subscription.LinkInput{
		Channel: r.Channel,
		Repo:    r.Repo,
		Enabled: enabled,
	}
}

type setColorsReq struct {
	Channel string   `json:"channel" binding:"required"`
	Repo    string   `json:"repo"    binding:"required"`
	Colors  []string `json:"colors"`
	Nick    string   `json:"nick"`
}

func (r setColorsReq) toInput() subscription.SetColorsInput {
	return subscription.SetColorsInput{
		Channel: r.Channel,
		Repo:    r.Repo,
		Colors:  r.Colors,
		Nick:    r.Nick,
	}
}

type channelRepoReq struct {
	Channel string `json:"channel" form:"channel" binding:"required"`
	Repo    string `json:"repo"`
}

// --- Response DTOs ---

type colorsResp struct {
	Repo   int `json:"repo"`
	Name   int `json:"name"`
	Branch int `json:"branch"`
	Tag    int `json:"tag"`
	Hash   int `json:"hash"`
	URL    int `json:"url"`
}

type subscriptionResp struct {
	Channel   string            `json:"channel"`
	Repo      string            `json:"repo"`
	Enabled   bool              `json:"enabled"`
	Colors    *colorsResp       `json:"colors,omitempty"`
	CreatedAt response.DateTime `json:"created_at"`
	UpdatedAt response.DateTime `json:"updated_at"`
}

type listResp struct {
	Items []subscriptionResp `json:"items"`
	Total int                `json:"total"`
}

type linkResp struct {
	Subscription subscriptionResp `json:"subscription"`
	Created      bool             `json:"created"`
	AuthorizeURL string           `json:"authorize_url,omitempty"`
}

type setColorsResp struct {
	Subscription subscriptionResp `json:"subscription"`
	Preview      string           `json:"preview"`
}

type channelRepoResp struct {
	Channel string `json:"channel"`
	Repo    string `json:"repo"`
}

func newSubscriptionResp(s model.Subscription) subscriptionResp {
	resp := subscriptionResp{
		Channel:   s.Channel,
		Repo:      s.Repo,
		Enabled:   s.Enabled,
		CreatedAt: response.DateTime(s.CreatedAt),
		UpdatedAt: response.DateTime(s.UpdatedAt),
	}
	if s.Colors != nil {
		resp.Colors = &colorsResp{
			Repo:   s.Colors.Repo,
			Name:   s.Colors.Name,
			Branch: s.Colors.Branch,
			Tag:    s.Colors.Tag,
			Hash:   s.Colors.Hash,
			URL:    s.Colors.URL,
		}
	}
	return resp
}

func newListResp(subs []model.Subscription) listResp {
	items := make([]subscriptionResp, 0, len(subs))
	for _, s := range subs {
		items = append(items, newSubscriptionResp(s))
	}
	return listResp{Items: items, Total: len(items)}
}
