package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"repo-relay/pkg/response"
)

// List godoc
// @Summary     List subscriptions
// @Description Returns subscriptions filtered by channel and/or repository.
// @Tags        Subscriptions
// @Produce     json
// @Security    Bearer
// @Param       channel      query string false "Channel name"
// @Param       repo         query string false "Repository owner/name"
// @Param       enabled_only query bool   false "Only enabled subscriptions"
// @Success     200 {object} listResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/subscriptions [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListReq(c)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err)
		return
	}

	subs, err := h.uc.List(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "subscription.delivery.http.List: %v", err)
		status, mapped := h.mapError(err, req.Repo)
		response.ErrorWithStatus(c, status, mapped)
		return
	}

	response.OK(c, newListResp(subs))
}

// Detail godoc
// @Summary     Get one subscription
// @Tags        Subscriptions
// @Produce     json
// @Security    Bearer
// @Param       channel query string true "Channel name"
// @Param       repo    query string true "Repository owner/name"
// @Success     200 {object} subscriptionResp
// @Failure     404 {object} response.Resp "Not subscribed"
// @Router      /api/v1/subscriptions/detail [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processDetailReq(c)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err)
		return
	}

	sub, err := h.uc.Get(ctx, req.Channel, req.Repo)
	if err != nil {
		status, mapped := h.mapError(err, req.Repo)
		response.ErrorWithStatus(c, status, mapped)
		return
	}

	response.OK(c, newSubscriptionResp(sub))
}

// Link godoc
// @Summary     Enable or disable a subscription
// @Description Creates or updates the (channel, repo) subscription. Enabling returns the
// @Description authorization link that lets the relay install the repository webhook.
// @Tags        Subscriptions
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       body body linkReq true "Subscription"
// @Success     200 {object} linkResp
// @Failure     400 {object} response.Resp "Invalid channel or repository"
// @Router      /api/v1/subscriptions [POST]
func (h *handler) Link(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processLinkReq(c)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err)
		return
	}

	out, err := h.uc.Link(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "subscription.delivery.http.Link: %v", err)
		status, mapped := h.mapError(err, req.Repo)
		response.ErrorWithStatus(c, status, mapped)
		return
	}

	response.OK(c, linkResp{
		Subscription: newSubscriptionResp(out.Subscription),
		Created:      out.Created,
		AuthorizeURL: out.AuthorizeURL,
	})
}

// SetColors godoc
// @Summary     Set a subscription's color scheme
// @Description Six mIRC color indices in the order repo, name, branch, tag, hash, url.
// @Tags        Subscriptions
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       body body setColorsReq true "Colors"
// @Success     200 {object} setColorsResp
// @Failure     400 {object} response.Resp "Invalid colors"
// @Failure     404 {object} response.Resp "Not subscribed"
// @Router      /api/v1/subscriptions/colors [PUT]
func (h *handler) SetColors(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSetColorsReq(c)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err)
		return
	}

	out, err := h.uc.SetColors(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "subscription.delivery.http.SetColors: %v", err)
		status, mapped := h.mapError(err, req.Repo)
		response.ErrorWithStatus(c, status, mapped)
		return
	}

	response.OK(c, setColorsResp{
		Subscription: newSubscriptionResp(out.Subscription),
		Preview:      out.Preview,
	})
}

// GetChannelRepo godoc
// @Summary     Get a channel's default repository
// @Tags        Subscriptions
// @Produce     json
// @Security    Bearer
// @Param       channel query string true "Channel name"
// @Success     200 {object} channelRepoResp
// @Failure     404 {object} response.Resp "No repository linked"
// @Router      /api/v1/channel-repos [GET]
func (h *handler) GetChannelRepo(c *gin.Context) {
	ctx := c.Request.Context()

	var req channelRepoReq
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err)
		return
	}

	repo, err := h.uc.GetChannelRepo(ctx, req.Channel)
	if err != nil {
		status, mapped := h.mapError(err, "")
		response.ErrorWithStatus(c, status, mapped)
		return
	}

	response.OK(c, channelRepoResp{Channel: req.Channel, Repo: repo})
}

// SetChannelRepo godoc
// @Summary     Set a channel's default repository
// @Description Bare #123 references in the channel resolve against this repository.
// @Tags        Subscriptions
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       body body channelRepoReq true "Channel and repository"
// @Success     200 {object} channelRepoResp
// @Failure     400 {object} response.Resp "Invalid channel or repository"
// @Router      /api/v1/channel-repos [PUT]
func (h *handler) SetChannelRepo(c *gin.Context) {
	ctx := c.Request.Context()

	var req channelRepoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err)
		return
	}

	if err := h.uc.SetChannelRepo(ctx, req.Channel, req.Repo); err != nil {
		h.l.Warnf(ctx, "subscription.delivery.http.SetChannelRepo: %v", err)
		status, mapped := h.mapError(err, req.Repo)
		response.ErrorWithStatus(c, status, mapped)
		return
	}

	repo, err := h.uc.GetChannelRepo(ctx, req.Channel)
	if err != nil {
		status, mapped := h.mapError(err, req.Repo)
		response.ErrorWithStatus(c, status, mapped)
		return
	}

	response.OK(c, channelRepoResp{Channel: req.Channel, Repo: repo})
}
