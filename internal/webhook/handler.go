package webhook

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	pkgLog "repo-relay/pkg/log"
	pkgResponse "repo-relay/pkg/response"
)

// HandleGitHubWebhook godoc
// @Summary     Receive a GitHub webhook delivery
// @Description Verifies the HMAC signature, renders the event for every subscribed channel and posts it.
// @Description Any authenticated, well-formed delivery is answered 200 even when nothing was posted.
// @Tags        Webhook
// @Accept      json
// @Produce     json
// @Param       X-GitHub-Event      header string true  "Event type"
// @Param       X-GitHub-Delivery   header string false "Delivery id"
// @Param       X-Hub-Signature-256 header string false "HMAC-SHA256 of the body"
// @Success     200 {object} response.Resp "Accepted"
// @Failure     400 {object} response.Resp "Malformed payload"
// @Failure     401 {object} response.Resp "Missing signature"
// @Failure     403 {object} response.Resp "Invalid signature"
// @Failure     429 {object} response.Resp "Rate limited"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /webhook [POST]
func (h *Handler) HandleGitHubWebhook(c *gin.Context) {
	deliveryID := c.GetHeader(HeaderDelivery)
	if deliveryID == "" {
		deliveryID = uuid.NewString()
	}
	eventType := c.GetHeader(HeaderEvent)
	ctx := pkgLog.WithFields(c.Request.Context(), "delivery_id", deliveryID, "event", eventType)

	source := c.ClientIP()
	if err := h.security.ValidateIPAddress(source); err != nil {
		h.reject(ctx, c, err)
		return
	}
	if err := h.security.CheckRateLimit(source); err != nil {
		h.reject(ctx, c, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.reject(ctx, c, ErrBodyTooLarge)
			return
		}
		h.l.Errorf(ctx, "webhook.HandleGitHubWebhook: read body: %v", err)
		pkgResponse.ErrorWithStatus(c, http.StatusBadRequest, err)
		return
	}

	sig256 := c.GetHeader(HeaderSignature256)
	sig1 := c.GetHeader(HeaderSignature1)
	if err := h.security.ValidateSignature(body, sig256, sig1); err != nil {
		h.reject(ctx, c, err)
		return
	}

	signature := sig256
	if signature == "" {
		signature = sig1
	}
	event, err := h.githubParser.Parse(eventType, deliveryID, signature, body)
	if err != nil {
		h.reject(ctx, c, err)
		return
	}

	if !h.deliveries.firstSeen(deliveryID) {
		h.l.Infof(ctx, "webhook.HandleGitHubWebhook: delivery already processed")
		pkgResponse.OK(c, Result{
			DeliveryID: deliveryID,
			Event:      event.EventType,
			Status:     StatusDuplicate,
		})
		return
	}

	// The sender may hang up once it has its answer; posting must not stop with it.
	routeCtx := context.WithoutCancel(ctx)

	out, err := h.router.Route(routeCtx, event)
	if err != nil {
		h.deliveries.forget(deliveryID)
		h.l.Errorf(ctx, "webhook.HandleGitHubWebhook: route %s for %s: %v", event.EventType, event.Repository(), err)
		pkgResponse.InternalError(c, err)
		return
	}

	delivered := h.sink.DeliverAll(routeCtx, out.Messages)
	h.l.Infof(ctx, "webhook.HandleGitHubWebhook: %s for %s delivered to %d/%d channels",
		event.EventType, event.Repository(), delivered, len(out.Messages))

	pkgResponse.OK(c, Result{
		DeliveryID: deliveryID,
		Event:      event.EventType,
		Status:     StatusAccepted,
		Delivered:  delivered,
		Reason:     out.Reason,
	})
}

// reject answers a request that failed validation. Nothing has been
// delivered or stored at this point.
func (h *Handler) reject(ctx context.Context, c *gin.Context, err error) {
	status := statusFor(err)
	h.l.Warnf(ctx, "webhook.HandleGitHubWebhook: rejected with %d: %v", status, err)
	if status == http.StatusTooManyRequests {
		pkgResponse.TooManyRequests(c)
		return
	}
	pkgResponse.ErrorWithStatus(c, status, err)
}
