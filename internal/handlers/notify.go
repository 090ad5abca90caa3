package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"intercom/pkg/clients/discord"
	"intercom/pkg/logging"
	"intercom/pkg/middleware"
)

type NotifyHandler struct {
	sender  WebhookSender
	logger  logging.Logger
	metrics *IntercomMetrics
}

func NewNotifyHandler(sender WebhookSender, logger logging.Logger, metrics *IntercomMetrics) *NotifyHandler {
	return &NotifyHandler{
		sender:  sender,
		logger:  logger,
		metrics: metrics,
	}
}

// Handle forwards the doorbell notification once. Delivery failures are
// logged and reported to the caller only as 502.
//
// The outbound call does not inherit the caller's cancellation: once a ring
// has been authenticated it is delivered even if the caller hangs up.
func (h *NotifyHandler) Handle(c *gin.Context) {
	ctx := context.WithoutCancel(c.Request.Context())

	if err := h.sender.Send(ctx, discord.IntercomRang()); err != nil {
		h.metrics.IncNotification(notifyStatusError)

		entry := middleware.GetContextLogger(c, h.logger).WithError(err)
		var apiErr *discord.APIError
		if errors.As(err, &apiErr) {
			entry = entry.WithField("upstream_status", apiErr.StatusCode)
		}
		entry.Error("Failed to forward notification")

		c.Status(http.StatusBadGateway)
		return
	}

	h.metrics.IncNotification(notifyStatusSuccess)
	middleware.GetContextLogger(c, h.logger).Info("Notification forwarded")

	c.Status(http.StatusOK)
}
