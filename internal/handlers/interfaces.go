package handlers

import (
	"context"

	"intercom/pkg/clients/discord"
)

// WebhookSender delivers one message to the configured webhook.
type WebhookSender interface {
	Send(ctx context.Context, msg discord.Message) error
}
