// Package notify hands verified cancellation requests to human support via
// the QStash publish API.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	contractx "github.com/shelook/storebot/agent/contract"
	qstashx "github.com/shelook/storebot/pkg/qstash"
)

type SupportNotifier struct {
	client      *qstashx.Client
	destination string
}

var _ contractx.Notifier = (*SupportNotifier)(nil)

// NewSupportNotifier targets destination, the support team's webhook URL,
// with each cancellation ticket.
func NewSupportNotifier(client *qstashx.Client, destination string) (*SupportNotifier, error) {
	if client == nil {
		return nil, errors.New("qstash client is required")
	}
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, errors.New("destination url is required")
	}
	return &SupportNotifier{client: client, destination: destination}, nil
}

func (n *SupportNotifier) NotifyCancellation(ctx context.Context, ticket contractx.CancellationTicket) error {
	if err := n.client.Publish(ctx, n.destination, ticket); err != nil {
		return fmt.Errorf("publish cancellation ticket: %w", err)
	}
	return nil
}
