package contract

import "context"

// Resolver turns a user message plus conversation context into free text and
// zero or more tool invocations.
type Resolver interface {
	Resolve(ctx context.Context, req ResolveRequest) (Resolution, error)
}

// Repository is the storefront backend. FindOrder reports ErrNotFound when
// the display id matches nothing; CancelOrder is keyed by the internal id
// and must be idempotent on the repository side.
type Repository interface {
	SearchProducts(ctx context.Context, keyword string) ([]Product, error)
	FindOrder(ctx context.Context, displayID string) (*Order, error)
	CancelOrder(ctx context.Context, internalID int64) error
}

// Notifier hands a verified cancellation request over to human support.
type Notifier interface {
	NotifyCancellation(ctx context.Context, ticket CancellationTicket) error
}
