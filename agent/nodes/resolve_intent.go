package nodes

import (
	"context"
	"fmt"

	contractx "github.com/shelook/storebot/agent/contract"
)

// ResolveIntent makes the single resolver call for this turn. A failed call
// is terminal for the turn; the service boundary turns it into the apology.
func ResolveIntent(ctx context.Context, in *GraphState, resolver contractx.Resolver) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	resolution, err := resolver.Resolve(ctx, contractx.ResolveRequest{
		Message: in.Turn.Message,
		Email:   in.Email,
		OrderID: in.OrderID,
		History: in.Turn.History,
	})
	if err != nil {
		return nil, fmt.Errorf("resolve intent: %w", err)
	}

	in.Resolution = resolution
	return in, nil
}
