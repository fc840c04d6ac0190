// Package gateway is the thin query layer between the dialogue core and the
// storefront repository. It normalizes identifiers, keeps product search
// non-fatal, and preserves the not-found / transport distinction for orders.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/shelook/storebot/agent/contract"
)

type Gateway struct {
	repo contractx.Repository
}

func New(repo contractx.Repository) (*Gateway, error) {
	if repo == nil {
		return nil, errors.New("repository is required")
	}
	return &Gateway{repo: repo}, nil
}

// SearchProducts returns the repository's native order, not re-ranked. A
// failed search yields an empty list; the aggregator treats it like any
// other miss.
func (g *Gateway) SearchProducts(ctx context.Context, keyword string) []contractx.Product {
	products, err := g.repo.SearchProducts(ctx, keyword)
	if err != nil {
		log.Error().Err(err).Str("keyword", keyword).Msg("product search failed")
		return nil
	}
	return products
}

// FetchOrder looks an order up by display id, stripping internal whitespace
// first. Callers distinguish contract.ErrNotFound from transport failure.
func (g *Gateway) FetchOrder(ctx context.Context, displayID string) (*contractx.Order, error) {
	clean := strings.Join(strings.Fields(displayID), "")
	if clean == "" {
		return nil, fmt.Errorf("%w: order id is empty", contractx.ErrValidation)
	}

	order, err := g.repo.FindOrder(ctx, clean)
	if err != nil {
		if !errors.Is(err, contractx.ErrNotFound) {
			log.Error().Err(err).Str("order", clean).Msg("order lookup failed")
		}
		return nil, err
	}
	return order, nil
}

// Cancel issues the cancellation side effect. It must only be called after
// strict verification has allowed the cancel action. No automatic retry:
// a failed call is terminal for this turn.
func (g *Gateway) Cancel(ctx context.Context, order *contractx.Order) error {
	if order == nil {
		return fmt.Errorf("%w: order is nil", contractx.ErrValidation)
	}
	if err := g.repo.CancelOrder(ctx, order.ID); err != nil {
		log.Error().Err(err).Str("order", order.DisplayID).Msg("cancellation failed")
		return err
	}
	log.Info().Str("order", order.DisplayID).Msg("order cancelled")
	return nil
}
