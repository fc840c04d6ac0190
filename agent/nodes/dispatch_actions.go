package nodes

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/shelook/storebot/agent/contract"
	formatx "github.com/shelook/storebot/agent/format"
	gatewayx "github.com/shelook/storebot/agent/gateway"
	searchx "github.com/shelook/storebot/agent/search"
	verifyx "github.com/shelook/storebot/agent/verify"
)

// Dependencies are the collaborators action dispatch needs. SupportEmail is
// the human handoff address quoted for verified cancellations.
type Dependencies struct {
	Gateway      *gatewayx.Gateway
	Search       *searchx.Aggregator
	Format       *formatx.Formatter
	Notifier     contractx.Notifier
	SupportEmail string
}

// DispatchActions runs every requested action in resolver order. Actions are
// independent: a failure or panic in one yields the apology for that section
// only and never aborts its siblings.
func DispatchActions(ctx context.Context, in *GraphState, deps Dependencies) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	for _, action := range in.Resolution.Actions {
		in.Sections = append(in.Sections, dispatchOne(ctx, in, deps, action))
	}
	return in, nil
}

func dispatchOne(ctx context.Context, in *GraphState, deps Dependencies, action contractx.RequestedAction) (section string) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("action", string(action.Kind)).Msg("action dispatch panicked")
			section = ReplyApology
		}
	}()

	switch action.Kind {
	case contractx.ActionFindProduct:
		return runFindProduct(ctx, deps, action.FindProduct)
	case contractx.ActionCheckStatus:
		return runCheckStatus(ctx, in, deps, action.CheckStatus)
	case contractx.ActionCancelOrder:
		return runCancelOrder(ctx, in, deps, action.CancelOrder)
	default:
		log.Error().Str("action", string(action.Kind)).Msg("unknown action kind")
		return ReplyApology
	}
}

func runFindProduct(ctx context.Context, deps Dependencies, args *contractx.FindProductArgs) string {
	if args == nil {
		return ReplyApology
	}
	products := deps.Search.Search(ctx, args.Query)
	return deps.Format.ProductResult(args.Query, products)
}

func runCheckStatus(ctx context.Context, in *GraphState, deps Dependencies, args *contractx.CheckStatusArgs) string {
	if in.OrderID == "" {
		return ReplyAskOrderID
	}
	if in.Email == "" {
		return ReplyAskEmail
	}

	order, err := deps.Gateway.FetchOrder(ctx, in.OrderID)
	if err != nil {
		if errors.Is(err, contractx.ErrNotFound) {
			return ReplyOrderNotFound
		}
		return ReplyApology
	}

	if !verifyx.Allowed(order, effectiveEmail(in, argEmail(args)), verifyx.ActionStatus) {
		return ReplyVerificationFailed
	}
	return deps.Format.OrderStatus(order)
}

func runCancelOrder(ctx context.Context, in *GraphState, deps Dependencies, args *contractx.CancelOrderArgs) string {
	if in.OrderID == "" {
		return ReplyAskOrderID
	}
	if in.Email == "" {
		return ReplyAskEmail
	}

	order, err := deps.Gateway.FetchOrder(ctx, in.OrderID)
	if err != nil {
		if errors.Is(err, contractx.ErrNotFound) {
			return ReplyOrderNotFound
		}
		return ReplyApology
	}

	email := ""
	if args != nil {
		email = args.UserEmail
	}
	if !verifyx.Allowed(order, effectiveEmail(in, email), verifyx.ActionCancel) {
		return ReplySecurityAlert
	}

	// Verified cancellations are handed off to a human instead of mutating
	// the order directly; the repository-side Cancel stays behind the same
	// strict gate for callers that opt into it.
	ticket := contractx.CancellationTicket{OrderID: order.DisplayID, Email: in.Email}
	if err := deps.Notifier.NotifyCancellation(ctx, ticket); err != nil {
		log.Error().Err(err).Str("order", order.DisplayID).Msg("cancellation handoff failed")
	}
	return fmt.Sprintf("To cancel Order %s, please email %s.", order.DisplayID, deps.SupportEmail)
}

func argEmail(args *contractx.CheckStatusArgs) string {
	if args == nil {
		return ""
	}
	return args.UserEmail
}

// effectiveEmail prefers the email the resolver echoed into the tool call,
// falling back to the turn's resolved email.
func effectiveEmail(in *GraphState, fromArgs string) string {
	if fromArgs != "" {
		return fromArgs
	}
	return in.Email
}
