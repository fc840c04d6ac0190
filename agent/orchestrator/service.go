// Package orchestrator is the top-level per-turn control loop: gather
// identity, resolve intent, dispatch each requested action, assemble the
// reply. No state survives a turn beyond what the caller echoes back.
package orchestrator

import (
	"context"
	"errors"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/rs/zerolog/log"

	contractx "github.com/shelook/storebot/agent/contract"
	extractx "github.com/shelook/storebot/agent/extract"
	formatx "github.com/shelook/storebot/agent/format"
	gatewayx "github.com/shelook/storebot/agent/gateway"
	nodex "github.com/shelook/storebot/agent/nodes"
	searchx "github.com/shelook/storebot/agent/search"
)

var ErrInvalidMessage = nodex.ErrInvalidMessage

type Config struct {
	StorePrefix  string
	SupportEmail string
	PublicDomain string
}

type Orchestrator struct {
	resolver  contractx.Resolver
	extractor *extractx.Extractor
	deps      nodex.Dependencies

	graphRunner compose.Runnable[nodex.GraphInput, nodex.GraphOutput]
}

func New(
	resolver contractx.Resolver,
	repo contractx.Repository,
	notifier contractx.Notifier,
	cfg Config,
) (*Orchestrator, error) {
	if resolver == nil {
		return nil, errors.New("resolver is required")
	}
	if notifier == nil {
		notifier = noopNotifier{}
	}

	gw, err := gatewayx.New(repo)
	if err != nil {
		return nil, err
	}

	supportEmail := strings.TrimSpace(cfg.SupportEmail)
	if supportEmail == "" {
		supportEmail = "support@shelook.com"
	}

	o := &Orchestrator{
		resolver:  resolver,
		extractor: extractx.New(cfg.StorePrefix),
		deps: nodex.Dependencies{
			Gateway:      gw,
			Search:       searchx.New(gw),
			Format:       formatx.New(formatx.Config{PublicDomain: cfg.PublicDomain}),
			Notifier:     notifier,
			SupportEmail: supportEmail,
		},
	}

	graphRunner, err := o.compileHandleTurnGraph(context.Background())
	if err != nil {
		return nil, err
	}
	o.graphRunner = graphRunner

	return o, nil
}

// HandleTurn processes one conversation turn. It returns an error only for
// caller contract violations (empty message); every internal failure still
// yields a reply, at worst the generic apology.
func (o *Orchestrator) HandleTurn(ctx context.Context, turn contractx.Turn) (contractx.TurnResult, error) {
	out, err := o.graphRunner.Invoke(ctx, nodex.GraphInput{Turn: turn})
	if err != nil {
		if errors.Is(err, nodex.ErrInvalidMessage) {
			return contractx.TurnResult{}, err
		}

		log.Error().Err(err).Msg("turn failed")
		email, orderID := o.recoverIdentity(turn)
		return contractx.TurnResult{
			Reply:   nodex.ReplyApology,
			Email:   email,
			OrderID: orderID,
		}, nil
	}
	return out, nil
}

// recoverIdentity re-derives the echoed identity when the graph aborted
// before producing output, so a stateless caller keeps its context.
func (o *Orchestrator) recoverIdentity(turn contractx.Turn) (string, string) {
	email := strings.TrimSpace(turn.Email)
	orderID := strings.TrimSpace(turn.OrderID)
	if email == "" {
		email = o.extractor.Email(turn.Message)
	}
	if orderID == "" {
		orderID = o.extractor.OrderID(turn.Message)
	}
	return email, orderID
}

type noopNotifier struct{}

func (noopNotifier) NotifyCancellation(context.Context, contractx.CancellationTicket) error {
	return nil
}
