// Package nodes holds the per-node functions of the orchestrator's turn
// graph, plus the state struct threaded through them.
package nodes

import (
	"errors"

	contractx "github.com/shelook/storebot/agent/contract"
)

type GraphInput struct {
	Turn contractx.Turn
}

type GraphOutput = contractx.TurnResult

// GraphState accumulates one turn's work. Nothing in it survives the turn.
type GraphState struct {
	Turn contractx.Turn

	// Resolved identity: declared value or extractor fallback.
	Email   string
	OrderID string

	Resolution contractx.Resolution

	// One rendered section per dispatched action, in resolver order.
	Sections []string
}

var ErrInvalidMessage = errors.New("message is empty")

// Fixed user-facing strings. Precondition prompts and security messages are
// deliberately constant: they never leak which backend field mismatched.
const (
	ReplyAskOrderID         = "Please provide your Order ID first."
	ReplyAskEmail           = "Please provide your Email Address."
	ReplyOrderNotFound      = "Order not found."
	ReplyVerificationFailed = "⚠️ Verification Failed. Email mismatch."
	ReplySecurityAlert      = "⚠️ **Security Alert:** Email mismatch. Cannot process cancellation."
	ReplyApology            = "I'm having a brief technical moment. Please try again."
	ReplyFallback           = "I'm sorry, I didn't quite catch that. How can I help?"
)

// SectionBreak separates the resolver's free text and each action's result
// in the assembled reply.
const SectionBreak = "<br><br>"
