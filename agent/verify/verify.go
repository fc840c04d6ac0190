// Package verify decides whether an email is authorized to act on an order.
//
// Two modes exist and the asymmetry is deliberate: status checks degrade
// gracefully when the backend has no email on file (test/incomplete orders),
// while cancellation always requires a positive match and has no bypass.
package verify

import (
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/shelook/storebot/agent/contract"
)

type Action string

const (
	ActionStatus Action = "status"
	ActionCancel Action = "cancel"
)

// Allowed reports whether inputEmail may perform action against order.
// A nil order is never authorized.
func Allowed(order *contractx.Order, inputEmail string, action Action) bool {
	if order == nil {
		return false
	}

	known := knownEmails(order)
	input := normalize(inputEmail)

	allowed := false
	switch action {
	case ActionCancel:
		// Strict: membership only. An order with no email on file can
		// never be cancelled through chat.
		_, allowed = known[input]
	case ActionStatus:
		// Lenient: an empty set grants access by default.
		if len(known) == 0 {
			allowed = true
		} else {
			_, allowed = known[input]
		}
	}

	if !allowed {
		log.Warn().
			Str("order", order.DisplayID).
			Str("action", string(action)).
			Str("email", MaskEmail(inputEmail)).
			Msg("verification denied")
	}
	return allowed
}

// knownEmails collects the non-empty, normalized email values recorded
// against the order. Membership is set-based: any match suffices.
func knownEmails(order *contractx.Order) map[string]struct{} {
	set := make(map[string]struct{}, 3)
	for _, raw := range []string{order.Email, order.ContactEmail, order.CustomerEmail} {
		if v := normalize(raw); v != "" {
			set[v] = struct{}{}
		}
	}
	return set
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// MaskEmail hides the local part of an address except its first rune, for
// security-relevant log lines.
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at <= 1 {
		return "***"
	}
	return email[:1] + "***" + email[at:]
}
