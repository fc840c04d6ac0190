// Package extract pulls contact details out of free text. It is the fallback
// used when the caller did not declare an email or order id explicitly; a
// declared value always wins over an extracted one.
package extract

import (
	"regexp"
	"strings"
)

const DefaultOrderPrefix = "SL"

var emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)

// Extractor matches email addresses and display order ids for one store
// prefix. The zero value is not usable; call New.
type Extractor struct {
	orderPattern *regexp.Regexp
}

func New(orderPrefix string) *Extractor {
	prefix := strings.TrimSpace(orderPrefix)
	if prefix == "" {
		prefix = DefaultOrderPrefix
	}
	return &Extractor{
		orderPattern: regexp.MustCompile(`(?i)(` + regexp.QuoteMeta(prefix) + `\s*\d+)`),
	}
}

// Identity returns the first email address and the first order id found in
// text. Either result is empty when nothing matches.
func (e *Extractor) Identity(text string) (email, orderID string) {
	return e.Email(text), e.OrderID(text)
}

// Email returns the first syntactic email match. No validation beyond the
// pattern is attempted.
func (e *Extractor) Email(text string) string {
	return emailPattern.FindString(text)
}

// OrderID returns the first display order id, upper-cased with internal
// whitespace removed ("sl 1001" -> "SL1001").
func (e *Extractor) OrderID(text string) string {
	match := e.orderPattern.FindString(text)
	if match == "" {
		return ""
	}
	return strings.ToUpper(strings.Join(strings.Fields(match), ""))
}
