package prompt

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed template/system.txt
var systemRaw string

// Set holds loaded prompt content.
type Set struct {
	System string
}

// Load returns the trimmed prompt set. The embed is compile-time, so this is
// safe to call concurrently.
func Load() Set {
	return Set{
		System: strings.TrimSpace(systemRaw),
	}
}

// RenderSystem appends the per-turn identity context to the system prompt.
// Unknown values render as "None" so the model knows what is still missing.
func (s Set) RenderSystem(email, orderID string) string {
	return fmt.Sprintf("%s\n\nContext: Email=%s, OrderID=%s",
		s.System, orNone(email), orNone(orderID))
}

func orNone(v string) string {
	if strings.TrimSpace(v) == "" {
		return "None"
	}
	return v
}
