package nodes

import (
	"fmt"
	"strings"
)

func ValidateTurn(in GraphInput) (*GraphState, error) {
	if strings.TrimSpace(in.Turn.Message) == "" {
		return nil, fmt.Errorf("validate turn: %w", ErrInvalidMessage)
	}
	return &GraphState{Turn: in.Turn}, nil
}
