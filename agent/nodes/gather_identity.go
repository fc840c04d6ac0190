package nodes

import (
	"fmt"
	"strings"

	contractx "github.com/shelook/storebot/agent/contract"
	extractx "github.com/shelook/storebot/agent/extract"
)

// GatherIdentity fills the turn's email and order id. A declared value always
// overrides an extracted one.
func GatherIdentity(in *GraphState, extractor *extractx.Extractor) (*GraphState, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	in.Email = strings.TrimSpace(in.Turn.Email)
	in.OrderID = strings.TrimSpace(in.Turn.OrderID)

	if in.Email == "" {
		in.Email = extractor.Email(in.Turn.Message)
	}
	if in.OrderID == "" {
		in.OrderID = extractor.OrderID(in.Turn.Message)
	}
	return in, nil
}
