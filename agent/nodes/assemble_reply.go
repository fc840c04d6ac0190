package nodes

import (
	"fmt"
	"strings"

	contractx "github.com/shelook/storebot/agent/contract"
)

// AssembleReply concatenates the resolver's free text with each action's
// rendered section. The turn always produces a reply.
func AssembleReply(in *GraphState) (GraphOutput, error) {
	if in == nil {
		return GraphOutput{}, fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)
	}

	parts := make([]string, 0, len(in.Sections)+1)
	if content := strings.TrimSpace(in.Resolution.Content); content != "" {
		parts = append(parts, content)
	}
	for _, section := range in.Sections {
		if section != "" {
			parts = append(parts, section)
		}
	}

	reply := strings.Join(parts, SectionBreak)
	if reply == "" {
		reply = ReplyFallback
	}

	return GraphOutput{
		Reply:   reply,
		Email:   in.Email,
		OrderID: in.OrderID,
	}, nil
}
