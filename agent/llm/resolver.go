// Package llm implements the intent/tool resolver on the OpenAI chat
// completions API (any OpenAI-compatible endpoint works, see pkg/openrouter).
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/rs/zerolog/log"

	contractx "github.com/shelook/storebot/agent/contract"
	promptx "github.com/shelook/storebot/agent/prompt"
)

type Resolver struct {
	client  *openai.Client
	prompts promptx.Set
	cfg     Config
}

var _ contractx.Resolver = (*Resolver)(nil)

func NewResolver(client *openai.Client, cfg Config) (*Resolver, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: openai client is required", contractx.ErrValidation)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Resolver{
		client:  client,
		prompts: promptx.Load(),
		cfg:     cfg,
	}, nil
}

// Resolve makes a single tool-calling chat completion. Free text and tool
// calls both come back; malformed tool payloads are dropped one by one so a
// bad call cannot poison its siblings.
func (r *Resolver) Resolve(ctx context.Context, req contractx.ResolveRequest) (contractx.Resolution, error) {
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	params := openai.ChatCompletionNewParams{
		Messages:            r.buildMessages(req),
		Model:               r.cfg.Model,
		Temperature:         openai.Float(r.cfg.Temperature),
		MaxCompletionTokens: openai.Int(r.cfg.MaxCompletionToken),
		Tools:               toolDefinitions(),
	}

	completion, err := r.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return contractx.Resolution{}, fmt.Errorf("%w: chat completion: %v", contractx.ErrModelInvoke, err)
	}
	if len(completion.Choices) == 0 {
		return contractx.Resolution{}, fmt.Errorf("%w: completion has no choices", contractx.ErrModelInvoke)
	}

	msg := completion.Choices[0].Message
	calls := make([]toolCall, 0, len(msg.ToolCalls))
	for _, tc := range msg.ToolCalls {
		calls = append(calls, toolCall{name: tc.Function.Name, args: tc.Function.Arguments})
	}
	return contractx.Resolution{
		Content: strings.TrimSpace(msg.Content),
		Actions: parseActions(calls),
	}, nil
}

func (r *Resolver) buildMessages(req contractx.ResolveRequest) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.History)+2)
	messages = append(messages, openai.SystemMessage(r.prompts.RenderSystem(req.Email, req.OrderID)))

	for _, entry := range req.History {
		text := strings.TrimSpace(entry.Text)
		if text == "" {
			continue
		}
		switch strings.ToLower(entry.Role) {
		case "assistant":
			messages = append(messages, openai.AssistantMessage(text))
		case "user":
			messages = append(messages, openai.UserMessage(text))
		}
	}

	messages = append(messages, openai.UserMessage(req.Message))
	return messages
}

// toolDefinitions declares the fixed tool set the orchestrator knows how to
// dispatch. Argument schemas must match what parseActions reads back.
func toolDefinitions() []openai.ChatCompletionToolParam {
	return []openai.ChatCompletionToolParam{
		{
			Type: "function",
			Function: openai.FunctionDefinitionParam{
				Name:        string(contractx.ActionFindProduct),
				Description: openai.String("Search the store catalog for a product."),
				Parameters: openai.FunctionParameters{
					"type": "object",
					"properties": map[string]any{
						"query": map[string]any{"type": "string"},
					},
					"required": []string{"query"},
				},
			},
		},
		{
			Type: "function",
			Function: openai.FunctionDefinitionParam{
				Name:        string(contractx.ActionCheckStatus),
				Description: openai.String("Check the status of an order."),
				Parameters: openai.FunctionParameters{
					"type": "object",
					"properties": map[string]any{
						"user_email": map[string]any{"type": "string"},
					},
					"required": []string{"user_email"},
				},
			},
		},
		{
			Type: "function",
			Function: openai.FunctionDefinitionParam{
				Name:        string(contractx.ActionCancelOrder),
				Description: openai.String("Cancel an order."),
				Parameters: openai.FunctionParameters{
					"type": "object",
					"properties": map[string]any{
						"user_email": map[string]any{"type": "string"},
					},
					"required": []string{"user_email"},
				},
			},
		},
	}
}

// toolCall is the part of a completion tool call the resolver acts on.
type toolCall struct {
	name string
	args string
}

// parseActions validates each tool call into a tagged RequestedAction.
// Unknown tools and malformed payloads are skipped, not trusted.
func parseActions(calls []toolCall) []contractx.RequestedAction {
	actions := make([]contractx.RequestedAction, 0, len(calls))
	for _, call := range calls {
		action, err := parseAction(call.name, call.args)
		if err != nil {
			log.Warn().Err(err).Str("tool", call.name).Msg("dropping tool call")
			continue
		}
		actions = append(actions, action)
	}
	return actions
}

func parseAction(name, rawArgs string) (contractx.RequestedAction, error) {
	args := map[string]any{}
	if trimmed := strings.TrimSpace(rawArgs); trimmed != "" {
		if err := json.Unmarshal([]byte(trimmed), &args); err != nil {
			return contractx.RequestedAction{}, fmt.Errorf("%w: tool args: %v", contractx.ErrSchemaViolation, err)
		}
	}

	switch contractx.ActionKind(name) {
	case contractx.ActionFindProduct:
		query := stringArg(args, "query")
		if query == "" {
			query = stringArg(args, "keywords")
		}
		if query == "" {
			return contractx.RequestedAction{}, fmt.Errorf("%w: find_product requires query", contractx.ErrSchemaViolation)
		}
		return contractx.RequestedAction{
			Kind:        contractx.ActionFindProduct,
			FindProduct: &contractx.FindProductArgs{Query: query},
		}, nil
	case contractx.ActionCheckStatus:
		return contractx.RequestedAction{
			Kind:        contractx.ActionCheckStatus,
			CheckStatus: &contractx.CheckStatusArgs{UserEmail: stringArg(args, "user_email")},
		}, nil
	case contractx.ActionCancelOrder:
		return contractx.RequestedAction{
			Kind:        contractx.ActionCancelOrder,
			CancelOrder: &contractx.CancelOrderArgs{UserEmail: stringArg(args, "user_email")},
		}, nil
	default:
		return contractx.RequestedAction{}, fmt.Errorf("%w: unknown tool=%q", contractx.ErrSchemaViolation, name)
	}
}

// stringArg tolerates the model sending either a string or a list of strings
// (some models render "keywords" as an array).
func stringArg(args map[string]any, key string) string {
	switch v := args[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}
