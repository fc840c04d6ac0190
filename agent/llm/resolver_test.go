package llm

import (
	"errors"
	"testing"

	contractx "github.com/shelook/storebot/agent/contract"
)

func TestParseActionFindProduct(t *testing.T) {
	t.Parallel()

	action, err := parseAction("find_product", `{"query":"silver ring"}`)
	if err != nil {
		t.Fatalf("parseAction() error = %v", err)
	}
	if action.Kind != contractx.ActionFindProduct {
		t.Fatalf("kind = %q", action.Kind)
	}
	if action.FindProduct == nil || action.FindProduct.Query != "silver ring" {
		t.Fatalf("unexpected args: %+v", action.FindProduct)
	}
}

func TestParseActionFindProductKeywordsFallback(t *testing.T) {
	t.Parallel()

	action, err := parseAction("find_product", `{"keywords":["silver","ring"]}`)
	if err != nil {
		t.Fatalf("parseAction() error = %v", err)
	}
	if action.FindProduct.Query != "silver ring" {
		t.Fatalf("query = %q, want joined keywords", action.FindProduct.Query)
	}
}

func TestParseActionFindProductMissingQuery(t *testing.T) {
	t.Parallel()

	_, err := parseAction("find_product", `{}`)
	if !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
}

func TestParseActionStatusAndCancel(t *testing.T) {
	t.Parallel()

	status, err := parseAction("check_status", `{"user_email":"a@x.com"}`)
	if err != nil {
		t.Fatalf("parseAction(check_status) error = %v", err)
	}
	if status.CheckStatus.UserEmail != "a@x.com" {
		t.Fatalf("unexpected status args: %+v", status.CheckStatus)
	}

	cancel, err := parseAction("cancel_order", `{"user_email":"a@x.com"}`)
	if err != nil {
		t.Fatalf("parseAction(cancel_order) error = %v", err)
	}
	if cancel.CancelOrder.UserEmail != "a@x.com" {
		t.Fatalf("unexpected cancel args: %+v", cancel.CancelOrder)
	}
}

func TestParseActionUnknownTool(t *testing.T) {
	t.Parallel()

	_, err := parseAction("delete_everything", `{}`)
	if !errors.Is(err, contractx.ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
}

func TestParseActionsSkipsMalformedCalls(t *testing.T) {
	t.Parallel()

	actions := parseActions([]toolCall{
		{name: "find_product", args: `{"query":"ring"`}, // truncated json
		{name: "check_status", args: `{"user_email":"a@x.com"}`},
		{name: "mystery_tool", args: `{}`},
	})
	if len(actions) != 1 {
		t.Fatalf("expected 1 surviving action, got %d", len(actions))
	}
	if actions[0].Kind != contractx.ActionCheckStatus {
		t.Fatalf("unexpected action: %+v", actions[0])
	}
}

func TestToolDefinitionsMatchActionKinds(t *testing.T) {
	t.Parallel()

	defs := toolDefinitions()
	if len(defs) != 3 {
		t.Fatalf("expected 3 tools, got %d", len(defs))
	}
	want := []string{"find_product", "check_status", "cancel_order"}
	for i, name := range want {
		if defs[i].Function.Name != name {
			t.Fatalf("tool[%d] = %q, want %q", i, defs[i].Function.Name, name)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	if err := (Config{Model: "llama-3.3-70b-versatile", MaxCompletionToken: 100}).Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if err := (Config{MaxCompletionToken: 100}).Validate(); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing model, got %v", err)
	}
}
