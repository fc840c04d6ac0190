package verify

import (
	"testing"

	contractx "github.com/shelook/storebot/agent/contract"
)

func TestAllowedNilOrder(t *testing.T) {
	t.Parallel()

	if Allowed(nil, "a@x.com", ActionStatus) {
		t.Fatal("nil order must never be authorized")
	}
	if Allowed(nil, "a@x.com", ActionCancel) {
		t.Fatal("nil order must never be authorized")
	}
}

func TestAllowedEmptyKnownEmails(t *testing.T) {
	t.Parallel()

	order := &contractx.Order{DisplayID: "SL1001"}

	// Lenient mode grants by default when the backend has no data to check.
	if !Allowed(order, "anyone@x.com", ActionStatus) {
		t.Fatal("status must bypass when no emails are on file")
	}
	// Strict mode has no bypass under any condition.
	if Allowed(order, "anyone@x.com", ActionCancel) {
		t.Fatal("cancel must deny when no emails are on file")
	}
}

func TestAllowedMembershipAnyFieldSuffices(t *testing.T) {
	t.Parallel()

	order := &contractx.Order{
		DisplayID:    "SL1001",
		Email:        "owner@x.com",
		ContactEmail: "contact@x.com",
	}

	if !Allowed(order, "contact@x.com", ActionCancel) {
		t.Fatal("contact_email match must authorize cancel")
	}
	if !Allowed(order, "owner@x.com", ActionStatus) {
		t.Fatal("primary email match must authorize status")
	}
	if Allowed(order, "stranger@x.com", ActionCancel) {
		t.Fatal("non-member must be denied cancel")
	}
	if Allowed(order, "stranger@x.com", ActionStatus) {
		t.Fatal("non-member must be denied status when emails exist")
	}
}

func TestAllowedCustomerEmailOnly(t *testing.T) {
	t.Parallel()

	order := &contractx.Order{
		DisplayID:     "SL1001",
		CustomerEmail: "cust@x.com",
	}
	if !Allowed(order, "cust@x.com", ActionCancel) {
		t.Fatal("customer email match must authorize cancel")
	}
}

func TestAllowedNormalization(t *testing.T) {
	t.Parallel()

	order := &contractx.Order{
		DisplayID: "SL1001",
		Email:     "  Owner@X.COM ",
	}
	if !Allowed(order, " OWNER@x.com  ", ActionCancel) {
		t.Fatal("comparison must be case-insensitive and trimmed")
	}
}

func TestMaskEmail(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"a.b@x.com": "a***@x.com",
		"a@x.com":   "***",
		"":          "***",
		"no-at":     "***",
	}
	for in, want := range cases {
		if got := MaskEmail(in); got != want {
			t.Fatalf("MaskEmail(%q) = %q, want %q", in, got, want)
		}
	}
}
