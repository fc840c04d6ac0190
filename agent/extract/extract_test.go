package extract

import "testing"

func TestIdentityRoundTrip(t *testing.T) {
	t.Parallel()

	ex := New("SL")
	email, orderID := ex.Identity("contact me at a.b@x.com re order SL 1001")
	if email != "a.b@x.com" {
		t.Fatalf("email = %q, want %q", email, "a.b@x.com")
	}
	if orderID != "SL1001" {
		t.Fatalf("orderID = %q, want %q", orderID, "SL1001")
	}
}

func TestOrderIDCaseAndWhitespace(t *testing.T) {
	t.Parallel()

	ex := New("SL")
	cases := map[string]string{
		"my order is sl1001":     "SL1001",
		"order Sl  2002 please":  "SL2002",
		"SL3003":                 "SL3003",
		"no order here":          "",
		"SL with no digits":      "",
		"prefix XX1001 not mine": "",
		"two ids SL1 then SL2":   "SL1",
	}
	for text, want := range cases {
		if got := ex.OrderID(text); got != want {
			t.Fatalf("OrderID(%q) = %q, want %q", text, got, want)
		}
	}
}

func TestEmailFirstMatchOnly(t *testing.T) {
	t.Parallel()

	ex := New("SL")
	got := ex.Email("a@x.com then b@y.org")
	if got != "a@x.com" {
		t.Fatalf("Email() = %q, want first match", got)
	}
}

func TestEmailNoMatch(t *testing.T) {
	t.Parallel()

	ex := New("SL")
	if got := ex.Email("no address in here"); got != "" {
		t.Fatalf("Email() = %q, want empty", got)
	}
}

func TestNewDefaultsPrefix(t *testing.T) {
	t.Parallel()

	ex := New("   ")
	if got := ex.OrderID("order sl 42"); got != "SL42" {
		t.Fatalf("OrderID() = %q, want SL42", got)
	}
}
