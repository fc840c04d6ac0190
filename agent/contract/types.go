package contract

// Turn is one inbound conversation turn. The caller owns persistence: the
// resolved email/order id returned in TurnResult must be echoed back on the
// next turn for the assistant to remember them.
type Turn struct {
	Message string         `json:"message"`
	Email   string         `json:"email,omitempty"`
	OrderID string         `json:"order_id,omitempty"`
	History []HistoryEntry `json:"history,omitempty"`
}

type HistoryEntry struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type TurnResult struct {
	Reply   string `json:"reply"`
	Email   string `json:"email,omitempty"`
	OrderID string `json:"order_id,omitempty"`
}

// Order is a transient read-only copy of a storefront order. ID is the
// repository's internal numeric id; DisplayID is the human-facing code
// (e.g. "SL1001") customers quote in chat.
type Order struct {
	ID                int64
	DisplayID         string
	Email             string
	ContactEmail      string
	CustomerEmail     string
	FulfillmentStatus string
	FinancialStatus   string
	Fulfillments      []Fulfillment
}

type Fulfillment struct {
	TrackingNumber string
	TrackingURL    string
}

type Product struct {
	ID       string
	Title    string
	Handle   string
	ImageURL string
}

// ActionKind enumerates the tools the resolver may request.
type ActionKind string

const (
	ActionFindProduct ActionKind = "find_product"
	ActionCheckStatus ActionKind = "check_status"
	ActionCancelOrder ActionKind = "cancel_order"
)

// RequestedAction is a tagged variant: exactly one of the argument structs is
// set, matching Kind. Payloads are validated when parsed from the resolver,
// never trusted downstream.
type RequestedAction struct {
	Kind        ActionKind
	FindProduct *FindProductArgs
	CheckStatus *CheckStatusArgs
	CancelOrder *CancelOrderArgs
}

type FindProductArgs struct {
	Query string `json:"query"`
}

type CheckStatusArgs struct {
	UserEmail string `json:"user_email"`
}

type CancelOrderArgs struct {
	UserEmail string `json:"user_email"`
}

// Resolution is what one resolver call yields: optional free text plus zero
// or more requested actions, in the resolver's order.
type Resolution struct {
	Content string
	Actions []RequestedAction
}

type ResolveRequest struct {
	Message string
	Email   string
	OrderID string
	History []HistoryEntry
}

// CancellationTicket is handed to the Notifier when a verified cancellation
// is deflected to human support.
type CancellationTicket struct {
	OrderID string `json:"order_id"`
	Email   string `json:"email"`
}
