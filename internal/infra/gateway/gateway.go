package gateway

import "context"

// Status is the normalized outcome a gateway reports for an order.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

type CreateRequest struct {
	OrderID     string
	AmountVND   int64
	Description string
	UserID      uint
	PlanID      uint
}

// Session is an externally-hosted checkout the user is sent to.
type Session struct {
	OrderID string
	PayURL  string
}

// Gateway is the single contract every payment integration implements:
// create a session, then report a real outcome when asked. The caller never
// mutates subscription state on anything but a StatusSuccess/StatusFailed
// answer from here or a verified callback.
type Gateway interface {
	CreatePayment(ctx context.Context, req CreateRequest) (*Session, error)
	QueryStatus(ctx context.Context, orderID string) (Status, error)
}

var registry = map[string]Gateway{}

// Register wires a gateway under a payment method name ("momo", "payos").
func Register(method string, g Gateway) {
	registry[method] = g
}

func Lookup(method string) (Gateway, bool) {
	g, ok := registry[method]
	return g, ok
}
