package payment

import "context"

type OrderRequest struct {
	// Amount in minor currency units (paise).
	Amount   int64             `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type Gateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
	// KeyID is the public key identifier handed to checkout clients. The
	// secret never leaves the gateway client.
	KeyID() string
	VerifySignature(orderID, paymentID, signature string) bool
}

// Callback is a gateway payment callback as received at the boundary.
// Only OrderID and PaymentID are covered by the signature; ProfileID and
// Amount are client-supplied and advisory.
type Callback struct {
	OrderID   string
	PaymentID string
	Signature string
	ProfileID string
	Amount    float64
}

// IsComplete reports whether all signature-bearing fields are present.
// Anything less is a test-mode or aborted checkout callback and must not
// mutate state.
func (c Callback) IsComplete() bool {
	return c.OrderID != "" && c.PaymentID != "" && c.Signature != ""
}
