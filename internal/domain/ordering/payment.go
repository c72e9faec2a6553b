package ordering

import (
	"context"

	"github.com/azurestore/backend/internal/domain/shared/valueobject"
)

// PaymentMethod represents how the shopper pays
type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodUPI  PaymentMethod = "upi"
)

// IsValid returns true if the method is a known value
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodUPI:
		return true
	}
	return false
}

// String returns the string representation of the method
func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentResultStatus represents the outcome of a charge attempt
type PaymentResultStatus string

const (
	PaymentResultCompleted PaymentResultStatus = "completed"
	PaymentResultDeclined  PaymentResultStatus = "declined"
)

// PaymentResult holds the outcome of a charge
type PaymentResult struct {
	Status PaymentResultStatus
	// Reference is the gateway's transaction identifier, set on success
	Reference string
	// Reason describes why a charge was declined
	Reason string
}

// IsCompleted returns true if the charge went through
func (r PaymentResult) IsCompleted() bool {
	return r.Status == PaymentResultCompleted
}

// PaymentGateway charges the shopper for an order total.
// A declined charge is a normal result, not an error; errors mean the
// gateway itself could not be reached or failed mid-flight.
type PaymentGateway interface {
	ProcessPayment(ctx context.Context, amount valueobject.Money, method PaymentMethod) (*PaymentResult, error)
}
