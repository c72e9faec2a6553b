package ordering

import (
	"fmt"

	"github.com/azurestore/backend/internal/domain/shared"
	"github.com/azurestore/backend/internal/domain/shared/valueobject"
)

// CheckoutState represents the step of a checkout in progress
type CheckoutState string

const (
	CheckoutStateCart       CheckoutState = "cart"
	CheckoutStateShipping   CheckoutState = "shipping"
	CheckoutStatePayment    CheckoutState = "payment"
	CheckoutStateProcessing CheckoutState = "processing"
	CheckoutStateCompleted  CheckoutState = "completed"
	CheckoutStateFailed     CheckoutState = "failed"
)

// IsValid returns true if the state is a known value
func (s CheckoutState) IsValid() bool {
	switch s {
	case CheckoutStateCart, CheckoutStateShipping, CheckoutStatePayment,
		CheckoutStateProcessing, CheckoutStateCompleted, CheckoutStateFailed:
		return true
	}
	return false
}

// String returns the string representation of the state
func (s CheckoutState) String() string {
	return string(s)
}

// IsTerminal returns true for states that end a checkout
func (s CheckoutState) IsTerminal() bool {
	return s == CheckoutStateCompleted
}

// CanTransitionTo checks if the state can transition to the target state.
// Shoppers can step back from shipping and payment; a failed payment
// re-enters the payment step. Completed is terminal.
func (s CheckoutState) CanTransitionTo(target CheckoutState) bool {
	switch s {
	case CheckoutStateCart:
		return target == CheckoutStateShipping
	case CheckoutStateShipping:
		return target == CheckoutStatePayment || target == CheckoutStateCart
	case CheckoutStatePayment:
		return target == CheckoutStateProcessing || target == CheckoutStateShipping
	case CheckoutStateProcessing:
		return target == CheckoutStateCompleted || target == CheckoutStateFailed
	case CheckoutStateFailed:
		return target == CheckoutStatePayment
	case CheckoutStateCompleted:
		return false // Terminal state
	}
	return false
}

// Checkout tracks a single checkout attempt: the step the shopper is on,
// the shipping address gathered so far and the chosen payment method.
// It is a short-lived value; only the resulting Order is persisted.
type Checkout struct {
	State         CheckoutState
	Address       valueobject.Address
	PaymentMethod PaymentMethod
}

// NewCheckout starts a checkout at the cart step
func NewCheckout() *Checkout {
	return &Checkout{
		State: CheckoutStateCart,
	}
}

// ProceedToShipping moves from the cart step to the shipping step.
// An empty cart cannot enter checkout.
func (c *Checkout) ProceedToShipping(cartLines int) error {
	if !c.State.CanTransitionTo(CheckoutStateShipping) {
		return c.transitionError(CheckoutStateShipping)
	}
	if cartLines == 0 {
		return shared.NewDomainError("EMPTY_CART", "Cannot check out with an empty cart")
	}

	c.State = CheckoutStateShipping
	return nil
}

// SetShippingAddress records the shipping address during the shipping step
func (c *Checkout) SetShippingAddress(address valueobject.Address) error {
	if c.State != CheckoutStateShipping {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot set shipping address in %s state", c.State))
	}

	c.Address = address
	return nil
}

// ProceedToPayment moves from shipping to payment.
// Requires a complete shipping address (street, city and postal code).
func (c *Checkout) ProceedToPayment() error {
	if !c.State.CanTransitionTo(CheckoutStatePayment) || c.State != CheckoutStateShipping {
		return c.transitionError(CheckoutStatePayment)
	}
	if !c.Address.IsComplete() {
		return shared.NewDomainError("INCOMPLETE_SHIPPING_INFO", "Shipping address requires street, city and postal code")
	}

	c.State = CheckoutStatePayment
	return nil
}

// BackToCart returns from the shipping step to the cart step
func (c *Checkout) BackToCart() error {
	if !c.State.CanTransitionTo(CheckoutStateCart) {
		return c.transitionError(CheckoutStateCart)
	}

	c.State = CheckoutStateCart
	return nil
}

// BackToShipping returns from the payment step to the shipping step
func (c *Checkout) BackToShipping() error {
	if c.State != CheckoutStatePayment {
		return c.transitionError(CheckoutStateShipping)
	}

	c.State = CheckoutStateShipping
	return nil
}

// BeginProcessing moves from payment to processing with the chosen method
func (c *Checkout) BeginProcessing(method PaymentMethod) error {
	if !c.State.CanTransitionTo(CheckoutStateProcessing) {
		return c.transitionError(CheckoutStateProcessing)
	}
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", fmt.Sprintf("Unknown payment method %q", method))
	}

	c.PaymentMethod = method
	c.State = CheckoutStateProcessing
	return nil
}

// Complete finishes the checkout after a successful charge
func (c *Checkout) Complete() error {
	if !c.State.CanTransitionTo(CheckoutStateCompleted) {
		return c.transitionError(CheckoutStateCompleted)
	}

	c.State = CheckoutStateCompleted
	return nil
}

// Fail records a declined or errored charge
func (c *Checkout) Fail() error {
	if !c.State.CanTransitionTo(CheckoutStateFailed) {
		return c.transitionError(CheckoutStateFailed)
	}

	c.State = CheckoutStateFailed
	return nil
}

// RetryPayment re-enters the payment step after a failure
func (c *Checkout) RetryPayment() error {
	if c.State != CheckoutStateFailed {
		return c.transitionError(CheckoutStatePayment)
	}

	c.State = CheckoutStatePayment
	return nil
}

func (c *Checkout) transitionError(target CheckoutState) error {
	return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move from %s to %s", c.State, target))
}
