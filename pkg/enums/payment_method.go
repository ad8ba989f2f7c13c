package enums

import "fmt"

// PaymentMethod describes how an order was, or will be, settled.
// Online orders start out pending until staff record the payment.
type PaymentMethod string

const (
	PaymentMethodCash    PaymentMethod = "cash"
	PaymentMethodUPI     PaymentMethod = "upi"
	PaymentMethodPending PaymentMethod = "pending"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodUPI,
	PaymentMethodPending,
}

// settledPaymentMethods are the methods staff may record against an order.
var settledPaymentMethods = []PaymentMethod{
	PaymentMethodCash,
	PaymentMethodUPI,
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// IsSettled reports whether the method represents collected payment.
func (p PaymentMethod) IsSettled() bool {
	for _, candidate := range settledPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}

// ParseSettledPaymentMethod accepts only cash or upi.
func ParseSettledPaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range settledPaymentMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid settled payment method %q", value)
}
