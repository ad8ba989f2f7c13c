package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusForwardTransitions(t *testing.T) {
	assert.True(t, OrderStatusReceived.CanTransitionTo(OrderStatusProcessing))
	assert.True(t, OrderStatusProcessing.CanTransitionTo(OrderStatusReady))
	assert.True(t, OrderStatusReady.CanTransitionTo(OrderStatusCompleted))

	// skipping intermediate steps is allowed
	assert.True(t, OrderStatusReceived.CanTransitionTo(OrderStatusCompleted))
	assert.True(t, OrderStatusReceived.CanTransitionTo(OrderStatusReady))
}

func TestOrderStatusNoBackwardTransitions(t *testing.T) {
	assert.False(t, OrderStatusProcessing.CanTransitionTo(OrderStatusReceived))
	assert.False(t, OrderStatusReady.CanTransitionTo(OrderStatusProcessing))
	assert.False(t, OrderStatusReady.CanTransitionTo(OrderStatusReady))
}

func TestOrderStatusCancellation(t *testing.T) {
	assert.True(t, OrderStatusReceived.CanTransitionTo(OrderStatusCancelled))
	assert.True(t, OrderStatusProcessing.CanTransitionTo(OrderStatusCancelled))
	assert.True(t, OrderStatusReady.CanTransitionTo(OrderStatusCancelled))
}

func TestOrderStatusTerminalStatesFrozen(t *testing.T) {
	targets := []OrderStatus{
		OrderStatusReceived,
		OrderStatusProcessing,
		OrderStatusReady,
		OrderStatusCancelled,
	}
	for _, target := range targets {
		assert.False(t, OrderStatusCompleted.CanTransitionTo(target),
			"completed must not transition to %s", target)
	}

	targets = []OrderStatus{
		OrderStatusReceived,
		OrderStatusProcessing,
		OrderStatusReady,
		OrderStatusCompleted,
	}
	for _, target := range targets {
		assert.False(t, OrderStatusCancelled.CanTransitionTo(target),
			"cancelled must not transition to %s", target)
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("ready")
	assert.NoError(t, err)
	assert.Equal(t, OrderStatusReady, status)

	_, err = ParseOrderStatus("shipped")
	assert.Error(t, err)
}

func TestParseSettledPaymentMethod(t *testing.T) {
	method, err := ParseSettledPaymentMethod("upi")
	assert.NoError(t, err)
	assert.Equal(t, PaymentMethodUPI, method)

	_, err = ParseSettledPaymentMethod("pending")
	assert.Error(t, err)
}
