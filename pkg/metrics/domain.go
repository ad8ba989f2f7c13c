package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ShopMetrics tracks business-level counters for the kitchen backend.
type ShopMetrics struct {
	ordersCreated   *prometheus.CounterVec
	ordersSettled   *prometheus.CounterVec
	outboxPublished prometheus.Counter
	outboxFailed    prometheus.Counter
}

// NewShopMetrics registers the shop counters on the provided registerer.
func NewShopMetrics(reg prometheus.Registerer) *ShopMetrics {
	if reg == nil {
		return &ShopMetrics{}
	}
	ordersCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders persisted, labeled by type.",
	}, []string{"type"})
	ordersSettled := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_settled_total",
		Help: "Pending-payment orders settled, labeled by method.",
	}, []string{"method"})
	outboxPublished := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "outbox_events_published_total",
		Help: "Outbox events successfully published.",
	})
	outboxFailed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "outbox_events_failed_total",
		Help: "Outbox publish attempts that failed.",
	})
	reg.MustRegister(ordersCreated, ordersSettled, outboxPublished, outboxFailed)
	return &ShopMetrics{
		ordersCreated:   ordersCreated,
		ordersSettled:   ordersSettled,
		outboxPublished: outboxPublished,
		outboxFailed:    outboxFailed,
	}
}

// IncOrderCreated increments the created counter for the order type.
func (s *ShopMetrics) IncOrderCreated(orderType string) {
	if s == nil || s.ordersCreated == nil {
		return
	}
	s.ordersCreated.WithLabelValues(normalizeLabel(orderType)).Inc()
}

// IncOrderSettled increments the settled counter for the payment method.
func (s *ShopMetrics) IncOrderSettled(method string) {
	if s == nil || s.ordersSettled == nil {
		return
	}
	s.ordersSettled.WithLabelValues(normalizeLabel(method)).Inc()
}

// IncOutboxPublished increments the published counter.
func (s *ShopMetrics) IncOutboxPublished() {
	if s == nil || s.outboxPublished == nil {
		return
	}
	s.outboxPublished.Inc()
}

// IncOutboxFailed increments the failed counter.
func (s *ShopMetrics) IncOutboxFailed() {
	if s == nil || s.outboxFailed == nil {
		return
	}
	s.outboxFailed.Inc()
}
