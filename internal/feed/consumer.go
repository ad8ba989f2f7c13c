package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/veermani/kitchen-backend/pkg/db/models"
	pkgerrors "github.com/veermani/kitchen-backend/pkg/errors"
	"github.com/veermani/kitchen-backend/pkg/logger"
)

// Snapshot key names under the feed redis prefix.
const (
	PendingPaymentsFeed = "pending_payments"
	ActiveOrdersFeed    = "active_orders"
)

// Snapshots never expire on their own; every order event rewrites them.
const snapshotTTL = time.Duration(0)

type ordersLister interface {
	ListPendingPayment(ctx context.Context) ([]models.Order, error)
	ListActive(ctx context.Context) ([]models.Order, error)
}

type snapshotStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	FeedKey(name string) string
}

// Consumer rebuilds the admin feed snapshots. Any order event triggers a
// full re-fetch and wholesale replace, so duplicate or out-of-order
// deliveries are harmless.
type Consumer struct {
	orders ordersLister
	store  snapshotStore
	logg   *logger.Logger
}

// NewConsumer builds a feed consumer with the required dependencies.
func NewConsumer(orders ordersLister, store snapshotStore, logg *logger.Logger) (*Consumer, error) {
	if orders == nil {
		return nil, fmt.Errorf("orders lister required")
	}
	if store == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	return &Consumer{orders: orders, store: store, logg: logg}, nil
}

// Handle processes one order event. The payload itself is ignored; the
// authoritative lists are re-fetched from the database.
func (c *Consumer) Handle(ctx context.Context) error {
	if err := c.Rebuild(ctx); err != nil {
		if c.logg != nil {
			c.logg.Error(ctx, "feed snapshot rebuild failed", err)
		}
		return err
	}
	return nil
}

// Rebuild refreshes both snapshots from the database. The snapshots are
// independent, so a failure on one does not block refreshing the other.
func (c *Consumer) Rebuild(ctx context.Context) error {
	var errs []error

	if pending, err := c.orders.ListPendingPayment(ctx); err != nil {
		errs = append(errs, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pending payments"))
	} else if err := c.write(ctx, PendingPaymentsFeed, pending); err != nil {
		errs = append(errs, err)
	}

	if active, err := c.orders.ListActive(ctx); err != nil {
		errs = append(errs, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list active orders"))
	} else if err := c.write(ctx, ActiveOrdersFeed, active); err != nil {
		errs = append(errs, err)
	}

	return multierr.Combine(errs...)
}

func (c *Consumer) write(ctx context.Context, name string, orders []models.Order) error {
	if orders == nil {
		orders = []models.Order{}
	}
	payload, err := json.Marshal(orders)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode feed snapshot")
	}
	if err := c.store.Set(ctx, c.store.FeedKey(name), payload, snapshotTTL); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write feed snapshot")
	}
	return nil
}
