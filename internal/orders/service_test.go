package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/veermani/kitchen-backend/pkg/db/models"
	"github.com/veermani/kitchen-backend/pkg/enums"
	pkgerrors "github.com/veermani/kitchen-backend/pkg/errors"
	"github.com/veermani/kitchen-backend/pkg/outbox"
	"github.com/veermani/kitchen-backend/pkg/types"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r *gormTxRunner) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  order_number TEXT NOT NULL UNIQUE,
  type TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'received',
  payment_method TEXT NOT NULL DEFAULT 'pending',
  customer_name TEXT NOT NULL,
  customer_phone TEXT NOT NULL,
  fulfillment_type TEXT NOT NULL,
  pickup_date TEXT,
  pickup_time TEXT,
  custom_packing BOOLEAN NOT NULL DEFAULT false,
  special_instructions TEXT,
  items TEXT NOT NULL,
  total_amount NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE TABLE IF NOT EXISTS outbox_events (
  id TEXT PRIMARY KEY,
  event_type TEXT NOT NULL,
  aggregate_type TEXT NOT NULL,
  aggregate_id TEXT NOT NULL,
  payload TEXT NOT NULL,
  created_at DATETIME,
  published_at DATETIME,
  attempt_count INTEGER NOT NULL DEFAULT 0,
  last_error TEXT
);`
	require.NoError(t, db.Exec(schema).Error)
	require.NoError(t, db.Exec("DELETE FROM orders").Error)
	require.NoError(t, db.Exec("DELETE FROM outbox_events").Error)
	return db
}

func newOrdersService(t *testing.T, db *gorm.DB) (Service, *outbox.Repository) {
	t.Helper()
	outboxRepo := outbox.NewRepository(db)
	svc, err := NewService(NewRepository(db), &gormTxRunner{db: db}, outbox.NewService(outboxRepo, nil), nil)
	require.NoError(t, err)
	return svc, outboxRepo
}

func seedOrder(t *testing.T, db *gorm.DB, orderNumber string, status enums.OrderStatus, payment enums.PaymentMethod) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:              uuid.New(),
		OrderNumber:     orderNumber,
		Type:            enums.OrderTypeOnline,
		Status:          status,
		PaymentMethod:   payment,
		CustomerName:    "Asha Verma",
		CustomerPhone:   "9876543210",
		FulfillmentType: enums.FulfillmentTypeTakeAway,
		Items: types.OrderItems{{
			ProductID:  uuid.New(),
			Name:       "Kaju Katli",
			PricePerKg: decimal.NewFromInt(1200),
			QuantityKg: decimal.RequireFromString("0.5"),
			Subtotal:   decimal.NewFromInt(600),
		}},
		TotalAmount: decimal.NewFromInt(600),
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestTransitionForwardEmitsEvent(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc, outboxRepo := newOrdersService(t, db)

	order := seedOrder(t, db, "VK202601050001", enums.OrderStatusReceived, enums.PaymentMethodPending)

	updated, err := svc.Transition(context.Background(), TransitionInput{
		OrderID: order.ID,
		Target:  enums.OrderStatusProcessing,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusProcessing, updated.Status)

	var persisted models.Order
	require.NoError(t, db.First(&persisted, "id = ?", order.ID).Error)
	assert.Equal(t, enums.OrderStatusProcessing, persisted.Status)

	rows, err := outboxRepo.FetchUnpublished(10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, enums.EventOrderStatusChanged, rows[0].EventType)
}

func TestTransitionCancelEmitsCancelledEvent(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc, outboxRepo := newOrdersService(t, db)

	order := seedOrder(t, db, "VK202601050002", enums.OrderStatusProcessing, enums.PaymentMethodPending)

	_, err := svc.Transition(context.Background(), TransitionInput{
		OrderID: order.ID,
		Target:  enums.OrderStatusCancelled,
	})
	require.NoError(t, err)

	rows, err := outboxRepo.FetchUnpublished(10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, enums.EventOrderCancelled, rows[0].EventType)
}

func TestTransitionFromTerminalRejected(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc, _ := newOrdersService(t, db)

	targets := []enums.OrderStatus{
		enums.OrderStatusReceived,
		enums.OrderStatusProcessing,
		enums.OrderStatusReady,
		enums.OrderStatusCompleted,
	}

	completed := seedOrder(t, db, "VK202601050003", enums.OrderStatusCompleted, enums.PaymentMethodCash)
	cancelled := seedOrder(t, db, "VK202601050004", enums.OrderStatusCancelled, enums.PaymentMethodPending)

	for _, order := range []*models.Order{completed, cancelled} {
		for _, target := range targets {
			_, err := svc.Transition(context.Background(), TransitionInput{
				OrderID: order.ID,
				Target:  target,
			})
			require.Error(t, err, "from %s to %s", order.Status, target)
			appErr := pkgerrors.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, pkgerrors.CodeStateConflict, appErr.Code())
		}
	}
}

func TestTransitionBackwardRejected(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc, _ := newOrdersService(t, db)

	order := seedOrder(t, db, "VK202601050005", enums.OrderStatusReady, enums.PaymentMethodPending)

	_, err := svc.Transition(context.Background(), TransitionInput{
		OrderID: order.ID,
		Target:  enums.OrderStatusProcessing,
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeStateConflict, appErr.Code())
}

func TestMarkPaidSettlesBothFields(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc, outboxRepo := newOrdersService(t, db)

	order := seedOrder(t, db, "VK202601050006", enums.OrderStatusReady, enums.PaymentMethodPending)

	updated, err := svc.MarkPaid(context.Background(), MarkPaidInput{
		OrderID: order.ID,
		Method:  enums.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentMethodCash, updated.PaymentMethod)
	assert.Equal(t, enums.OrderStatusCompleted, updated.Status)

	var persisted models.Order
	require.NoError(t, db.First(&persisted, "id = ?", order.ID).Error)
	assert.Equal(t, enums.PaymentMethodCash, persisted.PaymentMethod)
	assert.Equal(t, enums.OrderStatusCompleted, persisted.Status)

	rows, err := outboxRepo.FetchUnpublished(10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, enums.EventOrderPaid, rows[0].EventType)
}

func TestMarkPaidRejectsSettledOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc, _ := newOrdersService(t, db)

	order := seedOrder(t, db, "VK202601050007", enums.OrderStatusCompleted, enums.PaymentMethodUPI)

	_, err := svc.MarkPaid(context.Background(), MarkPaidInput{
		OrderID: order.ID,
		Method:  enums.PaymentMethodCash,
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeStateConflict, appErr.Code())
}

func TestMarkPaidRejectsPendingMethod(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc, _ := newOrdersService(t, db)

	order := seedOrder(t, db, "VK202601050008", enums.OrderStatusReceived, enums.PaymentMethodPending)

	_, err := svc.MarkPaid(context.Background(), MarkPaidInput{
		OrderID: order.ID,
		Method:  enums.PaymentMethodPending,
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestListPendingPaymentOldestFirst(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc, _ := newOrdersService(t, db)

	seedOrder(t, db, "VK202601050009", enums.OrderStatusReady, enums.PaymentMethodPending)
	seedOrder(t, db, "VK202601050010", enums.OrderStatusReceived, enums.PaymentMethodPending)
	seedOrder(t, db, "VK202601050011", enums.OrderStatusCompleted, enums.PaymentMethodCash)

	orders, err := svc.ListPendingPayment(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)
	for _, order := range orders {
		assert.Equal(t, enums.PaymentMethodPending, order.PaymentMethod)
	}
}

func TestGetByOrderNumberNotFound(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc, _ := newOrdersService(t, db)

	_, err := svc.GetByOrderNumber(context.Background(), "VK202601059999")
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
