package bulkorders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/veermani/kitchen-backend/pkg/db/models"
	"github.com/veermani/kitchen-backend/pkg/enums"
	pkgerrors "github.com/veermani/kitchen-backend/pkg/errors"
	"github.com/veermani/kitchen-backend/pkg/outbox"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r *gormTxRunner) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

func setupBulkOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS bulk_orders (
  id TEXT PRIMARY KEY,
  customer_name TEXT NOT NULL,
  customer_phone TEXT NOT NULL,
  items_description TEXT NOT NULL,
  special_instructions TEXT,
  status TEXT NOT NULL DEFAULT 'new',
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
	require.NoError(t, db.Exec("DELETE FROM bulk_orders").Error)
	require.NoError(t, db.Exec("DELETE FROM outbox_events").Error)
	return db
}

func newBulkOrdersService(t *testing.T, db *gorm.DB) (Service, *outbox.Repository) {
	t.Helper()
	outboxRepo := outbox.NewRepository(db)
	svc, err := NewService(NewRepository(db), &gormTxRunner{db: db}, outbox.NewService(outboxRepo, nil))
	require.NoError(t, err)
	return svc, outboxRepo
}

func TestCreateInquiryStartsNew(t *testing.T) {
	db := setupBulkOrdersTestDB(t)
	svc, outboxRepo := newBulkOrdersService(t, db)

	inquiry, err := svc.Create(context.Background(), CreateInquiryInput{
		CustomerName:     "Sunil Agrawal",
		CustomerPhone:    "9876543210",
		ItemsDescription: "25kg assorted sweets for diwali",
	})
	require.NoError(t, err)
	assert.Equal(t, enums.BulkOrderStatusNew, inquiry.Status)

	// The migration table name, not the pluralized struct name.
	var count int64
	require.NoError(t, db.Raw("SELECT COUNT(*) FROM bulk_orders").Scan(&count).Error)
	assert.EqualValues(t, 1, count)

	var persisted models.BulkOrderInquiry
	require.NoError(t, db.First(&persisted, "id = ?", inquiry.ID).Error)
	assert.Equal(t, enums.BulkOrderStatusNew, persisted.Status)

	rows, err := outboxRepo.FetchUnpublished(10)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, enums.EventBulkOrderCreated, rows[0].EventType)
}

func TestCreateInquiryValidation(t *testing.T) {
	db := setupBulkOrdersTestDB(t)
	svc, _ := newBulkOrdersService(t, db)

	_, err := svc.Create(context.Background(), CreateInquiryInput{
		CustomerPhone:    "9876543210",
		ItemsDescription: "25kg assorted sweets",
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "missing information", appErr.Message())

	_, err = svc.Create(context.Background(), CreateInquiryInput{
		CustomerName:  "Sunil Agrawal",
		CustomerPhone: "9876543210",
	})
	require.Error(t, err)
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "items description required", appErr.Message())
}

func TestSetStatusAnyDirection(t *testing.T) {
	db := setupBulkOrdersTestDB(t)
	svc, _ := newBulkOrdersService(t, db)

	inquiry, err := svc.Create(context.Background(), CreateInquiryInput{
		CustomerName:     "Sunil Agrawal",
		CustomerPhone:    "9876543210",
		ItemsDescription: "25kg assorted sweets",
	})
	require.NoError(t, err)

	// There is no transition machine; completed back to new is fine.
	sequence := []enums.BulkOrderStatus{
		enums.BulkOrderStatusContacted,
		enums.BulkOrderStatusCompleted,
		enums.BulkOrderStatusNew,
	}
	for _, status := range sequence {
		updated, err := svc.SetStatus(context.Background(), SetStatusInput{
			InquiryID: inquiry.ID,
			Status:    status,
		})
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestSetStatusUnknownInquiry(t *testing.T) {
	db := setupBulkOrdersTestDB(t)
	svc, _ := newBulkOrdersService(t, db)

	_, err := svc.SetStatus(context.Background(), SetStatusInput{
		InquiryID: uuid.New(),
		Status:    enums.BulkOrderStatusContacted,
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestListFiltersByStatus(t *testing.T) {
	db := setupBulkOrdersTestDB(t)
	svc, _ := newBulkOrdersService(t, db)

	first, err := svc.Create(context.Background(), CreateInquiryInput{
		CustomerName:     "Sunil Agrawal",
		CustomerPhone:    "9876543210",
		ItemsDescription: "25kg assorted sweets",
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateInquiryInput{
		CustomerName:     "Kavita Soni",
		CustomerPhone:    "9123456780",
		ItemsDescription: "10kg namkeen mix",
	})
	require.NoError(t, err)

	_, err = svc.SetStatus(context.Background(), SetStatusInput{
		InquiryID: first.ID,
		Status:    enums.BulkOrderStatusContacted,
	})
	require.NoError(t, err)

	contacted := enums.BulkOrderStatusContacted
	inquiries, err := svc.List(context.Background(), &contacted)
	require.NoError(t, err)
	require.Len(t, inquiries, 1)
	assert.Equal(t, "Sunil Agrawal", inquiries[0].CustomerName)

	all, err := svc.List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
