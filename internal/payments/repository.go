package payments

import (
	"context"

	"gorm.io/gorm"

	"github.com/veermani/kitchen-backend/pkg/db/models"
)

// Repository manages persistence for the other-payments ledger.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create appends a ledger entry. There is no update path; the ledger is
// append-only.
func (r *Repository) Create(ctx context.Context, payment *models.OtherPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// ListRecent returns the newest entries first, capped at limit.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]models.OtherPayment, error) {
	var payments []models.OtherPayment
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
