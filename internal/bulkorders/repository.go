package bulkorders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/veermani/kitchen-backend/pkg/db/models"
	"github.com/veermani/kitchen-backend/pkg/enums"
)

// Repository manages persistence for bulk order inquiries.
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

// Create inserts a new inquiry row.
func (r *Repository) Create(ctx context.Context, inquiry *models.BulkOrderInquiry) error {
	return r.db.WithContext(ctx).Create(inquiry).Error
}

// FindByID loads a single inquiry.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.BulkOrderInquiry, error) {
	var inquiry models.BulkOrderInquiry
	if err := r.db.WithContext(ctx).First(&inquiry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &inquiry, nil
}

// List returns inquiries newest-first, optionally narrowed by status.
func (r *Repository) List(ctx context.Context, status *enums.BulkOrderStatus) ([]models.BulkOrderInquiry, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var inquiries []models.BulkOrderInquiry
	if err := query.Find(&inquiries).Error; err != nil {
		return nil, err
	}
	return inquiries, nil
}

// UpdateStatus sets the inquiry status in place.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.BulkOrderStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.BulkOrderInquiry{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected, res.Error
}
