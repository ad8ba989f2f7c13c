package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/veermani/kitchen-backend/pkg/enums"
)

// BulkOrderInquiry is a customer request for a large order, handled by
// staff over the phone. No order number is generated for these.
type BulkOrderInquiry struct {
	ID                  uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerName        string                `gorm:"column:customer_name;type:text;not null"`
	CustomerPhone       string                `gorm:"column:customer_phone;type:text;not null"`
	ItemsDescription    string                `gorm:"column:items_description;type:text;not null"`
	SpecialInstructions *string               `gorm:"column:special_instructions;type:text"`
	Status              enums.BulkOrderStatus `gorm:"column:status;type:text;not null;default:'new'"`
	CreatedAt           time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the model on the bulk_orders table rather than the
// pluralized struct name.
func (BulkOrderInquiry) TableName() string {
	return "bulk_orders"
}
