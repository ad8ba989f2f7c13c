package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/veermani/kitchen-backend/pkg/enums"
)

// Product is a catalog entry. The storefront only reads these; catalog
// management happens out of band.
type Product struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string                `gorm:"column:name;type:text;not null"`
	NameHindi   *string               `gorm:"column:name_hindi;type:text"`
	PricePerKg  decimal.Decimal       `gorm:"column:price_per_kg;type:numeric(10,2);not null"`
	Category    enums.ProductCategory `gorm:"column:category;type:text;not null"`
	// No gorm default tag: with one, Create drops a false value and the
	// column default resurrects it.
	Available   bool                  `gorm:"column:available;not null"`
	OnOrderOnly bool                  `gorm:"column:on_order_only;not null;default:false"`
	DisplayRank int                   `gorm:"column:display_rank;not null;default:0"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
