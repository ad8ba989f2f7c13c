package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/veermani/kitchen-backend/pkg/enums"
)

// CreateProductInput carries the fields needed to add a catalog entry.
type CreateProductInput struct {
	Name        string                `json:"name" validate:"required"`
	NameHindi   *string               `json:"name_hindi"`
	PricePerKg  decimal.Decimal       `json:"price_per_kg" validate:"required"`
	Category    enums.ProductCategory `json:"category" validate:"required"`
	Available   bool                  `json:"available"`
	OnOrderOnly bool                  `json:"on_order_only"`
	DisplayRank int                   `json:"display_rank"`
}

// UpdateProductInput carries partial updates; nil fields are left untouched.
type UpdateProductInput struct {
	Name        *string                `json:"name"`
	NameHindi   *string                `json:"name_hindi"`
	PricePerKg  *decimal.Decimal       `json:"price_per_kg"`
	Category    *enums.ProductCategory `json:"category"`
	OnOrderOnly *bool                  `json:"on_order_only"`
	DisplayRank *int                   `json:"display_rank"`
}
