package catalog

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
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  name_hindi TEXT,
  price_per_kg NUMERIC NOT NULL,
  category TEXT NOT NULL,
  available BOOLEAN NOT NULL DEFAULT true,
  on_order_only BOOLEAN NOT NULL DEFAULT false,
  display_rank INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	require.NoError(t, db.Exec("DELETE FROM products").Error)
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, category enums.ProductCategory, available bool, rank int) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:          uuid.New(),
		Name:        name,
		PricePerKg:  decimal.NewFromInt(800),
		Category:    category,
		Available:   available,
		DisplayRank: rank,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestListAvailableFiltersAndOrders(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	seedProduct(t, db, "Samosa", enums.ProductCategoryNamkeen, true, 1)
	seedProduct(t, db, "Kaju Katli", enums.ProductCategorySweets, true, 2)
	seedProduct(t, db, "Motichoor Laddu", enums.ProductCategorySweets, true, 1)
	seedProduct(t, db, "Rasgulla", enums.ProductCategorySweets, false, 0)

	products, err := svc.ListAvailable(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "Samosa", products[0].Name)
	assert.Equal(t, "Motichoor Laddu", products[1].Name)
	assert.Equal(t, "Kaju Katli", products[2].Name)

	sweets := enums.ProductCategorySweets
	products, err = svc.ListAvailable(context.Background(), &sweets)
	require.NoError(t, err)
	require.Len(t, products, 2)
	for _, p := range products {
		assert.Equal(t, enums.ProductCategorySweets, p.Category)
	}
}

func TestListAvailableRejectsBadCategory(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	bad := enums.ProductCategory("savory")
	_, err = svc.ListAvailable(context.Background(), &bad)
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestCreateProductValidation(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	_, err = svc.CreateProduct(context.Background(), CreateProductInput{
		Name:     "",
		Category: enums.ProductCategorySweets,
	})
	require.Error(t, err)

	_, err = svc.CreateProduct(context.Background(), CreateProductInput{
		Name:       "Kaju Katli",
		Category:   enums.ProductCategorySweets,
		PricePerKg: decimal.Zero,
	})
	require.Error(t, err)

	created, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:       "Kaju Katli",
		Category:   enums.ProductCategorySweets,
		PricePerKg: decimal.NewFromInt(1200),
		Available:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Kaju Katli", created.Name)
	assert.True(t, created.Available)
}

func TestCreateProductKeepsUnavailable(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	created, err := svc.CreateProduct(context.Background(), CreateProductInput{
		Name:       "Rasgulla",
		Category:   enums.ProductCategorySweets,
		PricePerKg: decimal.NewFromInt(500),
		Available:  false,
	})
	require.NoError(t, err)

	// The false must survive the insert; the column default may not win.
	var stored models.Product
	require.NoError(t, db.First(&stored, "id = ?", created.ID).Error)
	assert.False(t, stored.Available)

	listed, err := svc.ListAvailable(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestUpdateProductPartial(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	product := seedProduct(t, db, "Besan Laddu", enums.ProductCategorySweets, true, 3)

	newPrice := decimal.NewFromInt(640)
	updated, err := svc.UpdateProduct(context.Background(), product.ID, UpdateProductInput{
		PricePerKg: &newPrice,
	})
	require.NoError(t, err)
	assert.True(t, updated.PricePerKg.Equal(newPrice))
	assert.Equal(t, "Besan Laddu", updated.Name)
	assert.Equal(t, 3, updated.DisplayRank)
}

func TestSetAvailability(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	product := seedProduct(t, db, "Mathri", enums.ProductCategoryNamkeen, true, 0)
	require.NoError(t, svc.SetAvailability(context.Background(), product.ID, false))

	products, err := svc.ListAvailable(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, products)

	err = svc.SetAvailability(context.Background(), uuid.New(), true)
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
