package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/veermani/kitchen-backend/pkg/db/models"
	pkgerrors "github.com/veermani/kitchen-backend/pkg/errors"
)

type productLoader interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service mutates a keyed cart. The same implementation serves the
// storefront (keyed by cart token) and the POS console (keyed by staff
// session); only the key scheme and TTL differ.
type Service interface {
	Get(ctx context.Context, token string) (*Cart, error)
	AddItem(ctx context.Context, token string, productID uuid.UUID) (*Cart, error)
	UpdateQuantity(ctx context.Context, token string, productID uuid.UUID, quantityKg decimal.Decimal) (*Cart, error)
	RemoveItem(ctx context.Context, token string, productID uuid.UUID) (*Cart, error)
	SetCustomPacking(ctx context.Context, token string, customPacking bool) (*Cart, error)
	Clear(ctx context.Context, token string) error
}

type service struct {
	store    Store
	products productLoader
	key      func(token string) string
	ttl      time.Duration
}

// NewService builds a cart service over the given store. The key func maps
// an opaque caller token to the storage key.
func NewService(store Store, products productLoader, key func(string) string, ttl time.Duration) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if key == nil {
		return nil, fmt.Errorf("cart key func required")
	}
	return &service{store: store, products: products, key: key, ttl: ttl}, nil
}

func (s *service) load(ctx context.Context, token string) (*Cart, string, error) {
	if token == "" {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "cart token required")
	}
	key := s.key(token)
	cart, err := s.store.Load(ctx, key)
	if err != nil {
		return nil, "", err
	}
	return cart, key, nil
}

func (s *service) Get(ctx context.Context, token string) (*Cart, error) {
	cart, _, err := s.load(ctx, token)
	return cart, err
}

func (s *service) AddItem(ctx context.Context, token string, productID uuid.UUID) (*Cart, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.Available {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is not available")
	}

	cart, key, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	cart.AddItem(product)
	if err := s.store.Save(ctx, key, cart, s.ttl); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *service) UpdateQuantity(ctx context.Context, token string, productID uuid.UUID, quantityKg decimal.Decimal) (*Cart, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	cart, key, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	cart.UpdateQuantity(productID, quantityKg)
	if err := s.store.Save(ctx, key, cart, s.ttl); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *service) RemoveItem(ctx context.Context, token string, productID uuid.UUID) (*Cart, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	cart, key, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	cart.RemoveItem(productID)
	if err := s.store.Save(ctx, key, cart, s.ttl); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *service) SetCustomPacking(ctx context.Context, token string, customPacking bool) (*Cart, error) {
	cart, key, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	cart.CustomPacking = customPacking
	if err := s.store.Save(ctx, key, cart, s.ttl); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *service) Clear(ctx context.Context, token string) error {
	if token == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart token required")
	}
	return s.store.Delete(ctx, s.key(token))
}
