package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/veermani/kitchen-backend/api/validators"
	"github.com/veermani/kitchen-backend/internal/cart"
)

type stubCartService struct {
	cartByToken map[string]*cart.Cart
	addedToken  string
	addedID     uuid.UUID
}

func (s *stubCartService) get(token string) *cart.Cart {
	if c, ok := s.cartByToken[token]; ok {
		return c
	}
	return cart.Empty()
}

func (s *stubCartService) Get(_ context.Context, token string) (*cart.Cart, error) {
	return s.get(token), nil
}

func (s *stubCartService) AddItem(_ context.Context, token string, productID uuid.UUID) (*cart.Cart, error) {
	s.addedToken = token
	s.addedID = productID
	return s.get(token), nil
}

func (s *stubCartService) UpdateQuantity(_ context.Context, token string, _ uuid.UUID, _ decimal.Decimal) (*cart.Cart, error) {
	return s.get(token), nil
}

func (s *stubCartService) RemoveItem(_ context.Context, token string, _ uuid.UUID) (*cart.Cart, error) {
	return s.get(token), nil
}

func (s *stubCartService) SetCustomPacking(_ context.Context, token string, _ bool) (*cart.Cart, error) {
	return s.get(token), nil
}

func (s *stubCartService) Clear(context.Context, string) error {
	return nil
}

func TestCartFetchMintsTokenWhenAbsent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	CartFetch(&stubCartService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	minted := rec.Header().Get(validators.CartTokenHeader)
	if minted == "" {
		t.Fatal("expected a minted cart token header")
	}
	if _, err := uuid.Parse(minted); err != nil {
		t.Fatalf("minted token is not a uuid: %v", err)
	}
}

func TestCartFetchEchoesExistingToken(t *testing.T) {
	token := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set(validators.CartTokenHeader, token)
	rec := httptest.NewRecorder()
	CartFetch(&stubCartService{}, testLogger()).ServeHTTP(rec, req)

	if got := rec.Header().Get(validators.CartTokenHeader); got != token {
		t.Fatalf("expected token %s echoed, got %s", token, got)
	}
}

func TestCartFetchRejectsMalformedToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set(validators.CartTokenHeader, "not-a-uuid")
	rec := httptest.NewRecorder()
	CartFetch(&stubCartService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestCartAddItemForwardsTokenAndProduct(t *testing.T) {
	token := uuid.NewString()
	productID := uuid.New()
	stub := &stubCartService{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(`{"product_id":"`+productID.String()+`"}`))
	req.Header.Set(validators.CartTokenHeader, token)
	rec := httptest.NewRecorder()
	CartAddItem(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if stub.addedToken != token {
		t.Fatalf("expected token %s forwarded, got %s", token, stub.addedToken)
	}
	if stub.addedID != productID {
		t.Fatalf("expected product %s forwarded, got %s", productID, stub.addedID)
	}
}
