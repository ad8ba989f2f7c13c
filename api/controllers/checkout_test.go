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
	"github.com/veermani/kitchen-backend/internal/checkout"
	"github.com/veermani/kitchen-backend/pkg/db/models"
	pkgerrors "github.com/veermani/kitchen-backend/pkg/errors"
)

type stubCheckoutService struct {
	token string
	input checkout.CheckoutInput
	err   error
}

func (s *stubCheckoutService) Checkout(_ context.Context, token string, input checkout.CheckoutInput) (*checkout.CheckoutResult, error) {
	s.token = token
	s.input = input
	if s.err != nil {
		return nil, s.err
	}
	return &checkout.CheckoutResult{
		Order: &models.Order{
			ID:          uuid.New(),
			OrderNumber: "VK202601050042",
			TotalAmount: decimal.NewFromInt(600),
		},
		CartCleared: true,
	}, nil
}

func TestCheckoutRequiresCartToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{"customer_name":"Asha","customer_phone":"9876543210","fulfillment_type":"parcel"}`))
	rec := httptest.NewRecorder()
	Checkout(&stubCheckoutService{}, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a cart token, got %d", rec.Code)
	}
}

func TestCheckoutForwardsTokenAndInput(t *testing.T) {
	token := uuid.NewString()
	stub := &stubCheckoutService{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{"customer_name":"Asha Verma","customer_phone":"9876543210","fulfillment_type":"take_away","pickup_date":"2026-01-06","pickup_time":"17:30"}`))
	req.Header.Set(validators.CartTokenHeader, token)
	rec := httptest.NewRecorder()
	Checkout(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}
	if stub.token != token {
		t.Fatalf("expected token %s forwarded, got %s", token, stub.token)
	}
	if stub.input.CustomerName != "Asha Verma" {
		t.Fatalf("unexpected input %+v", stub.input)
	}
	if stub.input.PickupDate == nil || *stub.input.PickupDate != "2026-01-06" {
		t.Fatalf("expected pickup date forwarded, got %v", stub.input.PickupDate)
	}
}

func TestCheckoutSurfacesServiceValidation(t *testing.T) {
	stub := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeValidation, "missing pickup details")}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{"customer_name":"Asha","customer_phone":"9876543210","fulfillment_type":"take_away"}`))
	req.Header.Set(validators.CartTokenHeader, uuid.NewString())
	rec := httptest.NewRecorder()
	Checkout(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "missing pickup details") {
		t.Fatalf("expected the service message to pass through, got %s", rec.Body.String())
	}
}
