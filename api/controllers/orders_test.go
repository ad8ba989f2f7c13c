package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/veermani/kitchen-backend/api/middleware"
	"github.com/veermani/kitchen-backend/internal/orders"
	"github.com/veermani/kitchen-backend/pkg/db/models"
	"github.com/veermani/kitchen-backend/pkg/enums"
	pkgerrors "github.com/veermani/kitchen-backend/pkg/errors"
)

type stubOrdersService struct {
	order      *models.Order
	transition *orders.TransitionInput
	markPaid   *orders.MarkPaidInput
	err        error
}

func (s *stubOrdersService) List(context.Context, orders.ListFilters) ([]models.Order, error) {
	panic("unimplemented")
}

func (s *stubOrdersService) ListPendingPayment(context.Context) ([]models.Order, error) {
	panic("unimplemented")
}

func (s *stubOrdersService) GetByOrderNumber(_ context.Context, orderNumber string) (*models.Order, error) {
	if s.order == nil || s.order.OrderNumber != orderNumber {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return s.order, nil
}

func (s *stubOrdersService) Transition(_ context.Context, input orders.TransitionInput) (*models.Order, error) {
	s.transition = &input
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func (s *stubOrdersService) MarkPaid(_ context.Context, input orders.MarkPaidInput) (*models.Order, error) {
	s.markPaid = &input
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func orderRequest(method, path, orderNumber, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("orderNumber", orderNumber)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	ctx = middleware.WithUserID(ctx, uuid.NewString())
	ctx = middleware.WithRole(ctx, string(enums.UserRoleAdmin))
	return req.WithContext(ctx)
}

func TestAdminOrderTransitionResolvesByNumber(t *testing.T) {
	order := &models.Order{ID: uuid.New(), OrderNumber: "VK202601050042", Status: enums.OrderStatusReceived}
	stub := &stubOrdersService{order: order}

	req := orderRequest(http.MethodPost, "/api/admin/v1/orders/VK202601050042/transition", "VK202601050042", `{"status":"processing"}`)
	rec := httptest.NewRecorder()
	AdminOrderTransition(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.transition == nil {
		t.Fatal("expected Transition to be invoked")
	}
	if stub.transition.OrderID != order.ID {
		t.Fatalf("expected order id resolved from number, got %s", stub.transition.OrderID)
	}
	if stub.transition.Target != enums.OrderStatusProcessing {
		t.Fatalf("unexpected target %s", stub.transition.Target)
	}
	if stub.transition.ActorRole != enums.UserRoleAdmin {
		t.Fatalf("expected actor role forwarded, got %s", stub.transition.ActorRole)
	}
}

func TestAdminOrderTransitionUnknownOrder(t *testing.T) {
	stub := &stubOrdersService{}

	req := orderRequest(http.MethodPost, "/api/admin/v1/orders/VK000000000000/transition", "VK000000000000", `{"status":"processing"}`)
	rec := httptest.NewRecorder()
	AdminOrderTransition(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
	if stub.transition != nil {
		t.Fatal("transition must not run for unknown orders")
	}
}

func TestAdminOrderMarkPaidRejectsUnknownMethod(t *testing.T) {
	order := &models.Order{ID: uuid.New(), OrderNumber: "VK202601050042"}
	stub := &stubOrdersService{order: order}

	req := orderRequest(http.MethodPost, "/api/admin/v1/orders/VK202601050042/mark-paid", "VK202601050042", `{"payment_method":"card"}`)
	rec := httptest.NewRecorder()
	AdminOrderMarkPaid(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	if stub.markPaid != nil {
		t.Fatal("mark paid must not run for unknown methods")
	}
}

func TestAdminOrderMarkPaidForwardsMethod(t *testing.T) {
	order := &models.Order{ID: uuid.New(), OrderNumber: "VK202601050042"}
	stub := &stubOrdersService{order: order}

	req := orderRequest(http.MethodPost, "/api/admin/v1/orders/VK202601050042/mark-paid", "VK202601050042", `{"payment_method":"cash"}`)
	rec := httptest.NewRecorder()
	AdminOrderMarkPaid(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.markPaid == nil || stub.markPaid.Method != enums.PaymentMethodCash {
		t.Fatalf("expected cash settlement forwarded, got %+v", stub.markPaid)
	}
	if stub.markPaid.OrderID != order.ID {
		t.Fatalf("expected order id resolved from number, got %s", stub.markPaid.OrderID)
	}
}

func TestAdminOrderTransitionSurfacesStateConflict(t *testing.T) {
	order := &models.Order{ID: uuid.New(), OrderNumber: "VK202601050042", Status: enums.OrderStatusCompleted}
	stub := &stubOrdersService{order: order, err: pkgerrors.New(pkgerrors.CodeStateConflict, "order is already completed")}

	req := orderRequest(http.MethodPost, "/api/admin/v1/orders/VK202601050042/transition", "VK202601050042", `{"status":"processing"}`)
	rec := httptest.NewRecorder()
	AdminOrderTransition(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", rec.Code)
	}
}
