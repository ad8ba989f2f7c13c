package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/veermani/kitchen-backend/api/responses"
	"github.com/veermani/kitchen-backend/internal/invoice"
	"github.com/veermani/kitchen-backend/internal/orders"
	pkgerrors "github.com/veermani/kitchen-backend/pkg/errors"
	"github.com/veermani/kitchen-backend/pkg/logger"
)

// AdminOrderInvoiceLink renders the WhatsApp invoice link for an order. The
// client opens the link itself; nothing is sent server-side.
func AdminOrderInvoiceLink(svc orders.Service, formatter *invoice.Formatter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || formatter == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "invoice service unavailable"))
			return
		}

		orderNumber := strings.TrimSpace(chi.URLParam(r, "orderNumber"))
		if orderNumber == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "order number is required"))
			return
		}

		order, err := svc.GetByOrderNumber(r.Context(), orderNumber)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		link, err := formatter.BuildForOrder(order)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{
			"order_number": order.OrderNumber,
			"link":         link,
		})
	}
}
