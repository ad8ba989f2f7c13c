package controllers

import (
	"net/http"

	"github.com/veermani/kitchen-backend/api/responses"
	"github.com/veermani/kitchen-backend/api/validators"
	"github.com/veermani/kitchen-backend/internal/checkout"
	pkgerrors "github.com/veermani/kitchen-backend/pkg/errors"
	"github.com/veermani/kitchen-backend/pkg/logger"
)

// Checkout converts the caller's cart into an online order.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		token, issued, err := validators.CartToken(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if issued {
			// A caller with no cart token cannot have a cart to check out.
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty"))
			return
		}

		var body checkout.CheckoutInput
		if err := validators.DecodeJSON(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Checkout(r.Context(), token, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
