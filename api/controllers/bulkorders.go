package controllers

import (
	"net/http"
	"strings"

	"github.com/veermani/kitchen-backend/api/responses"
	"github.com/veermani/kitchen-backend/api/validators"
	"github.com/veermani/kitchen-backend/internal/bulkorders"
	"github.com/veermani/kitchen-backend/pkg/enums"
	pkgerrors "github.com/veermani/kitchen-backend/pkg/errors"
	"github.com/veermani/kitchen-backend/pkg/logger"
)

const bulkOrderFieldMax = 2000

// BulkOrderCreate takes a public bulk order inquiry from the storefront.
func BulkOrderCreate(svc bulkorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bulk order service unavailable"))
			return
		}

		var body bulkorders.CreateInquiryInput
		if err := validators.DecodeJSON(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		body.CustomerName = validators.SanitizeString(body.CustomerName, bulkOrderFieldMax)
		body.CustomerPhone = validators.SanitizeString(body.CustomerPhone, bulkOrderFieldMax)
		body.ItemsDescription = validators.SanitizeString(body.ItemsDescription, bulkOrderFieldMax)
		if body.SpecialInstructions != nil {
			trimmed := validators.SanitizeString(*body.SpecialInstructions, bulkOrderFieldMax)
			body.SpecialInstructions = &trimmed
		}

		inquiry, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, inquiry)
	}
}

// AdminBulkOrdersList serves staff the inquiry queue, optionally filtered
// by status.
func AdminBulkOrdersList(svc bulkorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bulk order service unavailable"))
			return
		}

		var status *enums.BulkOrderStatus
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			parsed, err := enums.ParseBulkOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
				return
			}
			status = &parsed
		}

		list, err := svc.List(r.Context(), status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"inquiries": list})
	}
}

// AdminBulkOrderSetStatus records a staff follow-up state on an inquiry.
func AdminBulkOrderSetStatus(svc bulkorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bulk order service unavailable"))
			return
		}

		inquiryID, err := parseIDParam(r, "inquiryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body struct {
			Status string `json:"status" validate:"required"`
		}
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseBulkOrderStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		userID, role := actorFromContext(r)
		inquiry, err := svc.SetStatus(r.Context(), bulkorders.SetStatusInput{
			InquiryID:   inquiryID,
			Status:      status,
			ActorUserID: userID,
			ActorRole:   role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, inquiry)
	}
}
