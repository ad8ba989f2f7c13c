package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/veermani/kitchen-backend/api/middleware"
	"github.com/veermani/kitchen-backend/pkg/enums"
)

// actorFromContext pulls the authenticated staff identity seeded by the
// auth middleware. Zero values mean the request was unauthenticated, which
// the guarded routes never allow.
func actorFromContext(r *http.Request) (uuid.UUID, enums.UserRole) {
	userID, _ := uuid.Parse(middleware.UserIDFromContext(r.Context()))
	role := enums.UserRole(middleware.RoleFromContext(r.Context()))
	return userID, role
}
