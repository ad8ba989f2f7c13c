package validators

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	pkgerrors "github.com/veermani/kitchen-backend/pkg/errors"
)

// CartTokenHeader carries the anonymous storefront cart identifier.
const CartTokenHeader = "X-Cart-Token"

// CartToken reads the cart token header, minting a fresh one when the client
// has none yet. issued reports whether the token is new and should be echoed
// back so the client can persist it.
func CartToken(r *http.Request) (token string, issued bool, err error) {
	raw := strings.TrimSpace(r.Header.Get(CartTokenHeader))
	if raw == "" {
		return uuid.NewString(), true, nil
	}
	parsed, parseErr := uuid.Parse(raw)
	if parseErr != nil {
		return "", false, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid cart token")
	}
	return parsed.String(), false, nil
}
