package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mediahub/mediahub-api/internal/api/shared"
	"github.com/mediahub/mediahub-api/internal/domain"
)

// pathIDParam is the chi URL parameter holding entity ids.
const pathIDParam = "id"

// parsePathID extracts a positive integer id from the URL path.
// Anything else is a validation failure on field "id".
func parsePathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, pathIDParam)
	if raw == "" {
		return 0, shared.NewValidationError(pathIDParam, "required", "id is required")
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, shared.NewValidationError(pathIDParam, "gt", "id must be a positive integer")
	}
	return id, nil
}

// identityFromRequest returns the caller placed in the context by the auth
// middleware. Routes that require authentication never reach a handler
// without one, so a miss is reported as unauthorized.
func identityFromRequest(r *http.Request) (domain.Identity, error) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	return identity, nil
}

// decodeAndValidate decodes a JSON body into req and runs its rules.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) error {
	if err := shared.DecodeJSON(w, r, req); err != nil {
		return err
	}
	return shared.ValidateRequest(req)
}
