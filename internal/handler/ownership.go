package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/josh-kwaku/codemart/internal/auth"
)

// resourceFromPath resolves the caller and the {id} path value. A malformed
// id reads as not found so ids of other users are indistinguishable.
func resourceFromPath(r *http.Request) (userID, id uuid.UUID, appErr *AppError) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, uuid.Nil, ErrMissingToken
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, ErrResourceNotFound
	}

	return userID, id, nil
}
