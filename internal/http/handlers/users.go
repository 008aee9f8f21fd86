package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/vocab-trainer-gateway/internal/errors"
)

// MyProfile — GET /users/me/profile.
func (h *Handlers) MyProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Profile(r.Context(), userID(r))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
