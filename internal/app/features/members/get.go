// internal/app/features/members/get.go
package members

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/memberhub/internal/app/features/errors"
	memberstore "github.com/dalemusser/memberhub/internal/app/store/members"
	"github.com/dalemusser/memberhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeGet handles GET /members/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, err := memberstore.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.WriteError(w, http.StatusNotFound, msgNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Store.GetByID(ctx, id)
	if errors.Is(err, memberstore.ErrNotFound) {
		uierrors.WriteError(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "get member failed", err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, m)
}
