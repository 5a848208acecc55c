// internal/app/features/members/delete.go
package members

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/memberhub/internal/app/features/errors"
	memberstore "github.com/dalemusser/memberhub/internal/app/store/members"
	"github.com/dalemusser/memberhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /members/{id} and returns the member as it was
// just before removal.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := memberstore.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.WriteError(w, http.StatusNotFound, msgNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	deleted, err := h.Store.DeleteByID(ctx, id)
	if errors.Is(err, memberstore.ErrNotFound) {
		uierrors.WriteError(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete member failed", err)
		return
	}

	h.Log.Info("member deleted", zap.String("member_id", deleted.ID.Hex()))
	uierrors.WriteJSON(w, http.StatusOK, deleted)
}
