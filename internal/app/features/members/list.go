// internal/app/features/members/list.go
package members

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/memberhub/internal/app/features/errors"
	"github.com/dalemusser/memberhub/internal/app/system/timeouts"
)

// ServeList handles GET /members and returns every member as a JSON array.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Store.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list members failed", err)
		return
	}
	uierrors.WriteJSON(w, http.StatusOK, list)
}
