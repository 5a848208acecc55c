// internal/app/features/members/update.go
package members

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/memberhub/internal/app/features/errors"
	memberstore "github.com/dalemusser/memberhub/internal/app/store/members"
	"github.com/dalemusser/memberhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleUpdate handles PUT /members and PATCH /members; both merge the
// supplied fields into the member named by the body's id.
//
//	400 "Member ID is required" when the body has no id (nothing is written)
//	404 "Member not found"      when no member has that id
//	200 updated member          otherwise
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in updateInput
	if err := decodeJSONBody(r, &in); err != nil {
		h.writeInputError(w, err)
		return
	}

	rawID := strings.TrimSpace(in.memberID())
	if rawID == "" {
		uierrors.WriteError(w, http.StatusBadRequest, ErrIDRequired.Error())
		return
	}
	id, err := memberstore.ParseID(rawID)
	if err != nil {
		uierrors.WriteError(w, http.StatusNotFound, msgNotFound)
		return
	}

	patch, err := in.toPatch()
	if err != nil {
		h.writeInputError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	updated, err := h.Store.UpdateByID(ctx, id, patch)
	if errors.Is(err, memberstore.ErrNotFound) {
		uierrors.WriteError(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update member failed", err)
		return
	}

	h.Log.Info("member updated", zap.String("member_id", updated.ID.Hex()), zap.String("method", r.Method))
	uierrors.WriteJSON(w, http.StatusOK, updated)
}
