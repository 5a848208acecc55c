// internal/app/features/members/create.go
package members

import (
	"context"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/memberhub/internal/app/features/errors"
	"github.com/dalemusser/memberhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleCreate handles POST /members.
//
// The client supplies memberNumber. No duplicate detection is done: two
// members may share a name or a member number.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in createInput
	if err := decodeJSONBody(r, &in); err != nil {
		h.writeInputError(w, err)
		return
	}
	m, err := in.toMember()
	if err != nil {
		h.writeInputError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Store.Insert(ctx, m)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create member failed", err)
		return
	}

	h.Log.Info("member created",
		zap.String("member_id", created.ID.Hex()),
		zap.Int64("member_number", created.MemberNumber))
	uierrors.WriteJSON(w, http.StatusOK, created)
}

// writeInputError answers a decode or validation failure with 400, or 413
// when the body was over the cap.
func (h *Handler) writeInputError(w http.ResponseWriter, err error) {
	if errors.Is(err, errBodyTooLarge) {
		uierrors.WriteError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return
	}
	var ie *inputError
	if errors.As(err, &ie) {
		uierrors.WriteError(w, http.StatusBadRequest, ie.msg)
		return
	}
	uierrors.WriteError(w, http.StatusBadRequest, err.Error())
}
