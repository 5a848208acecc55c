package memberui

import (
	"context"
	"errors"
	"net/http"

	memberstore "github.com/dalemusser/memberhub/internal/app/store/members"
	"github.com/dalemusser/memberhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ServeDetail renders the detail page for one member. Unknown or malformed
// ids render the page's not-found state with a 404 status.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	data, err := h.detailData(r, chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "member detail page failed", err)
		return
	}
	if data.NotFound {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
	}
	templates.Render(w, r, "member_detail", data)
}

func (h *Handler) detailData(r *http.Request, rawID string) (detailPageData, error) {
	data := detailPageData{Title: "Member Details", ID: rawID}

	id, err := memberstore.ParseID(rawID)
	if err != nil {
		data.NotFound = true
		return data, nil
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Store.GetByID(ctx, id)
	if errors.Is(err, memberstore.ErrNotFound) {
		h.Log.Debug("member detail page: not found", zap.String("member_id", rawID))
		data.NotFound = true
		return data, nil
	}
	if err != nil {
		return data, err
	}
	data.ID = m.ID.Hex()
	data.Member = toRow(m)
	return data, nil
}
