package memberui

import (
	"net/http"

	"github.com/dalemusser/memberhub/internal/app/system/timeouts"
	"github.com/dalemusser/memberhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ServeList renders the member list page.
//
// A store failure still renders the page, with the error banner shown and
// an empty table; the script retries the load on mount.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "member_list", h.listData(r))
}

func (h *Handler) listData(r *http.Request) listPageData {
	data := listPageData{
		Title:             "Members",
		Rows:              []memberRow{},
		MemberNumberLimit: models.MemberNumberLimit,
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "member list page")
	defer cancel()

	list, err := h.Store.List(ctx)
	if err != nil {
		h.Log.Error("member list page: load failed", zap.Error(err))
		data.LoadError = "Could not load members. Please try again."
		return data
	}
	data.Rows = toRows(list)
	return data
}
