// internal/app/features/members/export.go
package members

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/memberhub/internal/app/system/csvutil"
	"github.com/dalemusser/memberhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeExportCSV handles GET /members/export.csv and streams every member as CSV.
func (h *Handler) ServeExportCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "export members")
	defer cancel()

	list, err := h.Store.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "export members failed", err)
		return
	}

	filename := fmt.Sprintf("members-%s.csv", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := csvutil.WriteMembers(w, list); err != nil {
		h.Log.Warn("export members: write failed", zap.Error(err))
	}
}
