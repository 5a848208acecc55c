// internal/app/features/members/import.go
package members

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/memberhub/internal/app/features/errors"
	"github.com/dalemusser/memberhub/internal/app/system/csvutil"
	"github.com/dalemusser/memberhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type importResult struct {
	Imported int `json:"imported"`
}

type importRejected struct {
	Error string             `json:"error"`
	Rows  []csvutil.RowError `json:"rows,omitempty"`
}

// HandleImportCSV handles POST /members/import.csv. Routes caps the body at
// csvutil.MaxUploadSize.
//
// The whole file is validated first; if any row is bad nothing is inserted
// and the rejected lines are returned with a 400.
func (h *Handler) HandleImportCSV(w http.ResponseWriter, r *http.Request) {
	res, err := csvutil.ParseMemberCSV(r.Body, csvutil.DefaultParseOptions())
	if err != nil {
		var mbe *http.MaxBytesError
		switch {
		case errors.As(err, &mbe):
			uierrors.WriteError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		case errors.Is(err, csvutil.ErrTooManyRows):
			uierrors.WriteError(w, http.StatusBadRequest, err.Error())
		default:
			uierrors.WriteError(w, http.StatusBadRequest, "invalid csv")
		}
		return
	}
	if res.HasErrors() {
		uierrors.WriteJSON(w, http.StatusBadRequest, importRejected{
			Error: "csv contains invalid rows",
			Rows:  res.Errors,
		})
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Long(), h.Log, "import members")
	defer cancel()

	for i, row := range res.Rows {
		if _, err := h.Store.Insert(ctx, row.Member()); err != nil {
			h.Log.Error("import members: insert failed",
				zap.Int("line", row.Line), zap.Int("inserted", i), zap.Error(err))
			h.ErrLog.LogServerError(w, r, "import members failed", err)
			return
		}
	}

	h.Log.Info("members imported", zap.Int("count", len(res.Rows)))
	uierrors.WriteJSON(w, http.StatusOK, importResult{Imported: len(res.Rows)})
}
