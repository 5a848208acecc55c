// internal/app/features/members/routes.go
package members

import (
	"github.com/dalemusser/memberhub/internal/app/system/csvutil"
	"github.com/dalemusser/memberhub/internal/app/system/httpmw"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the member API under the path where the caller mounts it.
// Typically: r.Mount("/api/members", members.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(api chi.Router) {
		api.Use(httpmw.MaxBodyBytes(h.MaxBodyBytes))

		// Collection
		api.Get("/", h.ServeList)
		api.Post("/", h.HandleCreate)
		api.Put("/", h.HandleUpdate)
		api.Patch("/", h.HandleUpdate)
		api.Get("/export.csv", h.ServeExportCSV)

		// Single member
		api.Get("/{id}", h.ServeGet)
		api.Delete("/{id}", h.HandleDelete)
	})

	// Uploads get their own, larger cap.
	r.With(httpmw.MaxBodyBytes(csvutil.MaxUploadSize)).Post("/import.csv", h.HandleImportCSV)

	return r
}
