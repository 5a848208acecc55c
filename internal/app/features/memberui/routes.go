package memberui

import "github.com/go-chi/chi/v5"

// Routes serves the member list at "/" and detail pages at "/customers/{id}".
// Mount at the site root.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/customers/{id}", h.ServeDetail)
	return r
}
