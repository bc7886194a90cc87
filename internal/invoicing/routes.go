package invoicing

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/finalize", h.Finalize)
	r.Post("/{id}/pay", h.MarkPaid)
}
