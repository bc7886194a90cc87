package fec

import "github.com/go-chi/chi/v5"

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/fec", h.Export)
	r.Post("/fec/async", h.EnqueueExport)
	r.Get("/fec/async/{exportID}", h.DownloadExport)
}
