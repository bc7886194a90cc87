package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/facturio/facturio/internal/fec"
	"github.com/facturio/facturio/internal/invoicing"
	"github.com/facturio/facturio/internal/masterdata/companies"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	CompaniesHandler *companies.Handler
	InvoicingHandler *invoicing.Handler
	FECHandler       *fec.Handler
}

// NewRouter constructs the chi.Router with Facturio defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/companies", func(r chi.Router) {
		params.CompaniesHandler.MountRoutes(r)
	})
	r.Route("/documents", func(r chi.Router) {
		params.InvoicingHandler.MountRoutes(r)
	})
	r.Route("/exports", func(r chi.Router) {
		params.FECHandler.MountRoutes(r)
	})

	return r
}
