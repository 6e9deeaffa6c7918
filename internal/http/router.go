package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/fatura/internal/http/backup"
	"github.com/MrJamesThe3rd/fatura/internal/http/invoice"
)

// New builds the read-only preview router. It serves the invoice list, the
// printable documents, and the backup downloads; nothing here mutates state.
func New(invoices *invoice.Handler, backups *backup.Handler) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))

	router.Route("/invoices", func(r chi.Router) {
		invoices.Routes(r)
	})

	router.Route("/export", backups.Routes)

	return router
}
