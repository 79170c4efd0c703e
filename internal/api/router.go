package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// NewRouter creates the chi router serving the ledger API under /api/v1.
func NewRouter(h *Handler, allowedOrigins []string, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger.With().Str("component", "http").Logger()))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"}, "healthy")
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", h.handleListTransactions)
			r.Post("/", h.handleAddTransaction)
			r.Get("/monthly", h.handleMonthlyTransactions)
			// paths used by the existing web client
			r.Post("/addTransaction", h.handleAddTransaction)
			r.Get("/getMonthlyTransactions", h.handleMonthlyTransactions)
		})
		r.Get("/accounts/{account}/statements/{yearMonth}", h.handleStatement)
		r.Route("/interest-rules", func(r chi.Router) {
			r.Get("/", h.handleListRules)
			r.Post("/", h.handleAddRule)
			r.Post("/define-interest-rule", h.handleAddRule)
		})
	})

	return r
}
