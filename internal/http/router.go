package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/davidmns/centavo/internal/http/auth"
	"github.com/davidmns/centavo/internal/http/budget"
	"github.com/davidmns/centavo/internal/http/debt"
	"github.com/davidmns/centavo/internal/http/importcsv"
	"github.com/davidmns/centavo/internal/http/savings"
)

func New(
	jwtSecret string,
	debtsV1 *debt.Handler,
	goalsV1 *savings.Handler,
	budgetV1 *budget.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(jwtSecret))

		r.Route("/debts", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			debtsV1.Routes(r)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			goalsV1.Routes(r)
		})

		r.Route("/budget", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			budgetV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)
	})

	return router
}
