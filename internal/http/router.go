package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/andredacosta/walletwise/internal/http/auth"
	categoryHandler "github.com/andredacosta/walletwise/internal/http/category"
	"github.com/andredacosta/walletwise/internal/http/importcsv"
	statsHandler "github.com/andredacosta/walletwise/internal/http/stats"
	transactionHandler "github.com/andredacosta/walletwise/internal/http/transaction"
	walletHandler "github.com/andredacosta/walletwise/internal/http/wallet"
)

func New(
	jwtSecret string,
	walletsV1 *walletHandler.Handler,
	transactionsV1 *transactionHandler.Handler,
	statsV1 *statsHandler.Handler,
	importV1 *importcsv.Handler,
	categoriesV1 *categoryHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(jwtSecret))

		r.Route("/wallets", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			walletsV1.Routes(r)
		})

		r.Route("/transactions", transactionsV1.Routes)

		r.Route("/stats", statsV1.Routes)

		r.Route("/import", importV1.Routes)

		r.Route("/categories", func(r chi.Router) {
			categoriesV1.Routes(r)
		})
	})

	return router
}
