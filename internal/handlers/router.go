package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-redis/redis/v8"
	"github.com/ruralpay/expense-tracker/internal/audit"
	"github.com/ruralpay/expense-tracker/internal/config"
	"github.com/ruralpay/expense-tracker/internal/events"
	"github.com/ruralpay/expense-tracker/internal/ledger"
	"github.com/ruralpay/expense-tracker/internal/logging"
	"github.com/ruralpay/expense-tracker/internal/middleware"
	"github.com/ruralpay/expense-tracker/internal/services"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	Config    *config.Config
	DB        *sql.DB
	Redis     *redis.Client
	Publisher events.Publisher
	Logger    *logrus.Logger
}

// NewRouter wires every route of the API onto a chi router.
func NewRouter(d Deps) http.Handler {
	log := d.Logger
	auditor := audit.NewLogger(logging.Component(log, "audit"))
	engine := ledger.NewEngine(d.DB)

	authService := services.NewAuthService(d.DB, d.Redis, d.Config.JWT, d.Config.Argon2, log)
	accountService := services.NewAccountService(d.DB, auditor, log)
	categoryService := services.NewCategoryService(d.DB, d.Redis, log)
	transactionService := services.NewTransactionService(d.DB, engine, auditor, d.Publisher, log)
	authenticator := middleware.NewAuthenticator(d.Config.JWT.SecretKey, d.Redis, logging.Component(log, "auth"))

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.RequestLogger(&chimw.DefaultLogFormatter{Logger: log, NoColor: true}))
	r.Use(chimw.Recoverer)
	r.Use(middleware.SecurityHeaders)
	r.Use(chimw.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	r.Get("/health", healthHandler(d.DB))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler(d.DB))

		// Public endpoints (no auth required)
		r.Post("/auth/register", authService.Register)
		r.Post("/auth/login", authService.Login)
		r.Get("/transactions/categories", categoryService.ListCategories)

		// Protected endpoints (auth required)
		r.Group(func(r chi.Router) {
			r.Use(authenticator.Middleware)

			r.Post("/auth/logout", authService.Logout)
			r.Get("/auth/me", authService.Me)

			r.Post("/accounts", accountService.CreateAccount)
			r.Get("/accounts", accountService.ListAccounts)

			r.Get("/transactions/has-accounts", accountService.HasAccounts)
			r.Get("/transactions/dashboard", transactionService.GetDashboard)
			r.Post("/transactions/expense", transactionService.RecordExpense)
			r.Post("/transactions/income", transactionService.RecordIncome)
			r.Post("/transactions/transfer", transactionService.RecordTransfer)
		})
	})

	return r
}

// healthHandler reports liveness together with database reachability.
func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status, dbStatus, code := "healthy", "up", http.StatusOK
		if err := db.PingContext(ctx); err != nil {
			status, dbStatus, code = "degraded", "down", http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]string{"status": status, "database": dbStatus})
	}
}
