// This is the main entry point of the SpendShift application.
// It's responsible for initializing configuration, the database connection
// pool, services, handlers, setting up the HTTP router and middleware,
// and starting the HTTP server. It also handles graceful shutdown.
// @title SpendShift API
// @version 1.0
// @description Personal finance tracking API: transactions, savings goals, JWT auth.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/spendshift-go/apperror"
	"github.com/user/spendshift-go/auth"
	"github.com/user/spendshift-go/config"
	"github.com/user/spendshift-go/db"
	_ "github.com/user/spendshift-go/docs" // Generated Swagger docs
	"github.com/user/spendshift-go/goals"
	"github.com/user/spendshift-go/transactions"
)

func main() {
	// Load .env file. Useful in development; in production the variables
	// are usually set directly in the environment.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pool, err := db.NewDBPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	// Create the required tables and indexes if they don't exist yet.
	if err := db.EnsureSchema(pool); err != nil {
		log.Fatalf("Failed to ensure database schema: %v", err)
	}

	// Manual dependency injection: construct stores, then services, then
	// handlers, passing each layer into the next.
	userStore := auth.NewPostgresUserStore(pool)
	tokenIssuer := auth.NewTokenIssuer(cfg.Auth)
	authService := auth.NewAuthService(userStore, tokenIssuer)
	authHandlers := auth.NewHandlers(authService)

	transactionStore := transactions.NewPostgresStore(pool)
	transactionService := transactions.NewService(transactionStore)
	transactionHandlers := transactions.NewHandler(transactionService)

	goalStore := goals.NewPostgresStore(pool)
	goalService := goals.NewService(goalStore)
	goalHandlers := goals.NewHandler(goalService)

	r := chi.NewRouter()

	// Chi requires all middleware to be registered before any routes.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Panic recovery that formats the 500 response through apperror, so
	// panics produce the same error envelope as everything else.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Printf("Panic: %+v", rvr)
					writeError(ww, apperror.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(ww, r)
		})
	})

	// Swagger UI, backed by the OpenAPI document registered by the docs package.
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Get("/health", handleHealth)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandlers.HandleRegister())
		r.Post("/login", authHandlers.HandleLogin())

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokenIssuer, userStore))
			r.Get("/me", authHandlers.HandleMe())
		})
	})

	r.Route("/api/transactions", func(r chi.Router) {
		r.Use(auth.RequireAuth(tokenIssuer, userStore))
		transactionHandlers.RegisterRoutes(r)
	})

	r.Route("/api/goals", func(r chi.Router) {
		r.Use(auth.RequireAuth(tokenIssuer, userStore))
		goalHandlers.RegisterRoutes(r)
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the server in a goroutine so the main goroutine can block on
	// shutdown signals below.
	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}

// handleHealth reports service liveness.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	auth.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeError is a local helper for the panic recovery middleware. The
// feature packages use auth.WriteError, which wants a *http.Request for
// logging; here we only have the response writer.
func writeError(w http.ResponseWriter, appErr *apperror.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	if err := json.NewEncoder(w).Encode(appErr.ToResponse()); err != nil {
		http.Error(w, `{"error":"failed to encode error response"}`, http.StatusInternalServerError)
	}
}
