package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/protektor-crm/orderdesk/internal/config"
	"github.com/protektor-crm/orderdesk/internal/handler"
	mw "github.com/protektor-crm/orderdesk/internal/middleware"
	"github.com/protektor-crm/orderdesk/internal/store"
	"github.com/protektor-crm/orderdesk/internal/ws"
)

// New creates a Chi router with all application routes wired up. Mutating
// order and client endpoints sit behind the work-session gate; lookups and
// search only need authentication.
func New(cfg *config.Config, st *store.Store, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8000"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(st, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// WebSocket order feed (handles auth internally via query param)
	r.Get("/ws/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	productHandler := handler.NewProductHandler(st)
	clientHandler := handler.NewClientHandler(st)
	orderHandler := handler.NewOrderHandler(st, hub)
	timeclockHandler := handler.NewTimeclockHandler(st)

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		timeclockHandler.RegisterRoutes(r)

		r.Get("/orders/product-search/", productHandler.Search)
		r.Get("/orders/client-lookup/", clientHandler.Lookup)
		r.Get("/orders/{id}/", orderHandler.Snapshot)

		// Mutations additionally require an open work session.
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireWorkSession(st))

			r.Post("/clients/add/", clientHandler.Create)
			r.Post("/orders/add/", orderHandler.Create)
			r.Post("/orders/{id}/edit/", orderHandler.Edit)
			r.Post("/orders/{id}/status/", orderHandler.UpdateStatus)
		})
	})

	return r
}
