package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmuriithi/campuscafe/internal/auth"
	"github.com/dmuriithi/campuscafe/internal/cart"
	"github.com/dmuriithi/campuscafe/internal/dashboard"
	"github.com/dmuriithi/campuscafe/internal/gateway"
	"github.com/dmuriithi/campuscafe/internal/handler"
	"github.com/dmuriithi/campuscafe/internal/middleware"
	"github.com/dmuriithi/campuscafe/internal/model"
	"github.com/dmuriithi/campuscafe/internal/order"
	"github.com/dmuriithi/campuscafe/internal/repository"
	"github.com/dmuriithi/campuscafe/internal/store"
	ws "github.com/dmuriithi/campuscafe/internal/websocket"
)

type Server struct {
	db          *sql.DB
	hub         *ws.Hub
	menuH       *handler.MenuHandler
	cartH       *handler.CartHandler
	orderH      *handler.OrderHandler
	messageH    *handler.MessageHandler
	authH       *handler.AuthHandler
	dashboardH  *handler.DashboardHandler
	settingsH   *handler.SettingsHandler
	resolver    *auth.Resolver
	provider    auth.Provider
	dashboard   *dashboard.Service
	orders      *order.Service
	repo        *repository.Repository
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

func New(db *sql.DB, gw gateway.Gateway, provider auth.Provider, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	menuCache := store.NewMenuCacheStore(db)
	cartStore := store.NewCartStore(db)
	archiveStore := store.NewOrderArchiveStore(db)
	sessionStore := store.NewSessionStore(db)
	settingsStore := store.NewSettingsStore(db)

	repo := repository.New(gw, menuCache, logger.With("component", "repository"))
	if err := cartStore.MigrateLegacy(); err != nil {
		logger.Warn("legacy cart migration", "error", err)
	}
	engine := cart.NewEngine(cartStore, store.DefaultCartKey, logger.With("component", "cart"))
	engine.OnChange(func(c model.Cart) {
		hub.Broadcast(ws.NewMessage("cart", "updated", "", map[string]any{
			"totalItems":  c.TotalItems,
			"totalAmount": c.TotalAmount,
		}))
	})
	orders := order.NewService(repo, archiveStore, engine, logger)
	resolver := auth.NewResolver(provider, sessionStore, settingsStore, logger.With("component", "auth"))
	stats := dashboard.NewService(repo, gw, hub, logger)

	return &Server{
		db:          db,
		hub:         hub,
		menuH:       handler.NewMenuHandler(repo, hub, logger.With("component", "menu")),
		cartH:       handler.NewCartHandler(engine, repo, logger.With("component", "cart_handler")),
		orderH:      handler.NewOrderHandler(orders, repo, hub, logger.With("component", "order_handler")),
		messageH:    handler.NewMessageHandler(repo, logger.With("component", "message")),
		authH:       handler.NewAuthHandler(provider, resolver, repo, logger.With("component", "auth_handler")),
		dashboardH:  handler.NewDashboardHandler(stats, logger.With("component", "dashboard_handler")),
		settingsH:   handler.NewSettingsHandler(settingsStore, logger.With("component", "settings")),
		resolver:    resolver,
		provider:    provider,
		dashboard:   stats,
		orders:      orders,
		repo:        repo,
		rateLimiter: middleware.NewRateLimiter(),
		logger:      logger,
	}
}

// Hub returns the websocket hub for broadcast wiring.
func (s *Server) Hub() *ws.Hub {
	return s.hub
}

// Repository returns the data-access layer for startup seeding.
func (s *Server) Repository() *repository.Repository {
	return s.repo
}

// Orders returns the order service for background workers.
func (s *Server) Orders() *order.Service {
	return s.orders
}

// Dashboard returns the stats service for the live-sync subscription.
func (s *Server) Dashboard() *dashboard.Service {
	return s.dashboard
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes
	outerMux.HandleFunc("GET /health", s.healthHandler)
	outerMux.HandleFunc("GET /api/menu", s.menuH.List)
	outerMux.HandleFunc("GET /api/menu/{id}", s.menuH.Get)

	outerMux.HandleFunc("GET /api/cart", s.cartH.Get)
	outerMux.HandleFunc("POST /api/cart/items", s.cartH.Add)
	outerMux.HandleFunc("PUT /api/cart/items/{id}", s.cartH.Update)
	outerMux.HandleFunc("DELETE /api/cart/items/{id}", s.cartH.Remove)
	outerMux.HandleFunc("DELETE /api/cart", s.cartH.Clear)

	outerMux.HandleFunc("POST /api/checkout", s.orderH.Checkout)
	outerMux.HandleFunc("POST /api/order-now", s.orderH.OrderNow)
	outerMux.HandleFunc("GET /api/orders", s.orderH.List)
	outerMux.HandleFunc("GET /api/orders/{id}", s.orderH.Get)

	outerMux.HandleFunc("POST /api/messages", s.messageH.Create)

	outerMux.HandleFunc("POST /api/auth/signin", s.rateLimitedHandler(s.authH.SignIn))
	outerMux.HandleFunc("POST /api/auth/signup", s.rateLimitedHandler(s.authH.SignUp))
	outerMux.HandleFunc("POST /api/auth/signout", s.authH.SignOut)
	outerMux.HandleFunc("POST /api/admin/login", s.rateLimitedHandler(s.authH.AdminLogin))

	outerMux.HandleFunc("GET /api/settings", s.settingsH.Get)
	outerMux.HandleFunc("PUT /api/settings", s.settingsH.Set)

	outerMux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))

	// Admin routes — wrapped with the auth resolver
	adminMux := http.NewServeMux()
	s.registerAdminRoutes(adminMux)

	adminMiddleware := middleware.RequireAdmin(s.resolver, s.provider)
	outerMux.Handle("/api/admin/", adminMiddleware(adminMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) registerAdminRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/admin/logout", s.authH.AdminLogout)
	mux.HandleFunc("GET /api/admin/dashboard", s.dashboardH.Stats)

	mux.HandleFunc("GET /api/admin/orders", s.orderH.AdminList)
	mux.HandleFunc("PUT /api/admin/orders/{id}/status", s.orderH.UpdateStatus)

	mux.HandleFunc("POST /api/admin/menu", s.menuH.Save)
	mux.HandleFunc("DELETE /api/admin/menu/{id}", s.menuH.Delete)

	mux.HandleFunc("GET /api/admin/messages", s.messageH.List)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}
