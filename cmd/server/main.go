package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"peerchat/internal/auth"
	"peerchat/internal/config"
	"peerchat/internal/database"
	"peerchat/internal/handlers"
	"peerchat/internal/services"
	"peerchat/internal/websocket"
	"peerchat/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresDB(cfg.Database.URL)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// The two connection registries: one per audience, independent
	// lifecycles, constructed once and injected everywhere.
	registry := websocket.NewRegistry()
	adminRegistry := websocket.NewRegistry()

	// Initialize services
	authService := auth.NewService(db, cfg)
	presenceService := services.NewPresenceService(db, registry, adminRegistry)
	messageService := services.NewMessageService(db, db, registry, adminRegistry)
	reactionService := services.NewReactionService(db, db, registry)
	adminService := services.NewAdminService(db, registry, adminRegistry)
	router := services.NewEventRouter(messageService, reactionService, registry, cfg.WebSocket.MaxInFlight)

	// Initialize handlers
	authHandlers := handlers.NewAuthHandlers(authService)
	adminHandlers := handlers.NewAdminHandlers(authService, adminService)
	wsHandlers := handlers.NewWebSocketHandlers(authService, registry, adminRegistry, presenceService, router, cfg.WebSocket)

	// Setup routes
	mux := http.NewServeMux()
	setupRoutes(mux, authHandlers, adminHandlers, wsHandlers)

	// Create server
	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      corsMiddleware(mux),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	logger.Info("🚀 Server started on http://localhost%s", cfg.Server.Port)
	logger.Info("📡 WebSocket endpoint: ws://localhost%s/ws", cfg.Server.Port)
	logger.Info("🛡  Admin WebSocket endpoint: ws://localhost%s/ws/admin", cfg.Server.Port)
	printAPIEndpoints()

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Server shutting down...")
}

func setupRoutes(mux *http.ServeMux, authHandlers *handlers.AuthHandlers, adminHandlers *handlers.AdminHandlers, wsHandlers *handlers.WebSocketHandlers) {
	// Auth routes
	mux.HandleFunc("/login", authHandlers.Login)
	mux.HandleFunc("/register", authHandlers.Register)

	// Moderation routes
	mux.HandleFunc("/admin/users/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		adminHandlers.SuspendUser(w, r)
	})

	// WebSocket routes
	mux.HandleFunc("/ws", wsHandlers.HandleWebSocket)
	mux.HandleFunc("/ws/admin", wsHandlers.HandleAdminWebSocket)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func printAPIEndpoints() {
	logger.Info("🔗 API endpoints:")
	logger.Info("   POST /login")
	logger.Info("   POST /register")
	logger.Info("   POST /admin/users/{id}/suspend")
}
