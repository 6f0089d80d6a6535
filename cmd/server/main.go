package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roomhub/internal/auth"
	"roomhub/internal/config"
	"roomhub/internal/database"
	"roomhub/internal/handlers"
	"roomhub/internal/services"
	"roomhub/internal/websocket"
	"roomhub/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()
	defer logger.Sync()

	// Initialize database
	store, err := database.Open(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}
	defer store.Close()

	// Initialize services
	authService := auth.NewService(store, cfg)
	roomService := services.NewRoomService(store)
	messageService := services.NewMessageService(store)
	userService := services.NewUserService(store)

	// Initialize WebSocket hub manager
	hubManager := websocket.NewManager()

	// Setup routes
	router := handlers.NewRouter(cfg, authService, roomService, messageService, userService, hubManager)

	// Create server
	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	logger.Info("🚀 Server started on http://localhost%s", cfg.Server.Port)
	logger.Info("📡 WebSocket endpoint: ws://localhost%s/ws", cfg.Server.Port)

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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error: %v", err)
	}
}
