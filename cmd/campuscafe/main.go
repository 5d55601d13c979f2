package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dmuriithi/campuscafe/internal/auth"
	"github.com/dmuriithi/campuscafe/internal/database"
	"github.com/dmuriithi/campuscafe/internal/gateway"
	"github.com/dmuriithi/campuscafe/internal/logging"
	"github.com/dmuriithi/campuscafe/internal/server"
)

const reconcileInterval = 30 * time.Second

func main() {
	_ = godotenv.Load()

	logger := logging.Setup(os.Getenv("CAFE_LOG_LEVEL"))

	port := os.Getenv("CAFE_PORT")
	if port == "" {
		port = "8080"
	}

	dbPath := os.Getenv("CAFE_DB_PATH")
	if dbPath == "" {
		dbPath = "campuscafe.db"
	}

	db, err := database.Open(dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// The remote store is Redis when configured; otherwise everything
	// runs against the in-process gateway, which keeps local development
	// working without any backing service.
	var gw gateway.Gateway
	if redisURL := os.Getenv("CAFE_REDIS_URL"); redisURL != "" {
		rg, err := gateway.NewRedisGateway(redisURL, "campuscafe", logger.With("component", "gateway"))
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer rg.Close()
		gw = rg
	} else {
		logger.Warn("CAFE_REDIS_URL not set, using in-process store")
		gw = gateway.NewMemory()
	}

	provider := auth.NewGatewayProvider(gw, logger.With("component", "provider"))

	srv := server.New(db, gw, provider, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Seed remote collections. A failure here is survivable: the
	// repository serves from the local cache or built-in defaults.
	if err := srv.Repository().InitStorage(ctx); err != nil {
		logger.Warn("storage init incomplete", "error", err)
	}

	// Background workers: queued-order reconciliation and the standing
	// dashboard subscription.
	go srv.Orders().RunReconciler(ctx, reconcileInterval)

	cancelWatch, err := srv.Dashboard().Watch(ctx)
	if err != nil {
		logger.Warn("dashboard subscription failed", "error", err)
	} else {
		defer cancelWatch()
	}

	// Background cleanup goroutine
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				srv.RateLimiter().Cleanup()
			case <-ctx.Done():
				return
			}
		}
	}()

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("Campus Cafe running at http://localhost:%s\n", port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()

	fmt.Println("\nShutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown error: %v", err)
	}
}
