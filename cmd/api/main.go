package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"guess-master/internal/config"
	"guess-master/internal/handlers"
	"guess-master/internal/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.JWTGenerated {
		log.Println("JWT_SECRET not set, game tokens will not survive a restart")
	}

	var store services.GameStore
	if cfg.RedisURL != "" {
		redisStore, err := services.NewRedisStore(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		store = redisStore
		log.Printf("Using Redis game store at %s", cfg.RedisURL)
	} else {
		store = services.NewMemoryStore()
		log.Println("REDIS_URL not set, using in-memory game store")
	}
	defer store.Close()

	jwtService := services.NewJWTService(cfg)

	gameEngine := services.NewGameEngine(store)
	wsHandler := handlers.NewWebSocketHandler()
	defer wsHandler.Close()
	gameEngine.SetBroadcaster(wsHandler)

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				gameEngine.CleanupStaleGames(ctx, services.TTLGameSession)
			}
		}
	}()

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handlers.NewRouter(gameEngine, jwtService, wsHandler, handlers.RouterConfig{
		GuessRateLimit: cfg.GuessRateLimit,
		StartRateLimit: cfg.StartRateLimit,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Server starting on port %s", cfg.Port)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
	log.Println("Server stopped")
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
