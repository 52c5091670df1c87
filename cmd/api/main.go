package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/stockroom/stockroom-go/internal/config"
	"github.com/stockroom/stockroom-go/internal/crypto"
	"github.com/stockroom/stockroom-go/internal/handler"
	"github.com/stockroom/stockroom-go/internal/repository"
	"github.com/stockroom/stockroom-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	tokens := crypto.TokenOptions{
		Secret:   cfg.JWTSecret,
		TTL:      cfg.JWTTTL,
		Audience: cfg.JWTAudience,
		Issuer:   cfg.JWTIssuer,
	}

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("opening database failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.CreateSchema(context.Background(), db); err != nil {
		slog.Error("creating schema failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)

	authHandler := handler.NewAuthHandler(service.NewAuthService(userRepo, tokens))
	userHandler := handler.NewUserHandler(service.NewUserService(userRepo))
	itemHandler := handler.NewItemHandler(service.NewItemService(itemRepo))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler.NewRouter(authHandler, userHandler, itemHandler, tokens),
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
