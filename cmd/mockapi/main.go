// Package main запускает эмулятор бэкенда витрины.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/storefront-client/internal/config"
	"github.com/mmeshcher/storefront-client/internal/handler"
	"github.com/mmeshcher/storefront-client/internal/logger"
	"github.com/mmeshcher/storefront-client/internal/middleware"
	"github.com/mmeshcher/storefront-client/internal/model"
	"github.com/mmeshcher/storefront-client/internal/repository"
)

const demoUserID = "demo"

func main() {
	cfg, err := config.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New("mockapi", cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	sugar := log.Sugar()

	repo := repository.NewMemory(nil, nil)
	seedDemoUser(repo, log)

	authMiddleware := middleware.NewAuthMiddleware(cfg.AuthSecret)
	h := handler.NewHandler(repo, log, authMiddleware)

	r := h.SetupRouter()

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: r,
	}

	sugar.Infow("demo user", "userID", demoUserID, "token", authMiddleware.IssueToken(demoUserID))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sugar.Infow("starting mock backend", "addr", cfg.RunAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка в другой горутине)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}

func seedDemoUser(repo *repository.Memory, log *zap.Logger) {
	ctx := context.Background()

	repo.SaveProfile(ctx, demoUserID, model.ProfileInput{
		Email:     "demo@example.com",
		FirstName: "Demo",
		LastName:  "User",
	})
	repo.CreateAddress(ctx, demoUserID, model.AddressInput{
		Label:      "Home",
		FullName:   "Demo User",
		Phone:      "+1 555 0100",
		Line1:      "1 Market St",
		City:       "San Francisco",
		State:      "CA",
		PostalCode: "94105",
		Country:    "US",
		IsDefault:  true,
	})
	if _, err := repo.AddToWishlist(ctx, demoUserID, "P4"); err != nil {
		log.Warn("seed wishlist failed", zap.Error(err))
	}
}
