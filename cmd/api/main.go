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

	"github.com/email-otp-api/internal/config"
	jwtinfra "github.com/email-otp-api/internal/infrastructure/jwt"
	"github.com/email-otp-api/internal/infrastructure/memstore"
	"github.com/email-otp-api/internal/infrastructure/smtp"
	transporthttp "github.com/email-otp-api/internal/transport/http"
	"github.com/joho/godotenv"
)

const sweepInterval = time.Minute

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Code store with background expiry sweeper.
	store := memstore.New(memstore.DefaultTTL)
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	go store.Run(sweepCtx, sweepInterval)

	// SMTP mailer.
	mailer := smtp.NewMailer(cfg)

	// Proof-token provider (optional — graceful fallback if keys are missing).
	deps := &transporthttp.Deps{
		Store:  store,
		Mailer: mailer,
	}
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		deps.Signer = p
	} else {
		log.Printf("WARN: proof-token provider not available: %v", err)
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	stopSweeper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
