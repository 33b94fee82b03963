package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"booking-frontend/config"
	"booking-frontend/router"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	app, err := router.New(cfg)
	if err != nil {
		log.Fatalf("build app: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("booking frontend listening on %s, api %s", cfg.Server.Addr, cfg.API.BaseURL)
	if err := app.Listen(cfg.Server.Addr); err != nil {
		log.Fatalf("listen: %v", err)
	}
}
