package main

import (
	"apostila-pix-store/internal/client"
	"apostila-pix-store/internal/config"
	"apostila-pix-store/internal/logging"
	"apostila-pix-store/internal/repository"
	"apostila-pix-store/internal/server"
	"apostila-pix-store/internal/service"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(&cfg.Log, &cfg.Environment)
	if err != nil {
		fmt.Printf("Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	product, err := service.NewProduct(&cfg.Product)
	if err != nil {
		logger.Fatal("invalid product config", zap.Error(err))
	}

	// A missing store or gateway token does not stop the server: payment
	// creation answers with a configuration error instead.
	var (
		saleRepo         repository.SaleRepository
		webhookEventRepo repository.WebhookEventRepository
	)
	db, err := client.InitDBClient(&cfg.Database)
	if err != nil {
		logger.Error("sale store unavailable", zap.Error(err))
	} else {
		saleRepo = repository.NewSaleRepository(db)
		webhookEventRepo = repository.NewWebhookEventRepository(db)
	}

	mpClient := client.NewMercadoPagoClient(&cfg.MercadoPago)
	if !mpClient.Configured() || cfg.PublicURL == "" {
		logger.Warn("MERCADO_PAGO_TOKEN or PUBLIC_URL missing, payments are disabled")
	}

	mailer := client.NewResendMailer(&cfg.Email)
	if !mailer.Configured() {
		logger.Warn("EMAIL_API_KEY or EMAIL_FROM missing, product emails are disabled")
	}

	saleService := service.NewSaleService(
		mpClient,
		mailer,
		cfg.PublicURL,
		product,
		saleRepo,
		webhookEventRepo,
		logger,
	)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(saleService, cfg.StaticDir, logger)

	logger.Info("Starting HTTP server", zap.String("addr", serverAddr))
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.Info("Signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("HTTP server shutdown error", zap.Error(err))
	}
}
