package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/madistic/Edviron-2/internal/client"
	"github.com/madistic/Edviron-2/internal/config"
	"github.com/madistic/Edviron-2/internal/handler"
	"github.com/madistic/Edviron-2/internal/repository"
	"github.com/madistic/Edviron-2/internal/server"
	"github.com/madistic/Edviron-2/internal/service"
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

	db := client.InitMysqlClient(cfg.DatabaseURL)
	gatewayClient := client.NewGatewayClient(&cfg.Gateway)

	orderRepo := repository.NewOrderRepository(db)
	orderStatusRepo := repository.NewOrderStatusRepository(db)
	webhookLogRepo := repository.NewWebhookLogRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	userRepo := repository.NewUserRepository(db)

	paymentService := service.NewPaymentService(
		gatewayClient, cfg.Gateway.SchoolID,
		orderRepo,
		orderStatusRepo,
	)
	webhookService := service.NewWebhookService(orderStatusRepo, webhookLogRepo)
	transactionService := service.NewTransactionService(transactionRepo)
	authService := service.NewAuthService(userRepo, &cfg.Auth)

	authHandler := handler.NewAuthHandler(authService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	webhookHandler := handler.NewWebhookHandler(webhookService)
	transactionHandler := handler.NewTransactionHandler(transactionService)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(authHandler, paymentHandler, webhookHandler, transactionHandler, cfg.Auth.JWTSecret)

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
