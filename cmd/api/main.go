package main

import (
	"fmt"
	"kzstore-backoffice/internal/client"
	"kzstore-backoffice/internal/config"
	"kzstore-backoffice/internal/job"
	"kzstore-backoffice/internal/repository"
	"kzstore-backoffice/internal/server"
	"kzstore-backoffice/internal/service"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
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

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("invalid STORE_TIMEZONE %q, falling back to local: %v", cfg.Timezone, err)
		loc = time.Local
	}

	db := client.InitMysqlClient(cfg.DatabaseURL)
	mailClient := client.NewResendClient(&cfg.Resend)

	orderRepo := repository.NewOrderRepository(db)
	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)
	metricRepo := repository.NewMetricRepository(db)
	jobRunRepo := repository.NewJobRunRepository(db)

	analyticsService := service.NewAnalyticsService(orderRepo, cartRepo, metricRepo)
	cartService := service.NewCartService(cartRepo)
	cronService := service.NewCronService(
		mailClient,
		analyticsService,
		orderRepo,
		cartRepo,
		productRepo,
		userRepo,
		cfg.Admin.NotificationEmails,
		cfg.FrontendURL,
		loc,
	)

	registry := job.BuildRegistry(cronService)
	runner := job.NewRunner(registry, jobRunRepo)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(runner, analyticsService, cartService)

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
