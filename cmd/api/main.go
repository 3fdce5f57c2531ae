package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/friskytrails/api/internal/config"
	"github.com/friskytrails/api/internal/infrastructure/dynamo"
	googleinfra "github.com/friskytrails/api/internal/infrastructure/google"
	jwtinfra "github.com/friskytrails/api/internal/infrastructure/jwt"
	s3infra "github.com/friskytrails/api/internal/infrastructure/s3"
	"github.com/friskytrails/api/internal/infrastructure/smtp"
	"github.com/friskytrails/api/internal/infrastructure/sns"
	transporthttp "github.com/friskytrails/api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	// Establish the DynamoDB connection up front. In standalone mode a
	// broken database is fatal; requests also re-ensure the connection
	// so a dropped link heals itself.
	conn := dynamo.NewConn(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	dynamoClient, err := conn.Ensure(ctx)
	cancel()
	if err != nil {
		log.Fatalf("dynamodb connection failed: %v", err)
	}

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("jwt provider: %v", err)
	}

	// S3 store.
	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SMTP mailer.
	mailer := smtp.NewMailer(cfg)

	// SNS SMS sender (optional — graceful fallback).
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		slog.Warn("sns sender not available, sms notifications disabled", "err", err)
	}

	// Google Sheets mirror (optional — graceful fallback).
	var sheet *googleinfra.SheetClient
	if s, err := googleinfra.NewSheetClient(context.Background(), cfg); err == nil {
		sheet = s
	} else {
		slog.Warn("sheets mirror not available, signup/contact mirroring disabled", "err", err)
	}

	// Google sign-in (optional — requires a client ID).
	var googleVerifier *googleinfra.Verifier
	if cfg.GoogleClientID != "" {
		googleVerifier = googleinfra.NewVerifier(cfg.GoogleClientID)
	} else {
		slog.Warn("GOOGLE_CLIENT_ID not set, google sign-in disabled")
	}

	deps := &transporthttp.Deps{
		Conn:        conn,
		UserRepo:    dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		ProductRepo: dynamo.NewProductRepo(dynamoClient, cfg.DynamoTables.Products),
		BlogRepo:    dynamo.NewBlogRepo(dynamoClient, cfg.DynamoTables.Blogs),
		CountryRepo: dynamo.NewCountryRepo(dynamoClient, cfg.DynamoTables.Countries),
		StateRepo:   dynamo.NewStateRepo(dynamoClient, cfg.DynamoTables.States),
		CityRepo:    dynamo.NewCityRepo(dynamoClient, cfg.DynamoTables.Cities),
		BookingRepo: dynamo.NewBookingRepo(dynamoClient, cfg.DynamoTables.Bookings),
		ContactRepo: dynamo.NewContactRepo(dynamoClient, cfg.DynamoTables.Contacts),

		S3Store:        s3Store,
		Mailer:         mailer,
		SMSSender:      smsSender,
		Sheet:          sheet,
		GoogleVerifier: googleVerifier,
		JWTProvider:    jwtProvider,
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
