package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/intelleges/iaos-website-sub000/internal/infra/database"
	"github.com/intelleges/iaos-website-sub000/internal/infra/http/handlers"
	"github.com/intelleges/iaos-website-sub000/internal/infra/http/middleware"
	"github.com/intelleges/iaos-website-sub000/internal/infra/integration/apollo"
	"github.com/intelleges/iaos-website-sub000/internal/infra/mail"
	"github.com/intelleges/iaos-website-sub000/internal/infra/queue"
	"github.com/intelleges/iaos-website-sub000/internal/infra/worker"
	"github.com/intelleges/iaos-website-sub000/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "guest"),
		envOr("RABBITMQ_PASS", "guest"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositories
	attemptRepo := database.NewQualificationRepository(db)
	downloadRepo := database.NewDownloadRepository(db)
	scheduledRepo := database.NewScheduledEmailRepository(db)
	statusRepo := database.NewEmailStatusRepository(db)
	eventRepo := database.NewEmailEventRepository(db)

	// 2. Gateways and adapters
	enricher := apollo.NewClient(os.Getenv("APOLLO_API_KEY"), os.Getenv("APOLLO_URL"))
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	smtpPort, _ := strconv.Atoi(envOr("MAIL_PORT", "587"))
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), smtpPort,
		os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		envOr("MAIL_FROM", "no-reply@intelleges.com"),
		envOr("SITE_URL", "https://www.intelleges.com"),
		envOr("SALES_INBOX", "sales@intelleges.com"),
	)

	// 3. UseCases
	suppressionUC := usecase.NewSuppressionUseCase(statusRepo)
	qualifyUC := usecase.NewQualifyLeadUseCase(usecase.DefaultScoringRules(), attemptRepo, enricher, producer)
	downloadUC := usecase.NewDownloadUseCase(downloadRepo, scheduledRepo, suppressionUC, mailSender)
	eventsUC := usecase.NewProcessEmailEventsUseCase(eventRepo, statusRepo)
	drainUC := usecase.NewProcessScheduledEmailsUseCase(scheduledRepo, mailSender, suppressionUC)

	// 4. Background workers
	salesWorker := queue.NewWorker(rabbitMQ.Ch, mailSender)
	go salesWorker.Start(queue.QueueName)

	drainInterval, _ := time.ParseDuration(envOr("FOLLOWUP_DRAIN_INTERVAL", "1h"))
	followupWorker := worker.NewFollowupWorker(drainUC, drainInterval)
	go followupWorker.Start(context.Background())

	// 5. Handlers
	qualificationHandler := handlers.NewQualificationHandler(qualifyUC)
	downloadHandler := handlers.NewDownloadHandler(downloadUC)
	suppressionHandler := handlers.NewSuppressionHandler(suppressionUC)
	webhookHandler := handlers.NewWebhookHandler(eventsUC, os.Getenv("EMAIL_WEBHOOK_SECRET"))
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{envOr("FRONTEND_ORIGIN", "https://www.intelleges.com"), "http://localhost:5173"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Post("/api/qualification/qualify-lead", qualificationHandler.QualifyLead)
	r.Get("/api/qualification/recent-attempts", qualificationHandler.RecentAttempts)
	r.Post("/api/document-downloads/check-limit", downloadHandler.CheckLimit)
	r.Post("/api/document-downloads/record-download", downloadHandler.RecordDownload)
	r.Post("/api/email-suppression/check", suppressionHandler.Check)
	r.Post("/api/email-suppression/suppress", suppressionHandler.Suppress)
	r.Post("/api/email-suppression/unsuppress", suppressionHandler.Unsuppress)
	r.Post("/webhooks/email-events", webhookHandler.Handle)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":" + envOr("PORT", "8080")
	log.Printf("intelleges website backend listening on %s", port)
	http.ListenAndServe(port, r)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
