package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"confsched/config"
	_ "confsched/docs"
	"confsched/internal/adapters/auth"
	"confsched/internal/adapters/email"
	transporthttp "confsched/internal/delivery/http"
	"confsched/internal/delivery/http/middleware"
	"confsched/internal/repository/postgres"
	"confsched/internal/services"
)

const shutdownTimeout = 10 * time.Second

// @title Schedule Versioning API
// @version 1.0
// @description Draft/release schedule versioning with conflict detection, diffs, and speaker notifications.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(startupCtx); err != nil {
		log.Fatalf("db ping: %v", err)
	}

	eventRepo := postgres.NewEventRepository(db)
	roomRepo := postgres.NewRoomRepository(db)
	scheduleRepo := postgres.NewScheduleRepository(db)
	breakRepo := postgres.NewBreakRepository(db)
	registry := postgres.NewItemRegistry(db)
	availability := postgres.NewAvailabilityProvider(db)
	speakers := postgres.NewSpeakerDirectory(db)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.MailProvider,
		FromAddress: cfg.MailFromAddress,
		FromName:    cfg.MailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretKey,
		},
	})
	if err != nil {
		log.Fatalf("create mailer: %v", err)
	}

	timeout := cfg.ServiceTimeout
	eventSvc := services.NewEventService(eventRepo, scheduleRepo, timeout)
	slotSvc := services.NewSlotService(scheduleRepo, roomRepo, registry, timeout)
	conflictSvc := services.NewConflictService(scheduleRepo, eventRepo, registry, availability, timeout)
	diffSvc := services.NewDiffService(scheduleRepo, registry, timeout)
	plannerSvc := services.NewPlannerService(scheduleRepo, roomRepo, registry, timeout)
	mailSvc := services.NewScheduleMailService(mailer, email.NewTemplateRenderer(), speakers)
	snapshotSvc := services.NewSnapshotService(scheduleRepo, eventRepo, conflictSvc, diffSvc, plannerSvc, mailSvc, nil, timeout)
	breakSvc := services.NewBreakService(breakRepo, scheduleRepo, slotSvc, timeout)

	verifier := auth.NewJWTVerifier(cfg.JWTSecret)
	scheduleController := transporthttp.NewScheduleController(logger, eventSvc, slotSvc, conflictSvc, snapshotSvc, diffSvc)
	breakController := transporthttp.NewBreakController(logger, breakSvc)
	mux := transporthttp.NewRouter(logger, verifier, scheduleController, breakController)
	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSAllowedOrigins, mux))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
