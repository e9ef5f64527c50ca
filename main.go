package main

import (
	"context"
	"log"

	api "pakora-chat-backend/cmd/api"
	"pakora-chat-backend/internal/notification"
	pushdomain "pakora-chat-backend/internal/push/domain"
	"pakora-chat-backend/internal/push/gateway"
	pushRepo "pakora-chat-backend/internal/push/repository"
	"pakora-chat-backend/internal/push/scheduler"
	pushUsecase "pakora-chat-backend/internal/push/usecase"
	"pakora-chat-backend/pkg/config"
	"pakora-chat-backend/pkg/database"
	"pakora-chat-backend/pkg/firebase"
)

func main() {
	// Load configuration
	cfg := config.Load()

	ctx := context.Background()

	// Initialize Firebase (Firestore + FCM), explicitly constructed and
	// injected below instead of a package-level app.
	fb, err := firebase.NewClients(ctx, cfg.FirebaseCredentials)
	if err != nil {
		log.Fatal("Failed to initialize Firebase clients:", err)
	}
	defer fb.Close()

	// Initialize repositories (dependency injection). Tokens and audit logs
	// live in Firestore by default, or in Postgres when DATABASE_URL is set.
	var tokenRepo pushRepo.TokenRepository
	var logRepo pushRepo.LogRepository
	if cfg.DatabaseURL != "" {
		db, err := database.NewPostgresConnection(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		if err := db.AutoMigrate(&pushdomain.PushToken{}, &pushdomain.DeliveryAttemptLog{}); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		tokenRepo = pushRepo.NewGormTokenRepository(db)
		logRepo = pushRepo.NewGormLogRepository(db)
	} else {
		tokenRepo = pushRepo.NewFirestoreTokenRepository(fb.Firestore)
		logRepo = pushRepo.NewFirestoreLogRepository(fb.Firestore)
	}
	eventRepo := pushRepo.NewFirestoreEventRepository(fb.Firestore)
	settingsRepo := pushRepo.NewFirestoreSettingsRepository(fb.Firestore)

	fcmGateway := gateway.NewFCM(fb.Messaging, cfg.FCMSendTimeout)

	// One engine, parameterized per source collection.
	variants := []pushUsecase.EngineConfig{
		{Collection: "messages", TitleTemplate: "Neue Nachricht von %s", FilterMode: pushUsecase.FilterRecipients, Dedupe: true},
		{Collection: "notes", TitleTemplate: "Wichtige Notiz von %s", FilterMode: pushUsecase.FilterBroadcast, Dedupe: true},
	}

	pushUc := pushUsecase.NewPushUsecase(tokenRepo, logRepo, eventRepo, settingsRepo, fcmGateway, cfg.PushClickLink, variants)

	// Background token sweep
	sweeper := scheduler.NewTokenSweepScheduler(pushUc, cfg.TokenSweepInterval)
	sweeper.Start()
	defer sweeper.Stop()

	// Event listener (Pub/Sub). Only start if project ID is configured.
	if cfg.GoogleProjectID != "" {
		notifService, err := notification.NewService(cfg.GoogleProjectID, cfg.PushEventsTopic, pushUc, cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("[ERROR] Failed to initialize event listener: %v", err)
		} else {
			defer notifService.Close()
			go notifService.Start(ctx)
		}
	} else {
		log.Printf("[WARN] GOOGLE_PROJECT_ID not configured, event listener disabled")
	}

	// Initialize HTTP handler
	handler := api.NewHandler(pushUc, cfg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
