package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	FirebaseCredentials string
	GoogleProjectID     string
	PushEventsTopic     string
	DatabaseURL         string
	PushClickLink       string
	FCMSendTimeout      time.Duration
	TokenSweepInterval  time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	sendTimeout := 30 * time.Second
	if v := os.Getenv("FCM_SEND_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			sendTimeout = parsed
		}
	}

	// 0 disables the background sweep
	sweepInterval := time.Duration(0)
	if v := os.Getenv("TOKEN_SWEEP_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			sweepInterval = parsed
		}
	}

	return &Config{
		Port:                getEnv("PORT", "8080"),
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS", ""),
		GoogleProjectID:     getEnv("GOOGLE_PROJECT_ID", ""),
		PushEventsTopic:     getEnv("PUSH_EVENTS_TOPIC", "push-events"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		PushClickLink:       getEnv("PUSH_CLICK_LINK", "https://pakora-automations-chat.web.app/kommunikation.html"),
		FCMSendTimeout:      sendTimeout,
		TokenSweepInterval:  sweepInterval,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
