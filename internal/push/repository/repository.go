package repository

import (
	"context"

	"pakora-chat-backend/internal/push/domain"
)

// TokenRepository defines the operations on the registered push-token store.
type TokenRepository interface {
	List(ctx context.Context) ([]domain.PushToken, error)
	Save(ctx context.Context, token domain.PushToken) error
	Delete(ctx context.Context, token string) error
	// DeleteBatch removes the given tokens as one batch of independent,
	// order-insensitive deletes.
	DeleteBatch(ctx context.Context, tokens []string) error
}

// LogRepository persists the append-only delivery audit trail.
type LogRepository interface {
	Append(ctx context.Context, entry *domain.DeliveryAttemptLog) error
	Recent(ctx context.Context, limit int) ([]domain.DeliveryAttemptLog, error)
}

// EventRepository reads message/note documents for manual re-dispatch.
// Get returns (nil, nil) when the document does not exist.
type EventRepository interface {
	Get(ctx context.Context, collection, id string) (*domain.DeliveryEvent, error)
}

// SettingsRepository reads the runtime push settings.
type SettingsRepository interface {
	Get(ctx context.Context) (domain.PushSettings, error)
}
