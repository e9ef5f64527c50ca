package usecase

import (
	"context"
	"errors"

	"pakora-chat-backend/internal/push/domain"
	"pakora-chat-backend/internal/push/repository"
)

// ErrEventNotFound is returned by Dispatch when the referenced document
// does not exist.
var ErrEventNotFound = errors.New("event not found")

// ErrUnknownCollection is returned by Dispatch when no fan-out variant is
// configured for the requested collection.
var ErrUnknownCollection = errors.New("no push variant configured for collection")

// FilterMode selects how the recipient filter treats an explicit recipient
// list on the event. The sender exclusion always applies.
type FilterMode int

const (
	// FilterBroadcast notifies everyone except the sender and ignores any
	// explicit recipient list.
	FilterBroadcast FilterMode = iota
	// FilterRecipients honors an explicit non-empty recipient list.
	FilterRecipients
)

// EngineConfig describes one fan-out variant, keyed by source collection.
type EngineConfig struct {
	Collection    string
	TitleTemplate string // fmt template receiving the sender label
	FilterMode    FilterMode
	Dedupe        bool
}

// Gateway is the multicast push delivery port. A failure of the call itself
// is returned as an error (ideally a *domain.TransportError); per-token
// failures are reported inside the result.
type Gateway interface {
	SendMulticast(ctx context.Context, tokens []string, n domain.Notification) (*domain.MulticastResult, error)
}

// PushUsecase is the fan-out engine plus the thin token/log operations the
// HTTP surface needs.
type PushUsecase interface {
	// HandleEvent runs one fan-out invocation for a created document.
	// It never returns an error: every outcome ends in an audit record.
	// Returns nil only when no variant is configured for the collection.
	HandleEvent(ctx context.Context, collection string, event domain.DeliveryEvent, source string) *domain.DeliveryAttemptLog

	// Dispatch loads an existing event document and runs the engine for it.
	Dispatch(ctx context.Context, collection, eventID, source string) (*domain.DeliveryAttemptLog, error)

	RegisterToken(ctx context.Context, token domain.PushToken) error
	UnregisterToken(ctx context.Context, token string) error
	RecentLogs(ctx context.Context, limit int) ([]domain.DeliveryAttemptLog, error)

	// SweepTokens runs the deduplicator over the whole store and deletes
	// superseded registrations. Returns how many were removed.
	SweepTokens(ctx context.Context) (int, error)
}

// pushUsecase implements PushUsecase
type pushUsecase struct {
	tokenRepo    repository.TokenRepository
	logRepo      repository.LogRepository
	eventRepo    repository.EventRepository
	settingsRepo repository.SettingsRepository
	gateway      Gateway
	clickLink    string
	variants     map[string]EngineConfig
}

// NewPushUsecase creates the engine with all its collaborators injected.
func NewPushUsecase(
	tokenRepo repository.TokenRepository,
	logRepo repository.LogRepository,
	eventRepo repository.EventRepository,
	settingsRepo repository.SettingsRepository,
	gateway Gateway,
	clickLink string,
	variants []EngineConfig,
) PushUsecase {
	byCollection := make(map[string]EngineConfig, len(variants))
	for _, v := range variants {
		byCollection[v.Collection] = v
	}
	return &pushUsecase{
		tokenRepo:    tokenRepo,
		logRepo:      logRepo,
		eventRepo:    eventRepo,
		settingsRepo: settingsRepo,
		gateway:      gateway,
		clickLink:    clickLink,
		variants:     byCollection,
	}
}

func tokenIDs(tokens []domain.PushToken) []string {
	ids := make([]string, 0, len(tokens))
	for _, t := range tokens {
		ids = append(ids, t.Token)
	}
	return ids
}
