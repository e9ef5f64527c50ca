package repository

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"pakora-chat-backend/internal/push/domain"
)

const (
	tokensCollection   = "pushTokens"
	logsCollection     = "pushLogs"
	settingsCollection = "pushSettings"
	settingsDocID      = "global"
)

// firestoreTokenRepository implements TokenRepository on Firestore.
// The token string is the document id.
type firestoreTokenRepository struct {
	client *firestore.Client
}

// NewFirestoreTokenRepository creates a Firestore-backed token repository.
func NewFirestoreTokenRepository(client *firestore.Client) TokenRepository {
	return &firestoreTokenRepository{client: client}
}

func (r *firestoreTokenRepository) List(ctx context.Context) ([]domain.PushToken, error) {
	iter := r.client.Collection(tokensCollection).Documents(ctx)
	defer iter.Stop()

	var tokens []domain.PushToken
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list push tokens: %w", err)
		}

		var t domain.PushToken
		if err := doc.DataTo(&t); err != nil {
			// Malformed fields are defaulted, not fatal; the token id alone
			// is still routable.
			log.Printf("[TokenStore] Skipping malformed fields on token %s: %v", doc.Ref.ID, err)
			t = domain.PushToken{}
		}
		t.Token = doc.Ref.ID
		tokens = append(tokens, t)
	}
	return tokens, nil
}

func (r *firestoreTokenRepository) Save(ctx context.Context, token domain.PushToken) error {
	if token.Token == "" {
		return fmt.Errorf("push token id is required")
	}
	_, err := r.client.Collection(tokensCollection).Doc(token.Token).Set(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to save push token: %w", err)
	}
	return nil
}

func (r *firestoreTokenRepository) Delete(ctx context.Context, token string) error {
	_, err := r.client.Collection(tokensCollection).Doc(token).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete push token: %w", err)
	}
	return nil
}

func (r *firestoreTokenRepository) DeleteBatch(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}

	bw := r.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(tokens))
	for _, token := range tokens {
		job, err := bw.Delete(r.client.Collection(tokensCollection).Doc(token))
		if err != nil {
			bw.End()
			return fmt.Errorf("failed to enqueue token delete: %w", err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	var firstErr error
	for _, job := range jobs {
		if _, err := job.Results(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to delete token batch: %w", err)
		}
	}
	return firstErr
}

// firestoreLogRepository implements LogRepository on the pushLogs collection.
type firestoreLogRepository struct {
	client *firestore.Client
}

// NewFirestoreLogRepository creates a Firestore-backed audit log repository.
func NewFirestoreLogRepository(client *firestore.Client) LogRepository {
	return &firestoreLogRepository{client: client}
}

func (r *firestoreLogRepository) Append(ctx context.Context, entry *domain.DeliveryAttemptLog) error {
	ref := r.client.Collection(logsCollection).Doc(entry.ID)
	// Create, not Set: the audit trail is append-only.
	if _, err := ref.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to append delivery log: %w", err)
	}
	return nil
}

func (r *firestoreLogRepository) Recent(ctx context.Context, limit int) ([]domain.DeliveryAttemptLog, error) {
	iter := r.client.Collection(logsCollection).
		OrderBy("createdAt", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	var entries []domain.DeliveryAttemptLog
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list delivery logs: %w", err)
		}

		var entry domain.DeliveryAttemptLog
		if err := doc.DataTo(&entry); err != nil {
			return nil, fmt.Errorf("failed to decode delivery log %s: %w", doc.Ref.ID, err)
		}
		entry.ID = doc.Ref.ID
		entries = append(entries, entry)
	}
	return entries, nil
}

// firestoreEventRepository reads message/note documents by id.
type firestoreEventRepository struct {
	client *firestore.Client
}

// NewFirestoreEventRepository creates a Firestore-backed event reader.
func NewFirestoreEventRepository(client *firestore.Client) EventRepository {
	return &firestoreEventRepository{client: client}
}

func (r *firestoreEventRepository) Get(ctx context.Context, collection, id string) (*domain.DeliveryEvent, error) {
	doc, err := r.client.Collection(collection).Doc(id).Get(ctx)
	if doc != nil && !doc.Exists() {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read event %s/%s: %w", collection, id, err)
	}
	return eventFromData(id, doc.Data()), nil
}

// eventFromData maps a raw document onto a DeliveryEvent. Older clients wrote
// the sender id under "user" instead of "userId".
func eventFromData(id string, data map[string]interface{}) *domain.DeliveryEvent {
	event := &domain.DeliveryEvent{
		ID:          id,
		SenderID:    stringField(data, "userId", "user"),
		SenderLabel: stringField(data, "userLabel"),
		Text:        stringField(data, "text"),
	}
	if raw, ok := data["recipients"].([]interface{}); ok {
		for _, v := range raw {
			if s, ok := v.(string); ok && s != "" {
				event.Recipients = append(event.Recipients, s)
			}
		}
	}
	return event
}

func stringField(data map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s, ok := data[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// firestoreSettingsRepository reads the pushSettings/global document.
type firestoreSettingsRepository struct {
	client *firestore.Client
}

// NewFirestoreSettingsRepository creates a Firestore-backed settings reader.
func NewFirestoreSettingsRepository(client *firestore.Client) SettingsRepository {
	return &firestoreSettingsRepository{client: client}
}

func (r *firestoreSettingsRepository) Get(ctx context.Context) (domain.PushSettings, error) {
	doc, err := r.client.Collection(settingsCollection).Doc(settingsDocID).Get(ctx)
	if doc != nil && !doc.Exists() {
		return domain.DefaultPushSettings(), nil
	}
	if err != nil {
		return domain.DefaultPushSettings(), fmt.Errorf("failed to read push settings: %w", err)
	}

	var settings domain.PushSettings
	if err := doc.DataTo(&settings); err != nil {
		return domain.DefaultPushSettings(), fmt.Errorf("failed to decode push settings: %w", err)
	}
	return settings, nil
}
