package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"pakora-chat-backend/internal/push/domain"
)

const (
	defaultSenderLabel = "Unbekannt"
	defaultBody        = "Neue Nachricht"
)

func (u *pushUsecase) HandleEvent(ctx context.Context, collection string, event domain.DeliveryEvent, source string) *domain.DeliveryAttemptLog {
	cfg, ok := u.variants[collection]
	if !ok {
		log.Printf("[Engine] No variant configured for collection %q, ignoring event %s", collection, event.ID)
		return nil
	}
	return u.run(ctx, cfg, event, source)
}

func (u *pushUsecase) Dispatch(ctx context.Context, collection, eventID, source string) (*domain.DeliveryAttemptLog, error) {
	cfg, ok := u.variants[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}

	event, err := u.eventRepo.Get(ctx, collection, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return u.run(ctx, cfg, *event, source), nil
}

// run executes one fan-out invocation. It never fails from the caller's
// point of view: every exit path writes exactly one audit record.
func (u *pushUsecase) run(ctx context.Context, cfg EngineConfig, event domain.DeliveryEvent, source string) *domain.DeliveryAttemptLog {
	entry := &domain.DeliveryAttemptLog{
		ID:          uuid.New().String(),
		CreatedAt:   time.Now(),
		Collection:  cfg.Collection,
		EventID:     event.ID,
		SenderID:    event.SenderID,
		SenderLabel: event.SenderLabel,
		Text:        event.Text,
		Source:      source,
	}

	settings, err := u.settingsRepo.Get(ctx)
	if err != nil {
		// Delivery is favored over gating when settings are unreadable.
		log.Printf("[Engine] Failed to read push settings, assuming enabled: %v", err)
		settings = domain.DefaultPushSettings()
	}
	if !settings.Enabled {
		entry.Note = "push disabled"
		u.appendLog(ctx, entry)
		return entry
	}

	tokens, err := u.tokenRepo.List(ctx)
	if err != nil {
		log.Printf("[Engine] Failed to load push tokens for %s/%s: %v", cfg.Collection, event.ID, err)
		entry.Note = "token load failed"
		entry.ErrorMessage = err.Error()
		u.appendLog(ctx, entry)
		return entry
	}
	if len(tokens) == 0 {
		entry.Note = "no tokens"
		u.appendLog(ctx, entry)
		return entry
	}

	var stale []domain.PushToken
	if cfg.Dedupe {
		tokens, stale = Deduplicate(tokens)
	}

	eligible := filterRecipients(tokens, event, cfg.FilterMode, settings.ExcludedUserIDs)
	if len(eligible) == 0 {
		entry.Note = "no tokens after sender filter"
		u.appendLog(ctx, entry)
		u.deleteTokens(ctx, tokenIDs(stale))
		return entry
	}

	ids := tokenIDs(eligible)
	entry.TokensCount = len(ids)

	result, err := u.gateway.SendMulticast(ctx, ids, u.buildNotification(cfg, event))
	if err != nil {
		// The multicast call failed as a unit. Every considered token is
		// recorded as a failure; nothing is retried or escalated.
		log.Printf("[Engine] Multicast transport failure for %s/%s: %v", cfg.Collection, event.ID, err)
		entry.FailureCount = len(ids)
		entry.ErrorCode = "unknown"
		var terr *domain.TransportError
		if errors.As(err, &terr) {
			entry.ErrorCode = terr.Code
		}
		entry.ErrorMessage = err.Error()
		u.appendLog(ctx, entry)
		u.deleteTokens(ctx, tokenIDs(stale))
		return entry
	}

	results, invalid := reconcile(ids, result)
	entry.SuccessCount = result.SuccessCount
	entry.FailureCount = result.FailureCount
	entry.Results = results

	u.appendLog(ctx, entry)
	u.deleteTokens(ctx, append(tokenIDs(stale), invalid...))
	return entry
}

// reconcile pairs each submitted token with its gateway response, preserving
// submission order, and collects the tokens whose error codes mean they can
// never receive messages again.
func reconcile(tokens []string, result *domain.MulticastResult) ([]domain.TokenResult, []string) {
	results := make([]domain.TokenResult, 0, len(tokens))
	var invalid []string
	for i, token := range tokens {
		if i >= len(result.Responses) {
			break
		}
		resp := result.Responses[i]
		results = append(results, domain.TokenResult{
			Token:        token,
			Success:      resp.Success,
			ErrorCode:    resp.ErrorCode,
			ErrorMessage: resp.ErrorMessage,
		})
		if !resp.Success && domain.PermanentTokenError(resp.ErrorCode) {
			invalid = append(invalid, token)
		}
	}
	return results, invalid
}

func (u *pushUsecase) buildNotification(cfg EngineConfig, event domain.DeliveryEvent) domain.Notification {
	label := event.SenderLabel
	if label == "" {
		label = defaultSenderLabel
	}
	body := event.Text
	if body == "" {
		body = defaultBody
	}
	return domain.Notification{
		Title: fmt.Sprintf(cfg.TitleTemplate, label),
		Body:  body,
		Link:  u.clickLink,
		Data: map[string]string{
			"senderId":    event.SenderID,
			"senderLabel": label,
			"eventId":     event.ID,
			"collection":  cfg.Collection,
		},
	}
}

func (u *pushUsecase) appendLog(ctx context.Context, entry *domain.DeliveryAttemptLog) {
	if err := u.logRepo.Append(ctx, entry); err != nil {
		log.Printf("[Engine] Failed to append delivery log for %s/%s: %v", entry.Collection, entry.EventID, err)
	}
}

func (u *pushUsecase) deleteTokens(ctx context.Context, tokens []string) {
	if len(tokens) == 0 {
		return
	}
	if err := u.tokenRepo.DeleteBatch(ctx, tokens); err != nil {
		log.Printf("[Engine] Failed to delete %d tokens: %v", len(tokens), err)
		return
	}
	log.Printf("[Engine] Deleted %d stale/invalid tokens", len(tokens))
}
