package usecase

import (
	"context"
	"errors"
	"time"

	"pakora-chat-backend/internal/push/domain"
)

// RegisterToken saves or refreshes a device registration. The engine relies
// on UpdatedAt as the ordering key when collapsing duplicates, so it is
// always stamped here.
func (u *pushUsecase) RegisterToken(ctx context.Context, token domain.PushToken) error {
	if token.Token == "" {
		return errors.New("token is required")
	}
	now := time.Now()
	token.UpdatedAt = now
	if token.CreatedAt.IsZero() {
		token.CreatedAt = now
	}
	return u.tokenRepo.Save(ctx, token)
}

func (u *pushUsecase) UnregisterToken(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("token is required")
	}
	return u.tokenRepo.Delete(ctx, token)
}

func (u *pushUsecase) RecentLogs(ctx context.Context, limit int) ([]domain.DeliveryAttemptLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return u.logRepo.Recent(ctx, limit)
}

func (u *pushUsecase) SweepTokens(ctx context.Context) (int, error) {
	tokens, err := u.tokenRepo.List(ctx)
	if err != nil {
		return 0, err
	}

	_, stale := Deduplicate(tokens)
	if len(stale) == 0 {
		return 0, nil
	}
	if err := u.tokenRepo.DeleteBatch(ctx, tokenIDs(stale)); err != nil {
		return 0, err
	}
	return len(stale), nil
}
