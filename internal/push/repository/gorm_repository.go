package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pakora-chat-backend/internal/push/domain"
)

// gormTokenRepository implements TokenRepository on Postgres.
type gormTokenRepository struct {
	db *gorm.DB
}

// NewGormTokenRepository creates a Postgres-backed token repository.
func NewGormTokenRepository(db *gorm.DB) TokenRepository {
	return &gormTokenRepository{
		db: db,
	}
}

func (r *gormTokenRepository) List(ctx context.Context) ([]domain.PushToken, error) {
	var tokens []domain.PushToken
	err := r.db.WithContext(ctx).Find(&tokens).Error
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

// Save saves or refreshes a push token (atomic upsert).
func (r *gormTokenRepository) Save(ctx context.Context, token domain.PushToken) error {
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}

	// Atomic upsert: INSERT ... ON CONFLICT (token) DO UPDATE
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "device_id", "platform", "user_agent", "updated_at"}),
	}).Create(&token).Error
}

func (r *gormTokenRepository) Delete(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Where("token = ?", token).Delete(&domain.PushToken{}).Error
}

func (r *gormTokenRepository) DeleteBatch(ctx context.Context, tokens []string) error {
	if len(tokens) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("token IN ?", tokens).Delete(&domain.PushToken{}).Error
}

// gormLogRepository implements LogRepository on Postgres.
type gormLogRepository struct {
	db *gorm.DB
}

// NewGormLogRepository creates a Postgres-backed audit log repository.
func NewGormLogRepository(db *gorm.DB) LogRepository {
	return &gormLogRepository{
		db: db,
	}
}

func (r *gormLogRepository) Append(ctx context.Context, entry *domain.DeliveryAttemptLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *gormLogRepository) Recent(ctx context.Context, limit int) ([]domain.DeliveryAttemptLog, error) {
	var entries []domain.DeliveryAttemptLog
	err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
