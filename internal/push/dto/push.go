package dto

import "pakora-chat-backend/internal/push/domain"

// RegisterTokenRequest is the client payload for saving/refreshing a token.
type RegisterTokenRequest struct {
	Token     string `json:"token" binding:"required"`
	UserID    string `json:"user_id" binding:"required"`
	DeviceID  string `json:"device_id"`
	Platform  string `json:"platform"`
	UserAgent string `json:"user_agent"`
}

// LogsResponse wraps the recent audit records.
type LogsResponse struct {
	Logs  []domain.DeliveryAttemptLog `json:"logs"`
	Limit int                         `json:"limit"`
}
