package domain

import "time"

// TokenResult records the gateway outcome for a single submitted token.
type TokenResult struct {
	Token        string `json:"token" firestore:"token"`
	Success      bool   `json:"success" firestore:"success"`
	ErrorCode    string `json:"error_code,omitempty" firestore:"errorCode,omitempty"`
	ErrorMessage string `json:"error_message,omitempty" firestore:"errorMessage,omitempty"`
}

// DeliveryAttemptLog is the audit record of one fan-out invocation. Exactly
// one is written per invocation, on every exit path.
type DeliveryAttemptLog struct {
	ID           string        `json:"id" firestore:"-" gorm:"primaryKey"`
	CreatedAt    time.Time     `json:"created_at" firestore:"createdAt" gorm:"index"`
	Collection   string        `json:"collection" firestore:"collection"`
	EventID      string        `json:"event_id" firestore:"eventId"`
	SenderID     string        `json:"sender_id" firestore:"senderId"`
	SenderLabel  string        `json:"sender_label" firestore:"senderLabel"`
	Text         string        `json:"text" firestore:"text"`
	Source       string        `json:"source" firestore:"source"` // "pubsub" or "http"
	TokensCount  int           `json:"tokens_count" firestore:"tokensCount"`
	SuccessCount int           `json:"success_count" firestore:"successCount"`
	FailureCount int           `json:"failure_count" firestore:"failureCount"`
	Results      []TokenResult `json:"results,omitempty" firestore:"results,omitempty" gorm:"serializer:json"`
	Note         string        `json:"note,omitempty" firestore:"note,omitempty"`
	ErrorCode    string        `json:"error_code,omitempty" firestore:"errorCode,omitempty"`
	ErrorMessage string        `json:"error_message,omitempty" firestore:"errorMessage,omitempty"`
}

func (DeliveryAttemptLog) TableName() string { return "push_logs" }
