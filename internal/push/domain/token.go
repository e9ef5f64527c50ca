package domain

import "time"

// PushToken represents a registered FCM device token for push notifications.
// In Firestore the token string is the document id; in Postgres it is the
// primary key.
type PushToken struct {
	Token     string    `json:"-" firestore:"-" gorm:"primaryKey;column:token"` // Don't expose token in JSON
	UserID    string    `json:"user_id" firestore:"userId" gorm:"index"`
	DeviceID  string    `json:"device_id" firestore:"deviceId"`
	Platform  string    `json:"platform" firestore:"platform"`
	UserAgent string    `json:"user_agent" firestore:"userAgent"` // Browser/device metadata
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (PushToken) TableName() string { return "push_tokens" }

// DedupeKey derives the identity used to collapse duplicate registrations of
// the same physical device. Registrations collide iff their keys are equal.
func (t PushToken) DedupeKey() string {
	if t.DeviceID != "" {
		return "device:" + t.DeviceID
	}
	return "ua:" + t.UserID + "|" + t.Platform + "|" + t.UserAgent
}
