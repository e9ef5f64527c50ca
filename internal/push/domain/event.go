package domain

// DeliveryEvent is the read-only input to one fan-out invocation: a chat
// message or note document that was just created.
type DeliveryEvent struct {
	ID          string   `json:"id"`
	SenderID    string   `json:"sender_id"`
	SenderLabel string   `json:"sender_label"`
	Text        string   `json:"text"`
	// Recipients optionally restricts delivery to these user ids.
	// Empty means broadcast to everyone except the sender.
	Recipients []string `json:"recipients,omitempty"`
}
