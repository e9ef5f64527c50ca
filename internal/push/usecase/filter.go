package usecase

import "pakora-chat-backend/internal/push/domain"

// filterRecipients narrows the token set to the event's audience. Tokens
// without an owning user are unroutable and dropped, the sender is never
// notified of their own event, and excluded users are skipped. An explicit
// recipient list restricts delivery only in FilterRecipients mode.
func filterRecipients(tokens []domain.PushToken, event domain.DeliveryEvent, mode FilterMode, excluded []string) []domain.PushToken {
	var allow map[string]bool
	if mode == FilterRecipients && len(event.Recipients) > 0 {
		allow = make(map[string]bool, len(event.Recipients))
		for _, id := range event.Recipients {
			allow[id] = true
		}
	}

	blocked := make(map[string]bool, len(excluded))
	for _, id := range excluded {
		blocked[id] = true
	}

	var eligible []domain.PushToken
	for _, t := range tokens {
		if t.Token == "" || t.UserID == "" {
			continue
		}
		if t.UserID == event.SenderID {
			continue
		}
		if blocked[t.UserID] {
			continue
		}
		if allow != nil && !allow[t.UserID] {
			continue
		}
		eligible = append(eligible, t)
	}
	return eligible
}
