package usecase

import "pakora-chat-backend/internal/push/domain"

// Deduplicate collapses token records that represent the same physical
// device to the single most recently updated one. Survivors keep the order
// their dedupe key was first seen; records with an empty token id are
// silently excluded. The superseded records are returned for deletion.
func Deduplicate(tokens []domain.PushToken) (survivors, stale []domain.PushToken) {
	winners := make(map[string]int) // dedupe key -> index into survivors
	for _, t := range tokens {
		if t.Token == "" {
			continue
		}
		key := t.DedupeKey()
		idx, ok := winners[key]
		if !ok {
			winners[key] = len(survivors)
			survivors = append(survivors, t)
			continue
		}
		// Strictly newer wins; on a tie the first-seen record is kept.
		if t.UpdatedAt.After(survivors[idx].UpdatedAt) {
			stale = append(stale, survivors[idx])
			survivors[idx] = t
		} else {
			stale = append(stale, t)
		}
	}
	return survivors, stale
}
