package domain

// PushSettings is the runtime switch stored at pushSettings/global.
// A missing document means push is enabled with no exclusions.
type PushSettings struct {
	Enabled         bool     `firestore:"enabled"`
	ExcludedUserIDs []string `firestore:"excludedUserIds"`
}

// DefaultPushSettings returns the settings used when none are stored.
func DefaultPushSettings() PushSettings {
	return PushSettings{Enabled: true}
}
