package domain

// Error codes the gateway reports for tokens that can never again receive
// messages. These are the only codes that trigger token deletion.
const (
	ErrCodeTokenNotRegistered = "registration-token-not-registered"
	ErrCodeInvalidToken       = "invalid-registration-token"
)

// PermanentTokenError reports whether a per-token error code means the token
// is permanently invalid (app uninstalled, token rotated).
func PermanentTokenError(code string) bool {
	return code == ErrCodeTokenNotRegistered || code == ErrCodeInvalidToken
}

// TransportError describes a failure of the multicast call itself, as
// opposed to per-token failures inside a successful call.
type TransportError struct {
	Code    string
	Message string
}

func (e *TransportError) Error() string { return e.Message }

// Notification is the payload handed to the multicast gateway.
type Notification struct {
	Title string
	Body  string
	Link  string // URL opened when the notification is clicked
	Data  map[string]string
}

// SendResponse is the gateway outcome for one submitted token.
type SendResponse struct {
	Success      bool
	ErrorCode    string
	ErrorMessage string
}

// MulticastResult is the gateway response for one multicast call.
// Responses is aligned 1:1 with the submitted token list.
type MulticastResult struct {
	SuccessCount int
	FailureCount int
	Responses    []SendResponse
}
