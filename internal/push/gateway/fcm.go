package gateway

import (
	"context"
	"errors"
	"log"
	"time"

	"firebase.google.com/go/v4/errorutils"
	"firebase.google.com/go/v4/messaging"

	"pakora-chat-backend/internal/push/domain"
)

// FCM delivers multicast pushes through Firebase Cloud Messaging.
type FCM struct {
	client  *messaging.Client
	timeout time.Duration
}

// NewFCM wraps a messaging client. A timeout of 0 means no deadline is
// applied to the send call.
func NewFCM(client *messaging.Client, timeout time.Duration) *FCM {
	return &FCM{
		client:  client,
		timeout: timeout,
	}
}

// SendMulticast sends one notification to all given tokens and returns the
// per-token outcomes, aligned 1:1 with the token list. A failure of the call
// itself is returned as a *domain.TransportError.
func (g *FCM) SendMulticast(ctx context.Context, tokens []string, n domain.Notification) (*domain.MulticastResult, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: n.Data,
		Webpush: &messaging.WebpushConfig{
			Notification: &messaging.WebpushNotification{
				Title: n.Title,
				Body:  n.Body,
				Icon:  "/icon-192.svg",
			},
			FCMOptions: &messaging.WebpushFCMOptions{
				Link: n.Link,
			},
		},
	}

	response, err := g.client.SendEachForMulticast(ctx, message)
	if err != nil {
		return nil, &domain.TransportError{
			Code:    transportErrorCode(err),
			Message: err.Error(),
		}
	}

	log.Printf("[FCM] Multicast sent: %d success, %d failures", response.SuccessCount, response.FailureCount)

	result := &domain.MulticastResult{
		SuccessCount: response.SuccessCount,
		FailureCount: response.FailureCount,
		Responses:    make([]domain.SendResponse, 0, len(response.Responses)),
	}
	for _, resp := range response.Responses {
		sr := domain.SendResponse{Success: resp.Success}
		if resp.Error != nil {
			sr.ErrorCode = tokenErrorCode(resp.Error)
			sr.ErrorMessage = resp.Error.Error()
		}
		result.Responses = append(result.Responses, sr)
	}
	return result, nil
}

// tokenErrorCode maps SDK errors onto the stable code strings the engine
// matches on. Only the first two mark a token as permanently invalid.
func tokenErrorCode(err error) string {
	switch {
	case messaging.IsUnregistered(err):
		return domain.ErrCodeTokenNotRegistered
	case errorutils.IsInvalidArgument(err):
		return domain.ErrCodeInvalidToken
	case messaging.IsQuotaExceeded(err):
		return "quota-exceeded"
	case messaging.IsSenderIDMismatch(err):
		return "sender-id-mismatch"
	case errorutils.IsUnavailable(err):
		return "unavailable"
	case errorutils.IsInternal(err):
		return "internal"
	default:
		return "unknown"
	}
}

func transportErrorCode(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "deadline-exceeded"
	case errorutils.IsUnavailable(err):
		return "unavailable"
	case messaging.IsQuotaExceeded(err):
		return "quota-exceeded"
	case messaging.IsThirdPartyAuthError(err):
		return "third-party-auth-error"
	case errorutils.IsInternal(err):
		return "internal"
	default:
		return "unknown"
	}
}
