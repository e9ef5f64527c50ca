package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pakora-chat-backend/internal/push/domain"
	pushdto "pakora-chat-backend/internal/push/dto"
	"pakora-chat-backend/internal/push/usecase"
)

type stubUsecase struct {
	registered    []domain.PushToken
	registerErr   error
	unregistered  []string
	dispatchEntry *domain.DeliveryAttemptLog
	dispatchErr   error
	logs          []domain.DeliveryAttemptLog
	gotLimit      int
}

func (s *stubUsecase) HandleEvent(ctx context.Context, collection string, event domain.DeliveryEvent, source string) *domain.DeliveryAttemptLog {
	return nil
}

func (s *stubUsecase) Dispatch(ctx context.Context, collection, eventID, source string) (*domain.DeliveryAttemptLog, error) {
	if s.dispatchErr != nil {
		return nil, s.dispatchErr
	}
	return s.dispatchEntry, nil
}

func (s *stubUsecase) RegisterToken(ctx context.Context, token domain.PushToken) error {
	if s.registerErr != nil {
		return s.registerErr
	}
	s.registered = append(s.registered, token)
	return nil
}

func (s *stubUsecase) UnregisterToken(ctx context.Context, token string) error {
	s.unregistered = append(s.unregistered, token)
	return nil
}

func (s *stubUsecase) RecentLogs(ctx context.Context, limit int) ([]domain.DeliveryAttemptLog, error) {
	s.gotLimit = limit
	return s.logs, nil
}

func (s *stubUsecase) SweepTokens(ctx context.Context) (int, error) {
	return 0, nil
}

func newTestRouter(stub *stubUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewPushHandler(stub)
	r.POST("/api/push/tokens", h.RegisterToken)
	r.DELETE("/api/push/tokens/:token", h.UnregisterToken)
	r.POST("/api/push/dispatch/:collection/:id", h.DispatchEvent)
	r.GET("/api/push/logs", h.GetLogs)
	return r
}

func TestRegisterTokenHandler(t *testing.T) {
	stub := &stubUsecase{}
	r := newTestRouter(stub)

	body, _ := json.Marshal(pushdto.RegisterTokenRequest{
		Token:    "tok-1",
		UserID:   "u1",
		DeviceID: "d1",
		Platform: "web",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/push/tokens", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Firefox/140.0")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, stub.registered, 1)
	assert.Equal(t, "tok-1", stub.registered[0].Token)
	// User agent falls back to the request header
	assert.Equal(t, "Firefox/140.0", stub.registered[0].UserAgent)
}

func TestRegisterTokenHandlerRejectsMissingFields(t *testing.T) {
	r := newTestRouter(&stubUsecase{})

	req := httptest.NewRequest(http.MethodPost, "/api/push/tokens", bytes.NewReader([]byte(`{"platform":"web"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnregisterTokenHandler(t *testing.T) {
	stub := &stubUsecase{}
	r := newTestRouter(stub)

	req := httptest.NewRequest(http.MethodDelete, "/api/push/tokens/tok-9", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"tok-9"}, stub.unregistered)
}

func TestDispatchHandlerEventNotFound(t *testing.T) {
	stub := &stubUsecase{dispatchErr: usecase.ErrEventNotFound}
	r := newTestRouter(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/push/dispatch/messages/missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDispatchHandlerUnknownCollection(t *testing.T) {
	stub := &stubUsecase{dispatchErr: usecase.ErrUnknownCollection}
	r := newTestRouter(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/push/dispatch/tasks/t1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDispatchHandlerReturnsReport(t *testing.T) {
	stub := &stubUsecase{dispatchEntry: &domain.DeliveryAttemptLog{
		ID:           "log-1",
		Collection:   "messages",
		EventID:      "m1",
		TokensCount:  2,
		SuccessCount: 2,
	}}
	r := newTestRouter(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/push/dispatch/messages/m1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var entry domain.DeliveryAttemptLog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
	assert.Equal(t, "log-1", entry.ID)
	assert.Equal(t, 2, entry.SuccessCount)
}

func TestGetLogsHandler(t *testing.T) {
	stub := &stubUsecase{logs: []domain.DeliveryAttemptLog{{ID: "log-1"}, {ID: "log-2"}}}
	r := newTestRouter(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/push/logs?limit=2", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, stub.gotLimit)

	var resp pushdto.LogsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Logs, 2)
	assert.Equal(t, 2, resp.Limit)
}
