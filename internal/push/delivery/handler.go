package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pakora-chat-backend/internal/push/domain"
	pushdto "pakora-chat-backend/internal/push/dto"
	"pakora-chat-backend/internal/push/usecase"
)

type PushHandler struct {
	pushUsecase usecase.PushUsecase
}

func NewPushHandler(pushUsecase usecase.PushUsecase) *PushHandler {
	return &PushHandler{
		pushUsecase: pushUsecase,
	}
}

func (h *PushHandler) RegisterToken(c *gin.Context) {
	var req pushdto.RegisterTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.UserAgent == "" {
		req.UserAgent = c.Request.UserAgent()
	}

	err := h.pushUsecase.RegisterToken(c.Request.Context(), domain.PushToken{
		Token:     req.Token,
		UserID:    req.UserID,
		DeviceID:  req.DeviceID,
		Platform:  req.Platform,
		UserAgent: req.UserAgent,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "registered"})
}

func (h *PushHandler) UnregisterToken(c *gin.Context) {
	token := c.Param("token")
	if err := h.pushUsecase.UnregisterToken(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "unregistered"})
}

// DispatchEvent re-runs the fan-out for an existing message/note document.
func (h *PushHandler) DispatchEvent(c *gin.Context) {
	collection := c.Param("collection")
	id := c.Param("id")

	entry, err := h.pushUsecase.Dispatch(c.Request.Context(), collection, id, "http")
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUnknownCollection):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *PushHandler) GetLogs(c *gin.Context) {
	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	logs, err := h.pushUsecase.RecentLogs(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, pushdto.LogsResponse{
		Logs:  logs,
		Limit: limit,
	})
}
