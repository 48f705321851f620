// internal/handlers/concierge.go
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/alluracouro/allura-backend/internal/i18n"
	"github.com/alluracouro/allura-backend/internal/services"
	"github.com/alluracouro/allura-backend/internal/utils"
)

type ConciergeHandler struct {
	conciergeService *services.ConciergeService
}

func NewConciergeHandler(conciergeService *services.ConciergeService) *ConciergeHandler {
	return &ConciergeHandler{conciergeService: conciergeService}
}

// POST /concierge/chat
// Relays the gateway's SSE stream straight through to the client. Upstream
// rate-limit and quota failures come back as JSON with storefront wording so
// the chat widget can show them inline.
func (h *ConciergeHandler) Chat(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	stream, err := h.conciergeService.StreamChat(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrConciergeBusy):
			utils.ErrorResponse(c, http.StatusTooManyRequests, "CONCIERGE_BUSY",
				i18n.T(lang, i18n.KeyConciergeBusy), nil)
		case errors.Is(err, services.ErrConciergeQuota):
			utils.ErrorResponse(c, http.StatusPaymentRequired, "CONCIERGE_QUOTA",
				i18n.T(lang, i18n.KeyConciergeQuota), nil)
		case errors.Is(err, services.ErrConciergeUnavailable):
			logrus.WithError(err).Error("Concierge gateway unavailable")
			utils.ErrorResponse(c, http.StatusBadGateway, "CONCIERGE_FAILED",
				i18n.T(lang, i18n.KeyConciergeFailed), nil)
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}
	defer stream.Close()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)

	buf := make([]byte, 4096)
	for {
		n, readErr := stream.Read(buf)
		if n > 0 {
			if _, writeErr := c.Writer.Write(buf[:n]); writeErr != nil {
				return
			}
			c.Writer.Flush()
		}
		if readErr != nil {
			if readErr != io.EOF {
				logrus.WithError(readErr).Warn("Concierge stream interrupted")
			}
			return
		}
	}
}
