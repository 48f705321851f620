// internal/services/concierge_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/alluracouro/allura-backend/internal/config"
	"github.com/alluracouro/allura-backend/internal/utils"
)

// brandVoicePrompt keeps the assistant inside the storefront persona. It is
// always prepended as the system message, regardless of what the client sends.
const brandVoicePrompt = `Você é a concierge virtual da Allura, uma marca brasileira de bolsas e acessórios em couro legítimo. ` +
	`Responda sempre em português do Brasil, com tom acolhedor e sofisticado. ` +
	`Ajude com dúvidas sobre produtos, couro, cuidados com as peças, prazos de entrega e trocas. ` +
	`Nunca invente preços ou prazos: quando não souber, oriente a pessoa a falar com o atendimento. ` +
	`Não responda assuntos fora da loja.`

var (
	ErrConciergeBusy        = errors.New("concierge upstream is rate limited")
	ErrConciergeQuota       = errors.New("concierge upstream quota exhausted")
	ErrConciergeUnavailable = errors.New("concierge upstream unavailable")
)

type ConciergeService struct {
	cfg    *config.Config
	client *http.Client
}

type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

type ChatRequest struct {
	Messages []ChatMessage `json:"messages" validate:"required,min=1,dive"`
	// Optional storefront context (favorite colors, sizes, browsing hints)
	// the widget collects; folded into the system prompt upstream.
	Preferences map[string]interface{} `json:"preferences,omitempty"`
}

type upstreamMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type upstreamPayload struct {
	Model    string            `json:"model"`
	Messages []upstreamMessage `json:"messages"`
	Stream   bool              `json:"stream"`
}

func NewConciergeService(cfg *config.Config) *ConciergeService {
	return &ConciergeService{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.Concierge.Timeout) * time.Second,
		},
	}
}

// StreamChat forwards the conversation to the AI gateway and returns the
// upstream's streaming body for the caller to relay. Rate-limit and quota
// responses surface as typed errors so the handler can answer with the right
// storefront message.
func (s *ConciergeService) StreamChat(ctx context.Context, req *ChatRequest) (io.ReadCloser, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if s.cfg.Concierge.GatewayURL == "" {
		return nil, ErrConciergeUnavailable
	}

	systemPrompt := brandVoicePrompt
	if len(req.Preferences) > 0 {
		if prefs, err := json.Marshal(req.Preferences); err == nil {
			systemPrompt = systemPrompt + "\n\nPreferências informadas pela cliente: " + string(prefs)
		}
	}

	messages := make([]upstreamMessage, 0, len(req.Messages)+1)
	messages = append(messages, upstreamMessage{Role: "system", Content: systemPrompt})
	for _, m := range req.Messages {
		messages = append(messages, upstreamMessage{Role: m.Role, Content: m.Content})
	}

	payload, err := json.Marshal(upstreamPayload{
		Model:    s.cfg.Concierge.Model,
		Messages: messages,
		Stream:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode concierge payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Concierge.GatewayURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build concierge request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	if s.cfg.Concierge.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+s.cfg.Concierge.APIKey)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConciergeUnavailable, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return resp.Body, nil
	case http.StatusTooManyRequests:
		resp.Body.Close()
		return nil, ErrConciergeBusy
	case http.StatusPaymentRequired:
		resp.Body.Close()
		return nil, ErrConciergeQuota
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		resp.Body.Close()
		return nil, fmt.Errorf("%w: status %d: %s", ErrConciergeUnavailable, resp.StatusCode, string(body))
	}
}
