package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/intelleges/iaos-website-sub000/internal/infra/http/middleware"
	"github.com/intelleges/iaos-website-sub000/internal/usecase"
)

const (
	SignatureHeader = "X-Email-Webhook-Signature"
	TimestampHeader = "X-Email-Webhook-Timestamp"
)

// WebhookHandler ingests delivery-provider event batches. Signature
// verification only runs when a secret is configured; the provider sends
// hex(HMAC-SHA256(timestamp + body)).
type WebhookHandler struct {
	UseCase *usecase.ProcessEmailEventsUseCase
	Secret  string
}

func NewWebhookHandler(uc *usecase.ProcessEmailEventsUseCase, secret string) *WebhookHandler {
	return &WebhookHandler{UseCase: uc, Secret: secret}
}

func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Message: "empty payload"})
		return
	}

	if h.Secret != "" && !h.verifySignature(r, body) {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Success: false, Code: "invalid_signature", Message: "signature verification failed"})
		return
	}

	events, err := parseEvents(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Success: false, Message: "invalid event payload"})
		return
	}

	output := h.UseCase.Execute(r.Context(), events)
	middleware.RecordEmailEvents(output.Processed, output.Failed)

	// Structurally valid batches always get a 200, even with per-event
	// failures, so the provider does not endlessly re-deliver.
	writeJSON(w, http.StatusOK, output)
}

func (h *WebhookHandler) verifySignature(r *http.Request, body []byte) bool {
	signature := r.Header.Get(SignatureHeader)
	if signature == "" {
		return false
	}
	timestamp := r.Header.Get(TimestampHeader)

	mac := hmac.New(sha256.New, []byte(h.Secret))
	mac.Write([]byte(timestamp))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

// parseEvents accepts both a JSON array and a single event object.
func parseEvents(body []byte) ([]usecase.InboundEmailEvent, error) {
	var events []usecase.InboundEmailEvent
	if err := json.Unmarshal(body, &events); err == nil {
		return events, nil
	}

	var single usecase.InboundEmailEvent
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, err
	}
	return []usecase.InboundEmailEvent{single}, nil
}
