package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// webhookVerifier checks the shared secret sent by the trigger pipeline.
type webhookVerifier interface {
	VerifyWebhookSecret(provided string) bool
}

// WebhookHandler receives the store's trigger callbacks. The store
// already holds the data by the time a webhook fires; these endpoints
// only acknowledge and log, so future work (notifications, cache
// invalidation) has a place to hook in.
type WebhookHandler struct {
	auth webhookVerifier
	log  *slog.Logger
}

// NewWebhookHandler creates a WebhookHandler.
func NewWebhookHandler(auth webhookVerifier, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{auth: auth, log: logger.With("handler", "webhook")}
}

// webhookPayload is the generic trigger envelope.
type webhookPayload struct {
	Type      string         `json:"type"` // INSERT, UPDATE, DELETE
	Table     string         `json:"table"`
	Record    map[string]any `json:"record"`
	OldRecord map[string]any `json:"old_record"`
	Schema    string         `json:"schema_name"`
}

// EditionPublished handles POST /api/webhook/edition-published.
// Only edition inserts are processed; everything else is acknowledged
// as ignored so the trigger pipeline never retries.
func (h *WebhookHandler) EditionPublished(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decode(w, r)
	if !ok {
		return
	}

	if payload.Type != "INSERT" || payload.Table != "editions" {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ignored",
			"reason": "Not an edition insert",
		})
		return
	}

	editionDate, _ := payload.Record["edition_date"].(string)
	editionType, _ := payload.Record["edition_type"].(string)
	articleCount, _ := payload.Record["articles_selected"].(float64)

	h.log.InfoContext(r.Context(), "edition published",
		slog.String("edition_date", editionDate),
		slog.String("edition_type", editionType),
		slog.Int("articles", int(articleCount)),
	)

	writeJSON(w, http.StatusOK, map[string]string{
		"status":       "processed",
		"edition_date": editionDate,
		"edition_type": editionType,
	})
}

// ArticleUpdated handles POST /api/webhook/article-updated.
func (h *WebhookHandler) ArticleUpdated(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decode(w, r)
	if !ok {
		return
	}

	if payload.Table != "all_articles" {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ignored",
			"reason": "Not an article update",
		})
		return
	}

	articleID, _ := payload.Record["id"].(string)
	status, _ := payload.Record["status"].(string)

	h.log.InfoContext(r.Context(), "article updated",
		slog.String("article_id", articleID),
		slog.String("status", status),
	)

	writeJSON(w, http.StatusOK, map[string]string{
		"status":     "processed",
		"article_id": articleID,
	})
}

// Health handles GET /api/webhook/health.
func (h *WebhookHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "webhook"})
}

// decode verifies the shared secret and parses the payload. Reports
// whether the caller should proceed.
func (h *WebhookHandler) decode(w http.ResponseWriter, r *http.Request) (webhookPayload, bool) {
	if !h.auth.VerifyWebhookSecret(r.Header.Get("X-Webhook-Secret")) {
		writeError(w, http.StatusUnauthorized, "Invalid webhook secret")
		return webhookPayload{}, false
	}

	var payload webhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid webhook payload")
		return webhookPayload{}, false
	}

	return payload, true
}
