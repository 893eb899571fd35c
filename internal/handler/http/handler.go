package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"shortener/internal/domain"
	"shortener/internal/metrics"
	"shortener/pkg/validator"
)

// URLService is the service surface the handler depends on. An interface
// here keeps the handler testable with a mock.
type URLService interface {
	Shorten(ctx context.Context, originalURL string) (*domain.URLMapping, error)
	Resolve(ctx context.Context, shortCode string) (*domain.URLMapping, error)
}

// Handler translates the HTTP surface into service calls.
type Handler struct {
	urls    URLService
	logger  *slog.Logger
	baseURL string // prefix for generated short URLs, e.g. "http://localhost:8080"
}

// NewHandler creates the HTTP handler.
func NewHandler(urls URLService, logger *slog.Logger, baseURL string) *Handler {
	return &Handler{
		urls:    urls,
		logger:  logger,
		baseURL: baseURL,
	}
}

// ShortenRequest is the body of POST /shorten/.
type ShortenRequest struct {
	OriginalURL string `json:"original_url"`
}

// ShortenResponse is the success body of POST /shorten/.
type ShortenResponse struct {
	ShortURL string `json:"short_url"`
}

// Shorten handles POST /shorten/.
//
// Responses: 200 with the short URL, 422 for a malformed body or an invalid
// original_url, 500 when the store is unavailable or code allocation
// exhausted its retry cap.
func (h *Handler) Shorten(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ShortenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}
	defer r.Body.Close()

	mapping, err := h.urls.Shorten(r.Context(), req.OriginalURL)
	if err != nil {
		if errors.Is(err, validator.ErrValidation) {
			respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.logger.Error("Failed to shorten URL", "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, ShortenResponse{
		ShortURL: fmt.Sprintf("%s/%s", h.baseURL, mapping.ShortCode),
	})
}

// Redirect handles GET /{short_code}.
//
// The code is matched exactly as given: no partial matching, no case
// folding. An unknown code is a 404 and an expected outcome, so it is only
// logged at debug level.
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	shortCode := r.URL.Path[1:]

	if shortCode == "" {
		respondError(w, http.StatusNotFound, "URL not found")
		return
	}

	mapping, err := h.urls.Resolve(r.Context(), shortCode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.logger.Debug("Short code not found", "short_code", shortCode)
			respondError(w, http.StatusNotFound, "URL not found")
			return
		}
		h.logger.Error("Failed to resolve short code", "short_code", shortCode, "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	metrics.RecordRedirect()

	// 302 rather than 301: permanent redirects get cached by browsers and
	// intermediaries, which would hide the service from its own metrics.
	http.Redirect(w, r, mapping.OriginalURL, http.StatusFound)
}

// HealthCheck handles GET /health/live.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}
