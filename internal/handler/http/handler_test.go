package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"shortener/internal/domain"
	"shortener/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==================== MOCKS ====================

// MockURLService is a mock implementation of URLService
type MockURLService struct {
	mock.Mock
}

func (m *MockURLService) Shorten(ctx context.Context, originalURL string) (*domain.URLMapping, error) {
	args := m.Called(ctx, originalURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.URLMapping), args.Error(1)
}

func (m *MockURLService) Resolve(ctx context.Context, shortCode string) (*domain.URLMapping, error) {
	args := m.Called(ctx, shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.URLMapping), args.Error(1)
}

func setupTestHandler() (*Handler, *MockURLService) {
	mockService := new(MockURLService)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	handler := NewHandler(mockService, logger, "http://localhost:8080")
	return handler, mockService
}

// ==================== SHORTEN TESTS ====================

func TestShorten_Success(t *testing.T) {
	// Arrange
	handler, mockService := setupTestHandler()

	mapping := &domain.URLMapping{
		ID:          1,
		ShortCode:   "aB3dE5fG",
		OriginalURL: "https://example.com/a",
	}
	mockService.On("Shorten", mock.Anything, "https://example.com/a").Return(mapping, nil)

	body := `{"original_url": "https://example.com/a"}`
	req := httptest.NewRequest("POST", "/shorten/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	// Act
	handler.Shorten(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)

	var response ShortenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "http://localhost:8080/aB3dE5fG", response.ShortURL)

	mockService.AssertExpectations(t)
}

func TestShorten_InvalidJSONBody(t *testing.T) {
	handler, mockService := setupTestHandler()

	req := httptest.NewRequest("POST", "/shorten/", bytes.NewBufferString(`{not json`))
	w := httptest.NewRecorder()

	handler.Shorten(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	mockService.AssertNotCalled(t, "Shorten")
}

func TestShorten_ValidationError(t *testing.T) {
	handler, mockService := setupTestHandler()

	mockService.On("Shorten", mock.Anything, "").Return(nil, validator.ErrEmptyURL)

	req := httptest.NewRequest("POST", "/shorten/", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()

	handler.Shorten(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response.Error, "URL cannot be empty")
}

func TestShorten_StoreError(t *testing.T) {
	handler, mockService := setupTestHandler()

	mockService.On("Shorten", mock.Anything, "https://example.com/a").
		Return(nil, errors.New("connection refused"))

	body := `{"original_url": "https://example.com/a"}`
	req := httptest.NewRequest("POST", "/shorten/", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	handler.Shorten(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	// Internal details never leak into the response
	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Internal server error", response.Error)
}

func TestShorten_CollisionCapExhausted(t *testing.T) {
	handler, mockService := setupTestHandler()

	mockService.On("Shorten", mock.Anything, "https://example.com/a").
		Return(nil, domain.ErrTooManyCollisions)

	body := `{"original_url": "https://example.com/a"}`
	req := httptest.NewRequest("POST", "/shorten/", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	handler.Shorten(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestShorten_MethodNotAllowed(t *testing.T) {
	handler, mockService := setupTestHandler()

	req := httptest.NewRequest("GET", "/shorten/", nil)
	w := httptest.NewRecorder()

	handler.Shorten(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	mockService.AssertNotCalled(t, "Shorten")
}

// ==================== REDIRECT TESTS ====================

func TestRedirect_Found(t *testing.T) {
	handler, mockService := setupTestHandler()

	mapping := &domain.URLMapping{
		ID:          1,
		ShortCode:   "aB3dE5fG",
		OriginalURL: "https://example.com/a",
	}
	mockService.On("Resolve", mock.Anything, "aB3dE5fG").Return(mapping, nil)

	req := httptest.NewRequest("GET", "/aB3dE5fG", nil)
	w := httptest.NewRecorder()

	handler.Redirect(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://example.com/a", w.Header().Get("Location"))
}

func TestRedirect_NotFound(t *testing.T) {
	handler, mockService := setupTestHandler()

	mockService.On("Resolve", mock.Anything, "zzzzzzzz").Return(nil, domain.ErrNotFound)

	req := httptest.NewRequest("GET", "/zzzzzzzz", nil)
	w := httptest.NewRecorder()

	handler.Redirect(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "URL not found", response.Error)
}

func TestRedirect_EmptyCode(t *testing.T) {
	handler, mockService := setupTestHandler()

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	handler.Redirect(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertNotCalled(t, "Resolve")
}

func TestRedirect_CaseSensitive(t *testing.T) {
	handler, mockService := setupTestHandler()

	// The code is passed to the service exactly as received; matching is
	// the store's job and is exact.
	mockService.On("Resolve", mock.Anything, "AB3DE5FG").Return(nil, domain.ErrNotFound)

	req := httptest.NewRequest("GET", "/AB3DE5FG", nil)
	w := httptest.NewRecorder()

	handler.Redirect(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertCalled(t, "Resolve", mock.Anything, "AB3DE5FG")
}

func TestRedirect_StoreError(t *testing.T) {
	handler, mockService := setupTestHandler()

	mockService.On("Resolve", mock.Anything, "aB3dE5fG").
		Return(nil, errors.New("connection refused"))

	req := httptest.NewRequest("GET", "/aB3dE5fG", nil)
	w := httptest.NewRecorder()

	handler.Redirect(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// ==================== HEALTH TESTS ====================

func TestHealthCheck(t *testing.T) {
	handler, _ := setupTestHandler()

	req := httptest.NewRequest("GET", "/health/live", nil)
	w := httptest.NewRecorder()

	handler.HealthCheck(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
}
