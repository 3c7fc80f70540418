package testutil

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"authgate/internal/config"
	"authgate/internal/middlewares"
	"authgate/internal/mocks"
	"authgate/internal/models"

	"go.uber.org/mock/gomock"
)

// TestContext holds everything needed for handler and middleware tests.
type TestContext struct {
	AppContext     *middlewares.AppContext
	Request        *http.Request
	Response       *httptest.ResponseRecorder
	MockController *gomock.Controller
	MockSessions   *mocks.MockSessionService
	MockProfiles   *mocks.MockProfileService
	LogHandler     *TestLogHandler
}

func NewTestContext(t *testing.T) *TestContext {
	return newTestContext(t, nil)
}

// NewTestContextWithURL creates a complete test setup with a request bound
// to the given method and URL.
func NewTestContextWithURL(t *testing.T, method, url string) *TestContext {
	req := httptest.NewRequest(method, url, nil)
	return newTestContext(t, req)
}

// NewTestContextWithBody creates a test setup whose request carries a JSON
// body.
func NewTestContextWithBody(t *testing.T, method, url string, body io.Reader) *TestContext {
	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	return newTestContext(t, req)
}

func newTestContext(t *testing.T, req *http.Request) *TestContext {
	cfg := &config.Config{}

	logHandler := NewTestLogHandler()
	logger := slog.New(logHandler)

	ctrl := gomock.NewController(t)

	mockSessions := mocks.NewMockSessionService(ctrl)
	mockProfiles := mocks.NewMockProfileService(ctrl)

	rr := httptest.NewRecorder()

	ctx := context.Background()
	if req != nil {
		ctx = req.Context()
	}

	appCtx := &middlewares.AppContext{
		Context:  ctx,
		Config:   cfg,
		Logger:   logger,
		Sessions: mockSessions,
		Profiles: mockProfiles,
		Request:  req,
		Response: rr,
	}

	return &TestContext{
		AppContext:     appCtx,
		Request:        req,
		Response:       rr,
		MockController: ctrl,
		MockSessions:   mockSessions,
		MockProfiles:   mockProfiles,
		LogHandler:     logHandler,
	}
}

// Finish should be called at the end of tests to clean up mocks
func (tc *TestContext) Finish() {
	if tc.MockController != nil {
		tc.MockController.Finish()
	}
}

// CallHandler executes a handler with the test context
func (tc *TestContext) CallHandler(handler middlewares.AppHandler) {
	handler(tc.AppContext)
}

// AssertStatus checks the HTTP status code
func (tc *TestContext) AssertStatus(t *testing.T, expectedStatus int) {
	t.Helper()
	if tc.Response.Code != expectedStatus {
		t.Errorf("Expected status %d, got %d", expectedStatus, tc.Response.Code)
	}
}

func (tc *TestContext) AssertContentType(t *testing.T, expected string) {
	t.Helper()
	got := tc.Response.Header().Get("Content-Type")
	if got != expected {
		t.Errorf("Expected content type %q, got %q", expected, got)
	}
}

func (tc *TestContext) AssertJSONField(t *testing.T, field string, expected any) {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(tc.Response.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}

	if body[field] != expected {
		t.Errorf("Expected field %q to be %v, got %v", field, expected, body[field])
	}
}

func (tc *TestContext) AssertUser(t *testing.T, field string, expected *models.User) {
	t.Helper()

	var body map[string]json.RawMessage
	if err := json.Unmarshal(tc.Response.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}

	raw, ok := body[field]
	if !ok {
		t.Fatalf("Expected field %q in response body", field)
	}

	var got models.User
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("Failed to decode user field %q: %v", field, err)
	}

	if got.ID != expected.ID || got.Email != expected.Email {
		t.Errorf("Expected user %+v, got %+v", expected, &got)
	}
}

func (tc *TestContext) AssertLogContains(t *testing.T, level slog.Level, message string) {
	t.Helper()
	if !tc.LogHandler.ContainsMessage(level, message) {
		t.Errorf("Expected to find log entry with level %v containing message: %s", level, message)
	}
}
