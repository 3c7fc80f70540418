package middlewares_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"authgate/internal/config"
	"authgate/internal/middlewares"
	"authgate/internal/mocks"
	"authgate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func buildAPIChain(t *testing.T, mw func(http.Handler) http.Handler) (*mocks.MockSessionService, http.Handler, *bool, **models.User) {
	ctrl := gomock.NewController(t)
	sessions := mocks.NewMockSessionService(ctrl)

	called := false
	var principal *models.User

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if appCtx := middlewares.GetAppContext(r); appCtx != nil {
			principal = appCtx.GetPrincipal()
		}
		w.WriteHeader(http.StatusOK)
	})

	base := middlewares.NewAppContext(context.Background(), &config.Config{}, slog.New(slog.DiscardHandler), sessions, nil)
	handler := middlewares.AppContextMiddleware(base)(mw(next))

	return sessions, handler, &called, &principal
}

func TestRequireSession_RejectsWithoutSession(t *testing.T) {
	sessions, handler, called, _ := buildAPIChain(t, middlewares.RequireSession)

	sessions.EXPECT().
		ValidateOrRefresh(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rr.Body.String())
	assert.False(t, *called)
}

func TestRequireSession_RejectsOnValidationError(t *testing.T) {
	sessions, handler, called, _ := buildAPIChain(t, middlewares.RequireSession)

	sessions.EXPECT().
		ValidateOrRefresh(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("provider unreachable"))

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, *called)
}

func TestRequireSession_AllowsWithSession(t *testing.T) {
	sessions, handler, called, principal := buildAPIChain(t, middlewares.RequireSession)

	sessions.EXPECT().
		ValidateOrRefresh(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&models.User{ID: "user-1"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, *called)
	require.NotNil(t, *principal)
	assert.Equal(t, "user-1", (*principal).ID)
}

func TestOptionalSession_ProceedsWithoutSession(t *testing.T) {
	sessions, handler, called, principal := buildAPIChain(t, middlewares.OptionalSession)

	sessions.EXPECT().
		ValidateOrRefresh(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, *called)
	assert.Nil(t, *principal)
}

func TestOptionalSession_SetsPrincipalWithSession(t *testing.T) {
	sessions, handler, called, principal := buildAPIChain(t, middlewares.OptionalSession)

	sessions.EXPECT().
		ValidateOrRefresh(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&models.User{ID: "user-2"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, *called)
	require.NotNil(t, *principal)
	assert.Equal(t, "user-2", (*principal).ID)
}

func TestOptionalSession_RelaysRotatedCookies(t *testing.T) {
	sessions, handler, _, _ := buildAPIChain(t, middlewares.OptionalSession)

	sessions.EXPECT().
		ValidateOrRefresh(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ []*http.Cookie, write middlewares.CookieWriter) (*models.User, error) {
			write("ag_access_token", "rotated", middlewares.CookieOptions{Path: "/"})
			return &models.User{ID: "user-1"}, nil
		})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "rotated", cookies[0].Value)
}
