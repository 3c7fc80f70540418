package middlewares

import (
	"authgate/internal/config"
	"authgate/internal/models"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

type AppContext struct {
	context.Context
	Config   *config.Config
	Logger   *slog.Logger
	Sessions SessionService
	Profiles ProfileService

	Request  *http.Request
	Response http.ResponseWriter

	principal *models.User
}

type contextKey string

const appContextKey contextKey = "appContext"

func AppContextMiddleware(baseCtx *AppContext) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestCtx := &AppContext{
				Context:  r.Context(),
				Config:   baseCtx.Config,
				Logger:   baseCtx.Logger,
				Sessions: baseCtx.Sessions,
				Profiles: baseCtx.Profiles,
				Request:  r,
				Response: w,
			}

			ctx := context.WithValue(r.Context(), appContextKey, requestCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func NewAppContext(ctx context.Context, cfg *config.Config, logger *slog.Logger, sessions SessionService, profiles ProfileService) *AppContext {
	return &AppContext{
		Context:  ctx,
		Config:   cfg,
		Logger:   logger,
		Sessions: sessions,
		Profiles: profiles,
	}
}

func GetAppContext(r *http.Request) *AppContext {
	if ctx, ok := r.Context().Value(appContextKey).(*AppContext); ok {
		return ctx
	}

	return nil
}

// SetPrincipal records the authenticated user for the remainder of this
// request. Only session validation middleware calls this.
func (ctx *AppContext) SetPrincipal(user *models.User) {
	ctx.principal = user
}

func (ctx *AppContext) GetPrincipal() *models.User {
	return ctx.principal
}

type AppHandler func(*AppContext)

// HandlerFunc converts an AppHandler to an http.HandlerFunc
func (ctx *AppContext) HandlerFunc(h AppHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appCtx := GetAppContext(r)
		if appCtx == nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		h(appCtx)
	}
}

func (ctx *AppContext) Redirect(url string, status int) {
	http.Redirect(ctx.Response, ctx.Request, url, status)
}

func (ctx *AppContext) WriteJSON(status int, data interface{}) {
	ctx.Response.Header().Set("Content-Type", "application/json")
	ctx.Response.WriteHeader(status)
	if err := json.NewEncoder(ctx.Response).Encode(data); err != nil {
		ctx.Logger.Error("failed to marshal json", "error", err)
	}
}

func (ctx *AppContext) SetJSONError(status int, message string) {
	ctx.WriteJSON(status, map[string]string{
		"error": message,
	})
}

func (ctx *AppContext) SetJSONStatus(status int, message string) {
	ctx.WriteJSON(status, map[string]string{
		"status": message,
	})
}
