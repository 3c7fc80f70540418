package handlers

import (
	"net/http"

	"authgate/internal/middlewares"
	"authgate/internal/version"
)

func HandlerHealth(ctx *middlewares.AppContext) {
	ctx.WriteJSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.GetVersion(),
	})
}
