package handlers

import (
	"net/http"

	"authgate/internal/middlewares"
)

// GETAuthStatusHandler reports the session resolved by the OptionalSession
// middleware. It is the point-in-time "get current user" query for browser
// clients.
func GETAuthStatusHandler(ctx *middlewares.AppContext) {
	response := AuthStatusResponse{
		Authenticated: false,
	}

	user := ctx.GetPrincipal()
	if user == nil {
		ctx.WriteJSON(http.StatusUnauthorized, response)
		return
	}

	response.Authenticated = true
	response.User = user
	ctx.WriteJSON(http.StatusOK, response)
}
