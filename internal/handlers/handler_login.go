package handlers

import (
	"net/http"

	"authgate/internal/authstate"
	"authgate/internal/middlewares"
)

// POSTLoginHandler performs the one-shot sign-in action. Credential cookies
// staged by the session service land on this response; the synchronizer's
// own view updates via the subscription, not from this call.
func POSTLoginHandler(ctx *middlewares.AppContext) {
	var req LoginRequest
	if err := decodeJSONBody(ctx, &req); err != nil {
		ctx.SetJSONError(http.StatusBadRequest, "Invalid request")
		return
	}

	if req.Email == "" || req.Password == "" {
		ctx.SetJSONError(http.StatusBadRequest, "Email and password are required")
		return
	}

	staged := middlewares.NewStagedCookies()
	actions := authstate.NewActions(ctx.Sessions, ctx.Logger)

	if err := actions.Login(ctx.Request.Context(), req.Email, req.Password, staged.Write); err != nil {
		ctx.Logger.Info("login rejected", "email", RedactEmail(req.Email))
		ctx.SetJSONError(http.StatusUnauthorized, authstate.GenericActionError)
		return
	}

	staged.Apply(ctx.Response)
	ctx.Logger.Info("user logged in", "email", RedactEmail(req.Email))

	ctx.WriteJSON(http.StatusOK, RedirectResponse{
		Status:   "ok",
		Redirect: middlewares.PathDashboard,
	})
}
