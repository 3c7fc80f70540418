package handlers

import (
	"net/http"

	"authgate/internal/authstate"
	"authgate/internal/middlewares"
	"authgate/internal/models"
)

func POSTSignupHandler(ctx *middlewares.AppContext) {
	var req SignupRequest
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

	profile := models.ProfileFields{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	if err := actions.SignUp(ctx.Request.Context(), req.Email, req.Password, profile, staged.Write); err != nil {
		ctx.Logger.Info("signup rejected", "email", RedactEmail(req.Email))
		ctx.SetJSONError(http.StatusUnprocessableEntity, authstate.GenericActionError)
		return
	}

	staged.Apply(ctx.Response)
	ctx.Logger.Info("user signed up", "email", RedactEmail(req.Email))

	ctx.WriteJSON(http.StatusOK, RedirectResponse{
		Status:   "ok",
		Redirect: middlewares.PathDashboard,
	})
}
