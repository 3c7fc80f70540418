package handlers

import (
	"net/http"

	"authgate/internal/middlewares"
	"authgate/internal/models"
)

// Profile handlers run behind RequireSession, so a principal is always
// present. Provider errors here surface verbatim; profile validation
// messages are meant for the UI.

func GETProfileHandler(ctx *middlewares.AppContext) {
	user := ctx.GetPrincipal()

	profile, err := ctx.Profiles.Profile(ctx.Request.Context(), user.ID)
	if err != nil {
		ctx.Logger.Warn("profile fetch failed", "user_id", user.ID, "error", err)
		ctx.SetJSONError(http.StatusBadGateway, err.Error())
		return
	}

	ctx.WriteJSON(http.StatusOK, profile)
}

func PUTProfileHandler(ctx *middlewares.AppContext) {
	user := ctx.GetPrincipal()

	var req ProfileUpdateRequest
	if err := decodeJSONBody(ctx, &req); err != nil {
		ctx.SetJSONError(http.StatusBadRequest, "Invalid request")
		return
	}

	fields := models.ProfileFields{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	profile, err := ctx.Profiles.UpdateProfile(ctx.Request.Context(), user.ID, fields)
	if err != nil {
		ctx.Logger.Warn("profile update failed", "user_id", user.ID, "error", err)
		ctx.SetJSONError(http.StatusUnprocessableEntity, err.Error())
		return
	}

	ctx.WriteJSON(http.StatusOK, profile)
}
