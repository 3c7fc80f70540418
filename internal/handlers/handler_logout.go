package handlers

import (
	"net/http"

	"authgate/internal/authstate"
	"authgate/internal/middlewares"
)

func POSTLogoutHandler(ctx *middlewares.AppContext) {
	staged := middlewares.NewStagedCookies()
	actions := authstate.NewActions(ctx.Sessions, ctx.Logger)

	if err := actions.Logout(ctx.Request.Context(), staged.Write); err != nil {
		ctx.SetJSONError(http.StatusInternalServerError, authstate.GenericActionError)
		return
	}

	staged.Apply(ctx.Response)

	if user := ctx.GetPrincipal(); user != nil {
		ctx.Logger.Info("user logged out", "user_id", user.ID)
	}

	ctx.WriteJSON(http.StatusOK, RedirectResponse{
		Status:   "ok",
		Redirect: middlewares.PathLogin,
	})
}
