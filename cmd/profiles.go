package main

import (
	"net/http"

	"github.com/siahsang/conduit/internal/auth"
	"github.com/siahsang/conduit/models"
)

func (app *application) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	var viewer string
	if user, err := auth.GetAuthenticatedUser(r); err == nil {
		viewer = user.Username
	}

	view, err := app.core.LookupProfile(r.Context(), app.readParam(r, "username"), viewer)
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	response := envelope{
		"profile": view.Profile,
		"isUser":  view.IsUser,
	}
	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) followHandler(w http.ResponseWriter, r *http.Request) {
	profile, err := app.core.FollowProfile(r.Context(), app.readParam(r, "username"))
	app.writeProfile(w, r, profile, err)
}

func (app *application) unfollowHandler(w http.ResponseWriter, r *http.Request) {
	profile, err := app.core.UnfollowProfile(r.Context(), app.readParam(r, "username"))
	app.writeProfile(w, r, profile, err)
}

func (app *application) writeProfile(w http.ResponseWriter, r *http.Request, profile *models.Profile, err error) {
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"profile": profile}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
