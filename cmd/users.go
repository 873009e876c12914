package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/siahsang/conduit/internal/auth"
	"github.com/siahsang/conduit/internal/validator"
)

func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	type RegisterUserRequest struct {
		User auth.Registration `json:"user"`
	}

	var request RegisterUserRequest

	if err := app.readJSON(w, r, &request); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	registration := request.User
	registration.Email = strings.TrimSpace(registration.Email)
	registration.Username = strings.TrimSpace(registration.Username)

	v := validator.New()
	checkEmail(v, registration.Email)

	// check username
	v.CheckNotBlank(registration.Username, "username", "must be provided")
	v.Check(len(registration.Username) >= 5, "username", "must be at least 5 characters long")

	// check password
	v.CheckNotBlank(registration.Password, "password", "must be provided")
	v.Check(len(registration.Password) >= 8, "password", "must be at least 8 characters long")

	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	user, err := app.accounts.Register(r.Context(), registration)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, userResponse(user), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	type LoginUserRequest struct {
		User auth.Credentials `json:"user"`
	}

	var request LoginUserRequest

	if err := app.readJSON(w, r, &request); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	v := validator.New()
	checkEmail(v, request.User.Email)
	v.CheckNotBlank(request.User.Password, "password", "must be provided")

	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	user, err := app.accounts.Login(r.Context(), request.User)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			app.invalidCredentialsResponse(w, r, err)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if err := app.writeJSON(w, http.StatusOK, userResponse(user), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) getUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetAuthenticatedUser(r)
	if err != nil {
		app.authenticationRequiredResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, userResponse(user), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	type UpdateUserRequest struct {
		User auth.UserPatch `json:"user"`
	}

	var request UpdateUserRequest

	if err := app.readJSON(w, r, &request); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	patch := request.User
	v := validator.New()
	if patch.Email != nil {
		checkEmail(v, *patch.Email)
	}
	if patch.Username != nil {
		v.Check(len(strings.TrimSpace(*patch.Username)) >= 5, "username", "must be at least 5 characters long")
	}
	if patch.Password != nil {
		v.Check(len(*patch.Password) >= 8, "password", "must be at least 8 characters long")
	}

	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	user, err := app.accounts.Update(r.Context(), patch)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, userResponse(user), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func userResponse(user *auth.User) envelope {
	return envelope{"user": user}
}
