package main

import (
	"errors"
	"net/http"

	"reelist/proj/internal/lib/validator"
	"reelist/proj/internal/services/auth"
)

type registerInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (app *Application) register(w http.ResponseWriter, r *http.Request) {
	var input registerInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationFailed(w, r, errs)
		return
	}
	user, token, err := app.Services.Auth.Signup(r.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserAlreadyExists) {
			app.Http.Conflict(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelope{"user": user, "token": token})
}

func (app *Application) login(w http.ResponseWriter, r *http.Request) {
	var input loginInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationFailed(w, r, errs)
		return
	}
	user, token, err := app.Services.Auth.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			app.Http.Unauthorized(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelope{"user": user, "token": token})
}
