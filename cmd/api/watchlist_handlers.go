package main

import (
	"errors"
	"net/http"

	"reelist/proj/internal/lib/validator"
	"reelist/proj/internal/services/watchlist"
)

type addToWatchlistInput struct {
	ContentID int64   `json:"contentId" validate:"required,gt=0" errorMsg:"contentId is required"`
	Notes     *string `json:"notes"`
}

type updateWatchlistInput struct {
	Watched *bool   `json:"watched"`
	Notes   *string `json:"notes"`
}

func (app *Application) addToWatchlist(w http.ResponseWriter, r *http.Request) {
	var input addToWatchlistInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationFailed(w, r, errs)
		return
	}
	user := app.currentUser(r)
	entry, err := app.Services.Watchlist.AddOrUpdate(r.Context(), user.ID, input.ContentID, input.Notes)
	if err != nil {
		app.Http.ServerError(w, r, err)
		return
	}
	app.Http.Created(w, r, entry)
}

func (app *Application) getWatchlist(w http.ResponseWriter, r *http.Request) {
	user := app.currentUser(r)
	items, err := app.Services.Watchlist.List(r.Context(), user.ID)
	if err != nil {
		app.Http.ServerError(w, r, err)
		return
	}
	app.Http.Ok(w, r, items)
}

func (app *Application) updateWatchlistEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	var input updateWatchlistInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	user := app.currentUser(r)
	entry, err := app.Services.Watchlist.Update(r.Context(), user.ID, id, input.Watched, input.Notes)
	if err != nil {
		if errors.Is(err, watchlist.ErrEntryNotFound) {
			app.Http.NotFound(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err)
		return
	}
	app.Http.Ok(w, r, entry)
}

func (app *Application) removeWatchlistEntry(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	user := app.currentUser(r)
	if err := app.Services.Watchlist.Remove(r.Context(), user.ID, id); err != nil {
		if errors.Is(err, watchlist.ErrEntryNotFound) {
			app.Http.NotFound(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelope{"success": true})
}
