package main

import (
	"net/http"

	"reelist/proj/internal/lib/validator"
)

type saveProgressInput struct {
	ContentID int64 `json:"contentId" validate:"required,gt=0" errorMsg:"contentId is required"`
	// pointer so an explicit 0 still counts as provided
	ProgressSeconds *int `json:"progressSeconds" validate:"required,gte=0" errorMsg:"progressSeconds is required"`
	DurationSeconds int  `json:"durationSeconds" validate:"required,gt=0" errorMsg:"durationSeconds is required"`
}

func (app *Application) continueWatching(w http.ResponseWriter, r *http.Request) {
	user := app.currentUser(r)
	items, err := app.Services.Progress.ContinueWatching(r.Context(), user.ID)
	if err != nil {
		app.Http.ServerError(w, r, err)
		return
	}
	app.Http.Ok(w, r, items)
}

func (app *Application) saveProgress(w http.ResponseWriter, r *http.Request) {
	var input saveProgressInput
	if err := app.readJSON(w, r, &input); err != nil {
		app.Http.BadRequest(w, r, err.Error())
		return
	}
	if errs := validator.ValidateStruct(app.validator, input); errs != nil {
		app.Http.ValidationFailed(w, r, errs)
		return
	}
	user := app.currentUser(r)
	record, err := app.Services.Progress.Save(r.Context(), user.ID, input.ContentID, *input.ProgressSeconds, input.DurationSeconds)
	if err != nil {
		app.Http.ServerError(w, r, err)
		return
	}
	app.Http.Ok(w, r, record)
}

func (app *Application) getProgress(w http.ResponseWriter, r *http.Request) {
	contentID, ok := app.extractIDParam(w, r, "contentId")
	if !ok {
		return
	}
	user := app.currentUser(r)
	record, err := app.Services.Progress.Get(r.Context(), user.ID, contentID)
	if err != nil {
		app.Http.ServerError(w, r, err)
		return
	}
	app.Http.Ok(w, r, record)
}

func (app *Application) removeProgress(w http.ResponseWriter, r *http.Request) {
	contentID, ok := app.extractIDParam(w, r, "contentId")
	if !ok {
		return
	}
	user := app.currentUser(r)
	if err := app.Services.Progress.Remove(r.Context(), user.ID, contentID); err != nil {
		app.Http.ServerError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelope{"message": "Progress removed"})
}
