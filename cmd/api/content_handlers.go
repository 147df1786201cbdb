package main

import (
	"errors"
	"net/http"

	"reelist/proj/internal/domain/filters"
	"reelist/proj/internal/services/catalog"
)

func (app *Application) listContent(w http.ResponseWriter, r *http.Request) {
	var f filters.Filters
	// non-numeric page/limit fall back to defaults rather than failing
	if err := app.queryDecoder.Decode(&f, r.URL.Query()); err != nil {
		f = filters.Filters{Search: r.URL.Query().Get("search")}
	}
	f.Normalize()
	items, metadata, err := app.Services.Catalog.List(r.Context(), f)
	if err != nil {
		app.Http.ServerError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelope{
		"items":      items,
		"page":       metadata.CurrentPage,
		"totalPages": metadata.TotalPages,
		"total":      metadata.TotalRecords,
		"searchTerm": f.Search,
	})
}

func (app *Application) getContent(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r, "id")
	if !ok {
		return
	}
	content, err := app.Services.Catalog.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrContentNotFound) {
			app.Http.NotFound(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err)
		return
	}
	app.Http.Ok(w, r, content)
}
