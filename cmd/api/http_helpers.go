package main

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"reelist/proj/internal/config"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type Http struct {
	log *slog.Logger
	cfg *config.Config
}

type envelope map[string]any

// errorResponse is the uniform failure body: a human-readable error string,
// plus per-field messages when validation fails.
type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (h *Http) setupLogPerReq(r *http.Request) *slog.Logger {
	return h.log.With(
		"request_id", middleware.GetReqID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
	)
}

func (h *Http) JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func (h *Http) Ok(w http.ResponseWriter, r *http.Request, v any) {
	h.JSON(w, r, http.StatusOK, v)
}

func (h *Http) Created(w http.ResponseWriter, r *http.Request, v any) {
	h.JSON(w, r, http.StatusCreated, v)
}

func (h *Http) Error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	h.JSON(w, r, status, errorResponse{Error: msg})
}

func (h *Http) BadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	h.Error(w, r, http.StatusBadRequest, msg)
}

func (h *Http) Unauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	h.Error(w, r, http.StatusUnauthorized, msg)
}

func (h *Http) NotFound(w http.ResponseWriter, r *http.Request, msg string) {
	h.Error(w, r, http.StatusNotFound, msg)
}

func (h *Http) Conflict(w http.ResponseWriter, r *http.Request, msg string) {
	h.Error(w, r, http.StatusConflict, msg)
}

func (h *Http) ValidationFailed(w http.ResponseWriter, r *http.Request, fields map[string]string) {
	h.JSON(w, r, http.StatusBadRequest, errorResponse{
		Error:  "Missing or invalid fields",
		Fields: fields,
	})
}

func (h *Http) ServerError(w http.ResponseWriter, r *http.Request, err error) {
	log := h.setupLogPerReq(r)
	if err != nil {
		log.Error(err.Error())
	}
	if h.cfg.Debug && err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(err.Error() + "\n" + string(debug.Stack())))
		return
	}
	h.Error(w, r, http.StatusInternalServerError, "Sorry! Can't process your request. Please try again later.")
}
