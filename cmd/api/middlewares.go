package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"reelist/proj/internal/domain/models"
	"reelist/proj/internal/services/auth"

	"golang.org/x/time/rate"
)

func (app *Application) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rv := recover(); rv != nil && rv != http.ErrAbortHandler {
				err, ok := rv.(error)
				if !ok {
					err = errors.New(http.StatusText(http.StatusInternalServerError))
				}
				app.Http.ServerError(w, r, err)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (app *Application) RateLimiter(next http.Handler) http.Handler {
	const op = "middlewares.RateLimiter"
	log := app.log.With("op", op)
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}
	clients := make(map[string]*client)
	var mu sync.Mutex
	go func() {
		for {
			time.Sleep(5 * time.Minute)
			mu.Lock()
			for ip, c := range clients {
				if time.Since(c.lastSeen) > 5*time.Minute {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.cfg.Limiter.Enabled {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				app.Http.ServerError(w, r, err)
				return
			}
			mu.Lock()
			c, ok := clients[ip]
			if !ok {
				c = &client{limiter: rate.NewLimiter(rate.Limit(app.cfg.Limiter.Rps), app.cfg.Limiter.Burst)}
				clients[ip] = c
			}
			c.lastSeen = time.Now()
			mu.Unlock()
			if !c.limiter.Allow() {
				log.Warn("rate limit exceeded", "ip", ip)
				app.Http.Error(w, r, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

type CtxKey string

const CtxKeyUser CtxKey = "user"

// Authenticate resolves the Authorization header to a user and stores it in
// the request context. Requests without a header proceed as anonymous;
// rejecting them is requireAuthenticatedUser's job.
func (app *Application) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := models.AnonymousUser

		authHeader := r.Header.Get("Authorization")
		if authHeader != "" {
			const prefix = "Bearer "
			if !strings.HasPrefix(authHeader, prefix) || len(authHeader) == len(prefix) {
				app.Http.Unauthorized(w, r, "Authorization header missing or invalid")
				return
			}
			token := strings.TrimPrefix(authHeader, prefix)
			userID, err := app.Services.Auth.VerifyToken(token)
			if err != nil {
				app.Http.Unauthorized(w, r, "invalid or expired token")
				return
			}
			user, err = app.Services.Auth.GetUser(r.Context(), userID)
			if err != nil {
				if errors.Is(err, auth.ErrUserNotFound) {
					app.Http.Unauthorized(w, r, "invalid or expired token")
					return
				}
				app.Http.ServerError(w, r, err)
				return
			}
		}
		r = r.WithContext(context.WithValue(r.Context(), CtxKeyUser, user))
		next.ServeHTTP(w, r)
	})
}

func (app *Application) requireAuthenticatedUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := app.currentUser(r)
		if user == nil || user.IsAnonymous() {
			app.Http.Unauthorized(w, r, "Authorization header missing or invalid")
			return
		}
		next.ServeHTTP(w, r)
	})
}
