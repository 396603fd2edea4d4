package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Suds666/IMG2TXT/internal/service/account"
	"github.com/Suds666/IMG2TXT/internal/service/extract"
)

const healthCheckTimeout = 2 * time.Second

// Router wires HTTP endpoints to services.
type Router struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	accounts account.Service
	extracts extract.Service
	dbHealth func(context.Context) error
}

// NewRouter assembles routes with dependencies.
func NewRouter(logger *slog.Logger, accounts account.Service, extracts extract.Service, dbHealth func(context.Context) error) *Router {
	r := &Router{
		mux:      http.NewServeMux(),
		logger:   logger,
		accounts: accounts,
		extracts: extracts,
		dbHealth: dbHealth,
	}
	r.register()
	return r
}

// ServeHTTP delegates to underlying mux.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *Router) register() {
	r.mux.HandleFunc("/healthz", r.recoverWrap(r.handleHealthz))
	r.mux.HandleFunc("/upload", r.recoverWrap(r.handleUpload))
	r.mux.HandleFunc("/login", r.recoverWrap(r.handleLogin))
	r.mux.HandleFunc("/signup", r.recoverWrap(r.handleSignup))
	r.mux.HandleFunc("/forgot-password", r.recoverWrap(r.handleForgotPassword))
}

// recoverWrap turns a handler panic into a logged generic 500 so no
// internal failure escapes unformatted.
func (r *Router) recoverWrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Error("handler panic", "path", req.URL.Path, "panic", rec)
				writeStatus(w, http.StatusInternalServerError, false, "An unexpected error occurred.")
			}
		}()
		next(w, req)
	}
}

func (r *Router) handleHealthz(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		r.methodNotAllowed(w)
		return
	}
	ctx, cancel := context.WithTimeout(req.Context(), healthCheckTimeout)
	defer cancel()
	if err := r.dbHealth(ctx); err != nil {
		r.logger.Error("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (r *Router) handleUpload(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	file, header, err := req.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	text, err := r.extracts.Process(req.Context(), file, header.Filename)
	if err != nil {
		r.logger.Error("text extraction failed", "filename", header.Filename, "error", err)
		writeError(w, http.StatusInternalServerError, "An error occurred during text extraction.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeStatus(w, http.StatusBadRequest, false, "invalid JSON body")
		return
	}
	if err := r.accounts.Login(req.Context(), payload.Username, payload.Password); err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			writeStatus(w, http.StatusUnauthorized, false, "Invalid credentials")
			return
		}
		r.logger.Error("login failed", "username", payload.Username, "error", err)
		writeStatus(w, http.StatusInternalServerError, false, "An error occurred during login.")
		return
	}
	writeStatus(w, http.StatusOK, true, "Login successful!")
}

func (r *Router) handleSignup(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	var payload struct {
		Username    string `json:"username"`
		Password    string `json:"password"`
		PhoneNumber string `json:"phoneNumber"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeStatus(w, http.StatusBadRequest, false, "invalid JSON body")
		return
	}
	err := r.accounts.Signup(req.Context(), payload.Username, payload.Password, payload.PhoneNumber)
	switch {
	case err == nil:
		writeStatus(w, http.StatusOK, true, "Signup successful!")
	case errors.Is(err, account.ErrUsernameTaken):
		writeStatus(w, http.StatusBadRequest, false, "Username is already taken.")
	case errors.Is(err, account.ErrMissingFields):
		writeStatus(w, http.StatusBadRequest, false, "Please provide username, password and phone number.")
	default:
		r.logger.Error("signup failed", "username", payload.Username, "error", err)
		writeStatus(w, http.StatusInternalServerError, false, "An error occurred during signup.")
	}
}

func (r *Router) handleForgotPassword(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		r.methodNotAllowed(w)
		return
	}
	var payload struct {
		Username    string `json:"username"`
		PhoneNumber string `json:"phoneNumber"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		writeStatus(w, http.StatusBadRequest, false, "invalid JSON body")
		return
	}
	err := r.accounts.ResetPassword(req.Context(), payload.Username, payload.PhoneNumber, payload.NewPassword)
	switch {
	case err == nil:
		writeStatus(w, http.StatusOK, true, "Password updated successfully!")
	case errors.Is(err, account.ErrMissingFields):
		writeStatus(w, http.StatusBadRequest, false, "Please provide both username and phone number.")
	case errors.Is(err, account.ErrUserNotFound):
		writeStatus(w, http.StatusNotFound, false, "User not found.")
	default:
		r.logger.Error("password reset failed", "username", payload.Username, "error", err)
		writeStatus(w, http.StatusInternalServerError, false, "An error occurred during password update.")
	}
}

func (r *Router) methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
