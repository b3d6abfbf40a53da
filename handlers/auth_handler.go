package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"fitPerksAPI/internal/i18n"
	"fitPerksAPI/internal/types/user"
	"fitPerksAPI/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req user.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	loc := i18n.ResolveLocale(r.Header.Get("Accept-Language"))

	view, token, err := h.authService.Register(ctx, &req, loc)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]any{
		"token": token,
		"user":  view,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req user.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	loc := i18n.ResolveLocale(r.Header.Get("Accept-Language"))

	view, token, err := h.authService.Login(ctx, &req, loc)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  view,
	})
}
