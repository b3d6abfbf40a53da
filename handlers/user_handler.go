package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"fitPerksAPI/internal/apperr"
	"fitPerksAPI/internal/i18n"
	"fitPerksAPI/internal/types/user"
	"fitPerksAPI/middleware"
	"fitPerksAPI/services"
	"fitPerksAPI/utils"
)

type UserHandler struct {
	userService *services.UserService
	uploadDir   string
	baseURL     string
}

func NewUserHandler(userService *services.UserService, uploadDir, baseURL string) *UserHandler {
	return &UserHandler{
		userService: userService,
		uploadDir:   uploadDir,
		baseURL:     baseURL,
	}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	loc := i18n.ResolveLocale(r.Header.Get("Accept-Language"))

	view, err := h.userService.GetProfile(ctx, userID, loc)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, view)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req user.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	loc := i18n.ResolveLocale(r.Header.Get("Accept-Language"))

	view, err := h.userService.UpdateProfile(ctx, userID, &req, loc)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, view)
}

func (h *UserHandler) UpdateProfilePicture(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	_, fileHeader, err := r.FormFile("profilePicture")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "profilePicture file is required")
		return
	}

	filename, err := utils.SaveUploadedImage(fileHeader, h.uploadDir)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	loc := i18n.ResolveLocale(r.Header.Get("Accept-Language"))

	view, err := h.userService.UpdateProfilePicture(ctx, userID, h.baseURL+"/uploads/"+filename, loc)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, view)
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithServiceError maps the error taxonomy to HTTP statuses.
// Anything outside the taxonomy is a 500 with a generic body so
// internals never leak to clients.
func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalidInput),
		errors.Is(err, apperr.ErrInsufficientBalance),
		errors.Is(err, apperr.ErrInvalidState):
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrInvalidCredentials),
		errors.Is(err, apperr.ErrUnauthenticated):
		respondWithError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		respondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrConflict):
		respondWithError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("Unexpected error: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}
