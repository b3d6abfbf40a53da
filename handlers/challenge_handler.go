package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"fitPerksAPI/internal/i18n"
	"fitPerksAPI/middleware"
	"fitPerksAPI/services"
	"fitPerksAPI/utils"
)

type ChallengeHandler struct {
	challengeService *services.ChallengeService
	uploadDir        string
	baseURL          string
}

func NewChallengeHandler(challengeService *services.ChallengeService, uploadDir, baseURL string) *ChallengeHandler {
	return &ChallengeHandler{
		challengeService: challengeService,
		uploadDir:        uploadDir,
		baseURL:          baseURL,
	}
}

func (h *ChallengeHandler) ListChallenges(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	loc := i18n.ResolveLocale(r.Header.Get("Accept-Language"))

	challenges, err := h.challengeService.ListChallenges(ctx, loc)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, challenges)
}

func (h *ChallengeHandler) JoinChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req struct {
		ChallengeID string `json:"challengeId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ChallengeID == "" {
		respondWithError(w, http.StatusBadRequest, "challengeId is required")
		return
	}

	loc := i18n.ResolveLocale(r.Header.Get("Accept-Language"))

	view, err := h.challengeService.Join(ctx, userID, req.ChallengeID, loc)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, view)
}

func (h *ChallengeHandler) CancelChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	loc := i18n.ResolveLocale(r.Header.Get("Accept-Language"))

	view, err := h.challengeService.Cancel(ctx, userID, loc)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, view)
}

func (h *ChallengeHandler) SubmitChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	_, fileHeader, err := r.FormFile("completionImage")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "completionImage file is required")
		return
	}

	filename, err := utils.SaveUploadedImage(fileHeader, h.uploadDir)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	sub, err := h.challengeService.Submit(ctx, userID, h.baseURL+"/uploads/"+filename)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, sub)
}
