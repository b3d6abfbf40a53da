package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"fitPerksAPI/internal/i18n"
	"fitPerksAPI/middleware"
	"fitPerksAPI/services"
)

type RewardHandler struct {
	rewardService *services.RewardService
}

func NewRewardHandler(rewardService *services.RewardService) *RewardHandler {
	return &RewardHandler{
		rewardService: rewardService,
	}
}

func (h *RewardHandler) ListRewards(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	loc := i18n.ResolveLocale(r.Header.Get("Accept-Language"))

	rewards, err := h.rewardService.ListRewards(ctx, loc)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, rewards)
}

func (h *RewardHandler) RedeemReward(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req struct {
		RewardID string `json:"rewardId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RewardID == "" {
		respondWithError(w, http.StatusBadRequest, "rewardId is required")
		return
	}

	result, err := h.rewardService.Redeem(ctx, userID, req.RewardID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
