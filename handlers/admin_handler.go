package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"fitPerksAPI/internal/i18n"
	"fitPerksAPI/internal/types/submission"
	"fitPerksAPI/services"
)

// AdminHandler backs the review panel. The routes are intentionally
// unauthenticated, matching the deployed behavior this service mirrors;
// the panel is expected to sit behind network-level access control.
type AdminHandler struct {
	adminService   *services.AdminService
	supportService *services.SupportService
}

func NewAdminHandler(adminService *services.AdminService, supportService *services.SupportService) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		supportService: supportService,
	}
}

func (h *AdminHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := submission.Status(r.URL.Query().Get("status"))

	subs, err := h.adminService.ListSubmissions(ctx, status)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, subs)
}

func (h *AdminHandler) ApproveSubmission(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	sub, err := h.adminService.Approve(ctx, mux.Vars(r)["id"])
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, sub)
}

func (h *AdminHandler) RejectSubmission(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sub, err := h.adminService.Reject(ctx, mux.Vars(r)["id"], req.Reason)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, sub)
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	loc := i18n.ResolveLocale(r.Header.Get("Accept-Language"))

	users, err := h.adminService.ListUsers(ctx, loc)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	loc := i18n.ResolveLocale(r.Header.Get("Accept-Language"))

	view, err := h.adminService.GetUser(ctx, mux.Vars(r)["id"], loc)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, view)
}

func (h *AdminHandler) GetUserTickets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	tickets, err := h.supportService.ListForUser(ctx, mux.Vars(r)["userId"])
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, tickets)
}

func (h *AdminHandler) MarkTicketsRead(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req struct {
		TicketIDs []string `json:"ticketIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.supportService.MarkRead(ctx, req.TicketIDs); err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Tickets marked as read"})
}

func (h *AdminHandler) ReplyToTicket(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var req struct {
		UserID  string `json:"userId"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.supportService.PostAdminReply(ctx, req.UserID, req.Message)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, created)
}
