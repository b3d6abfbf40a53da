package handlers

import (
	"context"
	"net/http"
	"time"

	"fitPerksAPI/internal/i18n"
	"fitPerksAPI/services"
)

type DocHandler struct {
	docService *services.DocService
}

func NewDocHandler(docService *services.DocService) *DocHandler {
	return &DocHandler{
		docService: docService,
	}
}

func (h *DocHandler) GetFAQ(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	loc := i18n.ResolveLocale(r.Header.Get("Accept-Language"))

	faq, err := h.docService.ListFAQ(ctx, loc)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, faq)
}
