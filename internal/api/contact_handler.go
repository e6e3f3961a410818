package api

import (
	"encoding/json"
	"net/http"

	"lenslight/internal/entities"
	apperrors "lenslight/internal/errors"
	"lenslight/internal/service"
)

type ContactHandler struct {
	Service *service.ContactService
}

func NewContactHandler(svc *service.ContactService) *ContactHandler {
	return &ContactHandler{Service: svc}
}

func (h *ContactHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var req entities.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewValidationError("Invalid request payload"))
		return
	}

	if err := h.Service.SendContactMessage(req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
