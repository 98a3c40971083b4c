package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ytakeda/mimamori/internal/store"
)

// alertSender abstracts the email client for tests.
type alertSender interface {
	SendSightingAlert(toEmail, elderName, location, message string) error
}

// SightingHandler receives anonymous reports from finders who scanned an
// elder's QR code and notifies the registered guardian by email.
type SightingHandler struct {
	elderStore *store.ElderStore
	sender     alertSender
	logger     *slog.Logger
}

func NewSightingHandler(es *store.ElderStore, sender alertSender, logger *slog.Logger) *SightingHandler {
	return &SightingHandler{elderStore: es, sender: sender, logger: logger}
}

func (h *SightingHandler) Report(w http.ResponseWriter, r *http.Request) {
	var req struct {
		QRID     string `json:"qrId"`
		Location string `json:"location"`
		Message  string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.QRID == "" {
		writeError(w, http.StatusBadRequest, "qrId is required")
		return
	}

	elder, err := h.elderStore.GetByQRID(req.QRID)
	if err != nil {
		h.logger.Error("sighting elder lookup", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if elder == nil {
		writeError(w, http.StatusNotFound, "unknown QR code")
		return
	}

	if err := h.sender.SendSightingAlert(elder.NotificationEmail, elder.Name, req.Location, req.Message); err != nil {
		h.logger.Error("send sighting alert", "error", err, "elder", elder.ID)
		writeError(w, http.StatusBadGateway, "failed to notify guardian")
		return
	}

	h.logger.Info("sighting reported", "elder", elder.ID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}
