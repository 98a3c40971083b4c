package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/ytakeda/mimamori/internal/middleware"
	"github.com/ytakeda/mimamori/internal/model"
	"github.com/ytakeda/mimamori/internal/register"
	"github.com/ytakeda/mimamori/internal/store"
	"github.com/ytakeda/mimamori/internal/token"
)

// uploader abstracts the media uploader for tests.
type uploader interface {
	Upload(ctx context.Context, files []register.File) ([]string, error)
}

type ElderHandler struct {
	elderStore    *store.ElderStore
	guardianStore *store.GuardianStore
	sessionStore  *store.SessionStore
	uploader      uploader
	verifier      token.Verifier
	logger        *slog.Logger
}

func NewElderHandler(es *store.ElderStore, gs *store.GuardianStore, ss *store.SessionStore, up uploader, v token.Verifier, logger *slog.Logger) *ElderHandler {
	return &ElderHandler{
		elderStore:    es,
		guardianStore: gs,
		sessionStore:  ss,
		uploader:      up,
		verifier:      v,
		logger:        logger,
	}
}

// Register runs the full registration write path in order: verify, validate,
// upload, elder insert, managed-set merge. Validation completes before any
// side effect. A failure between steps can leave orphaned uploads or an
// unindexed elder row; neither is rolled back here.
func (h *ElderHandler) Register(w http.ResponseWriter, r *http.Request) {
	raw := bearerToken(r)
	if raw == "" {
		writeError(w, http.StatusUnauthorized, "missing auth token")
		return
	}
	uid, err := h.verifier.Verify(r.Context(), raw)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid auth token")
		return
	}

	form, err := register.ParseForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed form data")
		return
	}

	reg, err := form.Validate()
	if err != nil {
		var ve *register.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "invalid submission")
		return
	}

	photoURLs, err := h.uploader.Upload(r.Context(), reg.Files)
	if err != nil {
		h.logger.Error("upload clothing photos", "error", err, "guardian", uid)
		writeError(w, http.StatusInternalServerError, "failed to upload photos")
		return
	}
	if photoURLs == nil {
		photoURLs = []string{}
	}

	elder := &model.Elder{
		ID:                      uuid.NewString(),
		GuardianID:              uid,
		Name:                    reg.Name,
		Age:                     reg.Age,
		Prefecture:              reg.Prefecture,
		City:                    reg.City,
		NotificationEmail:       reg.NotificationEmail,
		MedicalConditions:       reg.MedicalConditions,
		PhysicalCharacteristics: reg.PhysicalCharacteristics,
		ClothingPhotos:          photoURLs,
		QRID:                    uuid.NewString(),
	}

	if _, err := h.elderStore.Create(elder); err != nil {
		h.logger.Error("create elder", "error", err, "guardian", uid)
		writeError(w, http.StatusInternalServerError, "failed to register elder")
		return
	}

	// Merge runs only after the elder write committed, so the managed set
	// never references a missing elder.
	if err := h.guardianStore.AddManagedElder(uid, elder.ID); err != nil {
		h.logger.Error("merge managed elder id", "error", err, "guardian", uid, "elder", elder.ID)
		writeError(w, http.StatusInternalServerError, "failed to register elder")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"elderId": elder.ID,
		"message": "elder registered",
	})
}

// Dashboard is the two-step read: resolve the guardian's managed set, then
// batch-fetch the elder profiles. An empty set is an empty list, never an
// error. The session cookie is fully verified here, unlike the page gate.
func (h *ElderHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(middleware.SessionCookieName)
	if err != nil || c.Value == "" {
		writeError(w, http.StatusUnauthorized, "not signed in")
		return
	}

	sess, err := h.sessionStore.GetByToken(c.Value)
	if err != nil {
		h.logger.Error("session lookup", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "session expired")
		return
	}

	ids, err := h.guardianStore.ManagedElderIDs(sess.GuardianUID)
	if err != nil {
		h.logger.Error("managed elder ids", "error", err, "guardian", sess.GuardianUID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	elders, err := h.elderStore.ListByIDs(ids)
	if err != nil {
		h.logger.Error("list elders", "error", err, "guardian", sess.GuardianUID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if elders == nil {
		elders = []model.Elder{}
	}

	writeJSON(w, http.StatusOK, elders)
}
