package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ytakeda/mimamori/internal/middleware"
	"github.com/ytakeda/mimamori/internal/store"
	"github.com/ytakeda/mimamori/internal/token"
)

// sessionMaxAge matches the identity provider's 5-day session cookie policy.
const sessionMaxAge = 5 * 24 * 60 * 60

type AuthHandler struct {
	guardianStore *store.GuardianStore
	sessionStore  *store.SessionStore
	verifier      token.Verifier
	secureCookies bool
	logger        *slog.Logger
}

func NewAuthHandler(gs *store.GuardianStore, ss *store.SessionStore, v token.Verifier, secureCookies bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		guardianStore: gs,
		sessionStore:  ss,
		verifier:      v,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// Check reports whether the caller has completed setup. Guardian-row
// existence is the signal distinguishing new from returning users.
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	raw := bearerToken(r)
	if raw == "" {
		writeError(w, http.StatusBadRequest, "missing auth token")
		return
	}

	uid, err := h.verifier.Verify(r.Context(), raw)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid auth token")
		return
	}

	g, err := h.guardianStore.GetByUID(uid)
	if err != nil {
		h.logger.Error("check guardian lookup", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if g == nil {
		writeError(w, http.StatusNotFound, "guardian not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "guardian exists"})
}

// Setup creates the guardian record on first sign-up. Create-once: a second
// call for the same uid conflicts and mutates nothing.
func (h *AuthHandler) Setup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AuthToken string `json:"authToken"`
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.AuthToken == "" || req.FirstName == "" || req.LastName == "" {
		writeError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	uid, err := h.verifier.Verify(r.Context(), req.AuthToken)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid auth token")
		return
	}

	if _, err := h.guardianStore.Create(uid, req.FirstName, req.LastName); err != nil {
		if errors.Is(err, store.ErrGuardianExists) {
			writeError(w, http.StatusConflict, "guardian already exists")
			return
		}
		h.logger.Error("create guardian", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "guardian created"})
}

// SignIn exchanges a verified ID token for a __session cookie.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		IDToken string `json:"idToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IDToken == "" {
		writeError(w, http.StatusBadRequest, "ID token is required")
		return
	}

	uid, err := h.verifier.Verify(r.Context(), req.IDToken)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "failed to create session")
		return
	}

	sess, err := h.sessionStore.Create(uid)
	if err != nil {
		h.logger.Error("create session", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookies,
	})

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// SignOut clears the __session cookie and drops the backing session row.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(middleware.SessionCookieName); err == nil && c.Value != "" {
		if err := h.sessionStore.DeleteByToken(c.Value); err != nil {
			h.logger.Error("delete session", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookies,
	})

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
