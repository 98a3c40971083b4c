package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ytakeda/mimamori/internal/email"
	"github.com/ytakeda/mimamori/internal/handler"
	"github.com/ytakeda/mimamori/internal/media"
	"github.com/ytakeda/mimamori/internal/middleware"
	"github.com/ytakeda/mimamori/internal/store"
	"github.com/ytakeda/mimamori/internal/token"
)

// Config holds the pieces the server wires together.
type Config struct {
	SecureCookies bool
	Media         media.Config
	Verifier      token.Verifier
	EmailClient   *email.Client
}

type Server struct {
	db           *sql.DB
	authH        *handler.AuthHandler
	elderH       *handler.ElderHandler
	sightingH    *handler.SightingHandler
	sessionStore *store.SessionStore
	logger       *slog.Logger
}

func New(db *sql.DB, cfg Config, logger *slog.Logger) *Server {
	guardianStore := store.NewGuardianStore(db)
	elderStore := store.NewElderStore(db)
	sessionStore := store.NewSessionStore(db)

	uploader := media.NewUploader(cfg.Media, logger.With("component", "media"))

	return &Server{
		db:           db,
		authH:        handler.NewAuthHandler(guardianStore, sessionStore, cfg.Verifier, cfg.SecureCookies, logger.With("component", "auth")),
		elderH:       handler.NewElderHandler(elderStore, guardianStore, sessionStore, uploader, cfg.Verifier, logger.With("component", "elder")),
		sightingH:    handler.NewSightingHandler(elderStore, cfg.EmailClient, logger.With("component", "sighting")),
		sessionStore: sessionStore,
		logger:       logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/auth/check", s.authH.Check)
	mux.HandleFunc("POST /api/auth/setup", s.authH.Setup)
	mux.HandleFunc("POST /api/auth/sign-in", s.authH.SignIn)
	mux.HandleFunc("POST /api/auth/sign-out", s.authH.SignOut)

	mux.HandleFunc("POST /api/elder/register", s.elderH.Register)
	mux.HandleFunc("GET /api/elder/dashboard", s.elderH.Dashboard)

	mux.HandleFunc("POST /api/sighting", s.sightingH.Report)

	mux.HandleFunc("GET /health", s.healthHandler)

	// Page routes go through the presence-only gate; API routes do their
	// own credential verification.
	gated := middleware.SessionGate(mux)
	return middleware.RequestLogger(s.logger.With("component", "http"))(gated)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
