package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/technovate-fest/event-registration/registrant"
)

type Environment int

const (
	LOCAL Environment = iota
	PROD
)

type DB interface {
	registrant.Repository

	Ping(ctx context.Context) error
}

// Config carries the handler-facing settings; everything else about the
// process lives in cmd.
type Config struct {
	// Directory the stored artifacts live in, served under /uploads/.
	UploadsDir string
	// Group invite link echoed back after a successful payment upload.
	WhatsAppLink string
	// From address for confirmation emails. Empty disables sending.
	EmailFromAddress string
	// CORS allow-list for PROD. LOCAL allows everything.
	AllowedOrigins []string
}

type API struct {
	db          DB
	artifacts   registrant.ArtifactStore
	emailSender registrant.EmailSender
	logger      *slog.Logger
	env         Environment
	cfg         Config
}

func NewAPI(db DB, artifacts registrant.ArtifactStore, emailSender registrant.EmailSender, logger *slog.Logger, env Environment, cfg Config) *API {
	return &API{
		db:          db,
		artifacts:   artifacts,
		emailSender: emailSender,
		logger:      logger,
		env:         env,
		cfg:         cfg,
	}
}

// Handler builds the full routed and middleware-wrapped handler.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/registrations", a.postRegistration)
	mux.HandleFunc("GET /api/registrations/all", a.getAllRegistrations)
	mux.HandleFunc("POST /api/upload", a.postUpload)
	mux.HandleFunc("GET /get-users", a.getUsers)
	mux.HandleFunc("GET /health", a.getHealth)
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(a.cfg.UploadsDir))))

	return useMiddlewares(mux,
		a.corsMiddleware(),
		a.loggingMiddleware(),
		a.requestIdMiddleware(),
	)
}
