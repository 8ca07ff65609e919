package api

import (
	"net/http"
	"time"
)

// getHealth reports liveness plus store connectivity. A down store flips the
// database flag but not the status code; this is a liveness probe.
func (a *API) getHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	database := "connected"
	err := a.db.Ping(ctx)
	if err != nil {
		a.getLoggerOrBaseLogger(ctx).Warn("Store unreachable during health check", "error", err)
		database = "disconnected"
	}

	a.writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Database:  database,
	})
}
