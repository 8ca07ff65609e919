package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHealth(t *testing.T) {
	t.Run("reports a connected store", func(t *testing.T) {
		a := newTestAPI(&mockDB{}, &mockArtifactStore{}, &mockEmailSender{}, t.TempDir())

		rec := doRequest(t, a, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, "connected", body["database"])
		assert.NotEmpty(t, body["timestamp"])
	})

	t.Run("stays 200 but flags a disconnected store", func(t *testing.T) {
		db := &mockDB{
			PingFunc: func(ctx context.Context) error {
				return errors.New("table unreachable")
			},
		}
		a := newTestAPI(db, &mockArtifactStore{}, &mockEmailSender{}, t.TempDir())

		rec := doRequest(t, a, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, "disconnected", body["database"])
	})
}
