package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(context.Context) error {
	return p.err
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name     string
		pinger   fakePinger
		status   int
		health   string
		database string
	}{
		{"healthy", fakePinger{}, http.StatusOK, "healthy", "ok"},
		{"database down", fakePinger{err: errors.New("connection refused")}, http.StatusServiceUnavailable, "unhealthy", "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine()
			h := NewHealthHandler(tt.pinger, "1.2.3")
			engine.GET("/health", h.Health)

			w := doJSON(engine, http.MethodGet, "/health", nil)

			require.Equal(t, tt.status, w.Code)
			var got HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tt.health, got.Status)
			assert.Equal(t, tt.database, got.Database)
			assert.Equal(t, "1.2.3", got.Version)
		})
	}
}
