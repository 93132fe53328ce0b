package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/nomis52/sensorsim/sensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSensorReader struct {
	reading sensor.Reading
	calls   int
}

func (m *mockSensorReader) Read() sensor.Reading {
	m.calls++
	return m.reading
}

func TestSensorHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	tests := []struct {
		name       string
		reading    sensor.Reading
		wantStatus int
		wantBody   map[string]string
	}{
		{
			name:       "ok",
			reading:    sensor.Reading{Status: http.StatusOK, Body: sensor.StatusResponse{Status: "ok"}},
			wantStatus: http.StatusOK,
			wantBody:   map[string]string{"status": "ok"},
		},
		{
			name:       "disconnected",
			reading:    sensor.Reading{Status: http.StatusInternalServerError, Body: sensor.ErrorResponse{Error: "sensor disconnected"}},
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]string{"error": "sensor disconnected"},
		},
		{
			name:       "data",
			reading:    sensor.Reading{Status: http.StatusOK, Body: sensor.DataResponse{Data: "XXXX"}},
			wantStatus: http.StatusOK,
			wantBody:   map[string]string{"data": "XXXX"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &mockSensorReader{reading: tt.reading}
			handler := NewSensorHandler(logger, reader)

			req := httptest.NewRequest(http.MethodGet, "/sensor", nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Equal(t, 1, reader.calls)

			var body map[string]string
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, tt.wantBody, body)
		})
	}
}
