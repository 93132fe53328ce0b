package handlers

import (
	"log/slog"
	"net/http"
)

// SensorHandler serves simulated sensor reads as JSON.
type SensorHandler struct {
	logger *slog.Logger
	reader SensorReader
}

// NewSensorHandler creates a new SensorHandler.
func NewSensorHandler(logger *slog.Logger, reader SensorReader) *SensorHandler {
	return &SensorHandler{
		logger: logger,
		reader: reader,
	}
}

// ServeHTTP implements http.Handler.
func (h *SensorHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reading := h.reader.Read()
	if reading.Status != http.StatusOK {
		h.logger.Debug("simulated sensor failure", "status", reading.Status)
	}
	writeJSON(w, reading.Status, reading.Body)
}
