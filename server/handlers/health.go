package handlers

import (
	"net/http"

	"github.com/nomis52/sensorsim/buildinfo"
)

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	buildinfo.Properties
}

// HandleHealth is a simple health check handler that also reports build properties.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:     "ok",
		Properties: buildinfo.Get(),
	})
}
