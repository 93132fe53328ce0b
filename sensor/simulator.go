package sensor

import (
	"net/http"
	"strings"
)

const (
	// FailureProbability is the chance a read fails with a disconnected sensor.
	FailureProbability = 0.10
	// LargePayloadProbability is the chance a successful read returns the large payload.
	LargePayloadProbability = 0.20
	// LargePayloadSize is the size in bytes of the large payload.
	LargePayloadSize = 5_000_000

	// ErrSensorDisconnected is the error message of a failed read.
	ErrSensorDisconnected = "sensor disconnected"
)

// ErrorResponse is the body of a failed read.
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse is the body of a read that returns the large payload.
type DataResponse struct {
	Data string `json:"data"`
}

// StatusResponse is the body of a normal successful read.
type StatusResponse struct {
	Status string `json:"status"`
}

// Reading is the outcome of a single sensor read.
type Reading struct {
	Status int
	Body   any
}

// Simulator produces sensor readings and records them in Metrics.
type Simulator struct {
	metrics *Metrics
	rand    RandomSource
	payload string
}

// NewSimulator creates a Simulator. The large payload is built here, once,
// and shared by every read.
func NewSimulator(m *Metrics, rand RandomSource) *Simulator {
	return &Simulator{
		metrics: m,
		rand:    rand,
		payload: strings.Repeat("X", LargePayloadSize),
	}
}

// Read performs one simulated sensor read. Every call counts as a request;
// failures are counted separately and reported with a 500 status.
func (s *Simulator) Read() Reading {
	s.metrics.Requests.Inc()

	if s.rand.Float64() < FailureProbability {
		s.metrics.Failures.Inc()
		return Reading{
			Status: http.StatusInternalServerError,
			Body:   ErrorResponse{Error: ErrSensorDisconnected},
		}
	}

	if s.rand.Float64() < LargePayloadProbability {
		return Reading{
			Status: http.StatusOK,
			Body:   DataResponse{Data: s.payload},
		}
	}

	return Reading{
		Status: http.StatusOK,
		Body:   StatusResponse{Status: "ok"},
	}
}
