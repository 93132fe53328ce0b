// Package handlers provides HTTP handlers for the sensorsim server.
//
// Each handler is in its own file and implements http.Handler.
// Handlers use interfaces to access server dependencies, avoiding
// circular imports.
package handlers

import (
	"github.com/nomis52/sensorsim/config"
	"github.com/nomis52/sensorsim/sensor"
)

// ConfigProvider provides access to the current configuration.
type ConfigProvider interface {
	Config() *config.Config
}

// SensorReader performs a single simulated sensor read.
type SensorReader interface {
	Read() sensor.Reading
}
