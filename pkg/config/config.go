package config

import (
	"time"

	"github.com/sirupsen/logrus"
)

type Config interface {
	DefaultChargingMode() string
	ControlMagSafeLED() bool
	AllowNonRootAccess() bool
	LoopInterval() time.Duration

	SetDefaultChargingMode(string)
	SetControlMagSafeLED(bool)
	SetAllowNonRootAccess(bool)

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error

	// LogrusFields returns the configuration as structured log fields.
	LogrusFields() logrus.Fields
}
