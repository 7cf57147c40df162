package analyzer

import (
	"time"

	"github.com/raysh454/inspectra/internal/webclient"
)

const (
	BackendSimulated = "simulated"
	BackendRemote    = "remote"

	// DefaultEndpoint is where the local analysis engine listens.
	DefaultEndpoint  = "http://127.0.0.1:8000/analyze"
	DefaultStepDelay = 800 * time.Millisecond
)

// Config selects and tunes the analysis backend.
type Config struct {
	// Backend is a registered backend name; empty means simulated.
	Backend string `yaml:"backend"`

	// Endpoint is the remote engine's analyze URL.
	Endpoint string `yaml:"endpoint"`

	// StepDelay separates simulated log events.
	StepDelay time.Duration `yaml:"step_delay"`

	// Seed makes simulated scores reproducible. Zero seeds from the clock.
	Seed uint64 `yaml:"seed"`

	WebClient webclient.Config `yaml:"webclient"`
}

// DefaultConfig returns development defaults.
func DefaultConfig() Config {
	return Config{
		Backend:   BackendSimulated,
		Endpoint:  DefaultEndpoint,
		StepDelay: DefaultStepDelay,
		WebClient: webclient.Config{
			Timeout:   60 * time.Second,
			UserAgent: "Inspectra-Dashboard/1.0",
		},
	}
}
