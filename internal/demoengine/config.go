package demoengine

import "time"

// Config holds configuration for the demo engine.
type Config struct {
	// Port is the port on which the demo engine listens.
	Port int

	// Latency is added before every analyze response.
	Latency time.Duration
}

// DefaultConfig matches the endpoint the remote analyzer calls by default.
func DefaultConfig() Config {
	return Config{
		Port:    8000,
		Latency: 1500 * time.Millisecond,
	}
}
