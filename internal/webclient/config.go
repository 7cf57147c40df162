package webclient

import "time"

// Config controls the net/http backed client.
type Config struct {
	// Timeout bounds a whole exchange including reading the body. Zero means 30s.
	Timeout time.Duration `yaml:"timeout"`

	// UserAgent is sent on every request when set.
	UserAgent string `yaml:"user_agent"`

	// MaxBodyBytes caps how much of a response body is read. Zero means 10 MiB.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

const (
	defaultTimeout      = 30 * time.Second
	defaultMaxBodyBytes = 10 << 20
)
