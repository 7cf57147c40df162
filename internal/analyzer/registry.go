package analyzer

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/raysh454/inspectra/internal/interfaces"
	"github.com/raysh454/inspectra/internal/logging"
)

// BackendConstructor constructs an analyzer given the config and logger.
type BackendConstructor func(cfg Config, logger logging.Logger) (interfaces.Analyzer, error)

var (
	mu       sync.RWMutex
	backends = map[string]BackendConstructor{}
)

// RegisterBackend registers a named backend constructor. Name is lower-cased
// internally. Registering the same name again overwrites the previous one.
func RegisterBackend(name string, ctor BackendConstructor) {
	if name == "" || ctor == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	backends[strings.ToLower(name)] = ctor
}

// New constructs the configured backend.
func New(cfg Config, logger logging.Logger) (interfaces.Analyzer, error) {
	if logger == nil {
		return nil, errors.New("analyzer: nil logger")
	}
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if backend == "" {
		backend = BackendSimulated
	}

	mu.RLock()
	ctor, ok := backends[backend]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("analyzer backend %q not registered: available backends=%v", backend, ListBackends())
	}

	a, err := ctor(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to construct analyzer backend %q: %w", backend, err)
	}
	if a == nil {
		return nil, errors.New("analyzer constructor returned nil")
	}
	return a, nil
}

// ListBackends returns the registered backend names, sorted.
func ListBackends() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(backends))
	for k := range backends {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
