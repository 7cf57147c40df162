package interfaces

import (
	"context"

	"github.com/raysh454/inspectra/internal/model"
)

// Analyzer is the contract for analysis collaborators, simulated or remote.
//
// Run returns a lazy, non-restartable stream: zero or more model.EventLog
// events followed by exactly one model.EventResult or model.EventFailure,
// after which the channel is closed. Callers must drain the channel until
// it is closed. Canceling ctx ends the stream with a failure.
type Analyzer interface {
	Run(ctx context.Context, target model.Target) <-chan model.AnalysisEvent

	// Name identifies the backend ("simulated", "remote", ...).
	Name() string

	// Close releases any resources held by the analyzer.
	Close() error
}
