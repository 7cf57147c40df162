package analyzer

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/raysh454/inspectra/internal/logging"
	"github.com/raysh454/inspectra/internal/model"
)

// Simulated scores fall in [simulatedScoreMin, simulatedScoreMin+simulatedScoreSpan).
const (
	simulatedScoreMin  = 68
	simulatedScoreSpan = 25
)

var simulatedIssues = []model.Issue{
	{Category: "Accessibility", Description: "3 images are missing alt attributes.", Severity: "Minor"},
	{Category: "Performance", Description: "Largest Contentful Paint exceeds 2.5s on a throttled mobile profile.", Severity: "Major"},
	{Category: "UX/SEO", Description: "Meta description is missing or empty.", Severity: "Minor"},
	{Category: "Security", Description: "Content-Security-Policy header is not set.", Severity: "Major"},
}

var simulatedSuggestions = []string{
	"Add descriptive alt text to every content image.",
	"Preload the hero image and defer non-critical scripts to bring LCP under 2.5s.",
	"Write a unique meta description of 120 to 160 characters.",
	"Serve a Content-Security-Policy header restricting script sources.",
}

// SimulatedAnalyzer fabricates a plausible analysis locally. It is the
// default backend and needs no engine.
type SimulatedAnalyzer struct {
	delay  time.Duration
	logger logging.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedAnalyzer builds the simulated backend. rng may be nil, in
// which case one is seeded from cfg.Seed or the clock.
func NewSimulatedAnalyzer(cfg Config, logger logging.Logger, rng *rand.Rand) (*SimulatedAnalyzer, error) {
	if logger == nil {
		return nil, fmt.Errorf("simulated analyzer: nil logger")
	}
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
	delay := cfg.StepDelay
	if delay < 0 {
		delay = 0
	}
	return &SimulatedAnalyzer{
		delay:  delay,
		logger: logger.With(logging.Field{Key: "component", Value: "analyzer.simulated"}),
		rng:    rng,
	}, nil
}

func (s *SimulatedAnalyzer) Name() string { return BackendSimulated }

func (s *SimulatedAnalyzer) Close() error { return nil }

// Run emits one log per simulated step, then a result.
func (s *SimulatedAnalyzer) Run(ctx context.Context, target model.Target) <-chan model.AnalysisEvent {
	out := make(chan model.AnalysisEvent)
	go func() {
		defer close(out)
		for _, step := range simulatedSteps(target) {
			if err := sleepCtx(ctx, s.delay); err != nil {
				out <- canceledEvent(err)
				return
			}
			if !sendLog(ctx, out, step) {
				out <- canceledEvent(ctx.Err())
				return
			}
		}

		score := s.score()
		s.logger.Debug("simulated analysis finished",
			logging.Field{Key: "target", Value: target.DisplayName()},
			logging.Field{Key: "score", Value: score})

		out <- model.ResultEvent(model.Result{
			Score:       score,
			Issues:      model.CloneIssues(simulatedIssues),
			Suggestions: model.CloneStrings(simulatedSuggestions),
		})
	}()
	return out
}

func (s *SimulatedAnalyzer) score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return simulatedScoreMin + s.rng.IntN(simulatedScoreSpan)
}

func simulatedSteps(target model.Target) []string {
	var first []string
	if target.IsImage() {
		first = []string{
			fmt.Sprintf("Decoding screenshot %s...", target.Image.Name),
			"Running visual layout inspection...",
		}
	} else {
		first = []string{
			fmt.Sprintf("Resolving host for %s...", target.URL),
			"Launching headless browser context...",
			"Capturing viewport snapshot...",
		}
	}
	return append(first,
		"Traversing DOM tree...",
		"Auditing accessibility landmarks...",
		"Measuring performance budget...",
		"Compiling quality report...",
	)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// sendLog delivers a log event unless ctx ends first.
func sendLog(ctx context.Context, out chan<- model.AnalysisEvent, msg string) bool {
	select {
	case out <- model.LogEvent(msg):
		return true
	case <-ctx.Done():
		return false
	}
}

func canceledEvent(err error) model.AnalysisEvent {
	return model.FailureEvent(fmt.Sprintf("analysis canceled: %v", err), err)
}
