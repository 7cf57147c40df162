package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/raysh454/inspectra/internal/logging"
	"github.com/raysh454/inspectra/internal/model"
	"github.com/raysh454/inspectra/internal/webclient"
)

const (
	remoteStartLog = "Initiating autonomous session with analysis engine..."
	remoteDoneLog  = "DOM element traversal complete."
)

// RemoteAnalyzer delegates analysis to an HTTP engine exposing POST /analyze.
type RemoteAnalyzer struct {
	endpoint string
	client   webclient.WebClient
	logger   logging.Logger
}

func NewRemoteAnalyzer(cfg Config, client webclient.WebClient, logger logging.Logger) (*RemoteAnalyzer, error) {
	if logger == nil {
		return nil, fmt.Errorf("remote analyzer: nil logger")
	}
	if client == nil {
		return nil, fmt.Errorf("remote analyzer: nil webclient")
	}
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &RemoteAnalyzer{
		endpoint: endpoint,
		client:   client,
		logger:   logger.With(logging.Field{Key: "component", Value: "analyzer.remote"}),
	}, nil
}

func (r *RemoteAnalyzer) Name() string { return BackendRemote }

func (r *RemoteAnalyzer) Close() error { return r.client.Close() }

type engineRequest struct {
	URL   string `json:"url"`
	Image string `json:"image,omitempty"`
}

type engineIssue struct {
	Type        string `json:"type"`
	Desc        string `json:"desc"`
	Description string `json:"description"`
	Sev         any    `json:"sev"`
	Severity    any    `json:"severity"`
}

type engineResponse struct {
	Score  *float64      `json:"score"`
	Issues []engineIssue `json:"issues"`
	Logs   []string      `json:"logs"`
	Fixes  []string      `json:"suggestions"`
	Error  string        `json:"error"`
}

// Run posts the target to the engine and translates its answer.
func (r *RemoteAnalyzer) Run(ctx context.Context, target model.Target) <-chan model.AnalysisEvent {
	out := make(chan model.AnalysisEvent)
	go func() {
		defer close(out)
		if !sendLog(ctx, out, remoteStartLog) {
			out <- canceledEvent(ctx.Err())
			return
		}

		res, err := r.analyze(ctx, target)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				out <- canceledEvent(ctxErr)
				return
			}
			r.logger.Warn("remote analysis failed",
				logging.Field{Key: "endpoint", Value: r.endpoint},
				logging.Field{Key: "error", Value: err})
			out <- model.FailureEvent(err.Error(), err)
			return
		}

		if !sendLog(ctx, out, remoteDoneLog) {
			out <- canceledEvent(ctx.Err())
			return
		}
		out <- model.ResultEvent(*res)
	}()
	return out
}

func (r *RemoteAnalyzer) analyze(ctx context.Context, target model.Target) (*model.Result, error) {
	payload := engineRequest{URL: target.URL}
	if target.IsImage() {
		payload = engineRequest{URL: "", Image: target.Image.Name}
	}

	resp, err := webclient.PostJSON(ctx, r.client, r.endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: engine unreachable at %s: %v", model.ErrCollaboratorUnavailable, r.endpoint, err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: engine returned HTTP %d", model.ErrCollaboratorUnavailable, resp.StatusCode)
	}

	var body engineResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil {
		return nil, fmt.Errorf("%w: malformed engine response: %v", model.ErrCollaboratorUnavailable, err)
	}
	if msg := strings.TrimSpace(body.Error); msg != "" {
		return nil, fmt.Errorf("%w: engine reported: %s", model.ErrCollaboratorUnavailable, plainText(msg))
	}
	return translate(body), nil
}

func translate(body engineResponse) *model.Result {
	issues := make([]model.Issue, 0, len(body.Issues))
	for _, ei := range body.Issues {
		desc := ei.Desc
		if desc == "" {
			desc = ei.Description
		}
		sev := normalizeSeverity(ei.Sev)
		if sev == "" {
			sev = normalizeSeverity(ei.Severity)
		}
		category := plainText(ei.Type)
		if category == "" {
			category = "General"
		}
		issues = append(issues, model.Issue{
			Category:    category,
			Description: plainText(desc),
			Severity:    sev,
		})
	}

	var score int
	if body.Score != nil && !math.IsNaN(*body.Score) {
		score = model.ClampScore(int(math.Round(*body.Score)))
	} else {
		score = HygieneScore(issues)
	}

	var logs []string
	for _, l := range body.Logs {
		if t := plainText(l); t != "" {
			logs = append(logs, t)
		}
	}

	var fixes []string
	for _, f := range body.Fixes {
		if t := plainText(f); t != "" {
			fixes = append(fixes, t)
		}
	}

	return &model.Result{Score: score, Issues: issues, Logs: logs, Suggestions: fixes}
}

// IsUnavailable reports whether err came from an unreachable or misbehaving engine.
func IsUnavailable(err error) bool {
	return errors.Is(err, model.ErrCollaboratorUnavailable)
}
