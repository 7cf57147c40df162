package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/raysh454/inspectra/internal/app"
	"github.com/raysh454/inspectra/internal/model"
)

type scanOptions struct {
	image     string
	backend   string
	endpoint  string
	seed      uint64
	stepDelay time.Duration
	save      bool
	asJSON    bool
}

func newScanCmd(root *rootOptions) *cobra.Command {
	opts := &scanOptions{}
	cmd := &cobra.Command{
		Use:   "scan [url]",
		Short: "Analyze a URL or screenshot and print the report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("backend") {
				cfg.Analyzer.Backend = opts.backend
			}
			if flags.Changed("endpoint") {
				cfg.Analyzer.Endpoint = opts.endpoint
			}
			if flags.Changed("seed") {
				cfg.Analyzer.Seed = opts.seed
			}
			if flags.Changed("step-delay") {
				cfg.Analyzer.StepDelay = opts.stepDelay
			}
			if root.logLevel == "" {
				cfg.LogLevel = "warn"
			}

			var rawURL string
			if len(args) == 1 {
				rawURL = args[0]
			}
			return runScan(cmd, cfg, rawURL, opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.image, "image", "", "screenshot file to analyze instead of a URL")
	f.StringVar(&opts.backend, "backend", "", "analysis backend (simulated|remote)")
	f.StringVar(&opts.endpoint, "endpoint", "", "remote engine analyze URL")
	f.Uint64Var(&opts.seed, "seed", 0, "seed for simulated scores")
	f.DurationVar(&opts.stepDelay, "step-delay", 0, "delay between simulated steps")
	f.BoolVar(&opts.save, "save", false, "archive the completed scan into history")
	f.BoolVar(&opts.asJSON, "json", false, "print the final session as JSON")
	return cmd
}

func runScan(cmd *cobra.Command, cfg *app.Config, rawURL string, opts *scanOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	img, err := loadImage(opts.image)
	if err != nil {
		return err
	}

	dash, err := app.Open(ctx, cfg, newLogger(cmd.ErrOrStderr(), cfg.LogLevel))
	if err != nil {
		return err
	}
	defer dash.Close()

	events, cancel := dash.Subscribe(512)
	defer cancel()

	if _, err := dash.Analyze(model.NewTarget(rawURL, img)); err != nil {
		return err
	}

	if !opts.asJSON {
		printLive(ctx.Done(), out, events)
	}
	dash.Wait()
	snap := dash.Session()

	var archived *model.HistoryEntry
	if opts.save {
		if archived, _, err = dash.NewProject(ctx); err != nil {
			return err
		}
	}

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return err
		}
	} else {
		printReport(out, snap)
		if archived != nil {
			fmt.Fprintf(out, "%s %d\n", styleLabel.Render("Saved to history as"), archived.ID)
		}
	}

	if snap.Status == model.StatusError {
		return errors.New("analysis failed")
	}
	return nil
}

func loadImage(path string) (*model.ImageRef, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()
	img, err := model.NewImageRef(filepath.Base(path), mime.TypeByExtension(filepath.Ext(path)), f)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if img == nil {
		return nil, fmt.Errorf("image %s is empty", path)
	}
	return img, nil
}

// printLive echoes log events until the run reaches a terminal status.
func printLive(done <-chan struct{}, out io.Writer, events <-chan model.DashboardEvent) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch {
			case ev.Type == model.DashboardEventLog && ev.Log != nil:
				fmt.Fprintln(out, styleLabel.Render(ev.Log.String()))
			case ev.Type == model.DashboardEventStatus && ev.Status.Terminal():
				return
			}
		case <-done:
			return
		}
	}
}

func printReport(out io.Writer, s model.Session) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %s\n", styleLabel.Render("Target:"), styleValue.Render(s.Target.DisplayName()))
	fmt.Fprintf(out, "%s %s\n", styleLabel.Render("Status:"), badge(s.StatusLabel, s.StatusStyle))
	if s.Score == nil {
		return
	}
	fmt.Fprintf(out, "%s %s\n", styleLabel.Render("Score: "), styleValue.Render(fmt.Sprintf("%d/100", *s.Score)))

	fmt.Fprintln(out, styleHeading.Render("Issues"))
	if len(s.Issues) == 0 {
		fmt.Fprintln(out, "  No issues detected! Quality is optimal.")
	}
	for _, is := range s.Issues {
		sev := ""
		if is.Severity != "" {
			sev = severityStyle(is.Severity).Render("["+is.Severity+"]") + " "
		}
		fmt.Fprintf(out, "  • %s%s: %s\n", sev, styleValue.Render(is.Category), is.Description)
	}

	if len(s.Suggestions) > 0 {
		fmt.Fprintln(out, styleHeading.Render("Suggestions"))
		for _, sg := range s.Suggestions {
			fmt.Fprintf(out, "  - %s\n", sg)
		}
	}
}
