package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/talfridmen/iotracer/pkg/config"
	"github.com/talfridmen/iotracer/pkg/output"
	"github.com/talfridmen/iotracer/pkg/parser"
	"github.com/talfridmen/iotracer/pkg/tracer"
	"github.com/talfridmen/iotracer/pkg/webhook"
)

// TraceOptions holds command-line options for the trace command.
type TraceOptions struct {
	Patterns       []string
	StraceFile     string
	PID            int
	Command        string
	KeepTimestamps bool

	Output  string
	OutFile string
	Config  string
	Verbose bool
	Quiet   bool

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewTraceCommand creates the trace command.
func NewTraceCommand() *cobra.Command {
	opts := &TraceOptions{}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Parse a trace and render the file I/O timeline",
		Long: `Parse strace output and render a timeline of file accesses.

The trace source is one of (mutually exclusive):
  --strace    parse an existing strace capture
  --command   run a command under strace and parse the result
  --attach    attach strace to a running process by pid

Live captures (--command, --attach) are saved to the working directory
for later re-parsing.

Exit codes:
  0 - Timeline rendered
  2 - Configuration or runtime error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(cmd, opts)
		},
	}

	// Flags
	cmd.Flags().StringSliceVarP(&opts.Patterns, "path", "p", nil, "Glob pattern for paths to follow (can be repeated, default *)")
	cmd.Flags().StringVarP(&opts.StraceFile, "strace", "s", "", "Parse an existing strace capture instead of running a command")
	cmd.Flags().IntVarP(&opts.PID, "attach", "a", 0, "Attach to a running process by pid")
	cmd.Flags().StringVarP(&opts.Command, "command", "c", "", "Command to execute and analyze")
	cmd.Flags().BoolVar(&opts.KeepTimestamps, "keep-timestamps", false, "Keep absolute timestamps instead of rebasing to zero")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (svg|json|text)")
	cmd.Flags().StringVarP(&opts.OutFile, "out-file", "f", "", "Write output to file instead of stdout")
	cmd.Flags().StringVar(&opts.Config, "config", "", "Path to YAML config file")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show per-action details in text output")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL to POST the JSON report to")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", "on_actions", "When to fire webhook (on_actions|always|never)")

	return cmd
}

func runTrace(cmd *cobra.Command, opts *TraceOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(ctx, opts.Config)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, opts, cfg)

	// Source selection must be settled before any parsing happens.
	source, err := selectSource(opts)
	if err != nil {
		return err
	}

	raw, err := acquireTrace(ctx, opts, cfg, source)
	if err != nil {
		return err
	}

	result, err := parser.Parse(strings.NewReader(raw), parser.Options{
		Patterns: cfg.Patterns,
	})
	if err != nil {
		return fmt.Errorf("parsing trace: %w", err)
	}

	report := output.NewReport(result, output.ReportOptions{
		Source:         source,
		Patterns:       cfg.Patterns,
		KeepTimestamps: cfg.KeepTimestamps,
	})

	formatter, err := createFormatter(cfg, opts)
	if err != nil {
		return err
	}

	w := os.Stdout
	if opts.OutFile != "" {
		f, err := os.Create(opts.OutFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := formatter.Format(ctx, report, w); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	// Webhook failures are logged but never fail the run.
	sendWebhook(ctx, opts, report)

	return nil
}

// loadConfig loads the config file when given, defaults otherwise.
func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	if path == "" {
		cfg := config.DefaultConfig()
		return cfg, nil
	}
	cfg, err := config.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// applyFlagOverrides layers explicitly-set flags over the config file.
func applyFlagOverrides(cmd *cobra.Command, opts *TraceOptions, cfg *config.Config) {
	if len(opts.Patterns) > 0 {
		cfg.Patterns = opts.Patterns
	}
	if cmd.Flags().Changed("keep-timestamps") {
		cfg.KeepTimestamps = opts.KeepTimestamps
	}
	if opts.Output != "" {
		cfg.Output.Format = opts.Output
	}
}

// selectSource validates that exactly one trace source was supplied
// and returns its description.
func selectSource(opts *TraceOptions) (string, error) {
	var sources []string
	if opts.StraceFile != "" {
		sources = append(sources, "--strace")
	}
	if opts.PID != 0 {
		sources = append(sources, "--attach")
	}
	if opts.Command != "" {
		sources = append(sources, "--command")
	}

	switch len(sources) {
	case 0:
		return "", fmt.Errorf("no trace source: supply one of --strace, --attach or --command")
	case 1:
	default:
		return "", fmt.Errorf("conflicting trace sources (%s): they are mutually exclusive", strings.Join(sources, ", "))
	}

	switch {
	case opts.StraceFile != "":
		return opts.StraceFile, nil
	case opts.PID != 0:
		return fmt.Sprintf("pid %d", opts.PID), nil
	default:
		return opts.Command, nil
	}
}

// acquireTrace produces the raw trace text from the selected source.
// Live captures are persisted to the working directory so a run can
// be re-parsed without re-tracing, unless save_raw is disabled.
func acquireTrace(ctx context.Context, opts *TraceOptions, cfg *config.Config, source string) (string, error) {
	if opts.StraceFile != "" {
		data, err := os.ReadFile(opts.StraceFile) // #nosec G304 -- user-provided trace path is expected
		if err != nil {
			return "", fmt.Errorf("reading trace file: %w", err)
		}
		return string(data), nil
	}

	runner := &tracer.Runner{Binary: cfg.Strace.Binary}

	var raw string
	var err error
	if opts.PID != 0 {
		raw, err = runner.Attach(ctx, opts.PID)
	} else {
		raw, err = runner.Run(ctx, opts.Command)
	}
	if err != nil {
		return "", fmt.Errorf("tracing %s: %w", source, err)
	}

	if cfg.Strace.SaveRaw {
		if path, err := tracer.SaveRaw(".", raw); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save raw trace: %v\n", err)
		} else if !opts.Quiet {
			fmt.Fprintf(os.Stderr, "Raw trace saved to %s\n", path)
		}
	}

	return raw, nil
}

func createFormatter(cfg *config.Config, opts *TraceOptions) (output.Formatter, error) {
	formatOpts := output.FormatOptions{
		Verbose:   opts.Verbose,
		Quiet:     opts.Quiet,
		Scale:     cfg.Output.Scale,
		RowHeight: cfg.Output.RowHeight,
	}

	switch cfg.Output.Format {
	case "svg":
		return output.NewSVGFormatter(formatOpts), nil
	case "json":
		return output.NewJSONFormatter(formatOpts), nil
	case "text":
		return output.NewTextFormatter(formatOpts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use svg, json or text)", cfg.Output.Format)
	}
}

// sendWebhook posts the report to the configured endpoint.
func sendWebhook(ctx context.Context, opts *TraceOptions, report *output.Report) {
	if opts.WebhookURL == "" {
		return
	}

	if !shouldFireWebhook(opts.WebhookTrigger, report.Summary.Actions > 0) {
		return
	}

	client := webhook.NewClient()
	resp := client.Send(ctx, report, webhook.SendOptions{
		URL:   opts.WebhookURL,
		Token: opts.WebhookToken,
	})

	if resp.Success() {
		fmt.Fprintf(os.Stderr, "Webhook %s: sent (%d, %s)\n", opts.WebhookURL, resp.StatusCode, resp.Duration)
	} else {
		fmt.Fprintf(os.Stderr, "Webhook %s: failed (%v)\n", opts.WebhookURL, resp.Error)
	}
}

// shouldFireWebhook determines if a webhook should fire based on
// trigger and whether any actions were emitted.
func shouldFireWebhook(trigger string, hasActions bool) bool {
	switch trigger {
	case "always":
		return true
	case "never":
		return false
	default:
		// on_actions
		return hasActions
	}
}
