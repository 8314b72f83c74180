// Package main provides the brickcheck binary entry point.
// Brickcheck validates Brick building models against SHACL shapes and
// reconstructs the offending data triples behind each violation.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/buildsem/brickcheck/config"
	"github.com/buildsem/brickcheck/metric"
	"github.com/buildsem/brickcheck/rdf"
	"github.com/buildsem/brickcheck/report"
	"github.com/buildsem/brickcheck/shacl"
	"github.com/buildsem/brickcheck/validate"
	"github.com/buildsem/brickcheck/watch"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "brickcheck"
)

// errNotConforming signals a clean run whose data graph failed validation.
// It maps to exit code 1 without an "Error:" line.
var errNotConforming = errors.New("data graph does not conform")

func main() {
	if err := rootCmd().Execute(); err != nil {
		if !errors.Is(err, errNotConforming) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

type options struct {
	configPath  string
	shapeGlobs  []string
	ontology    string
	inference   string
	metaSHACL   bool
	advanced    bool
	abort       bool
	debug       bool
	output      string
	noOffender  bool
	watchMode   bool
	metricsAddr string
	logLevel    string
}

func rootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "brickcheck <data.ttl>",
		Short: "Validate Brick models and report offending triples",
		Long: `Brickcheck validates a Brick building model (a Turtle data graph)
against the Brick SHACL shapes, then post-processes the validation report:
each violation is regrouped into its own sub-graph and annotated with the
data triple(s) that caused it, so the report points at the model lines to
fix rather than at abstract constraint components.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringArrayVarP(&opts.shapeGlobs, "shapes", "s", nil, "Extra SHACL shape files (doublestar globs, repeatable)")
	cmd.Flags().StringVarP(&opts.ontology, "ont-graph", "e", "", "Ontology file overriding the embedded Brick subset")
	cmd.Flags().StringVarP(&opts.inference, "inference", "i", "", "Reasoning mode: none, rdfs, owlrl, both")
	cmd.Flags().BoolVarP(&opts.metaSHACL, "metashacl", "m", false, "Validate the shapes graph before validating data")
	cmd.Flags().BoolVarP(&opts.advanced, "advanced", "a", false, "Enable SHACL Advanced Features")
	cmd.Flags().BoolVar(&opts.abort, "abort", false, "Stop at the first violation")
	cmd.Flags().BoolVarP(&opts.debug, "debug", "d", false, "Enable engine debug output")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.noOffender, "no-offender", false, "Skip offending-triple reconstruction")
	cmd.Flags().BoolVar(&opts.watchMode, "watch", false, "Revalidate whenever a watched file changes")
	cmd.Flags().StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics at this address in watch mode")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func run(dataPath string, opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	inference, err := shacl.ParseInference(cfg.Validation.Inference)
	if err != nil {
		return err
	}

	validator, err := validate.New(
		validate.WithLogger(logger),
		validate.WithAttachOffender(cfg.Validation.AttachOffender),
	)
	if err != nil {
		return fmt.Errorf("build validator: %w", err)
	}
	for _, pattern := range cfg.Validation.ShapeGlobs {
		if err := validator.AddShapeGlob(pattern); err != nil {
			return err
		}
	}

	var ontology *rdf.Graph
	if cfg.Validation.Ontology != "" {
		if ontology, err = rdf.LoadFile(cfg.Validation.Ontology); err != nil {
			return err
		}
	}

	runOnce := func() (bool, error) {
		data, err := rdf.LoadFile(dataPath)
		if err != nil {
			return false, err
		}

		outcome, err := validator.Validate(validate.Request{
			Data:         data,
			Ontology:     ontology,
			Inference:    inference,
			AbortOnError: cfg.Validation.AbortOnError,
			Advanced:     cfg.Validation.Advanced,
			MetaSHACL:    cfg.Validation.MetaSHACL,
			Debug:        opts.debug,
		})
		if err != nil {
			return false, fmt.Errorf("validate %s: %w", dataPath, err)
		}

		violations := validator.ViolationList()
		metric.RecordRun(outcome.Conforms, len(violations), validator.UnresolvedCount())

		out := os.Stdout
		if cfg.Report.Output != "" {
			f, err := os.Create(cfg.Report.Output)
			if err != nil {
				return false, fmt.Errorf("create report file: %w", err)
			}
			defer f.Close()
			out = f
		}

		if _, err := fmt.Fprint(out, outcome.Text); err != nil {
			return false, err
		}
		if !outcome.Conforms && cfg.Validation.AttachOffender {
			serializer := report.NewSerializer(violations, validator.AccumulatedNamespaces(), out)
			if err := serializer.AppendToOutput(); err != nil {
				return false, err
			}
		}
		return outcome.Conforms, nil
	}

	if !opts.watchMode {
		conforms, err := runOnce()
		if err != nil {
			return err
		}
		if !conforms {
			return errNotConforming
		}
		return nil
	}

	return runWatch(dataPath, cfg, logger, runOnce)
}

// runWatch revalidates on every settled change to the data file until
// interrupted. Validation errors are logged, not fatal, so a half-saved
// file does not kill the watch loop.
func runWatch(dataPath string, cfg *config.Config, logger *slog.Logger, runOnce func() (bool, error)) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Watch.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metric.Handler())
		server := &http.Server{Addr: cfg.Watch.MetricsAddr, Handler: mux}
		go func() {
			logger.Info("serving metrics", "addr", cfg.Watch.MetricsAddr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = server.Shutdown(shutdownCtx)
		}()
	}

	revalidate := func() {
		if _, err := runOnce(); err != nil {
			logger.Error("validation run failed", "error", err)
		}
	}
	revalidate()

	watcher, err := watch.New([]string{dataPath}, cfg.Watch.Debounce, logger, revalidate)
	if err != nil {
		return err
	}
	defer watcher.Close()

	logger.Info("watching for changes", "path", dataPath)
	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// loadConfig layers defaults, user and project config files, then CLI flags.
func loadConfig(opts options) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		if cfg, err = config.LoadFromFile(opts.configPath); err != nil {
			return nil, err
		}
	} else {
		if cfg, err = config.NewLoader(nil).Load(); err != nil {
			return nil, err
		}
	}

	if len(opts.shapeGlobs) > 0 {
		cfg.Validation.ShapeGlobs = opts.shapeGlobs
	}
	if opts.ontology != "" {
		cfg.Validation.Ontology = opts.ontology
	}
	if opts.inference != "" {
		cfg.Validation.Inference = opts.inference
	}
	cfg.Validation.MetaSHACL = cfg.Validation.MetaSHACL || opts.metaSHACL
	cfg.Validation.Advanced = cfg.Validation.Advanced || opts.advanced
	cfg.Validation.AbortOnError = cfg.Validation.AbortOnError || opts.abort
	if opts.noOffender {
		cfg.Validation.AttachOffender = false
	}
	if opts.output != "" {
		cfg.Report.Output = opts.output
	}
	if opts.metricsAddr != "" {
		cfg.Watch.MetricsAddr = opts.metricsAddr
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.debug {
		cfg.Log.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
