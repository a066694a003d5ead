package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/VikaVinogradova/PM-24-6/pkg/config"
	"github.com/VikaVinogradova/PM-24-6/pkg/logger"
	"github.com/VikaVinogradova/PM-24-6/pkg/metrics"
	"github.com/VikaVinogradova/PM-24-6/pkg/observability"
	"github.com/VikaVinogradova/PM-24-6/pkg/storage"
)

var version = "0.1.0"

// app carries the state shared by every subcommand of one invocation.
type app struct {
	v         *viper.Viper
	cfg       *config.Config
	log       *zap.Logger
	collector *metrics.Collector
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "tabula",
		Short: "tabula - small in-memory tables with pluggable file formats",
		Long: `tabula loads, prints, converts, splits and concatenates tables stored as
CSV, Avro, Arrow or JSON files, optionally compressed.

Settings come from --config (YAML), then TABULA_* environment variables,
then command line flags.`,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.setup(cmd) },
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "Path to a YAML configuration file")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.Bool("trace", false, "Export OpenTelemetry spans to stderr")
	flags.Bool("metrics", false, "Print storage metrics after the command")

	for _, name := range []string{"config", "log-level", "trace", "metrics"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}
	a.v.SetEnvPrefix("TABULA")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()
	_ = a.v.BindEnv("storage.format", "TABULA_FORMAT")
	_ = a.v.BindEnv("storage.max_rows", "TABULA_MAX_ROWS")
	_ = a.v.BindEnv("storage.compression", "TABULA_COMPRESSION")
	_ = a.v.BindEnv("formats.delimiter", "TABULA_DELIMITER")

	root.AddCommand(
		newVersionCommand(),
		newShowCommand(a),
		newTypesCommand(a),
		newSplitCommand(a),
		newConcatCommand(a),
		newConvertCommand(a),
		newDemoCommand(a),
	)
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "tabula v%s\n", version)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// setup builds the configuration, logger, tracer and metrics for a command.
func (a *app) setup(cmd *cobra.Command) error {
	cfg := config.NewConfig()
	if path := a.v.GetString("config"); path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	if level := a.v.GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	if a.v.IsSet("storage.format") {
		cfg.Storage.Format = a.v.GetString("storage.format")
	}
	if a.v.IsSet("storage.max_rows") {
		cfg.Storage.MaxRows = a.v.GetInt("storage.max_rows")
	}
	if a.v.IsSet("storage.compression") {
		cfg.Storage.Compression = a.v.GetString("storage.compression")
	}
	if a.v.IsSet("formats.delimiter") {
		cfg.Formats.Delimiter = a.v.GetString("formats.delimiter")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	if err := logger.Init(cfg.Logging); err != nil {
		return err
	}
	a.log = logger.With(zap.String("component", "tabula-cli"), zap.String("command", cmd.Name()))

	if a.v.GetBool("trace") {
		tc := observability.DefaultTracingConfig()
		tc.ServiceVersion = version
		tc.Writer = cmd.ErrOrStderr()
		if _, err := observability.InitTracing(tc); err != nil {
			return err
		}
	}
	a.collector = metrics.NewCollector()
	return nil
}

func (a *app) teardown(cmd *cobra.Command) error {
	if a.v.GetBool("metrics") && a.collector != nil {
		if err := printMetrics(cmd.OutOrStdout(), a.collector); err != nil {
			return err
		}
	}
	if a.v.GetBool("trace") {
		if err := observability.Shutdown(context.Background()); err != nil {
			return err
		}
	}
	_ = logger.Sync()
	return nil
}

// store opens a Store over a copy of the configuration with mutate applied,
// so per-command flags never leak into later commands.
func (a *app) store(mutate func(*config.Config)) (*storage.Store, *config.Config, error) {
	cfg := *a.cfg
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := storage.New(&cfg, storage.WithLogger(a.log), storage.WithMetrics(a.collector))
	if err != nil {
		return nil, nil, err
	}
	return s, &cfg, nil
}

func printMetrics(w io.Writer, c *metrics.Collector) error {
	families, err := c.Registry().Gather()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "\nMetrics:")
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			sort.Strings(labels)

			var value string
			switch {
			case m.GetCounter() != nil:
				value = fmt.Sprintf("%g", m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				value = fmt.Sprintf("count=%d sum=%gs", h.GetSampleCount(), h.GetSampleSum())
			default:
				continue
			}
			fmt.Fprintf(w, "  %s{%s} %s\n", mf.GetName(), strings.Join(labels, ","), value)
		}
	}
	return nil
}
