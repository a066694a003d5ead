package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/VikaVinogradova/PM-24-6/pkg/config"
	"github.com/VikaVinogradova/PM-24-6/pkg/formats"
	"github.com/VikaVinogradova/PM-24-6/pkg/logger"
	"github.com/VikaVinogradova/PM-24-6/pkg/schema"
	"github.com/VikaVinogradova/PM-24-6/pkg/table"
)

// outputFlags are the save settings shared by split, concat and convert.
type outputFlags struct {
	out         string
	format      string
	maxRows     int
	compression string
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "Output file stem; files are named STEM_1.EXT, STEM_2.EXT, ... (required)")
	cmd.Flags().StringVarP(&o.format, "format", "f", "", "Output format: csv, avro, arrow or json (default from config)")
	cmd.Flags().IntVar(&o.maxRows, "max-rows", 0, "Maximum rows per output file (default from config)")
	cmd.Flags().StringVar(&o.compression, "compression", "", "Compression: none, gzip, zstd, lz4, snappy, s2 or deflate")
	_ = cmd.MarkFlagRequired("out")
}

func (o *outputFlags) apply(cmd *cobra.Command) func(*config.Config) {
	return func(cfg *config.Config) {
		if cmd.Flags().Changed("format") {
			cfg.Storage.Format = o.format
		}
		if cmd.Flags().Changed("max-rows") {
			cfg.Storage.MaxRows = o.maxRows
		}
		if cmd.Flags().Changed("compression") {
			cfg.Storage.Compression = o.compression
		}
	}
}

// save writes t with the output flags applied over the configuration and
// prints the file names.
func (a *app) save(cmd *cobra.Command, o *outputFlags, t *table.Table, stem string) ([]string, error) {
	store, cfg, err := a.store(o.apply(cmd))
	if err != nil {
		return nil, err
	}
	f, err := formats.ParseFormat(cfg.Storage.Format)
	if err != nil {
		return nil, err
	}
	files, err := store.Save(cmd.Context(), t, cfg.Storage.MaxRows, stem, f)
	if err != nil {
		return nil, err
	}
	for _, name := range files {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return files, nil
}

func (a *app) load(cmd *cobra.Command, paths ...string) ([]*table.Table, error) {
	store, _, err := a.store(nil)
	if err != nil {
		return nil, err
	}
	ctx := logger.ContextWith(cmd.Context(), logger.OperationKey, cmd.Name())
	return store.Load(ctx, paths...)
}

func newShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show FILE...",
		Short: "Print tables loaded from files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := a.load(cmd, args...)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, t := range tables {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s:\n", args[i])
				if err := t.Print(out); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newTypesCommand(a *app) *cobra.Command {
	var infer bool
	cmd := &cobra.Command{
		Use:   "types FILE...",
		Short: "Print the detected kind of every column",
		Long: `Print the kind every column currently holds. Values read from CSV are
always text; --infer also prints the kind the text looks like.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := a.load(cmd, args...)
			if err != nil {
				return err
			}
			engine := schema.NewTypeInferenceEngine(a.log)
			out := cmd.OutOrStdout()
			for i, t := range tables {
				fmt.Fprintf(out, "%s:\n", args[i])
				writeTypes(out, t, infer, engine)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&infer, "infer", false, "Also suggest kinds by parsing text values")
	return cmd
}

func writeTypes(out io.Writer, t *table.Table, infer bool, engine *schema.TypeInferenceEngine) {
	kinds := t.AutoDetectColumnTypes()
	var inferred []*schema.InferredType
	if infer {
		inferred = engine.InferTable(t)
	}
	for i, name := range t.Columns() {
		fmt.Fprintf(out, "  %s: %s", name, kinds[i])
		if inferred != nil && inferred[i] != nil {
			in := inferred[i]
			fmt.Fprintf(out, " (looks like %s", in.Kind)
			if in.Format != "" {
				fmt.Fprintf(out, ", format %s", in.Format)
			}
			fmt.Fprintf(out, ", confidence %.0f%%", in.Confidence*100)
			if in.Nullable {
				fmt.Fprint(out, ", has empty values")
			}
			fmt.Fprint(out, ")")
		}
		fmt.Fprintln(out)
	}
}

func newSplitCommand(a *app) *cobra.Command {
	var (
		at int
		o  outputFlags
	)
	cmd := &cobra.Command{
		Use:   "split FILE",
		Short: "Split a table at a row and save both halves",
		Long: `Split the table in FILE so that the first part holds rows [0, at) and the
second the rest. The parts are saved under STEM_head and STEM_tail.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			head, tail := tables[0].Split(at)
			a.log.Info("table split",
				zap.Int("at", at),
				zap.Int("head_rows", head.Len()),
				zap.Int("tail_rows", tail.Len()))

			if _, err := a.save(cmd, &o, head, o.out+"_head"); err != nil {
				return err
			}
			_, err = a.save(cmd, &o, tail, o.out+"_tail")
			return err
		},
	}
	cmd.Flags().IntVar(&at, "at", 0, "Number of rows in the first part (required)")
	_ = cmd.MarkFlagRequired("at")
	o.register(cmd)
	return cmd
}

func newConcatCommand(a *app) *cobra.Command {
	var o outputFlags
	cmd := &cobra.Command{
		Use:   "concat A B",
		Short: "Append the rows of B to A and save the result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := a.load(cmd, args...)
			if err != nil {
				return err
			}
			combined, err := table.Concat(tables[0], tables[1])
			if err != nil {
				return err
			}
			_, err = a.save(cmd, &o, combined, o.out)
			return err
		},
	}
	o.register(cmd)
	return cmd
}

func newConvertCommand(a *app) *cobra.Command {
	var (
		infer bool
		o     outputFlags
	)
	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Re-save a table in another format, compression or chunk size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			t := tables[0]
			if infer {
				applied, err := schema.NewTypeInferenceEngine(a.log).Apply(t)
				if err != nil {
					return err
				}
				for c, k := range applied {
					a.log.Debug("column converted", zap.Stringer("column", c), zap.Stringer("kind", k))
				}
			}
			_, err = a.save(cmd, &o, t, o.out)
			return err
		},
	}
	cmd.Flags().BoolVar(&infer, "infer", false, "Convert text columns to the kinds their values parse as")
	o.register(cmd)
	return cmd
}
