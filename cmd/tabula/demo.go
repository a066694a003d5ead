package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/VikaVinogradova/PM-24-6/pkg/formats"
	"github.com/VikaVinogradova/PM-24-6/pkg/table"
)

var demoMovies = []table.Row{
	{table.Text("The Shawshank Redemption"), table.Text("Thriller"), table.Int(1994), table.Float(9.3)},
	{table.Text("Forrest Gump"), table.Text("Romance"), table.Int(1994), table.Float(8.6)},
	{table.Text("The Godfather"), table.Text("Drama"), table.Int(1972), table.Float(9.1)},
}

var demoCartoons = []table.Row{
	{table.Text("The Lion King"), table.Text("Animation"), table.Int(1994), table.Float(8.5)},
	{table.Text("Shrek"), table.Text("Animation"), table.Int(2001), table.Float(7.9)},
	{table.Text("Zootopia"), table.Text("Animation"), table.Int(2016), table.Float(8.0)},
}

func newDemoCommand(a *app) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Walk through every table operation on a small movie catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				tmp, err := os.MkdirTemp("", "tabula-demo-")
				if err != nil {
					return err
				}
				dir = tmp
			}
			return a.runDemo(cmd, dir)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "Directory for the demo files (default: a new temporary directory)")
	return cmd
}

func (a *app) runDemo(cmd *cobra.Command, dir string) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	movies, err := table.FromRows([]string{"Title", "Genre", "Year", "Score"}, demoMovies)
	if err != nil {
		return err
	}
	cartoons, err := table.FromRows([]string{"Cartoon", "Genre", "Year", "Score"}, demoCartoons)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Movies:")
	if err := movies.Print(out); err != nil {
		return err
	}
	fmt.Fprintln(out, "\nCartoons:")
	if err := cartoons.Print(out); err != nil {
		return err
	}

	store, _, err := a.store(nil)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "\nSaving movies, two rows per file:")
	var saved []string
	for _, f := range []formats.Format{formats.CSV, formats.Avro} {
		files, err := store.Save(ctx, movies, 2, filepath.Join(dir, "movies_split"), f)
		if err != nil {
			return err
		}
		for _, name := range files {
			fmt.Fprintf(out, "  %s\n", name)
		}
		saved = append(saved, files...)
	}

	avroParts := saved[len(saved)-2:]
	loaded, err := store.Load(ctx, avroParts...)
	if err != nil {
		return err
	}
	reloaded, err := table.Concat(loaded[0], loaded[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\nMovies loaded back from the binary parts:")
	if err := reloaded.Print(out); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nConcatenating movies and cartoons:")
	if _, err := table.Concat(movies.Clone(), cartoons); err != nil {
		fmt.Fprintf(out, "  refused: %v\n", err)
	}
	combined, err := table.Concat(movies.Clone(), reloaded)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Concatenating movies with the reloaded copy:")
	if err := combined.Print(out); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nSplitting movies at row 2:")
	head, tail := movies.Split(2)
	if err := head.Print(out); err != nil {
		return err
	}
	if err := tail.Print(out); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nDetected column types:")
	kinds := movies.AutoDetectColumnTypes()
	for i, name := range movies.Columns() {
		fmt.Fprintf(out, "  %s: %s\n", name, kinds[i])
	}

	a.log.Info("demo finished", zap.String("dir", dir), zap.Int("files", len(saved)))
	return nil
}
