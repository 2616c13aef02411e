package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleared-dev/achview/internal/importer"
	"github.com/cleared-dev/achview/internal/report"
)

func newEntriesCommand(opts *globalOptions) *cobra.Command {
	var format string
	var outPath string

	cmd := &cobra.Command{
		Use:   "entries <file>",
		Short: "Export the entries of an ACH file as CSV or XLSX",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.load(cmd)
			if err != nil {
				return err
			}
			return runEntries(cmd.OutOrStdout(), e, args[0], format, outPath)
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "export format (csv, xlsx)")
	cmd.Flags().StringVar(&outPath, "out", "-", "output path, - for stdout")

	return cmd
}

func runEntries(stdout io.Writer, e *env, path, format, outPath string) error {
	if format != "csv" && format != "xlsx" {
		return fmt.Errorf("unknown format %q", format)
	}
	if format == "xlsx" && outPath == "-" {
		return fmt.Errorf("xlsx export needs --out")
	}

	res, err := importer.ParseFile(e.parser(), path)
	if err != nil {
		return err
	}
	if !res.File.Valid() {
		e.log.Warn("exporting entries from a file with structural errors",
			zap.String("file", path), zap.Int("errors", res.Summary.Errors))
	}

	out := stdout
	if outPath != "-" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer f.Close()
		out = f
	}

	if format == "xlsx" {
		err = report.WriteXLSX(out, res.Transactions)
	} else {
		err = report.WriteCSV(out, res.Transactions)
	}
	if err != nil {
		return fmt.Errorf("exporting entries: %w", err)
	}
	e.log.Info("exported entries", zap.String("file", path), zap.Int("entries", len(res.Transactions)))
	return nil
}
