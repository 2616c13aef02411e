package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleared-dev/achview/internal/importer"
	"github.com/cleared-dev/achview/internal/report"
)

func newInspectCommand(opts *globalOptions) *cobra.Command {
	var format string
	var showPadding bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print every record of an ACH file with its fields and any errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") {
				e.cfg.Report.Format = format
			}
			if cmd.Flags().Changed("show-padding") {
				e.cfg.Report.ShowPadding = showPadding
			}
			return runInspect(cmd.OutOrStdout(), e, args[0])
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format (text, json)")
	cmd.Flags().BoolVar(&showPadding, "show-padding", false, "include padding records")

	return cmd
}

func runInspect(out io.Writer, e *env, path string) error {
	start := time.Now()
	res, err := importer.ParseFile(e.parser(), path)
	if err != nil {
		return err
	}
	e.log.Debug("parsed file",
		zap.String("file", path),
		zap.Int("records", res.Summary.Records),
		zap.Int("errors", res.Summary.Errors),
		zap.Duration("elapsed", time.Since(start)))

	switch e.cfg.Report.Format {
	case "json":
		return report.WriteJSON(out, path, res.File)
	case "text":
		return report.WriteText(out, path, res.File, report.Options{
			ShowPadding: e.cfg.Report.ShowPadding,
			ShowFields:  e.cfg.Report.ShowFields,
		})
	default:
		return fmt.Errorf("unknown format %q", e.cfg.Report.Format)
	}
}
