package commands

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cleared-dev/achview/internal/importer"
	"github.com/cleared-dev/achview/internal/report"
	"github.com/cleared-dev/achview/internal/runlog"
)

// ErrInvalidFile is returned by validate when any file has structural errors.
var ErrInvalidFile = errors.New("invalid ACH file")

func newValidateCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check the record structure of ACH files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.load(cmd)
			if err != nil {
				return err
			}
			return runValidate(cmd.OutOrStdout(), e, args, time.Now)
		},
	}
}

func runValidate(out io.Writer, e *env, paths []string, now func() time.Time) error {
	var entries []runlog.Entry
	invalid := 0

	for _, path := range paths {
		res, err := importer.ParseFile(e.parser(), path)
		if err != nil {
			return err
		}

		entry := runlog.Entry{
			Timestamp: now().UTC(),
			File:      path,
			Records:   res.Summary.Records,
			Entries:   res.Summary.Entries,
			Errors:    res.Summary.Errors,
		}

		if res.File.Valid() {
			fmt.Fprintf(out, "%s: ok (%d batches, %d entries)\n", path, res.Summary.Batches, res.Summary.Entries)
		} else {
			invalid++
			entry.FirstError = res.File.Errors[0].Error()
			fmt.Fprintf(out, "%s: ", path)
			report.WriteErrors(out, res.File)
			e.log.Info("structural errors", zap.String("file", path), zap.Int("errors", res.Summary.Errors))
		}
		entries = append(entries, entry)
	}

	if e.cfg.RunLog.Enabled {
		if err := runlog.Append(e.cfg.RunLog.Path, entries); err != nil {
			e.log.Warn("failed to write run log", zap.String("path", e.cfg.RunLog.Path), zap.Error(err))
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%w: %d of %d files", ErrInvalidFile, invalid, len(paths))
	}
	return nil
}
