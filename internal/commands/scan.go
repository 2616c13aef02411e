package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/achview/internal/importer"
)

func newScanCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [directory]",
		Short: "Summarize every ACH file in the import directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.load(cmd)
			if err != nil {
				return err
			}
			dir := e.cfg.Import.Directory
			if len(args) > 0 {
				dir = args[0]
			}
			return runScan(cmd.OutOrStdout(), e, dir)
		},
	}
}

func runScan(out io.Writer, e *env, dir string) error {
	files, err := importer.Scan(dir, e.cfg.Import.Extensions)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(out, "no ACH files in %s\n", dir)
		return nil
	}

	fmt.Fprintf(out, "%-32s %8s %8s %8s %8s %6s\n", "FILE", "BYTES", "RECORDS", "BATCHES", "ENTRIES", "ERRORS")
	for _, fi := range files {
		res, err := importer.ParseFile(e.parser(), fi.Path)
		if err != nil {
			return err
		}
		s := res.Summary
		fmt.Fprintf(out, "%-32s %8d %8d %8d %8d %6d\n", fi.Name, fi.Size, s.Records, s.Batches, s.Entries, s.Errors)
	}
	return nil
}
