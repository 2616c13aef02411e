// Package report renders a parsed ACH file for people and other programs.
// Everything here reads the nacha model; nothing mutates it.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/achview/internal/nacha"
)

// Options selects what the text report includes.
type Options struct {
	ShowPadding bool
	ShowFields  bool
}

// WriteText prints every record with its line number, optionally followed by
// its named field values, then the error count and each diagnostic.
func WriteText(w io.Writer, name string, f *nacha.File, opts Options) error {
	ew := &errWriter{w: w}

	ew.printf("%s: %d records\n", name, len(f.Records))
	for _, r := range f.Records {
		if r.Kind == nacha.KindPadding && !opts.ShowPadding {
			continue
		}
		ew.printf("%5d  %-14s %s\n", r.Line, r.Kind, r.Text)
		if !opts.ShowFields {
			continue
		}
		for _, fld := range r.Fields() {
			ew.printf("%7s%-28s %s\n", "", fld.Name, r.Value(fld.Name))
		}
	}

	ew.printf("\n")
	WriteErrors(ew, f)
	return ew.err
}

// WriteErrors prints "N errors found" and one line per diagnostic.
func WriteErrors(w io.Writer, f *nacha.File) {
	fmt.Fprintf(w, "%s found\n", plural(len(f.Errors), "error"))
	for _, e := range f.Errors {
		fmt.Fprintf(w, "  %s\n", e.Error())
		if e.Line != "" {
			fmt.Fprintf(w, "    %s\n", strings.TrimRight(e.Line, " "))
		}
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// errWriter remembers the first write error so callers check once.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

func (ew *errWriter) printf(format string, args ...any) {
	fmt.Fprintf(ew, format, args...)
}
