package model

import (
	"github.com/shopspring/decimal"
)

// FileSummary is the headline view of a parsed ACH file.
type FileSummary struct {
	Path         string
	Origin       string
	Destination  string
	CreationDate string
	Records      int
	Batches      int
	Entries      int
	Addenda      int
	Padding      int
	Errors       int
	// Declared totals from the file control, as written. They are not
	// reconciled against the entries.
	DeclaredDebit  decimal.Decimal
	DeclaredCredit decimal.Decimal
}

// Valid reports whether the file had no structural errors.
func (s FileSummary) Valid() bool {
	return s.Errors == 0
}
