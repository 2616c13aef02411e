package importer

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/achview/internal/model"
	"github.com/cleared-dev/achview/internal/nacha"
)

// ACHParser parses NACHA-format ACH files.
type ACHParser struct{}

// Format returns the parser name.
func (p *ACHParser) Format() string { return "nacha" }

// Parse reads an ACH file. Structural problems are reported in
// Result.File.Errors; only read failures return an error.
func (p *ACHParser) Parse(r io.Reader) (*Result, error) {
	f, err := nacha.ParseReader(r)
	if err != nil {
		return nil, err
	}
	return &Result{
		File:         f,
		Summary:      Summarize(f),
		Transactions: Transactions(f),
	}, nil
}

// Transactions converts every linked entry detail into a Transaction.
func Transactions(f *nacha.File) []model.Transaction {
	txns := make([]model.Transaction, 0, len(f.EntryDetails))
	for _, id := range f.EntryDetails {
		entry := f.Record(id)
		batch, _ := f.Parent(id)
		txn := toTransaction(entry, batch)
		if addendum, ok := f.Addendum(id); ok {
			txn.Addenda = addendum.Str("payment_information")
		}
		txns = append(txns, txn)
	}
	return txns
}

func toTransaction(entry, batch nacha.Record) model.Transaction {
	amount, _ := entry.Amount("amount")
	direction := model.DirectionDebit
	if entry.IsCredit() {
		direction = model.DirectionCredit
	} else {
		amount = amount.Neg()
	}
	code, _ := entry.Int("transaction_code")
	batchNumber, _ := batch.Int("batch_number")

	return model.Transaction{
		Line:            entry.Line,
		Batch:           int(batchNumber),
		Company:         batch.Str("company_name"),
		SECCode:         batch.Str("sec_code"),
		EffectiveDate:   batch.Str("effective_date"),
		TransactionCode: int(code),
		Direction:       direction,
		Amount:          amount,
		RoutingNumber:   entry.Str("receiving_dfi_id") + entry.Str("check_digit"),
		AccountNumber:   entry.Str("account_number"),
		ReceiverName:    entry.Str("receiver_name"),
		IndividualID:    entry.Str("identification_number"),
		TraceNumber:     entry.Str("trace_number"),
	}
}

// Summarize counts records by kind and reads the declared control totals.
func Summarize(f *nacha.File) model.FileSummary {
	s := model.FileSummary{
		Records:        len(f.Records),
		Batches:        len(f.BatchHeaders),
		Entries:        len(f.EntryDetails),
		Errors:         len(f.Errors),
		DeclaredDebit:  decimal.Zero,
		DeclaredCredit: decimal.Zero,
	}
	for _, r := range f.Records {
		switch r.Kind {
		case nacha.KindEntryAddendum:
			if r.Parent != nacha.NoRecord {
				s.Addenda++
			}
		case nacha.KindPadding:
			s.Padding++
		}
	}
	if header, ok := f.Header(); ok {
		s.Origin = header.Str("immediate_origin_name")
		s.Destination = header.Str("immediate_destination_name")
		s.CreationDate = header.Str("file_creation_date")
	}
	if control, ok := f.FileControl(); ok {
		if v, ok := control.Amount("total_debit_amount_cents"); ok {
			s.DeclaredDebit = v
		}
		if v, ok := control.Amount("total_credit_amount_cents"); ok {
			s.DeclaredCredit = v
		}
	}
	return s
}

// String renders a one-line description used in logs.
func (r *Result) String() string {
	return fmt.Sprintf("%d records, %d entries, %d errors", r.Summary.Records, r.Summary.Entries, r.Summary.Errors)
}
