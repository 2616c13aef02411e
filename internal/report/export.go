package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/achview/internal/model"
)

// TransactionHeader is the column header for entry exports.
var TransactionHeader = []string{
	"line", "batch", "company", "sec_code", "effective_date", "transaction_code",
	"direction", "amount", "routing_number", "account_number", "receiver_name",
	"individual_id", "trace_number", "addenda",
}

const (
	colLine   = 0
	colBatch  = 1
	colCode   = 5
	colAmount = 7
)

// MarshalTransaction converts a Transaction to an export row.
func MarshalTransaction(txn model.Transaction) []string {
	return []string{
		strconv.Itoa(txn.Line),
		strconv.Itoa(txn.Batch),
		txn.Company,
		txn.SECCode,
		txn.EffectiveDate,
		strconv.Itoa(txn.TransactionCode),
		string(txn.Direction),
		txn.Amount.StringFixed(2),
		txn.RoutingNumber,
		txn.AccountNumber,
		txn.ReceiverName,
		txn.IndividualID,
		txn.TraceNumber,
		txn.Addenda,
	}
}

// WriteCSV writes transactions as CSV with a header row.
func WriteCSV(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(TransactionHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// SheetName is the worksheet the XLSX export writes to.
const SheetName = "Entries"

// WriteXLSX writes transactions to a single-sheet workbook. Numeric columns
// are stored as numbers so spreadsheets can sum them.
func WriteXLSX(w io.Writer, txns []model.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(TransactionHeader))
	for i, h := range TransactionHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		strs := MarshalTransaction(txn)
		row := make([]any, len(strs))
		for j, s := range strs {
			row[j] = s
		}
		row[colLine] = txn.Line
		row[colBatch] = txn.Batch
		row[colCode] = txn.TransactionCode
		row[colAmount] = txn.Amount.InexactFloat64()

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
