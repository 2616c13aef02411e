package report

import (
	"io"

	json "github.com/goccy/go-json"

	"github.com/cleared-dev/achview/internal/nacha"
)

// Document is the JSON shape of a parsed file.
type Document struct {
	File       string       `json:"file"`
	Records    []RecordJSON `json:"records"`
	FileHeader *int         `json:"file_header"`
	Batches    []BatchJSON  `json:"batches"`
	Entries    []EntryJSON  `json:"entries"`
	Errors     []ErrorJSON  `json:"errors"`
	ErrorCount int          `json:"error_count"`
}

// RecordJSON is one line of the file.
type RecordJSON struct {
	Line   int         `json:"line"`
	Type   string      `json:"type"`
	Kind   string      `json:"kind"`
	Text   string      `json:"text"`
	Fields []FieldJSON `json:"fields,omitempty"`
}

// FieldJSON is one named field of a record.
type FieldJSON struct {
	Name  string `json:"name"`
	Raw   string `json:"raw"`
	Value string `json:"value"`
}

// BatchJSON lists a batch header with its control and entries, by line number.
type BatchJSON struct {
	Line    int   `json:"line"`
	Control *int  `json:"control"`
	Entries []int `json:"entries"`
}

// EntryJSON is an entry detail and its addendum, by line number.
type EntryJSON struct {
	Line     int  `json:"line"`
	Batch    int  `json:"batch"`
	Addendum *int `json:"addendum"`
}

// ErrorJSON is one diagnostic. Line and LineNumber are omitted when unknown.
type ErrorJSON struct {
	Message    string `json:"message"`
	Line       string `json:"line,omitempty"`
	LineNumber int    `json:"line_number,omitempty"`
}

// NewDocument builds the JSON view of f. Links are expressed as 1-based line
// numbers.
func NewDocument(name string, f *nacha.File) Document {
	doc := Document{
		File:       name,
		Records:    make([]RecordJSON, 0, len(f.Records)),
		Batches:    []BatchJSON{},
		Entries:    []EntryJSON{},
		Errors:     []ErrorJSON{},
		ErrorCount: len(f.Errors),
	}
	lineOf := func(id nacha.RecordID) *int {
		if id == nacha.NoRecord {
			return nil
		}
		n := f.Record(id).Line
		return &n
	}

	for _, r := range f.Records {
		rj := RecordJSON{Line: r.Line, Type: r.Code, Kind: r.Kind.String(), Text: r.Text}
		for _, fld := range r.Fields() {
			rj.Fields = append(rj.Fields, FieldJSON{Name: fld.Name, Raw: r.Raw(fld.Name), Value: r.Value(fld.Name)})
		}
		doc.Records = append(doc.Records, rj)
	}

	doc.FileHeader = lineOf(f.FileHeader)
	for _, id := range f.BatchHeaders {
		batch := f.Record(id)
		bj := BatchJSON{Line: batch.Line, Control: lineOf(batch.Control), Entries: []int{}}
		for _, e := range batch.Entries {
			bj.Entries = append(bj.Entries, f.Record(e).Line)
		}
		doc.Batches = append(doc.Batches, bj)
	}
	for _, id := range f.EntryDetails {
		entry := f.Record(id)
		doc.Entries = append(doc.Entries, EntryJSON{
			Line:     entry.Line,
			Batch:    f.Record(entry.Parent).Line,
			Addendum: lineOf(entry.Addendum),
		})
	}
	for _, e := range f.Errors {
		doc.Errors = append(doc.Errors, ErrorJSON{Message: e.Message, Line: e.Line, LineNumber: e.LineNumber})
	}
	return doc
}

// WriteJSON encodes the document for f as indented JSON.
func WriteJSON(w io.Writer, name string, f *nacha.File) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(name, f))
}
