package nacha

import (
	"fmt"
	"io"
	"strings"
)

// File is the parsed model of one ACH file. It is built once by Parse and is
// read-only afterwards.
type File struct {
	Raw     string
	Lines   []string
	Records []Record

	// FileHeader is the first file header record, or NoRecord.
	FileHeader RecordID
	// BatchHeaders holds every batch header in file order, including ones
	// that were reported as misplaced.
	BatchHeaders []RecordID
	// EntryDetails holds every entry detail that was linked to a batch.
	EntryDetails []RecordID
	// OpenBatch is the batch still open when input ended, or NoRecord.
	OpenBatch RecordID

	Errors []Error
}

// Parse builds the file model for an ACH file. Structural problems are
// collected in File.Errors; Parse itself never fails.
func Parse(text string) *File {
	return parse(text, defaultRegistry)
}

// ParseReader reads r to the end and parses the contents.
func ParseReader(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading ACH file: %w", err)
	}
	return Parse(string(data)), nil
}

func parse(text string, registry *Registry) *File {
	f := &File{
		Raw:        text,
		Lines:      SplitLines(text),
		FileHeader: NoRecord,
		OpenBatch:  NoRecord,
	}

	// Linking only looks back at earlier records, so each line is classified
	// and linked in one step and errors come out in line order.
	f.Records = make([]Record, 0, len(f.Lines))
	l := newLinker(f)
	for i, line := range f.Lines {
		rec := classify(line, i+1, registry)
		id := RecordID(len(f.Records))
		f.Records = append(f.Records, rec)
		if rec.Kind == KindUnrecognized {
			f.addError(fmt.Sprintf(msgUnrecognizedRecordFmt, rec.Code), id)
			continue
		}
		l.visit(id)
	}
	f.OpenBatch = l.batch
	return f
}

// SplitLines normalizes CRLF line endings, trims the whole text and splits it
// into lines. Individual lines are not trimmed. Empty input yields one empty
// line.
func SplitLines(text string) []string {
	normalized := strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	return strings.Split(normalized, "\n")
}

func classify(line string, number int, registry *Registry) Record {
	if strings.HasPrefix(line, PaddingCode) {
		return newRecord(line, number, PaddingCode, KindPadding)
	}
	code := substring(line, 0, 1)
	kind, ok := registry.Lookup(code)
	if !ok {
		kind = KindUnrecognized
	}
	return newRecord(line, number, code, kind)
}

// Record returns the record for id. It panics if id is out of range.
func (f *File) Record(id RecordID) Record {
	return f.Records[id]
}

// Header returns the file header, if any.
func (f *File) Header() (Record, bool) {
	return f.lookup(f.FileHeader)
}

// FileControl returns the file control linked to the file header, if any.
func (f *File) FileControl() (Record, bool) {
	if f.FileHeader == NoRecord {
		return Record{}, false
	}
	return f.lookup(f.Records[f.FileHeader].Control)
}

// Batches returns the batch header records in file order.
func (f *File) Batches() []Record {
	return f.collect(f.BatchHeaders)
}

// Entries returns the linked entry detail records in file order.
func (f *File) Entries() []Record {
	return f.collect(f.EntryDetails)
}

// Control returns the control record linked to a file or batch header.
func (f *File) Control(id RecordID) (Record, bool) {
	return f.lookup(f.Records[id].Control)
}

// BatchEntries returns the entry details linked to a batch header.
func (f *File) BatchEntries(id RecordID) []Record {
	return f.collect(f.Records[id].Entries)
}

// Addendum returns the addendum linked to an entry detail.
func (f *File) Addendum(id RecordID) (Record, bool) {
	return f.lookup(f.Records[id].Addendum)
}

// Parent returns the record id links up to: the header of a control, the
// batch of an entry, or the entry of an addendum.
func (f *File) Parent(id RecordID) (Record, bool) {
	return f.lookup(f.Records[id].Parent)
}

// Valid reports whether no structural errors were found.
func (f *File) Valid() bool {
	return len(f.Errors) == 0
}

func (f *File) addError(message string, id RecordID) {
	f.Errors = append(f.Errors, newRecordError(message, id, f.Records[id]))
}

func (f *File) lookup(id RecordID) (Record, bool) {
	if id == NoRecord {
		return Record{}, false
	}
	return f.Records[id], true
}

func (f *File) collect(ids []RecordID) []Record {
	out := make([]Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.Records[id])
	}
	return out
}
