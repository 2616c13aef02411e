package nacha

import "fmt"

// Structural problems found while parsing. These are reported through
// File.Errors, never returned.
const (
	MsgDuplicateFileHeader   = "found more than one file header record"
	MsgFileControlNoHeader   = "file control not preceeded by file header"
	MsgDuplicateFileControl  = "found more than one file control record"
	MsgBatchHeaderNoHeader   = "batch header not preceeded by file header"
	MsgBatchNotClosed        = "starting a new batch before end of previous batch"
	MsgBatchControlNoBatch   = "batch control not preceeded by batch header"
	MsgEntryNoBatch          = "entry detail not preceeded by batch header"
	MsgDuplicateAddendum     = "more than one addendum for entry"
	msgUnrecognizedRecordFmt = `unrecognized record type "%s"`
)

// Error is one diagnostic about the input. LineNumber is 0 and Record is
// NoRecord when unknown.
type Error struct {
	Message    string
	Line       string
	LineNumber int
	Record     RecordID
}

func (e Error) Error() string {
	if e.LineNumber > 0 {
		return fmt.Sprintf("line %d: %s", e.LineNumber, e.Message)
	}
	return e.Message
}

// newRecordError attributes message to a record, copying its text and line.
func newRecordError(message string, id RecordID, rec Record) Error {
	return Error{
		Message:    message,
		Line:       rec.Text,
		LineNumber: rec.Line,
		Record:     id,
	}
}
