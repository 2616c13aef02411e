package nacha

import (
	"os"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("../../testdata/" + name)
	require.NoError(t, err)
	return string(data)
}

func errorMessages(f *File) []string {
	var msgs []string
	for _, e := range f.Errors {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

func TestParse_WellFormed(t *testing.T) {
	f := Parse(readFixture(t, "valid.ach"))

	assert.Empty(t, f.Errors)
	assert.True(t, f.Valid())
	assert.Len(t, f.Records, 10)
	assert.Len(t, f.Lines, 10)

	header, ok := f.Header()
	require.True(t, ok)
	assert.Equal(t, KindFileHeader, header.Kind)
	assert.Equal(t, "ACME CORP", header.Str("immediate_origin_name"))

	control, ok := f.FileControl()
	require.True(t, ok)
	assert.Equal(t, 7, control.Line)
	parent, ok := f.Parent(header.Control)
	require.True(t, ok)
	assert.Equal(t, 1, parent.Line)

	require.Len(t, f.BatchHeaders, 1)
	batchID := f.BatchHeaders[0]
	batchControl, ok := f.Control(batchID)
	require.True(t, ok)
	assert.Equal(t, KindBatchControl, batchControl.Kind)

	entries := f.BatchEntries(batchID)
	require.Len(t, entries, 2)
	assert.Equal(t, f.Entries(), entries)
	assert.Equal(t, "JANE DOE", entries[0].Str("receiver_name"))

	addendum, ok := f.Addendum(f.EntryDetails[0])
	require.True(t, ok)
	assert.Equal(t, "SALARY OCTOBER", addendum.Str("payment_information"))
	_, ok = f.Addendum(f.EntryDetails[1])
	assert.False(t, ok)

	assert.Equal(t, NoRecord, f.OpenBatch)
	for _, r := range f.Records[7:] {
		assert.Equal(t, KindPadding, r.Kind)
		assert.Equal(t, PaddingCode, r.Code)
	}
}

func TestParse_CRLF(t *testing.T) {
	lf := Parse(readFixture(t, "valid.ach"))
	crlf := Parse(readFixture(t, "valid_crlf.ach"))

	assert.Empty(t, crlf.Errors)
	assert.Equal(t, lf.Lines, crlf.Lines)
	for _, line := range crlf.Lines {
		assert.NotContains(t, line, "\r")
	}
}

func TestParse_Malformed(t *testing.T) {
	f := Parse(readFixture(t, "malformed.ach"))

	assert.Equal(t, []string{
		MsgBatchHeaderNoHeader,
		MsgDuplicateAddendum,
		`unrecognized record type "3"`,
		MsgBatchHeaderNoHeader,
		MsgBatchNotClosed,
		MsgBatchControlNoBatch,
		MsgDuplicateFileHeader,
		MsgDuplicateFileControl,
		MsgEntryNoBatch,
	}, errorMessages(f))

	var lines []int
	for _, e := range f.Errors {
		lines = append(lines, e.LineNumber)
		assert.Equal(t, f.Records[e.Record].Text, e.Line)
	}
	assert.Equal(t, []int{1, 4, 5, 6, 6, 8, 10, 12, 13}, lines)

	// Both batch headers are listed, but only the first one opened a batch.
	require.Len(t, f.BatchHeaders, 2)
	first := f.Records[f.BatchHeaders[0]]
	second := f.Records[f.BatchHeaders[1]]
	assert.Equal(t, RecordID(6), first.Control)
	assert.Equal(t, NoRecord, second.Control)

	// The second addendum did not replace the first.
	require.Len(t, f.EntryDetails, 1)
	entry := f.Records[f.EntryDetails[0]]
	assert.Equal(t, RecordID(2), entry.Addendum)

	header, ok := f.Header()
	require.True(t, ok)
	assert.Equal(t, 9, header.Line)
	assert.Equal(t, RecordID(10), header.Control)
}

func TestParse_UnrecognizedExcluded(t *testing.T) {
	f := Parse("3" + strings.Repeat(" ", 93))

	require.Len(t, f.Errors, 1)
	assert.Equal(t, `unrecognized record type "3"`, f.Errors[0].Message)
	assert.Equal(t, 1, f.Errors[0].LineNumber)
	assert.Equal(t, RecordID(0), f.Errors[0].Record)
	assert.Equal(t, KindUnrecognized, f.Records[0].Kind)
	assert.Equal(t, "3", f.Records[0].Code)
	assert.Empty(t, f.BatchHeaders)
	assert.Empty(t, f.EntryDetails)
	assert.Equal(t, NoRecord, f.FileHeader)
	assert.Empty(t, f.Records[0].Fields())
}

func TestParse_Empty(t *testing.T) {
	f := Parse("  \r\n ")
	require.Len(t, f.Records, 1)
	assert.Equal(t, []string{""}, f.Lines)
	assert.Equal(t, []string{`unrecognized record type ""`}, errorMessages(f))
}

func TestParse_RecordCountMatchesLines(t *testing.T) {
	inputs := []string{
		"",
		"1\n5\n6\n7\n7\n8\n9",
		"\n\n1\n\n9\n\n",
		readFixture(t, "malformed.ach"),
	}
	for _, in := range inputs {
		f := Parse(in)
		assert.Equal(t, len(SplitLines(in)), len(f.Records), "input %q", in)
		for i, r := range f.Records {
			assert.Equal(t, i+1, r.Line)
		}
	}
}

func TestParse_Idempotent(t *testing.T) {
	text := readFixture(t, "malformed.ach")
	assert.Equal(t, Parse(text), Parse(text))
}

func TestParse_EntriesWithOwnAddenda(t *testing.T) {
	f := Parse("1\n5\n6\n7\n6\n7\n8\n9")

	assert.Empty(t, f.Errors)
	require.Len(t, f.EntryDetails, 2)
	assert.Equal(t, RecordID(3), f.Records[f.EntryDetails[0]].Addendum)
	assert.Equal(t, RecordID(5), f.Records[f.EntryDetails[1]].Addendum)
	assert.Equal(t, f.EntryDetails[1], f.Records[5].Parent)
}

func TestParse_OrphanRecords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"file control first", "9\n1", []string{MsgFileControlNoHeader}},
		{"entry outside batch", "1\n6\n9", []string{MsgEntryNoBatch}},
		{"addendum without entry", "1\n5\n7\n8\n9", []string{MsgEntryNoBatch}},
		{"addendum after batch close", "1\n5\n6\n8\n7\n9", []string{MsgEntryNoBatch}},
		{"control without batch", "1\n8\n9", []string{MsgBatchControlNoBatch}},
		{"batch before header", "5\n8\n1\n9", []string{MsgBatchHeaderNoHeader}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorMessages(Parse(tt.text)))
		})
	}
}

func TestParse_OpenBatchAtEnd(t *testing.T) {
	f := Parse("1\n5\n6\n9")
	assert.Empty(t, f.Errors)
	assert.Equal(t, RecordID(1), f.OpenBatch)
	assert.Len(t, f.BatchEntries(1), 1)
}

func TestParse_PaddingPrefix(t *testing.T) {
	f := Parse("1\n999\n9991234\n99\n9")

	assert.Equal(t, KindPadding, f.Records[1].Kind)
	assert.Equal(t, KindPadding, f.Records[2].Kind)
	// "99" is a file control, and a second one at that.
	assert.Equal(t, KindFileControl, f.Records[3].Kind)
	assert.Equal(t, []string{MsgDuplicateFileControl}, errorMessages(f))
}

func TestRecord_Fields(t *testing.T) {
	f := Parse(readFixture(t, "valid.ach"))

	header := f.Records[0]
	assert.Len(t, header.Fields(), 13)
	priority, ok := header.Int("priority_code")
	require.True(t, ok)
	assert.Equal(t, int64(1), priority)
	assert.Equal(t, " 091000019", header.Raw("immediate_destination"))
	assert.Equal(t, "091000019", header.Str("immediate_destination"))
	assert.Equal(t, "94", header.Value("record_size"))

	batch := f.Records[1]
	assert.Len(t, batch.Fields(), 13)
	assert.Equal(t, "PPD", batch.Str("sec_code"))
	_, ok = batch.Int("settlement_date")
	assert.False(t, ok)
	assert.Equal(t, "NaN", batch.Value("settlement_date"))

	entry := f.Records[2]
	assert.Len(t, entry.Fields(), 11)
	amount, ok := entry.Amount("amount")
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("1500.00").Equal(amount))
	assert.True(t, entry.IsCredit())
	assert.False(t, f.Records[4].IsCredit())

	assert.Len(t, f.Records[3].Fields(), 5)
	assert.Len(t, f.Records[5].Fields(), 11)
	assert.Len(t, f.Records[6].Fields(), 8)
	assert.Empty(t, f.Records[7].Fields())

	assert.Equal(t, "", entry.Raw("no_such_field"))
	_, ok = entry.Int("no_such_field")
	assert.False(t, ok)
}

func TestRecord_FieldTablesCoverLine(t *testing.T) {
	for kind, fields := range Fields {
		pos := 1
		for _, f := range fields {
			assert.Equal(t, pos, f.Start, "%s.%s start", kind, f.Name)
			assert.LessOrEqual(t, f.Start, f.End, "%s.%s", kind, f.Name)
			pos = f.End + 1
		}
		assert.Equal(t, 95, pos, "%s ends at 94", kind)
	}
}

func TestRecord_FieldRoundTrip(t *testing.T) {
	f := Parse(readFixture(t, "valid.ach"))
	for _, r := range f.Records {
		for _, fld := range r.Fields() {
			raw := r.Text[fld.Start-1 : fld.End]
			assert.Equal(t, raw, r.Raw(fld.Name))
			assert.Equal(t, strings.TrimSpace(raw), r.Str(fld.Name))
		}
	}
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	k, ok := r.Lookup("6")
	require.True(t, ok)
	assert.Equal(t, KindEntryDetail, k)
	_, ok = r.Lookup("3")
	assert.False(t, ok)

	assert.Panics(t, func() { r.Register("6", KindEntryDetail) })
}

func TestError_Error(t *testing.T) {
	assert.Equal(t, "line 4: more than one addendum for entry",
		Error{Message: MsgDuplicateAddendum, LineNumber: 4}.Error())
	assert.Equal(t, "boom", Error{Message: "boom", Record: NoRecord}.Error())
}

func TestParseReader(t *testing.T) {
	f, err := ParseReader(strings.NewReader("1\n9"))
	require.NoError(t, err)
	assert.Empty(t, f.Errors)
	assert.Equal(t, "1\n9", f.Raw)
}
