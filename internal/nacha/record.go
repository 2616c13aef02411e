package nacha

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Kind is the structural role of a record line.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindFileHeader
	KindFileControl
	KindBatchHeader
	KindBatchControl
	KindEntryDetail
	KindEntryAddendum
	KindPadding
)

var kindNames = [...]string{
	KindUnrecognized:  "unrecognized",
	KindFileHeader:    "file header",
	KindFileControl:   "file control",
	KindBatchHeader:   "batch header",
	KindBatchControl:  "batch control",
	KindEntryDetail:   "entry detail",
	KindEntryAddendum: "entry addendum",
	KindPadding:       "padding",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unrecognized"
	}
	return kindNames[k]
}

// PaddingCode is the three-character prefix that marks a filler line.
const PaddingCode = "999"

// RecordID indexes File.Records.
type RecordID int

// NoRecord marks an absent link.
const NoRecord RecordID = -1

// Field is one named entry in a record kind's field table.
type Field struct {
	Name string
	FieldSpec
}

// Fields lists the field table for each kind, in line order.
// Padding and unrecognized records have no named fields.
var Fields = map[Kind][]Field{
	KindFileHeader: {
		{"record_type", FieldSpec{1, 1, true}},
		{"priority_code", FieldSpec{2, 3, true}},
		{"immediate_destination", FieldSpec{4, 13, false}},
		{"immediate_origin", FieldSpec{14, 23, false}},
		{"file_creation_date", FieldSpec{24, 29, false}},
		{"file_creation_time", FieldSpec{30, 33, false}},
		{"file_id_modifier", FieldSpec{34, 34, false}},
		{"record_size", FieldSpec{35, 37, true}},
		{"blocking_factor", FieldSpec{38, 39, true}},
		{"format_code", FieldSpec{40, 40, false}},
		{"immediate_destination_name", FieldSpec{41, 63, false}},
		{"immediate_origin_name", FieldSpec{64, 86, false}},
		{"reference_code", FieldSpec{87, 94, false}},
	},
	KindFileControl: {
		{"record_type", FieldSpec{1, 1, true}},
		{"batch_count", FieldSpec{2, 7, true}},
		{"block_count", FieldSpec{8, 13, true}},
		{"entry_addenda_count", FieldSpec{14, 21, true}},
		{"entry_hash", FieldSpec{22, 31, false}},
		{"total_debit_amount_cents", FieldSpec{32, 43, true}},
		{"total_credit_amount_cents", FieldSpec{44, 55, true}},
		{"reserved", FieldSpec{56, 94, false}},
	},
	KindBatchHeader: {
		{"record_type", FieldSpec{1, 1, true}},
		{"service_class_code", FieldSpec{2, 4, false}},
		{"company_name", FieldSpec{5, 20, false}},
		{"company_discretionary_data", FieldSpec{21, 40, false}},
		{"company_id", FieldSpec{41, 50, false}},
		{"sec_code", FieldSpec{51, 53, false}},
		{"description", FieldSpec{54, 63, false}},
		{"descriptive_date", FieldSpec{64, 69, false}},
		{"effective_date", FieldSpec{70, 75, false}},
		{"settlement_date", FieldSpec{76, 78, true}},
		{"originator_status_code", FieldSpec{79, 79, false}},
		{"originator_dfi_id", FieldSpec{80, 87, false}},
		{"batch_number", FieldSpec{88, 94, true}},
	},
	KindBatchControl: {
		{"record_type", FieldSpec{1, 1, true}},
		{"service_class_code", FieldSpec{2, 4, false}},
		{"entry_addenda_count", FieldSpec{5, 10, true}},
		{"entry_hash", FieldSpec{11, 20, false}},
		{"total_debit_amount_cents", FieldSpec{21, 32, true}},
		{"total_credit_amount_cents", FieldSpec{33, 44, true}},
		{"company_id", FieldSpec{45, 54, false}},
		{"message_authentication_code", FieldSpec{55, 73, true}},
		{"reserved", FieldSpec{74, 79, false}},
		{"originator_dfi_id", FieldSpec{80, 87, false}},
		{"batch_number", FieldSpec{88, 94, true}},
	},
	KindEntryDetail: {
		{"record_type", FieldSpec{1, 1, true}},
		{"transaction_code", FieldSpec{2, 3, true}},
		{"receiving_dfi_id", FieldSpec{4, 11, false}},
		{"check_digit", FieldSpec{12, 12, true}},
		{"account_number", FieldSpec{13, 29, false}},
		{"amount", FieldSpec{30, 39, true}},
		{"identification_number", FieldSpec{40, 54, false}},
		{"receiver_name", FieldSpec{55, 76, false}},
		{"discretionary_data", FieldSpec{77, 78, false}},
		{"addenda_record_indicator", FieldSpec{79, 79, true}},
		{"trace_number", FieldSpec{80, 94, true}},
	},
	KindEntryAddendum: {
		{"record_type", FieldSpec{1, 1, true}},
		{"type_code", FieldSpec{2, 3, true}},
		{"payment_information", FieldSpec{4, 83, false}},
		{"addenda_sequence_number", FieldSpec{84, 87, true}},
		{"entry_sequence_number", FieldSpec{88, 94, true}},
	},
}

// Record is one line of an ACH file.
//
// Link fields are indexes into the owning File's Records and are set only by
// the linking pass in Parse:
//   - Parent: file control -> file header, batch control -> batch header,
//     entry detail -> batch header, entry addendum -> entry detail.
//   - Control: file header -> file control, batch header -> batch control.
//   - Addendum: entry detail -> its first addendum.
//   - Entries: batch header -> its entry details, in file order.
type Record struct {
	Text   string
	Line   int
	Code   string
	Kind   Kind
	Parent RecordID

	Control  RecordID
	Addendum RecordID
	Entries  []RecordID
}

func newRecord(text string, line int, code string, kind Kind) Record {
	return Record{
		Text:     text,
		Line:     line,
		Code:     code,
		Kind:     kind,
		Parent:   NoRecord,
		Control:  NoRecord,
		Addendum: NoRecord,
	}
}

// Fields returns the record's field table.
func (r Record) Fields() []Field {
	return Fields[r.Kind]
}

// Field looks up a named field spec.
func (r Record) Field(name string) (FieldSpec, bool) {
	for _, f := range Fields[r.Kind] {
		if f.Name == name {
			return f.FieldSpec, true
		}
	}
	return FieldSpec{}, false
}

// Raw returns the unmodified text of a named field, or "" if the kind has no
// such field.
func (r Record) Raw(name string) string {
	spec, ok := r.Field(name)
	if !ok {
		return ""
	}
	return spec.Raw(r.Text)
}

// Str returns the trimmed text of a named field.
func (r Record) Str(name string) string {
	spec, ok := r.Field(name)
	if !ok {
		return ""
	}
	return spec.Str(r.Text)
}

// Int returns the integer value of a named field. ok is false for unknown
// fields and for values that do not parse.
func (r Record) Int(name string) (int64, bool) {
	spec, ok := r.Field(name)
	if !ok {
		return 0, false
	}
	return spec.Int(r.Text)
}

// Amount reads a cents field as dollars.
func (r Record) Amount(name string) (decimal.Decimal, bool) {
	cents, ok := r.Int(name)
	if !ok {
		return decimal.Zero, false
	}
	return decimal.New(cents, -2), true
}

// Value returns the field as it should be displayed: the parsed integer for
// numeric fields ("NaN" when it does not parse) and the trimmed text otherwise.
func (r Record) Value(name string) string {
	spec, ok := r.Field(name)
	if !ok {
		return ""
	}
	if !spec.Numeric {
		return spec.Str(r.Text)
	}
	n, ok := spec.Int(r.Text)
	if !ok {
		return "NaN"
	}
	return strconv.FormatInt(n, 10)
}

// IsCredit reports whether an entry detail's transaction code moves money
// to the receiver.
func (r Record) IsCredit() bool {
	if r.Kind != KindEntryDetail {
		return false
	}
	code, ok := r.Int("transaction_code")
	if !ok {
		return false
	}
	switch code {
	case 21, 22, 23, 24, 31, 32, 33, 34, 41, 42, 43, 44, 51, 52, 53, 54:
		return true
	}
	return false
}
