package nacha

// linker is the scan state of the linking pass: the batch opened by the last
// unclosed batch header and the last entry detail seen inside it.
type linker struct {
	file  *File
	batch RecordID
	entry RecordID
}

func newLinker(f *File) *linker {
	return &linker{file: f, batch: NoRecord, entry: NoRecord}
}

// visit links one record to what came before it, recording an error and
// leaving the state as it was when the record is out of place.
func (l *linker) visit(id RecordID) {
	f := l.file
	rec := &f.Records[id]

	switch rec.Kind {
	case KindFileHeader:
		if f.FileHeader != NoRecord {
			f.addError(MsgDuplicateFileHeader, id)
			return
		}
		f.FileHeader = id

	case KindFileControl:
		if f.FileHeader == NoRecord {
			f.addError(MsgFileControlNoHeader, id)
			return
		}
		header := &f.Records[f.FileHeader]
		if header.Control != NoRecord {
			f.addError(MsgDuplicateFileControl, id)
			return
		}
		header.Control = id
		rec.Parent = f.FileHeader

	case KindBatchHeader:
		f.BatchHeaders = append(f.BatchHeaders, id)
		if f.FileHeader == NoRecord {
			f.addError(MsgBatchHeaderNoHeader, id)
		}
		if l.batch != NoRecord {
			f.addError(MsgBatchNotClosed, id)
			return
		}
		l.batch = id

	case KindBatchControl:
		if l.batch == NoRecord {
			f.addError(MsgBatchControlNoBatch, id)
			return
		}
		f.Records[l.batch].Control = id
		rec.Parent = l.batch
		l.batch = NoRecord
		l.entry = NoRecord

	case KindEntryDetail:
		if l.batch == NoRecord {
			f.addError(MsgEntryNoBatch, id)
			return
		}
		f.EntryDetails = append(f.EntryDetails, id)
		batch := &f.Records[l.batch]
		batch.Entries = append(batch.Entries, id)
		rec.Parent = l.batch
		l.entry = id

	case KindEntryAddendum:
		if l.entry == NoRecord {
			// Same wording as an orphaned entry detail; consumers match on it.
			f.addError(MsgEntryNoBatch, id)
			return
		}
		entry := &f.Records[l.entry]
		if entry.Addendum != NoRecord {
			f.addError(MsgDuplicateAddendum, id)
			return
		}
		entry.Addendum = id
		rec.Parent = l.entry

	case KindPadding, KindUnrecognized:
	}
}
