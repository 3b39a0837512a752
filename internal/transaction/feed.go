package transaction

// Feed hands out records one at a time. It cannot be rewound.
type Feed struct {
	records []RawRecord
	pos     int
}

func NewFeed(records []RawRecord) *Feed {
	return &Feed{records: records}
}

// Next returns the next record, or false once the feed is drained.
func (f *Feed) Next() (RawRecord, bool) {
	if f.pos >= len(f.records) {
		return nil, false
	}
	r := f.records[f.pos]
	f.pos++
	return r, true
}

// Remaining is the number of records not yet handed out.
func (f *Feed) Remaining() int {
	return len(f.records) - f.pos
}
