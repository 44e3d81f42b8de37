package record

import "strings"

// Record is one non-blank line of a document.
//
// Exactly one of Value and Err is set: Value when the line parsed, Err (the
// parse error message) when it did not.
type Record struct {
	Index int
	Raw   string
	Value *Value
	Err   string
}

// OK reports whether the record holds a parsed value.
func (r *Record) OK() bool {
	return r.Value != nil
}

// SetRaw replaces the record text and re-parses it. The record may flip
// between value and error state.
func (r *Record) SetRaw(raw string) {
	r.Raw = raw
	r.Value, r.Err = nil, ""
	v, err := Decode(raw)
	if err != nil {
		r.Err = err.Error()
		return
	}
	r.Value = v
}

// Pretty returns the record as indented JSON, or the raw text for a record
// that failed to parse.
func (r *Record) Pretty() string {
	if r.Value == nil {
		return r.Raw
	}
	return r.Value.Indent("", "  ")
}

// ParseLine builds the record for one line. The caller is responsible for
// skipping blank lines.
func ParseLine(index int, line string) *Record {
	r := &Record{Index: index}
	r.SetRaw(trimLine(line))
	return r
}

// IsBlank reports whether line holds no record.
func IsBlank(line string) bool {
	return trimLine(line) == ""
}

// Parse splits text into lines and parses each non-blank one. Indexes are
// dense: blank lines are dropped and consume no index.
func Parse(text string) []*Record {
	lines := strings.Split(text, "\n")
	records := make([]*Record, 0, len(lines))
	for _, line := range lines {
		if IsBlank(line) {
			continue
		}
		records = append(records, ParseLine(len(records), line))
	}
	return records
}

// Serialize joins the raw text of every record with newlines and a trailing
// newline. Blank lines dropped during Parse are not restored.
func Serialize(records []*Record) string {
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = r.Raw
	}
	return strings.Join(lines, "\n") + "\n"
}

// Stats counts the records and how many of them failed to parse.
func Stats(records []*Record) (total, invalid int) {
	for _, r := range records {
		if !r.OK() {
			invalid++
		}
	}
	return len(records), invalid
}
