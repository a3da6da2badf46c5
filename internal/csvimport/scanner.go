package csvimport

import "strings"

// RecordScanner walks a document one logical record at a time.
//
// A logical record can span several physical lines when a quoted field
// contains newlines. The scanner tracks whether a quoted span is still open
// by toggling on every '"' that is not directly preceded by a backslash, and
// keeps appending lines until the span closes.
//
// The scanner is lazy and cannot be rewound. Use it like bufio.Scanner:
//
//	sc := csvimport.NewRecordScanner(text)
//	for sc.Scan() {
//	    fields := sc.Fields()
//	}
//	if sc.Unterminated() {
//	    // the document ended inside a quoted field
//	}
type RecordScanner struct {
	lines []string
	next  int

	fields       []string
	unterminated bool
}

// NewRecordScanner prepares a scanner over text. Leading and trailing
// whitespace of the whole document is trimmed once; physical lines are
// otherwise left untouched. An empty or whitespace-only document has no lines.
func NewRecordScanner(text string) *RecordScanner {
	text = strings.TrimSpace(text)
	if text == "" {
		return &RecordScanner{}
	}
	return &RecordScanner{lines: strings.Split(text, "\n")}
}

// Scan advances to the next complete logical record. It returns false when
// the document is exhausted. A trailing record whose quoted span never closes
// is not returned; Unterminated reports that case once Scan returns false.
func (s *RecordScanner) Scan() bool {
	s.fields = nil

	var (
		buf  strings.Builder
		open bool
	)

	for s.next < len(s.lines) {
		line := s.lines[s.next]
		s.next++

		open = toggleQuoteState(line, open)

		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(line)

		if !open {
			s.fields = Tokenize(buf.String())
			return true
		}
	}

	if open {
		s.unterminated = true
	}
	return false
}

// Fields returns the fields of the record produced by the last successful Scan.
func (s *RecordScanner) Fields() []string {
	return s.fields
}

// Unterminated reports whether the document ended while a quoted span was
// still open, meaning the final partial record was dropped.
func (s *RecordScanner) Unterminated() bool {
	return s.unterminated
}

// toggleQuoteState flips open once for every quote in line that is not
// escaped with a directly preceding backslash.
func toggleQuoteState(line string, open bool) bool {
	for i := 0; i < len(line); i++ {
		if line[i] != '"' {
			continue
		}
		if i > 0 && line[i-1] == '\\' {
			continue
		}
		open = !open
	}
	return open
}
