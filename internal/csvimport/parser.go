// Package csvimport turns operator-uploaded catalog spreadsheets into typed
// product records.
//
// The package is pure: nothing here performs I/O, logs, or keeps state between
// calls, so every function is safe for concurrent use. The pipeline is
//
//	text -> Parse (RecordScanner + Tokenize) -> []RowRecord -> ValidateDocument -> ImportReport
//
// GenerateTemplate produces the downloadable template that documents the
// columns ValidateRow expects.
package csvimport

// RowRecord maps header column names to one data row's values.
type RowRecord map[string]string

// Document is the result of parsing a whole upload.
type Document struct {
	// Header holds the column names from the first record, verbatim.
	Header []string
	// Rows holds one record per data row in source order.
	Rows []RowRecord
	// Unterminated is set when the document ended inside a quoted field and
	// the final partial record was dropped.
	Unterminated bool
}

// Parse reads every logical record in text. The first record becomes the
// header; each later record is paired with it by position.
//
// Rows shorter than the header are padded with empty values and longer rows
// are truncated, so every RowRecord carries exactly len(Header) keys. Neither
// case is an error.
func Parse(text string) Document {
	var doc Document

	sc := NewRecordScanner(text)
	for sc.Scan() {
		fields := sc.Fields()
		if doc.Header == nil {
			doc.Header = fields
			continue
		}
		doc.Rows = append(doc.Rows, pairRow(doc.Header, fields))
	}
	doc.Unterminated = sc.Unterminated()

	if doc.Rows == nil {
		doc.Rows = []RowRecord{}
	}
	return doc
}

// ParseDocument returns only the data rows of text.
func ParseDocument(text string) []RowRecord {
	return Parse(text).Rows
}

// pairRow builds a RowRecord from header and fields.
func pairRow(header, fields []string) RowRecord {
	row := make(RowRecord, len(header))
	for i, name := range header {
		if i < len(fields) {
			row[name] = fields[i]
		} else {
			row[name] = ""
		}
	}
	return row
}
