package csvimport

// tokenizer.go splits one logical CSV record into fields.
//
// The tokenizer only understands doubled-quote escaping (""). Backslash-quote
// handling belongs to the record scanner, which decides where a logical record
// ends before this code ever sees it. The two conventions are applied in two
// separate passes on purpose and must not be merged.

import "strings"

// Tokenize splits a single logical record into trimmed field values.
//
// Quote characters delimit quoted spans and are not copied into the field.
// Inside a quoted span a doubled quote produces one literal quote. Commas
// inside a quoted span are field content. The number of fields returned is
// always the number of unquoted commas plus one; a trailing empty field is kept.
func Tokenize(record string) []string {
	var (
		fields  []string
		current strings.Builder
		quoted  bool
	)

	for i := 0; i < len(record); i++ {
		c := record[i]
		switch {
		case c == '"' && quoted && i+1 < len(record) && record[i+1] == '"':
			current.WriteByte('"')
			i++
		case c == '"':
			quoted = !quoted
		case c == ',' && !quoted:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}

	return append(fields, strings.TrimSpace(current.String()))
}
