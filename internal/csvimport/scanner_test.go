package csvimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(text string) ([][]string, bool) {
	var records [][]string
	sc := NewRecordScanner(text)
	for sc.Scan() {
		records = append(records, sc.Fields())
	}
	return records, sc.Unterminated()
}

func TestRecordScanner_SingleLineRecords(t *testing.T) {
	records, unterminated := scanAll("a,b\nc,d\ne,f")

	assert.False(t, unterminated)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}, {"e", "f"}}, records)
}

func TestRecordScanner_MultiLineQuotedField(t *testing.T) {
	records, unterminated := scanAll("\"line one\nline two\",Flower")

	assert.False(t, unterminated)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"line one\nline two", "Flower"}, records[0])
}

func TestRecordScanner_QuotedSpanAcrossThreeLines(t *testing.T) {
	records, _ := scanAll("name,description\nX,\"one\ntwo\nthree\"\nY,plain")

	require.Len(t, records, 3)
	assert.Equal(t, []string{"X", "one\ntwo\nthree"}, records[1])
	assert.Equal(t, []string{"Y", "plain"}, records[2])
}

func TestRecordScanner_BackslashQuoteDoesNotOpenSpan(t *testing.T) {
	// The scanner ignores \" when looking for record ends, so the line below
	// is a complete record even though the tokenizer then treats the same
	// quote as opening a span.
	records, unterminated := scanAll("name,size\nsay \\\"hi,x\nnext,row")

	assert.False(t, unterminated)
	require.Len(t, records, 3)
	assert.Equal(t, []string{`say \hi,x`}, records[1])
	assert.Equal(t, []string{"next", "row"}, records[2])
}

func TestRecordScanner_UnterminatedTrailingRecordDropped(t *testing.T) {
	records, unterminated := scanAll("a,b\nc,\"never closed\nstill open")

	assert.True(t, unterminated)
	assert.Equal(t, [][]string{{"a", "b"}}, records)
}

func TestRecordScanner_EmptyDocument(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\n", "\t \n "} {
		records, unterminated := scanAll(text)
		assert.Empty(t, records, "text %q", text)
		assert.False(t, unterminated, "text %q", text)
	}
}

func TestRecordScanner_DocumentTrimmedOnce(t *testing.T) {
	records, _ := scanAll("\n\n  a,b\nc,d  \n\n")

	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, records)
}

func TestRecordScanner_InteriorBlankLineIsARecord(t *testing.T) {
	records, _ := scanAll("a,b\n\nc,d")

	assert.Equal(t, [][]string{{"a", "b"}, {""}, {"c", "d"}}, records)
}

func TestRecordScanner_NotRestartable(t *testing.T) {
	sc := NewRecordScanner("a\nb")
	for sc.Scan() {
	}
	assert.False(t, sc.Scan())
	assert.Nil(t, sc.Fields())
}
