package templates

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/menuboard/internal/core"
	"github.com/JonMunkholm/menuboard/internal/csvimport"
)

func TestErrorAlert_EscapesText(t *testing.T) {
	var b strings.Builder
	err := ErrorAlert("File <b>too</b> large", "Split the file", "FILE001").Render(context.Background(), &b)

	require.NoError(t, err)
	out := b.String()
	assert.Contains(t, out, "File &lt;b&gt;too&lt;/b&gt; large")
	assert.Contains(t, out, "Split the file")
	assert.Contains(t, out, `data-code="FILE001"`)
}

func TestErrorAlert_NoAction(t *testing.T) {
	var b strings.Builder
	require.NoError(t, ErrorAlert("Oops", "", "ERR000").Render(context.Background(), &b))

	assert.NotContains(t, b.String(), "alert-action")
}

func TestImportSummary(t *testing.T) {
	result := &core.ImportResult{
		FileName:  "menu.csv",
		TotalRows: 3,
		ValidRows: 2,
		Upserted:  2,
		Errors:    []csvimport.ValidationError{{Row: 2, Errors: []string{"store_code is required"}}},
		Warnings:  []string{"unrecognized column ignored: <x>"},
	}

	var b strings.Builder
	require.NoError(t, ImportSummary(result).Render(context.Background(), &b))

	out := b.String()
	assert.Contains(t, out, "Import complete: menu.csv")
	assert.Contains(t, out, "outcome-partial")
	assert.Contains(t, out, "<dt>Written</dt><dd>2</dd>")
	assert.Contains(t, out, "unrecognized column ignored: &lt;x&gt;")
	assert.Contains(t, out, "<td>2</td>")
	assert.Contains(t, out, "store_code is required")
}

func TestImportSummary_DryRunTruncatesErrors(t *testing.T) {
	result := &core.ImportResult{FileName: "menu.csv", DryRun: true}
	for i := 1; i <= maxSummaryErrors+5; i++ {
		result.Errors = append(result.Errors, csvimport.ValidationError{Row: i, Errors: []string{"product_name is required"}})
	}
	result.TotalRows = len(result.Errors)

	var b strings.Builder
	require.NoError(t, ImportSummary(result).Render(context.Background(), &b))

	out := b.String()
	assert.Contains(t, out, "Preview: menu.csv")
	assert.NotContains(t, out, "Written")
	assert.Contains(t, out, "5 more rows with errors")
	assert.Equal(t, maxSummaryErrors, strings.Count(out, "<li>product_name is required</li>"))
}

func TestImportSummary_EscapesUserText(t *testing.T) {
	tests := []struct {
		name   string
		result *core.ImportResult
		raw    string
		want   string
	}{
		{
			name:   "file name",
			result: &core.ImportResult{FileName: `menu"><script>alert(1)</script>.csv`},
			raw:    "<script>",
			want:   `menu&#34;&gt;&lt;script&gt;alert(1)&lt;/script&gt;.csv`,
		},
		{
			name: "row error",
			result: &core.ImportResult{
				FileName: "menu.csv",
				Errors:   []csvimport.ValidationError{{Row: 2, Errors: []string{`thca_percent "<1" is not a number`}}},
			},
			raw:  `"<1"`,
			want: `thca_percent &#34;&lt;1&#34; is not a number`,
		},
		{
			name:   "warning",
			result: &core.ImportResult{FileName: "menu.csv", Warnings: []string{"unrecognized column ignored: Tom & Jerry's"}},
			raw:    "Tom & Jerry's",
			want:   "Tom &amp; Jerry&#39;s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			require.NoError(t, ImportSummary(tt.result).Render(context.Background(), &b))

			out := b.String()
			assert.Contains(t, out, tt.want)
			assert.NotContains(t, out, tt.raw)
		})
	}
}
