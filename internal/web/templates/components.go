// Package templates holds the HTML fragments the web layer returns to HTMX
// clients.
package templates

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/menuboard/internal/core"
)

// ErrorAlert renders an error banner with an optional suggested action.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ew := &errWriter{w: w}
		ew.printf(`<div class="alert alert-error" role="alert" data-code="%s">`, templ.EscapeString(code))
		ew.printf(`<p class="alert-message">%s</p>`, templ.EscapeString(message))
		if action != "" {
			ew.printf(`<p class="alert-action">%s</p>`, templ.EscapeString(action))
		}
		ew.printf(`<p class="alert-code">Error code: %s</p></div>`, templ.EscapeString(code))
		return ew.err
	})
}

// maxSummaryErrors bounds the row errors listed in ImportSummary.
const maxSummaryErrors = 50

// ImportSummary renders the counts, warnings and row errors of an import.
func ImportSummary(result *core.ImportResult) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ew := &errWriter{w: w}

		title := "Import complete"
		if result.DryRun {
			title = "Preview"
		}
		ew.printf(`<section class="import-summary outcome-%s" data-import-id="%s">`,
			templ.EscapeString(result.Outcome()), result.ImportID)
		ew.printf(`<h2>%s: %s</h2>`, title, templ.EscapeString(result.FileName))

		ew.printf(`<dl class="counts">`)
		ew.count("Rows", result.TotalRows)
		ew.count("Valid", result.ValidRows)
		ew.count("Invalid", result.ErrorRows())
		if !result.DryRun {
			ew.count("Written", int(result.Upserted))
		}
		ew.printf(`</dl>`)

		if len(result.Warnings) > 0 {
			ew.printf(`<ul class="warnings">`)
			for _, warning := range result.Warnings {
				ew.printf(`<li>%s</li>`, templ.EscapeString(warning))
			}
			ew.printf(`</ul>`)
		}

		if len(result.Errors) > 0 {
			ew.printf(`<table class="row-errors"><thead><tr><th>Row</th><th>Problems</th></tr></thead><tbody>`)
			for i, rowErr := range result.Errors {
				if i == maxSummaryErrors {
					ew.printf(`<tr><td colspan="2">%d more rows with errors</td></tr>`, len(result.Errors)-i)
					break
				}
				ew.printf(`<tr><td>%d</td><td><ul>`, rowErr.Row)
				for _, msg := range rowErr.Errors {
					ew.printf(`<li>%s</li>`, templ.EscapeString(msg))
				}
				ew.printf(`</ul></td></tr>`)
			}
			ew.printf(`</tbody></table>`)
		}

		ew.printf(`</section>`)
		return ew.err
	})
}

// errWriter keeps the first write error so the components read straight through.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *errWriter) count(label string, n int) {
	e.printf(`<dt>%s</dt><dd>%s</dd>`, label, strconv.Itoa(n))
}
