// Package templates holds the HTML views: the bill upload form, the run
// history and the printable bill documents.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// htmlWriter keeps the first write error so components can emit markup
// without checking every call.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

// text writes s HTML-escaped.
func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) child(ctx context.Context, c templ.Component) {
	if h.err == nil && c != nil {
		h.err = c.Render(ctx, h.w)
	}
}

const pageStyle = `
body{font-family:"Times New Roman",serif;font-size:12px;margin:16px;color:#111}
h1{font-size:18px;text-align:center;margin:4px 0}
table{border-collapse:collapse;width:100%;margin:8px 0}
th,td{border:1px solid #000;padding:3px 5px;vertical-align:top}
th{background:#333;color:#fff}
td.num{text-align:right}
tr.bold td{font-weight:bold}
tr.divider td{font-weight:bold;text-decoration:underline}
table.plain td{border:none}
.date{text-align:right}
.notes p{margin:4px 0}
.error{color:#b00020}
.warning{color:#8a6d00}
form label{display:block;margin-top:6px}
@media print{.no-print{display:none}}
`

// Page wraps body in the common HTML document shell.
func Page(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		h.text(title)
		h.raw(`</title><style>`)
		h.raw(pageStyle)
		h.raw(`</style></head><body>`)
		h.child(ctx, body)
		h.raw(`</body></html>`)
		return h.err
	})
}
