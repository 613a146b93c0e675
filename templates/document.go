package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// DocumentLine is a label/value pair.
type DocumentLine struct {
	Label string
	Value string
}

// DocumentColumn is a table column heading.
type DocumentColumn struct {
	Title string
	Right bool
}

// DocumentRow is one formatted table row.
type DocumentRow struct {
	Cells     []string
	Bold      bool
	Underline bool
}

// DocumentView is one printable bill document.
type DocumentView struct {
	Title   string
	Date    string
	Header  [][]string
	Info    []DocumentLine
	Columns []DocumentColumn
	Rows    []DocumentRow
	Summary []DocumentLine
	Footer  []string
}

// DocumentPage renders a complete HTML page for one document.
func DocumentPage(v DocumentView) templ.Component {
	return Page(v.Title, DocumentContent(v))
}

// DocumentContent renders the document body without the page shell.
func DocumentContent(v DocumentView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}

		h.raw(`<h1>`)
		h.text(v.Title)
		h.raw(`</h1>`)
		if v.Date != "" {
			h.raw(`<p class="date">Date: `)
			h.text(v.Date)
			h.raw(`</p>`)
		}

		if hasContent(v.Header) {
			h.raw(`<table class="plain header">`)
			for _, line := range v.Header {
				h.raw(`<tr>`)
				for _, cell := range line {
					h.raw(`<td>`)
					h.text(cell)
					h.raw(`</td>`)
				}
				h.raw(`</tr>`)
			}
			h.raw(`</table>`)
		}

		writeLines(h, "plain info", v.Info)

		if len(v.Columns) > 0 {
			h.raw(`<table class="items"><thead><tr>`)
			for _, c := range v.Columns {
				h.raw(`<th>`)
				h.text(c.Title)
				h.raw(`</th>`)
			}
			h.raw(`</tr></thead><tbody>`)
			for _, r := range v.Rows {
				switch {
				case r.Underline:
					h.raw(`<tr class="divider">`)
				case r.Bold:
					h.raw(`<tr class="bold">`)
				default:
					h.raw(`<tr>`)
				}
				for i, cell := range r.Cells {
					if i < len(v.Columns) && v.Columns[i].Right {
						h.raw(`<td class="num">`)
					} else {
						h.raw(`<td>`)
					}
					h.text(cell)
					h.raw(`</td>`)
				}
				h.raw(`</tr>`)
			}
			h.raw(`</tbody></table>`)
		}

		writeLines(h, "summary", v.Summary)

		if len(v.Footer) > 0 {
			h.raw(`<div class="notes">`)
			for _, line := range v.Footer {
				if line == "" {
					h.raw(`<br>`)
					continue
				}
				h.raw(`<p>`)
				h.text(line)
				h.raw(`</p>`)
			}
			h.raw(`</div>`)
		}

		return h.err
	})
}

func writeLines(h *htmlWriter, class string, lines []DocumentLine) {
	if len(lines) == 0 {
		return
	}
	h.raw(`<table class="`)
	h.text(class)
	h.raw(`">`)
	for _, l := range lines {
		h.raw(`<tr><td><strong>`)
		h.text(l.Label)
		h.raw(`</strong></td><td class="num">`)
		h.text(l.Value)
		h.raw(`</td></tr>`)
	}
	h.raw(`</table>`)
}

func hasContent(block [][]string) bool {
	for _, line := range block {
		for _, cell := range line {
			if cell != "" {
				return true
			}
		}
	}
	return false
}
