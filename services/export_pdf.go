package services

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"billgenerator/billing"
)

// GeneratePDF renders one bill document with maroto/v2. The deviation
// statement is landscape, everything else portrait.
func GeneratePDF(doc ExportDoc) ([]byte, error) {
	orient := orientation.Vertical
	if doc.Landscape {
		orient = orientation.Horizontal
	}

	cfg := config.NewBuilder().
		WithOrientation(orient).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addTitle(m, doc)
	addHeaderBlock(m, doc.Header)
	addInfo(m, doc.Info)
	if len(doc.Columns) > 0 {
		addTableHeader(m, doc.Columns)
		for _, r := range doc.Rows {
			addTableRow(m, doc.Columns, r)
		}
	}
	addSummary(m, doc.Summary)
	addFooter(m, doc.Footer)

	pdf, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF for %s: %w", doc.Name, err)
	}

	return pdf.GetBytes(), nil
}

func addTitle(m core.Maroto, doc ExportDoc) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(doc.Title, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)
	if doc.Date != "" {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(
					text.New("Date: "+doc.Date, props.Text{
						Size:  9,
						Align: align.Right,
						Color: &props.Color{Red: 80, Green: 80, Blue: 80},
					}),
				),
			),
		)
	}
	m.AddRows(row.New(4))
}

// addHeaderBlock prints the non-empty lines of the work-order header block.
func addHeaderBlock(m core.Maroto, header [][]string) {
	printed := false
	for _, line := range header {
		var parts []string
		for _, v := range line {
			if v != "" {
				parts = append(parts, v)
			}
		}
		if len(parts) == 0 {
			continue
		}
		m.AddRows(
			row.New(5).Add(
				col.New(12).Add(
					text.New(strings.Join(parts, "  "), props.Text{Size: 8, Align: align.Left}),
				),
			),
		)
		printed = true
	}
	if printed {
		m.AddRows(row.New(4))
	}
}

func addInfo(m core.Maroto, info []billing.Particular) {
	if len(info) == 0 {
		return
	}
	for _, p := range info {
		m.AddRows(
			row.New(6).Add(
				col.New(4).Add(
					text.New(p.Label, props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Left}),
				),
				col.New(8).Add(
					text.New(p.Value, props.Text{Size: 9, Align: align.Left}),
				),
			),
		)
	}
	m.AddRows(row.New(4))
}

func addTableHeader(m core.Maroto, columns []ExportColumn) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerCell := props.Cell{BackgroundColor: headerBg}

	var cols []core.Col
	for _, c := range columns {
		if c.Span == 0 {
			continue
		}
		cols = append(cols, col.New(c.Span).Add(text.New(c.Title, headerText)).WithStyle(&headerCell))
	}
	m.AddRows(row.New(10).Add(cols...))
}

func addTableRow(m core.Maroto, columns []ExportColumn, r ExportRow) {
	style := fontstyle.Normal
	var cellStyle *props.Cell
	if r.Bold || r.Underline {
		style = fontstyle.Bold
		cellStyle = &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}
	}

	var cols []core.Col
	for i, c := range columns {
		if c.Span == 0 {
			continue
		}
		value := ""
		if i < len(r.Cells) {
			value = r.Cells[i]
		}
		ps := props.Text{Size: 7, Style: style, Align: align.Left}
		if c.Right {
			ps.Align = align.Right
		}
		cl := col.New(c.Span).Add(text.New(value, ps))
		if cellStyle != nil {
			cl = cl.WithStyle(cellStyle)
		}
		cols = append(cols, cl)
	}
	m.AddRows(row.New(7).Add(cols...))
}

func addSummary(m core.Maroto, summary []billing.Particular) {
	if len(summary) == 0 {
		return
	}
	m.AddRows(row.New(6))

	summaryCell := &props.Cell{BackgroundColor: &props.Color{Red: 240, Green: 240, Blue: 240}}
	labelStyle := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}

	for _, p := range summary {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(text.New(p.Label, labelStyle)).WithStyle(summaryCell),
				col.New(4).Add(text.New(p.Value, labelStyle)).WithStyle(summaryCell),
			),
		)
	}
}

func addFooter(m core.Maroto, lines []string) {
	if len(lines) == 0 {
		return
	}
	m.AddRows(row.New(6))
	for _, line := range lines {
		if line == "" {
			m.AddRows(row.New(6))
			continue
		}
		m.AddRows(
			row.New(10).Add(
				col.New(12).Add(text.New(line, props.Text{Size: 9, Align: align.Left})),
			),
		)
	}
}
