package services

import (
	"fmt"
	"strings"

	"billgenerator/billing"
)

// ExportColumn describes one table column of a printable document.
type ExportColumn struct {
	Title string
	// Width is the spreadsheet column width.
	Width float64
	// Span is the PDF grid span out of 12. Zero leaves the column out of the PDF.
	Span  int
	Right bool
}

// ExportRow is one table row, already formatted.
type ExportRow struct {
	Cells     []string
	Bold      bool
	Underline bool
}

// ExportDoc is one bill document flattened for the spreadsheet and PDF writers.
type ExportDoc struct {
	Name      string // billing document name, e.g. first_page_data
	Title     string
	SheetName string
	Landscape bool
	Date      string

	// Header is the descriptive block copied from the work-order sheet.
	Header  [][]string
	Info    []billing.Particular
	Columns []ExportColumn
	Rows    []ExportRow
	Summary []billing.Particular
	Footer  []string
}

// BuildExportDocs flattens every document of a bill in print order.
func BuildExportDocs(res *billing.Result) []ExportDoc {
	builders := map[string]func(*billing.Result) ExportDoc{
		billing.DocFirstPage:   firstPageDoc,
		billing.DocDeviation:   deviationDoc,
		billing.DocExtraItems:  extraItemsDoc,
		billing.DocNoteSheet:   noteSheetDoc,
		billing.DocCertificate: certificateDoc,
		billing.DocLastPage:    lastPageDoc,
	}
	docs := make([]ExportDoc, 0, len(billing.DocumentNames))
	for _, name := range billing.DocumentNames {
		docs = append(docs, builders[name](res))
	}
	return docs
}

// premiumLabel reads e.g. "Add Tender Premium @ 10.00% above".
func premiumLabel(p billing.Premium) string {
	verb := "Add"
	if p.Type == billing.PremiumBelow {
		verb = "Deduct"
	}
	return fmt.Sprintf("%s Tender Premium @ %s %s", verb, FormatPercent(p.Percent), p.Type)
}

func itemColumns() []ExportColumn {
	return []ExportColumn{
		{Title: "S.No.", Width: 8, Span: 1},
		{Title: "Description", Width: 50, Span: 4},
		{Title: "Unit", Width: 8, Span: 1},
		{Title: "Quantity", Width: 12, Span: 1, Right: true},
		{Title: "Rate", Width: 14, Span: 2, Right: true},
		{Title: "Amount", Width: 16, Span: 2, Right: true},
		{Title: "Remark", Width: 16, Span: 1},
	}
}

func itemRows(items []billing.LineItem) []ExportRow {
	rows := make([]ExportRow, 0, len(items))
	for _, it := range items {
		if it.IsDivider {
			rows = append(rows, ExportRow{
				Cells:     []string{"", it.Description, "", "", "", "", ""},
				Bold:      it.Bold,
				Underline: it.Underline,
			})
			continue
		}
		rows = append(rows, ExportRow{Cells: []string{
			it.SerialNo,
			it.Description,
			it.Unit,
			FormatQty(it.Quantity),
			FormatRate(it.Rate),
			FormatAmount(it.Amount),
			it.Remark,
		}})
	}
	return rows
}

func firstPageDoc(res *billing.Result) ExportDoc {
	d := res.FirstPage
	t := d.Totals
	return ExportDoc{
		Name:      billing.DocFirstPage,
		Title:     "Contractor Bill",
		SheetName: "First Page",
		Date:      res.LastPage.BillDate,
		Header:    d.Header,
		Info:      d.Particulars,
		Columns:   itemColumns(),
		Rows:      itemRows(d.Items),
		Summary: []billing.Particular{
			{Label: "Grand Total", Value: FormatAmount(t.GrandTotal)},
			{Label: premiumLabel(billing.Premium{Percent: t.Premium.Percent, Type: t.Premium.Type}), Value: FormatAmount(t.Premium.Amount)},
			{Label: "Payable Amount", Value: FormatAmount(t.Payable)},
			{Label: "Extra Items (incl. premium)", Value: FormatAmount(t.ExtraItemsPayable)},
		},
	}
}

func deviationDoc(res *billing.Result) ExportDoc {
	d := res.Deviation
	s := d.Summary

	rows := make([]ExportRow, 0, len(d.Items)+3)
	for _, it := range d.Items {
		rows = append(rows, ExportRow{Cells: []string{
			it.SerialNo,
			it.Description,
			it.Unit,
			FormatQty(it.QtyWO),
			FormatRate(it.Rate),
			FormatAmount(it.AmtWO),
			FormatQty(it.QtyBill),
			FormatAmount(it.AmtBill),
			blankZeroQty(it.ExcessQty),
			blankZeroAmount(it.ExcessAmt),
			blankZeroQty(it.SavingQty),
			blankZeroAmount(it.SavingAmt),
		}})
	}
	summaryRow := func(label string, wo, exec, excess, saving int64) ExportRow {
		return ExportRow{
			Cells: []string{"", label, "", "", "",
				FormatAmount(wo), "", FormatAmount(exec),
				"", FormatAmount(excess), "", FormatAmount(saving)},
			Bold: true,
		}
	}
	rows = append(rows,
		summaryRow("Total", s.WorkOrderTotal, s.ExecutedTotal, s.OverallExcess, s.OverallSaving),
		summaryRow(premiumLabel(s.Premium), s.TenderPremiumWorkOrder, s.TenderPremiumExecuted, s.TenderPremiumExcess, s.TenderPremiumSaving),
		summaryRow("Grand Total", s.GrandTotalWorkOrder, s.GrandTotalExecuted, s.GrandTotalExcess, s.GrandTotalSaving),
	)

	return ExportDoc{
		Name:      billing.DocDeviation,
		Title:     "Deviation Statement",
		SheetName: "Deviation Statement",
		Landscape: true,
		Date:      d.BillDate,
		Header:    d.Header,
		Columns: []ExportColumn{
			{Title: "S.No.", Width: 8, Span: 1},
			{Title: "Description", Width: 45, Span: 2},
			{Title: "Unit", Width: 8},
			{Title: "Qty as per WO", Width: 12, Span: 1, Right: true},
			{Title: "Rate", Width: 12, Span: 1, Right: true},
			{Title: "Amt as per WO", Width: 14, Span: 1, Right: true},
			{Title: "Qty Executed", Width: 12, Span: 1, Right: true},
			{Title: "Amt as per Executed", Width: 14, Span: 1, Right: true},
			{Title: "Excess Qty", Width: 12, Span: 1, Right: true},
			{Title: "Excess Amt", Width: 14, Span: 1, Right: true},
			{Title: "Saving Qty", Width: 12, Span: 1, Right: true},
			{Title: "Saving Amt", Width: 14, Span: 1, Right: true},
		},
		Rows: rows,
		Summary: []billing.Particular{
			{Label: netDifferenceLabel(s), Value: FormatAmount(abs(s.NetDifference))},
			{Label: "Percentage of Work Order", Value: FormatPercent(s.NetDifferencePercent)},
		},
	}
}

func netDifferenceLabel(s billing.DeviationSummary) string {
	switch s.NetDifferenceKind {
	case billing.NetExcess:
		return "Overall Excess"
	case billing.NetSaving:
		return "Overall Saving"
	}
	return "Net Difference"
}

func extraItemsDoc(res *billing.Result) ExportDoc {
	d := res.ExtraItems
	return ExportDoc{
		Name:      billing.DocExtraItems,
		Title:     "Extra Items",
		SheetName: "Extra Items",
		Date:      res.LastPage.BillDate,
		Columns:   itemColumns(),
		Rows:      itemRows(d.Items),
		Summary: []billing.Particular{
			{Label: "Total", Value: FormatAmount(d.Sum)},
			{Label: premiumLabel(billing.Premium{Percent: d.Premium.Percent, Type: d.Premium.Type}), Value: FormatAmount(d.Premium.Amount)},
			{Label: "Total with Premium", Value: FormatAmount(d.Payable)},
		},
	}
}

func noteSheetDoc(res *billing.Result) ExportDoc {
	d := res.NoteSheet
	return ExportDoc{
		Name:      billing.DocNoteSheet,
		Title:     "Note Sheet",
		SheetName: "Note Sheet",
		Date:      d.BillDate,
		Info: []billing.Particular{
			{Label: "Agreement No.", Value: d.AgreementNo},
			{Label: "Name of Work", Value: d.NameOfWork},
			{Label: "Name of Firm", Value: d.NameOfFirm},
			{Label: "Date of Commencement", Value: d.DateCommencement},
			{Label: "Date of Completion", Value: d.DateCompletion},
			{Label: "Actual Date of Completion", Value: d.ActualCompletion},
			{Label: "Work Order Amount", Value: FormatINR(d.WorkOrderAmount)},
			{Label: "Payable Amount", Value: FormatAmount(d.Totals.Payable)},
			{Label: "Extra Item Amount", Value: FormatAmount(d.ExtraItemAmount)},
			{Label: "Percentage of Work Done", Value: FormatPercent(d.PercentageWorkDone)},
		},
		Footer: d.Notes,
	}
}

func certificateDoc(res *billing.Result) ExportDoc {
	d := res.Certificate
	rows := make([]ExportRow, 0, len(d.Items))
	for _, it := range d.Items {
		rows = append(rows, ExportRow{Cells: []string{it.Name, it.Percentage, FormatAmount(it.Value)}})
	}
	o := d.Officers
	return ExportDoc{
		Name:      billing.DocCertificate,
		Title:     "Certificate III",
		SheetName: "Certificate III",
		Date:      d.BillDate,
		Info: []billing.Particular{
			{Label: "Measurements taken by", Value: o.MeasurementOfficer},
			{Label: "Date of measurement", Value: o.MeasurementDate},
			{Label: "Measurement Book No.", Value: o.MeasurementBookNo},
			{Label: "Measurement Book Page", Value: o.MeasurementBookPage},
		},
		Columns: []ExportColumn{
			{Title: "Particulars", Width: 45, Span: 6},
			{Title: "Percentage", Width: 12, Span: 2},
			{Title: "Amount", Width: 16, Span: 4, Right: true},
		},
		Rows: rows,
		Summary: []billing.Particular{
			{Label: "Total value of work done", Value: FormatAmount(d.TotalValue)},
			{Label: "Deduct amount paid in last bill", Value: FormatAmount(d.AmountPaidLastBill)},
			{Label: "Balance", Value: FormatAmount(d.Balance)},
			{Label: "Payment now made", Value: FormatAmount(d.PaymentNow)},
			{Label: "By cheque", Value: FormatAmount(d.ByCheque)},
			{Label: "Total recovery", Value: FormatAmount(d.TotalRecovery)},
		},
		Footer: []string{
			"Pay Rs. " + FormatAmount(d.ByCheque) + " (Rupees " + d.ChequeAmountWords + " Only)",
			"",
			signatureLine(o.OfficerName, o.OfficerDesignation),
			signatureLine(o.AuthorisingOfficerName, o.AuthorisingOfficerDesignation),
		},
	}
}

func lastPageDoc(res *billing.Result) ExportDoc {
	d := res.LastPage
	return ExportDoc{
		Name:      billing.DocLastPage,
		Title:     "Bill Summary",
		SheetName: "Last Page",
		Date:      d.BillDate,
		Summary: []billing.Particular{
			{Label: "Payable Amount", Value: FormatAmount(d.PayableAmount)},
		},
		Footer: []string{"Rupees " + d.AmountWords + " Only"},
	}
}

func signatureLine(name, designation string) string {
	return strings.TrimSpace(strings.Join([]string{name, designation}, "  "))
}

func blankZeroQty(q float64) string {
	if q == 0 {
		return ""
	}
	return FormatQty(q)
}

func blankZeroAmount(n int64) string {
	if n == 0 {
		return ""
	}
	return FormatAmount(n)
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
