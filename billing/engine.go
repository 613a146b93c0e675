package billing

import (
	"fmt"
	"strconv"
)

// Stable document names the renderers bind to.
const (
	DocFirstPage   = "first_page_data"
	DocLastPage    = "last_page_data"
	DocDeviation   = "deviation_data"
	DocExtraItems  = "extra_items_data"
	DocNoteSheet   = "note_sheet_data"
	DocCertificate = "certificate_data"
)

// DocumentNames lists the documents in print order.
var DocumentNames = []string{
	DocFirstPage, DocDeviation, DocExtraItems, DocNoteSheet, DocCertificate, DocLastPage,
}

// Input holds the three grids. Any of them may be nil.
type Input struct {
	WorkOrder    Grid
	BillQuantity Grid
	ExtraItems   Grid
}

// Particular is a label/value line of the bill header.
type Particular struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FirstPageData is the contractor's running bill.
type FirstPageData struct {
	Header      [][]string   `json:"header"`
	Particulars []Particular `json:"particulars"`
	Items       []LineItem   `json:"items"`
	Totals      BillTotals   `json:"totals"`
}

// LastPageData closes the bill with the payable figure in words.
type LastPageData struct {
	PayableAmount int64  `json:"payable_amount"`
	AmountWords   string `json:"amount_words"`
	BillDate      string `json:"bill_date"`
}

// DeviationData is the deviation statement.
type DeviationData struct {
	Header   [][]string       `json:"header"`
	Items    []DeviationItem  `json:"items"`
	Summary  DeviationSummary `json:"summary"`
	BillDate string           `json:"bill_date"`
}

// ExtraItemsData is the standalone extra-items schedule.
type ExtraItemsData struct {
	Items   []LineItem    `json:"items"`
	Sum     int64         `json:"sum"`
	Premium PremiumAmount `json:"premium"`
	Payable int64         `json:"payable"`
}

// NoteSheetData is the explanatory note sheet.
type NoteSheetData struct {
	AgreementNo         string     `json:"agreement_no"`
	NameOfWork          string     `json:"name_of_work"`
	NameOfFirm          string     `json:"name_of_firm"`
	DateCommencement    string     `json:"date_commencement"`
	DateCompletion      string     `json:"date_completion"`
	ActualCompletion    string     `json:"actual_completion"`
	WorkOrderAmount     float64    `json:"work_order_amount"`
	ExtraItemAmount     int64      `json:"extra_item_amount"`
	PercentageWorkDone  float64    `json:"percentage_work_done"`
	ExtraItemPercentage float64    `json:"extra_item_percentage"`
	Notes               []string   `json:"notes"`
	Totals              BillTotals `json:"totals"`
	BillDate            string     `json:"bill_date"`
}

// Result is one complete bill. It is built once and not modified afterwards.
type Result struct {
	FirstPage   FirstPageData
	LastPage    LastPageData
	Deviation   DeviationData
	ExtraItems  ExtraItemsData
	NoteSheet   NoteSheetData
	Certificate CertificateData

	// Diagnostics are the recoverable problems met on the way, in order.
	Diagnostics []Diagnostic
}

// Documents returns the output mappings keyed by their stable names.
func (r *Result) Documents() map[string]any {
	return map[string]any{
		DocFirstPage:   r.FirstPage,
		DocLastPage:    r.LastPage,
		DocDeviation:   r.Deviation,
		DocExtraItems:  r.ExtraItems,
		DocNoteSheet:   r.NoteSheet,
		DocCertificate: r.Certificate,
	}
}

// Generate computes every document of one bill. Invalid configuration stops
// the run before any row is read; everything else is reported through
// Result.Diagnostics.
func Generate(in Input, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var diags []Diagnostic
	if in.WorkOrder == nil {
		diags = append(diags, structural(SourceWorkOrder, "grid missing; no work-order items billed"))
	}
	if in.BillQuantity == nil {
		diags = append(diags, structural(SourceBillQuantity, "grid missing; billed quantities taken as 0"))
	}
	if in.ExtraItems == nil {
		diags = append(diags, structural(SourceExtraItems, "grid missing; no extra items billed"))
	}

	premium := cfg.Premium()

	lines, d := BuildLineItems(in.WorkOrder, in.BillQuantity, in.ExtraItems)
	diags = append(diags, d...)

	totals, d := ComputeTotals(lines.Items, premium)
	diags = append(diags, d...)

	dev, d := AnalyzeDeviation(in.WorkOrder, in.BillQuantity, premium)
	diags = append(diags, d...)

	words := func(n int64) string {
		w, fallback := AmountInWords(n)
		if fallback != nil {
			diags = append(diags, *fallback)
		}
		return w
	}

	header := in.WorkOrder.Block(HeaderRows, HeaderColumns)
	billDate := cfg.billDate()

	res := &Result{
		FirstPage: FirstPageData{
			Header:      header,
			Particulars: particulars(cfg),
			Items:       lines.Items,
			Totals:      totals,
		},
		LastPage: LastPageData{
			PayableAmount: totals.Payable,
			AmountWords:   words(totals.Payable),
			BillDate:      billDate,
		},
		Deviation: DeviationData{
			Header:   header,
			Items:    dev.Items,
			Summary:  dev.Summary,
			BillDate: billDate,
		},
		ExtraItems: ExtraItemsData{
			Items:   lines.ExtraItems,
			Sum:     totals.ExtraItemsSum,
			Premium: PremiumAmount{Percent: premium.Percent, Type: premium.Type, Amount: totals.ExtraItemsPremium},
			Payable: totals.ExtraItemsPayable,
		},
	}

	cert := BuildCertificate(totals.Payable, cfg.PaidLastBill(), cfg.IsFirstBill)
	cert.ChequeAmountWords = words(cert.ByCheque)
	cert.Officers = cfg.Officers
	cert.BillDate = billDate
	res.Certificate = cert

	res.NoteSheet = noteSheet(in.WorkOrder, cfg, totals)
	res.NoteSheet.BillDate = billDate

	res.Diagnostics = dedupe(diags)
	return res, nil
}

func noteSheet(wo Grid, cfg Config, totals BillTotals) NoteSheetData {
	extra := totals.ExtraItemsSum
	return NoteSheetData{
		AgreementNo:         firstNonEmpty(cfg.AgreementNo, wo.Text(0, 1)),
		NameOfWork:          firstNonEmpty(cfg.WorkName, wo.Text(1, 1)),
		NameOfFirm:          firstNonEmpty(cfg.ContractorName, wo.Text(2, 1)),
		DateCommencement:    firstNonEmpty(formatDate(cfg.StartDate), wo.Text(3, 1)),
		DateCompletion:      firstNonEmpty(formatDate(cfg.CompletionDate), wo.Text(4, 1)),
		ActualCompletion:    firstNonEmpty(formatDate(cfg.ActualCompletionDate), wo.Text(5, 1)),
		WorkOrderAmount:     cfg.WorkOrderAmount,
		ExtraItemAmount:     extra,
		PercentageWorkDone:  PercentOf(float64(totals.Payable), cfg.WorkOrderAmount),
		ExtraItemPercentage: PercentOf(float64(extra), cfg.WorkOrderAmount),
		Notes: BuildNotes(totals.Payable, cfg.WorkOrderAmount, extra, NoteOptions{
			ApprovalAuthority: cfg.ApprovalAuthority,
			Signatory:         cfg.Signatory,
		}),
		Totals: totals,
	}
}

func particulars(cfg Config) []Particular {
	return []Particular{
		{"Start Date:", formatDate(cfg.StartDate)},
		{"Completion Date:", formatDate(cfg.CompletionDate)},
		{"Actual Completion Date:", formatDate(cfg.ActualCompletionDate)},
		{"Order Date:", cfg.OrderDate},
		{"Contractor Name:", cfg.ContractorName},
		{"Work Name:", cfg.WorkName},
		{"Bill Serial:", cfg.BillSerial},
		{"Agreement No:", cfg.AgreementNo},
		{"Work Order Ref:", cfg.WorkOrderRef},
		{"Work Order Amount:", strconv.FormatFloat(cfg.WorkOrderAmount, 'f', -1, 64)},
		{"Premium Percent:", fmt.Sprintf("%s %s", strconv.FormatFloat(cfg.PremiumPercent, 'f', -1, 64), cfg.PremiumType)},
		{"Amount Paid Last Bill:", strconv.FormatInt(cfg.PaidLastBill(), 10)},
		{"Bill Type:", cfg.BillType},
		{"Bill Number:", cfg.BillNumber},
		{"Last Bill Reference:", cfg.LastBillReference},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
