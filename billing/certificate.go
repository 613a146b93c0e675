package billing

// CertificateItem is one line of the payment statement.
type CertificateItem struct {
	Name       string `json:"name"`
	Percentage string `json:"percentage"`
	Value      int64  `json:"value"`
}

// Officers are the names printed on the certificate.
type Officers struct {
	MeasurementOfficer            string `json:"measurement_officer" mapstructure:"measurement_officer"`
	MeasurementDate               string `json:"measurement_date" mapstructure:"measurement_date"`
	MeasurementBookPage           string `json:"measurement_book_page" mapstructure:"measurement_book_page"`
	MeasurementBookNo             string `json:"measurement_book_no" mapstructure:"measurement_book_no"`
	OfficerName                   string `json:"officer_name" mapstructure:"officer_name"`
	OfficerDesignation            string `json:"officer_designation" mapstructure:"officer_designation"`
	AuthorisingOfficerName        string `json:"authorising_officer_name" mapstructure:"authorising_officer_name"`
	AuthorisingOfficerDesignation string `json:"authorising_officer_designation" mapstructure:"authorising_officer_designation"`
}

// CertificateData is the payment certificate (Certificate III).
type CertificateData struct {
	PayableAmount      int64             `json:"payable_amount"`
	TotalValue         int64             `json:"total_123"`
	AmountPaidLastBill int64             `json:"amount_paid_last_bill"`
	Balance            int64             `json:"balance_4_minus_5"`
	PaymentNow         int64             `json:"payment_now"`
	ByCheque           int64             `json:"by_cheque"`
	ChequeAmountWords  string            `json:"cheque_amount_words"`
	Items              []CertificateItem `json:"certificate_items"`
	TotalRecovery      int64             `json:"total_recovery"`
	Officers           Officers          `json:"officers"`
	BillDate           string            `json:"bill_date"`
}

// BuildCertificate works out what is due now. On a first bill nothing has
// been paid before, whatever amount was passed in.
func BuildCertificate(payable, paidLastBill int64, firstBill bool) CertificateData {
	if firstBill {
		paidLastBill = 0
	}
	balance := payable - paidLastBill

	return CertificateData{
		PayableAmount:      payable,
		TotalValue:         payable,
		AmountPaidLastBill: paidLastBill,
		Balance:            balance,
		PaymentNow:         balance,
		ByCheque:           balance,
		Items: []CertificateItem{
			{Name: "Total value of work", Percentage: "100%", Value: payable},
			{Name: "Less: Amount Paid Last Bill", Percentage: "-", Value: paidLastBill},
			{Name: "Net Payable", Percentage: "-", Value: balance},
		},
	}
}
