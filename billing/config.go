package billing

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cast"
)

// DateLayout is how dates are printed on every document.
const DateLayout = "02-01-2006"

// dateLayouts are accepted when parsing configuration values.
var dateLayouts = []string{"2006-01-02", DateLayout, "02/01/2006", time.RFC3339}

// Config is everything the clerk supplies besides the three grids.
type Config struct {
	PremiumPercent     float64     `json:"premium_percent"`
	PremiumType        PremiumType `json:"premium_type"`
	AmountPaidLastBill float64     `json:"amount_paid_last_bill"`
	IsFirstBill        bool        `json:"is_first_bill"`

	StartDate            time.Time `json:"start_date"`
	CompletionDate       time.Time `json:"completion_date"`
	ActualCompletionDate time.Time `json:"actual_completion_date"`
	// BillDate is printed on the documents. Zero means CompletionDate.
	BillDate time.Time `json:"bill_date"`

	WorkOrderAmount float64 `json:"work_order_amount"`

	WorkName          string `json:"work_name"`
	AgreementNo       string `json:"agreement_no"`
	BillSerial        string `json:"bill_serial"`
	WorkOrderRef      string `json:"work_order_ref"`
	ContractorName    string `json:"contractor_name"`
	OrderDate         string `json:"order_date"`
	BillType          string `json:"bill_type"`
	BillNumber        string `json:"bill_number"`
	LastBillReference string `json:"last_bill_reference"`

	ApprovalAuthority string    `json:"approval_authority"`
	Signatory         Signatory `json:"signatory"`
	Officers          Officers  `json:"officers"`
}

// ValidationError reports the configuration field that stopped the run.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Message)
}

// Validate checks the configuration before any row is touched.
func (c Config) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(&c.PremiumPercent, validation.Min(0.0), validation.Max(100.0)),
		validation.Field(&c.PremiumType, validation.Required, validation.In(PremiumAbove, PremiumBelow)),
		validation.Field(&c.AmountPaidLastBill, validation.Min(0.0)),
		validation.Field(&c.StartDate, validation.Required),
		validation.Field(&c.CompletionDate,
			validation.Required,
			validation.Min(c.StartDate).Error("must not be before start_date"),
		),
		validation.Field(&c.WorkOrderAmount, validation.Required, validation.Min(0.0).Exclusive()),
	)
	return asValidationError(err)
}

// Premium returns the tender premium settings.
func (c Config) Premium() Premium {
	return Premium{Percent: c.PremiumPercent, Type: c.PremiumType}
}

// PaidLastBill is the amount already paid, zero on a first bill.
func (c Config) PaidLastBill() int64 {
	if c.IsFirstBill {
		return 0
	}
	return int64(c.AmountPaidLastBill + 0.5)
}

func (c Config) billDate() string {
	if !c.BillDate.IsZero() {
		return c.BillDate.Format(DateLayout)
	}
	return formatDate(c.CompletionDate)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// asValidationError turns ozzo errors into a ValidationError naming the first
// failing field in alphabetical order.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return &ValidationError{Field: fields[0], Message: errs[fields[0]].Error()}
}

// requiredKeys must be present in raw configuration values.
var requiredKeys = []string{
	"start_date", "completion_date", "work_order_amount",
	"premium_percent", "premium_type", "amount_paid_last_bill", "is_first_bill",
}

// ParseConfig builds a Config from raw string values as they arrive from a
// form or a flag set, then validates it.
func ParseConfig(values map[string]string) (Config, error) {
	for _, k := range requiredKeys {
		if _, ok := values[k]; !ok {
			return Config{}, &ValidationError{Field: k, Message: "is required"}
		}
	}

	var c Config
	var err error
	get := func(k string) string { return strings.TrimSpace(values[k]) }

	if c.PremiumPercent, err = parseFloat(get("premium_percent")); err != nil {
		return Config{}, &ValidationError{Field: "premium_percent", Message: "must be a number"}
	}
	c.PremiumType = PremiumType(strings.ToLower(get("premium_type")))
	if c.AmountPaidLastBill, err = parseFloat(get("amount_paid_last_bill")); err != nil {
		return Config{}, &ValidationError{Field: "amount_paid_last_bill", Message: "must be a number"}
	}
	if c.WorkOrderAmount, err = parseFloat(get("work_order_amount")); err != nil {
		return Config{}, &ValidationError{Field: "work_order_amount", Message: "must be a number"}
	}
	if c.IsFirstBill, err = ParseBool(get("is_first_bill")); err != nil {
		return Config{}, &ValidationError{Field: "is_first_bill", Message: "must be a boolean"}
	}

	dates := []struct {
		key string
		dst *time.Time
	}{
		{"start_date", &c.StartDate},
		{"completion_date", &c.CompletionDate},
		{"actual_completion_date", &c.ActualCompletionDate},
		{"bill_date", &c.BillDate},
	}
	for _, d := range dates {
		if *d.dst, err = ParseDate(get(d.key)); err != nil {
			return Config{}, &ValidationError{Field: d.key, Message: "must be a date (YYYY-MM-DD or DD-MM-YYYY)"}
		}
	}

	c.WorkName = get("work_name")
	c.AgreementNo = get("agreement_no")
	c.BillSerial = get("bill_serial")
	c.WorkOrderRef = get("work_order_ref")
	c.ContractorName = get("contractor_name")
	c.OrderDate = get("order_date")
	c.BillType = get("bill_type")
	c.BillNumber = get("bill_number")
	c.LastBillReference = get("last_bill_reference")
	c.ApprovalAuthority = get("approval_authority")
	c.Signatory = Signatory{Name: get("signatory_name"), Designation: get("signatory_designation")}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return cast.ToFloat64E(strings.ReplaceAll(s, ",", ""))
}

// ParseBool accepts the usual spellings of a yes/no form value.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	case "":
		return false, errors.New("empty value")
	}
	return cast.ToBoolE(s)
}

// ParseDate accepts ISO and day-first dates. Empty input is the zero time.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}
