package billing

import (
	"fmt"
)

// Completion thresholds, in percent of the work-order amount.
const (
	deviationApprovalBelow = 90.0
	officeJurisdictionUpTo = 105.0
	extraItemsOfficeLimit  = 5.0
)

// Defaults used when the configuration leaves them empty.
const (
	DefaultApprovalAuthority    = "the Superintending Engineer, PWD Electrical Circle, Udaipur"
	DefaultSignatoryName        = "Assistant Accounts Officer"
	DefaultSignatoryDesignation = "AAO- As Auditor"
)

// Signatory signs the note sheet.
type Signatory struct {
	Name        string `json:"name" mapstructure:"name"`
	Designation string `json:"designation" mapstructure:"designation"`
}

// NoteOptions carry the wording that differs between offices.
type NoteOptions struct {
	ApprovalAuthority string
	Signatory         Signatory
}

// PercentOf returns part as a percentage of whole, or 0 when whole is not
// positive.
func PercentOf(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return part * 100 / whole
}

// BuildNotes returns the numbered note sheet followed by a blank line and the
// two signature lines. Numbering has no gaps whichever optional notes apply.
func BuildNotes(payable int64, workOrderAmount float64, extraItemAmount int64, opts NoteOptions) []string {
	opts = opts.withDefaults()

	var notes []string
	add := func(format string, args ...any) {
		notes = append(notes, fmt.Sprintf("%d. ", len(notes)+1)+fmt.Sprintf(format, args...))
	}

	done := PercentOf(float64(payable), workOrderAmount)
	add("The work has been completed %.2f%% of the Work Order Amount.", done)

	switch {
	case done < deviationApprovalBelow:
		add("The execution of work at final stage is less than 90%% of the Work Order Amount, " +
			"the Requisite Deviation Statement is enclosed to observe check on unuseful expenditure. " +
			"Approval of the Deviation is having jurisdiction under this office.")
	case done > 100 && done <= officeJurisdictionUpTo:
		add("Requisite Deviation Statement is enclosed. The Overall Excess is less than or equal to 5%% " +
			"and is having approval jurisdiction under this office.")
	case done > officeJurisdictionUpTo:
		add("Requisite Deviation Statement is enclosed. The Overall Excess is more than 5%% "+
			"and Approval of the Deviation Case is required from %s.", opts.ApprovalAuthority)
	}

	add("Quality Control (QC) test reports attached.")

	if extraItemAmount > 0 {
		share := PercentOf(float64(extraItemAmount), workOrderAmount)
		if share > extraItemsOfficeLimit {
			add("The amount of Extra items is Rs. %d. which is %.2f%% of the Work Order Amount; "+
				"exceed 5%%, require approval from %s.", extraItemAmount, share, opts.ApprovalAuthority)
		} else {
			add("The amount of Extra items is Rs. %d. which is %.2f%% of the Work Order Amount; "+
				"under 5%%, approval of the same is to be granted by this office.", extraItemAmount, share)
		}
	}

	add("Please peruse above details for necessary decision-making.")

	return append(notes, "", opts.Signatory.Name, opts.Signatory.Designation)
}

func (o NoteOptions) withDefaults() NoteOptions {
	if o.ApprovalAuthority == "" {
		o.ApprovalAuthority = DefaultApprovalAuthority
	}
	if o.Signatory.Name == "" {
		o.Signatory.Name = DefaultSignatoryName
	}
	if o.Signatory.Designation == "" {
		o.Signatory.Designation = DefaultSignatoryDesignation
	}
	return o
}
