package form

import "errors"

// Step identifies one screen of the multi-step registration flow.
type Step int

const (
	StepBasicInfo Step = iota + 1
	StepCategory
	StepDetails
	StepTaxAndLicenses
	StepContacts
	StepSummary
	StepSuccess
)

func (s Step) String() string {
	switch s {
	case StepBasicInfo:
		return "basic-info"
	case StepCategory:
		return "category"
	case StepDetails:
		return "details"
	case StepTaxAndLicenses:
		return "tax-and-licenses"
	case StepContacts:
		return "contacts"
	case StepSummary:
		return "summary"
	case StepSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// ErrSubmissionRequired is reported by Advance on the summary step: moving
// past it means running the submission pipeline, not a plain step change.
var ErrSubmissionRequired = errors.New("form: submission required to advance past summary")

// FieldError is a per-field validation message surfaced next to the input.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// StepResult is the outcome of validating one step.
type StepResult struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors,omitempty"`
}

// Machine drives navigation through the registration steps. Validity is
// recomputed on demand through ValidateStep rather than through watchers, so
// callers re-validate after every mutating operation on the snapshot.
type Machine struct {
	snapshot *Snapshot
	step     Step
}

// NewMachine starts a machine at the first step over the given snapshot.
func NewMachine(snapshot *Snapshot) *Machine {
	return &Machine{snapshot: snapshot, step: StepBasicInfo}
}

// Snapshot exposes the form state the machine navigates over.
func (m *Machine) Snapshot() *Snapshot {
	return m.snapshot
}

// Current returns the active step.
func (m *Machine) Current() Step {
	return m.step
}

// Advance re-validates the active step and moves forward only when it holds.
// On a failed step the machine stays put and the result carries the field
// errors. From the summary step Advance reports ErrSubmissionRequired.
func (m *Machine) Advance() (StepResult, error) {
	if m.step >= StepSuccess {
		return StepResult{Valid: true}, errors.New("form: flow already completed")
	}

	result := m.ValidateStep(m.step)
	if !result.Valid {
		return result, nil
	}

	if m.step == StepSummary {
		return result, ErrSubmissionRequired
	}

	m.step++
	return result, nil
}

// Retreat always succeeds, floored at the first step, and validates nothing.
// Entered data stays populated for when the applicant returns. The success
// step is terminal; there is no navigating back out of it.
func (m *Machine) Retreat() {
	if m.step == StepSuccess {
		return
	}
	if m.step > StepBasicInfo {
		m.step--
	}
}

// MarkSubmitted transitions irreversibly to the success step. Call it once
// the submission pipeline reported the business record created.
func (m *Machine) MarkSubmitted() {
	m.step = StepSuccess
}

// Valid reports whether every input step currently holds, the gate the
// summary step uses before offering submission.
func (m *Machine) Valid() bool {
	for step := StepBasicInfo; step <= StepContacts; step++ {
		if !m.ValidateStep(step).Valid {
			return false
		}
	}
	return true
}

// ValidateStep evaluates the validity predicate of one step against the
// snapshot fields that step owns.
func (m *Machine) ValidateStep(step Step) StepResult {
	s := m.snapshot
	var errs []FieldError
	add := func(field, message string) {
		errs = append(errs, FieldError{Field: field, Message: message})
	}

	switch step {
	case StepBasicInfo:
		if !MinLength(s.BusinessName, 2) {
			add("businessName", "Business name is required")
		}
		if !MinLength(s.BusinessStreetAddress, 5) {
			add("businessStreetAddress", "Street address is required")
		}
		if !MinLength(s.BusinessCity, 2) {
			add("businessCity", "City is required")
		}
		if !MinLength(s.BusinessState, 2) {
			add("businessState", "State is required")
		}
		if !MinLength(s.BusinessZipCode, 5) {
			add("businessZipCode", "ZIP code is required")
		}
		if !ValidPhone(s.BusinessPhone) {
			add("businessPhone", "Please enter a valid phone number")
		}

	case StepCategory:
		if s.BusinessCategory == "" {
			add("businessCategory", "Please select a business category")
		}
		if s.Subcategory == "" {
			add("subcategory", "Please select a subcategory")
		} else if s.Subcategory == "other" && s.OtherSubcategory == "" {
			add("otherSubcategory", "Please specify the subcategory")
		}
		if s.AccountRep == "" {
			add("accountRep", "Please select an account representative")
		}

	case StepDetails:
		fields := FieldSetFor(s.BusinessCategory)
		if !ValidLocationCount(s.LocationCount) {
			add("locationCount", "Please enter a valid number of locations")
		}
		if fields.OutletTypesActive && len(s.OutletTypes) == 0 {
			add("outletTypes", "Please select at least one outlet type")
		}
		if fields.JustificationActive && !MinLength(s.WhySellReason, 10) {
			add("whySellReason", "Please provide a reason for becoming a partner")
		}

	case StepTaxAndLicenses:
		if !ValidEIN(s.EIN) {
			add("ein", "Please enter a valid EIN")
		}
		if err := s.Licenses.Validate(); err != nil {
			add("states", err.Error())
		}

	case StepContacts:
		if !MinLength(s.MainContact.FirstName, 2) {
			add("mainContactFirstName", "First name is required")
		}
		if !MinLength(s.MainContact.LastName, 2) {
			add("mainContactLastName", "Last name is required")
		}
		if !ValidEmail(s.MainContact.Email) {
			add("mainContactEmail", "Please enter a valid email address")
		}
		if !ValidPhone(s.MainContact.Phone) {
			add("mainContactPhone", "Please enter a valid phone number")
		}
		for _, contact := range s.AdditionalContacts {
			if contact.FirstName == "" || contact.LastName == "" || contact.Email == "" || !ValidPhone(contact.Phone) {
				add("additionalContacts", "All additional contacts need a name, email, and valid phone number")
				break
			}
		}

	case StepSummary:
		// The summary gate re-checks every input step before submission is
		// offered.
		if !m.Valid() {
			for input := StepBasicInfo; input <= StepContacts; input++ {
				errs = append(errs, m.ValidateStep(input).Errors...)
			}
		}

	case StepSuccess:
		// Terminal; nothing left to validate.
	}

	return StepResult{Valid: len(errs) == 0, Errors: errs}
}
