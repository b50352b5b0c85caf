package form

// Contact holds one person attached to a registration. Phone numbers are
// kept as entered; use NormalizePhone / FormatPhone when storing or
// displaying them.
type Contact struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// FullName joins first and last name for display and downstream records.
func (c Contact) FullName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// Snapshot is the full set of answered fields for one registration attempt.
// It is mutable while the applicant edits and treated as immutable once the
// submission pipeline picks it up.
type Snapshot struct {
	// Basic business information
	BusinessName          string `json:"businessName"`
	BusinessStreetAddress string `json:"businessStreetAddress"`
	BusinessCity          string `json:"businessCity"`
	BusinessState         string `json:"businessState"`
	BusinessZipCode       string `json:"businessZipCode"`
	BusinessPhone         string `json:"businessPhone"`
	WebsiteURL            string `json:"websiteUrl"`

	// Category classification
	BusinessCategory Category `json:"businessCategory"`
	Subcategory      string   `json:"subcategory"`
	OtherSubcategory string   `json:"otherSubcategory"`
	AccountRep       string   `json:"accountRep"`

	// Branch-dependent details. LocationCount stays a string the way the
	// form collects it; ValidLocationCount enforces the numeric contract.
	LocationCount          string   `json:"locationCount"`
	OutletTypes            []string `json:"outletTypes"`
	OtherOutletDescription string   `json:"otherOutletDescription"`
	WhySellReason          string   `json:"whySellReason"`

	// Tax and licensing
	EIN      string            `json:"ein"`
	Licenses LicenseCollection `json:"states"`

	// Contacts
	MainContact        Contact   `json:"mainContact"`
	AdditionalContacts []Contact `json:"additionalContacts"`
}

// SetCategory switches the top-level business category. Subcategory and its
// free-text override always reset so a stale selection from the previous
// branch can never be submitted.
func (s *Snapshot) SetCategory(category Category) {
	if s.BusinessCategory == category {
		return
	}
	s.BusinessCategory = category
	s.Subcategory = ""
	s.OtherSubcategory = ""
}

// AddContact appends an additional contact to the ordered list.
func (s *Snapshot) AddContact(contact Contact) {
	s.AdditionalContacts = append(s.AdditionalContacts, contact)
}

// RemoveContact removes the additional contact at the given index.
func (s *Snapshot) RemoveContact(index int) {
	if index < 0 || index >= len(s.AdditionalContacts) {
		return
	}
	s.AdditionalContacts = append(s.AdditionalContacts[:index], s.AdditionalContacts[index+1:]...)
}
