package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDistributorSnapshot(t *testing.T) *Snapshot {
	t.Helper()

	snapshot := &Snapshot{
		BusinessName:          "Acme Beverages",
		BusinessStreetAddress: "100 Main Street",
		BusinessCity:          "Austin",
		BusinessState:         "TX",
		BusinessZipCode:       "78701",
		BusinessPhone:         "(512) 555-0100",

		BusinessCategory: CategoryWholesaleDistributor,
		Subcategory:      "beverage",
		AccountRep:       "no-rep",

		LocationCount: "3",
		OutletTypes:   []string{"grocery-store", "liquor-store"},

		EIN: "12-3456789",

		MainContact: Contact{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@acme.com",
			Phone:     "(512) 555-0101",
		},
	}

	require.NoError(t, snapshot.Licenses.Add("TX"))
	require.NoError(t, snapshot.Licenses.SetResellerNumber("TX", "RS-9876"))
	require.NoError(t, snapshot.Licenses.AttachDocument("TX", "license.pdf", "application/pdf", []byte("pdf")))

	return snapshot
}

func TestMachineAdvanceThroughAllSteps(t *testing.T) {
	machine := NewMachine(validDistributorSnapshot(t))
	assert.Equal(t, StepBasicInfo, machine.Current())

	for _, expected := range []Step{StepCategory, StepDetails, StepTaxAndLicenses, StepContacts, StepSummary} {
		result, err := machine.Advance()
		require.NoError(t, err)
		assert.True(t, result.Valid)
		assert.Equal(t, expected, machine.Current())
	}

	// Moving past the summary means submitting, not stepping
	_, err := machine.Advance()
	assert.ErrorIs(t, err, ErrSubmissionRequired)
	assert.Equal(t, StepSummary, machine.Current())
}

func TestMachineAdvanceBlockedBySingleInvalidField(t *testing.T) {
	snapshot := validDistributorSnapshot(t)
	snapshot.BusinessZipCode = "787"
	machine := NewMachine(snapshot)

	result, err := machine.Advance()
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, StepBasicInfo, machine.Current())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "businessZipCode", result.Errors[0].Field)
}

func TestMachineRetreat(t *testing.T) {
	machine := NewMachine(validDistributorSnapshot(t))
	_, err := machine.Advance()
	require.NoError(t, err)
	require.Equal(t, StepCategory, machine.Current())

	machine.Retreat()
	assert.Equal(t, StepBasicInfo, machine.Current())

	// Floored at the first step
	machine.Retreat()
	assert.Equal(t, StepBasicInfo, machine.Current())
}

func TestMachineRetreatKeepsEnteredData(t *testing.T) {
	snapshot := validDistributorSnapshot(t)
	machine := NewMachine(snapshot)
	_, err := machine.Advance()
	require.NoError(t, err)

	machine.Retreat()
	assert.Equal(t, "Acme Beverages", machine.Snapshot().BusinessName)
	assert.Len(t, machine.Snapshot().Licenses, 1)
}

func TestMachineSuccessIsTerminal(t *testing.T) {
	machine := NewMachine(validDistributorSnapshot(t))
	machine.MarkSubmitted()
	assert.Equal(t, StepSuccess, machine.Current())

	machine.Retreat()
	assert.Equal(t, StepSuccess, machine.Current())
}

func TestValidateStepDetailsPerCategory(t *testing.T) {
	t.Run("distributor requires outlet types", func(t *testing.T) {
		snapshot := validDistributorSnapshot(t)
		snapshot.OutletTypes = nil
		machine := NewMachine(snapshot)

		result := machine.ValidateStep(StepDetails)
		assert.False(t, result.Valid)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "outletTypes", result.Errors[0].Field)
	})

	t.Run("retail requires a justification of at least ten characters", func(t *testing.T) {
		snapshot := validDistributorSnapshot(t)
		snapshot.SetCategory(CategoryDirectRetail)
		snapshot.Subcategory = "liquor-store"
		snapshot.OutletTypes = nil
		snapshot.WhySellReason = "too short"
		machine := NewMachine(snapshot)

		result := machine.ValidateStep(StepDetails)
		assert.False(t, result.Valid)

		snapshot.WhySellReason = "We want to carry the product line in all stores"
		assert.True(t, machine.ValidateStep(StepDetails).Valid)
	})
}

func TestValidateStepCategoryOtherOverride(t *testing.T) {
	snapshot := validDistributorSnapshot(t)
	snapshot.Subcategory = "other"
	machine := NewMachine(snapshot)

	result := machine.ValidateStep(StepCategory)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "otherSubcategory", result.Errors[0].Field)

	snapshot.OtherSubcategory = "Specialty importer"
	assert.True(t, machine.ValidateStep(StepCategory).Valid)
}

func TestValidateStepContacts(t *testing.T) {
	snapshot := validDistributorSnapshot(t)
	snapshot.AddContact(Contact{FirstName: "Sam", LastName: "Lee", Email: "sam@acme.com", Phone: "5125550102"})
	machine := NewMachine(snapshot)
	assert.True(t, machine.ValidateStep(StepContacts).Valid)

	// Any missing field on an additional contact fails the step
	snapshot.AdditionalContacts[0].Email = ""
	result := machine.ValidateStep(StepContacts)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "additionalContacts", result.Errors[0].Field)
}

func TestSetCategoryResetsSubcategory(t *testing.T) {
	snapshot := validDistributorSnapshot(t)
	snapshot.Subcategory = "other"
	snapshot.OtherSubcategory = "Specialty importer"

	snapshot.SetCategory(CategoryDirectRetail)
	assert.Empty(t, snapshot.Subcategory)
	assert.Empty(t, snapshot.OtherSubcategory)

	// Re-selecting the same category keeps the selection
	snapshot.Subcategory = "restaurant"
	snapshot.SetCategory(CategoryDirectRetail)
	assert.Equal(t, "restaurant", snapshot.Subcategory)
}

func TestFieldSetFor(t *testing.T) {
	retail := FieldSetFor(CategoryDirectRetail)
	assert.Equal(t, RetailSubcategories, retail.Subcategories)
	assert.False(t, retail.OutletTypesActive)
	assert.True(t, retail.JustificationActive)

	distributor := FieldSetFor(CategoryWholesaleDistributor)
	assert.Equal(t, DistributorSubcategories, distributor.Subcategories)
	assert.True(t, distributor.OutletTypesActive)
	assert.False(t, distributor.JustificationActive)

	assert.Equal(t, FieldSet{}, FieldSetFor("unknown"))
}

func TestSubcategoryLabel(t *testing.T) {
	snapshot := &Snapshot{BusinessCategory: CategoryDirectRetail, Subcategory: "liquor-store"}
	assert.Equal(t, "Liquor Store", snapshot.SubcategoryLabel())

	snapshot.Subcategory = "other"
	snapshot.OtherSubcategory = "Duty-free shop"
	assert.Equal(t, "Duty-free shop", snapshot.SubcategoryLabel())
}

func TestMachineSummaryGateRechecksInputSteps(t *testing.T) {
	machine := NewMachine(validDistributorSnapshot(t))
	for machine.Current() != StepSummary {
		_, err := machine.Advance()
		require.NoError(t, err)
	}

	// Invalidating an earlier step after reaching the summary keeps the
	// machine there instead of offering submission.
	machine.Snapshot().EIN = ""
	result, err := machine.Advance()
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, StepSummary, machine.Current())
	require.NotEmpty(t, result.Errors)
	assert.Equal(t, "ein", result.Errors[0].Field)

	machine.Snapshot().EIN = "12-3456789"
	_, err = machine.Advance()
	assert.ErrorIs(t, err, ErrSubmissionRequired)
}
