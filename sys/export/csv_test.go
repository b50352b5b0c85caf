package export

import (
	"context"
	"strings"
	"testing"
	"time"

	"partner-portal-api/res/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDocumentStorage is a mock implementation of storage.DocumentStorage
type MockDocumentStorage struct {
	mock.Mock
}

func (m *MockDocumentStorage) Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, objectPath, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentStorage) SignedURL(ctx context.Context, objectPath string, expiration time.Duration) (string, error) {
	args := m.Called(ctx, objectPath, expiration)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentStorage) PublicURL(objectPath string) string {
	args := m.Called(objectPath)
	return args.String(0)
}

func (m *MockDocumentStorage) Delete(ctx context.Context, objectPath string) error {
	args := m.Called(ctx, objectPath)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func sampleRecord() *store.BusinessRecord {
	createdAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return &store.BusinessRecord{
		ID:                    "rec-1",
		BusinessName:          `Acme "Premium" Beverages`,
		BusinessStreetAddress: "100 Main Street",
		BusinessCity:          "Austin",
		BusinessState:         "TX",
		BusinessZipCode:       "78701",
		BusinessPhone:         "5125550100",
		BusinessCategory:      "wholesale-distributor",
		Subcategory:           "beverage",
		AccountRep:            "no-rep",
		AccountManager:        strPtr("Jane Doe"),
		LocationCount:         intPtr(3),
		OutletTypes:           []string{"grocery-store", "liquor-store"},
		EIN:                   "123456789",
		CreatedAt:             createdAt,
		UpdatedAt:             createdAt,

		AccountManagers: []store.AccountManager{
			{FirstName: "Jane", LastName: "Doe", Email: "jane@acme.com", Phone: "5125550101", IsMain: true},
			{FirstName: "Sam", LastName: "Lee", Email: "sam@acme.com", Phone: "5125550102"},
		},
		States: []store.BusinessState{
			{StateCode: "TX", StateName: "Texas", ResellerNumber: "RS-1", DocumentPath: strPtr("rec-1_TX_1.pdf")},
			{StateCode: "CA", StateName: "California", ResellerNumber: "RS-2"},
		},
	}
}

func TestCSVEmpty(t *testing.T) {
	exporter := New(new(MockDocumentStorage))
	assert.Equal(t, "", exporter.CSV(nil))
}

func TestCSVHeaderOrdering(t *testing.T) {
	documentStorage := new(MockDocumentStorage)
	documentStorage.On("PublicURL", "rec-1_TX_1.pdf").Return("https://storage.example.com/rec-1_TX_1.pdf")

	exporter := New(documentStorage)
	csv := exporter.CSV([]*store.BusinessRecord{sampleRecord()})

	lines := strings.Split(csv, "\n")
	require.GreaterOrEqual(t, len(lines), 2)

	headers := lines[0]
	// Identity columns first, in the fixed order
	assert.True(t, strings.HasPrefix(headers, `"business_name","business_street_address","business_city"`))

	// Manager group before the state group, both sorted
	managerPos := strings.Index(headers, "additional_account_manager_1_email")
	statePos := strings.Index(headers, "state_1_code")
	require.Greater(t, managerPos, 0)
	require.Greater(t, statePos, 0)
	assert.Less(t, managerPos, statePos)

	// The metadata trio sits right before the grouped columns
	assert.Less(t, strings.Index(headers, `"created_at","updated_at","id"`), managerPos)
}

func TestCSVCellRendering(t *testing.T) {
	documentStorage := new(MockDocumentStorage)
	documentStorage.On("PublicURL", "rec-1_TX_1.pdf").Return("https://storage.example.com/rec-1_TX_1.pdf")

	exporter := New(documentStorage)
	csv := exporter.CSV([]*store.BusinessRecord{sampleRecord()})

	// Embedded quotes double, slices join with "; "
	assert.Contains(t, csv, `"Acme ""Premium"" Beverages"`)
	assert.Contains(t, csv, `"grocery-store; liquor-store"`)

	// States flatten positionally with public document URLs
	assert.Contains(t, csv, `"https://storage.example.com/rec-1_TX_1.pdf"`)
	assert.Contains(t, csv, `"Texas: https://storage.example.com/rec-1_TX_1.pdf"`)

	// The second state has no document, so only the first contributes a URL
	documentStorage.AssertNumberOfCalls(t, "PublicURL", 1)
}

func TestCSVAbsentValuesRenderAsEmptyQuotedStrings(t *testing.T) {
	bare := &store.BusinessRecord{ID: "rec-2", BusinessName: "Bare Records"}
	full := sampleRecord()

	documentStorage := new(MockDocumentStorage)
	documentStorage.On("PublicURL", mock.Anything).Return("https://storage.example.com/doc.pdf")
	exporter := New(documentStorage)

	csv := exporter.CSV([]*store.BusinessRecord{full, bare})
	lines := strings.Split(csv, "\n")
	require.Len(t, lines, 3)

	// Header is the superset: the bare record row still has a cell for
	// every column the full record introduced
	headerCells := strings.Count(lines[0], ",") + 1
	bareCells := strings.Count(lines[2], ",") + 1
	assert.Equal(t, headerCells, bareCells)
	assert.Contains(t, lines[2], `""`)
}
