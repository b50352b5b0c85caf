package registration

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"partner-portal-api/res/commerce"
	"partner-portal-api/res/store"
	"partner-portal-api/sys/form"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// MockBusinessRecordStore is a mock implementation of store.BusinessRecordStore
type MockBusinessRecordStore struct {
	mock.Mock
}

func (m *MockBusinessRecordStore) Create(ctx context.Context, record *store.BusinessRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockBusinessRecordStore) Get(ctx context.Context, id string) (*store.BusinessRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.BusinessRecord), args.Error(1)
}

func (m *MockBusinessRecordStore) GetWithRelations(ctx context.Context, id string) (*store.BusinessRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.BusinessRecord), args.Error(1)
}

func (m *MockBusinessRecordStore) List(ctx context.Context) ([]*store.BusinessRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.BusinessRecord), args.Error(1)
}

func (m *MockBusinessRecordStore) ListWithRelations(ctx context.Context) ([]*store.BusinessRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.BusinessRecord), args.Error(1)
}

func (m *MockBusinessRecordStore) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	args := m.Called(ctx, id, updates)
	return args.Error(0)
}

func (m *MockBusinessRecordStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBusinessStateStore is a mock implementation of store.BusinessStateStore
type MockBusinessStateStore struct {
	mock.Mock
}

func (m *MockBusinessStateStore) Create(ctx context.Context, state *store.BusinessState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *MockBusinessStateStore) CreateBatch(ctx context.Context, states []*store.BusinessState) error {
	args := m.Called(ctx, states)
	return args.Error(0)
}

func (m *MockBusinessStateStore) GetByBusiness(ctx context.Context, businessID string) ([]*store.BusinessState, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.BusinessState), args.Error(1)
}

func (m *MockBusinessStateStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAccountManagerStore is a mock implementation of store.AccountManagerStore
type MockAccountManagerStore struct {
	mock.Mock
}

func (m *MockAccountManagerStore) Create(ctx context.Context, manager *store.AccountManager) error {
	args := m.Called(ctx, manager)
	return args.Error(0)
}

func (m *MockAccountManagerStore) CreateBatch(ctx context.Context, managers []*store.AccountManager) error {
	args := m.Called(ctx, managers)
	return args.Error(0)
}

func (m *MockAccountManagerStore) GetByBusiness(ctx context.Context, businessID string) ([]*store.AccountManager, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.AccountManager), args.Error(1)
}

func (m *MockAccountManagerStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// stubStore aggregates the entity mocks behind the store.Store interface.
type stubStore struct {
	records  *MockBusinessRecordStore
	states   *MockBusinessStateStore
	managers *MockAccountManagerStore
}

func (s *stubStore) AuthSessions() store.AuthSessionStore       { return nil }
func (s *stubStore) Users() store.UserStore                     { return nil }
func (s *stubStore) BusinessRecords() store.BusinessRecordStore { return s.records }
func (s *stubStore) BusinessStates() store.BusinessStateStore   { return s.states }
func (s *stubStore) AccountManagers() store.AccountManagerStore { return s.managers }
func (s *stubStore) GetDB() interface{}                         { return nil }

// MockCommerceService is a mock implementation of commerce.CommerceService
type MockCommerceService struct {
	mock.Mock
}

func (m *MockCommerceService) CreateCustomer(ctx context.Context, input commerce.CustomerInput) (string, []commerce.UserError, error) {
	args := m.Called(ctx, input)
	var userErrors []commerce.UserError
	if args.Get(1) != nil {
		userErrors = args.Get(1).([]commerce.UserError)
	}
	return args.String(0), userErrors, args.Error(2)
}

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

// MockMailService is a mock implementation of mail.MailService
type MockMailService struct {
	mock.Mock
}

func (m *MockMailService) Send(ctx context.Context, from, to, subject, htmlBody, textBody string) error {
	args := m.Called(ctx, from, to, subject, htmlBody, textBody)
	return args.Error(0)
}

// MockNotificationService is a mock implementation of notification.NotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) NotifyNewRegistration(ctx context.Context, businessName, businessID, contactEmail string) error {
	args := m.Called(ctx, businessName, businessID, contactEmail)
	return args.Error(0)
}

type ServiceTestSuite struct {
	suite.Suite
	ctx context.Context

	records  *MockBusinessRecordStore
	states   *MockBusinessStateStore
	managers *MockAccountManagerStore
	commerce *MockCommerceService
	storage  *MockDocumentStorage
	mail     *MockMailService
	notifier *MockNotificationService

	service *Service
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.records = new(MockBusinessRecordStore)
	s.states = new(MockBusinessStateStore)
	s.managers = new(MockAccountManagerStore)
	s.commerce = new(MockCommerceService)
	s.storage = new(MockDocumentStorage)
	s.mail = new(MockMailService)
	s.notifier = new(MockNotificationService)

	s.service = New(&Config{
		Logger:          log.New(io.Discard, "", 0),
		Store:           &stubStore{records: s.records, states: s.states, managers: s.managers},
		Storage:         s.storage,
		Commerce:        s.commerce,
		Mail:            s.mail,
		Notifications:   s.notifier,
		EmailFrom:       "portal@example.com",
		EmailRecipients: []string{"sales@example.com"},
	})
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) validSnapshot() *form.Snapshot {
	snapshot := &form.Snapshot{
		BusinessName:          "Acme Beverages",
		BusinessStreetAddress: "100 Main Street",
		BusinessCity:          "Austin",
		BusinessState:         "TX",
		BusinessZipCode:       "78701",
		BusinessPhone:         "(512) 555-0100",

		BusinessCategory: form.CategoryWholesaleDistributor,
		Subcategory:      "beverage",
		AccountRep:       "no-rep",

		LocationCount: "3",
		OutletTypes:   []string{"grocery-store"},

		EIN: "12-3456789",

		MainContact: form.Contact{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@acme.com",
			Phone:     "(512) 555-0101",
		},
	}

	s.Require().NoError(snapshot.Licenses.Add("TX"))
	s.Require().NoError(snapshot.Licenses.SetResellerNumber("TX", "RS-9876"))
	s.Require().NoError(snapshot.Licenses.AttachDocument("TX", "license.pdf", "application/pdf", []byte("pdf-bytes")))

	return snapshot
}

func (s *ServiceTestSuite) TestSubmitRejectsInvalidSnapshotBeforeAnyExternalCall() {
	snapshot := s.validSnapshot()
	snapshot.Licenses = nil
	snapshot.EIN = ""

	record, err := s.service.Submit(s.ctx, snapshot)

	s.Nil(record)
	var validationErr *ValidationError
	s.Require().ErrorAs(err, &validationErr)
	s.Len(validationErr.Errors, 2)

	s.commerce.AssertNotCalled(s.T(), "CreateCustomer", mock.Anything, mock.Anything)
	s.records.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
	s.storage.AssertNotCalled(s.T(), "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ServiceTestSuite) TestSubmitHappyPath() {
	snapshot := s.validSnapshot()
	snapshot.AddContact(form.Contact{FirstName: "Sam", LastName: "Lee", Email: "sam@acme.com", Phone: "5125550102"})

	s.commerce.On("CreateCustomer", mock.Anything, mock.MatchedBy(func(input commerce.CustomerInput) bool {
		return input.IsMain && input.Email == "jane@acme.com"
	})).Return("gid://shopify/Customer/1001", nil, nil).Once()
	s.commerce.On("CreateCustomer", mock.Anything, mock.MatchedBy(func(input commerce.CustomerInput) bool {
		return !input.IsMain && input.Email == "sam@acme.com"
	})).Return("gid://shopify/Customer/1002", nil, nil).Once()

	s.records.On("Create", mock.Anything, mock.AnythingOfType("*store.BusinessRecord")).Return(nil).Once()
	s.managers.On("Create", mock.Anything, mock.AnythingOfType("*store.AccountManager")).Return(nil).Once()
	s.managers.On("CreateBatch", mock.Anything, mock.AnythingOfType("[]*store.AccountManager")).Return(nil).Once()

	s.storage.On("Upload", mock.Anything, mock.AnythingOfType("string"), []byte("pdf-bytes"), "application/pdf").
		Return("stored/license.pdf", nil).Once()
	s.states.On("Create", mock.Anything, mock.AnythingOfType("*store.BusinessState")).Return(nil).Once()

	fullRecord := &store.BusinessRecord{BusinessName: "Acme Beverages"}
	s.records.On("GetWithRelations", mock.Anything, mock.AnythingOfType("string")).Return(fullRecord, nil).Once()
	s.mail.On("Send", mock.Anything, "portal@example.com", "sales@example.com",
		"Business Record: Acme Beverages", mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Return(nil).Once()
	s.notifier.On("NotifyNewRegistration", mock.Anything, "Acme Beverages", mock.AnythingOfType("string"), "jane@acme.com").
		Return(nil).Once()

	record, err := s.service.Submit(s.ctx, snapshot)

	s.Require().NoError(err)
	s.Require().NotNil(record)
	s.NotEmpty(record.ID)
	s.Equal("Acme Beverages", record.BusinessName)
	s.Equal("wholesale-distributor", record.BusinessCategory)
	s.Require().NotNil(record.LocationCount)
	s.Equal(3, *record.LocationCount)
	s.Require().NotNil(record.AccountManager)
	s.Equal("Jane Doe", *record.AccountManager)

	// The mirrored customer IDs are stored as the numeric gid tail
	mainManagerCall := s.managers.Calls[0]
	mainManager := mainManagerCall.Arguments.Get(1).(*store.AccountManager)
	s.True(mainManager.IsMain)
	s.Equal("5125550101", mainManager.Phone)
	s.Require().NotNil(mainManager.ShopifyCustomerID)
	s.Equal("1001", *mainManager.ShopifyCustomerID)

	s.commerce.AssertExpectations(s.T())
	s.records.AssertExpectations(s.T())
	s.managers.AssertExpectations(s.T())
	s.states.AssertExpectations(s.T())
	s.storage.AssertExpectations(s.T())
	s.mail.AssertExpectations(s.T())
	s.notifier.AssertExpectations(s.T())
}

func (s *ServiceTestSuite) TestSubmitAbortsOnCommerceUserError() {
	snapshot := s.validSnapshot()

	userErrors := []commerce.UserError{{Field: []string{"email"}, Message: "Email has already been taken"}}
	s.commerce.On("CreateCustomer", mock.Anything, mock.Anything).Return("", userErrors, nil).Once()

	record, err := s.service.Submit(s.ctx, snapshot)

	s.Nil(record)
	s.Require().Error(err)
	s.Equal("Email has already been taken for the user 'jane@acme.com'", err.Error())
	s.records.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *ServiceTestSuite) TestSubmitAbortsWhenAnyAdditionalCustomerFails() {
	snapshot := s.validSnapshot()
	snapshot.AddContact(form.Contact{FirstName: "Sam", LastName: "Lee", Email: "sam@acme.com", Phone: "5125550102"})

	s.commerce.On("CreateCustomer", mock.Anything, mock.MatchedBy(func(input commerce.CustomerInput) bool {
		return input.IsMain
	})).Return("gid://shopify/Customer/1001", nil, nil).Once()
	s.commerce.On("CreateCustomer", mock.Anything, mock.MatchedBy(func(input commerce.CustomerInput) bool {
		return !input.IsMain
	})).Return("", nil, errors.New("network unreachable")).Once()

	record, err := s.service.Submit(s.ctx, snapshot)

	s.Nil(record)
	s.Require().Error(err)
	s.records.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *ServiceTestSuite) TestSubmitSucceedsWhenDocumentUploadFails() {
	snapshot := s.validSnapshot()

	s.commerce.On("CreateCustomer", mock.Anything, mock.Anything).Return("gid://shopify/Customer/1001", nil, nil).Once()
	s.records.On("Create", mock.Anything, mock.AnythingOfType("*store.BusinessRecord")).Return(nil).Once()
	s.managers.On("Create", mock.Anything, mock.AnythingOfType("*store.AccountManager")).Return(nil).Once()

	s.storage.On("Upload", mock.Anything, mock.AnythingOfType("string"), mock.Anything, mock.Anything).
		Return("", errors.New("bucket unavailable")).Once()

	fullRecord := &store.BusinessRecord{BusinessName: "Acme Beverages"}
	s.records.On("GetWithRelations", mock.Anything, mock.AnythingOfType("string")).Return(fullRecord, nil).Once()
	s.mail.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	s.notifier.On("NotifyNewRegistration", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	record, err := s.service.Submit(s.ctx, snapshot)

	// The record insert is the success anchor; the state row is simply absent
	s.Require().NoError(err)
	s.NotNil(record)
	s.states.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *ServiceTestSuite) TestSubmitFailsWhenRecordInsertFails() {
	snapshot := s.validSnapshot()

	s.commerce.On("CreateCustomer", mock.Anything, mock.Anything).Return("gid://shopify/Customer/1001", nil, nil).Once()
	s.records.On("Create", mock.Anything, mock.AnythingOfType("*store.BusinessRecord")).
		Return(errors.New("connection refused")).Once()

	record, err := s.service.Submit(s.ctx, snapshot)

	s.Nil(record)
	s.Require().EqualError(err, "failed to create business record")
	s.managers.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
	s.mail.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDecodeDataURL(t *testing.T) {
	data, contentType, err := decodeDataURL("data:application/pdf;base64,cGRmLWJ5dGVz")
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf-bytes"), data)
	assert.Equal(t, "application/pdf", contentType)

	_, _, err = decodeDataURL("not-a-data-url")
	assert.Error(t, err)

	_, _, err = decodeDataURL("data:application/pdf;base64,!!!")
	assert.Error(t, err)
}
