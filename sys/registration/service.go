package registration

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"partner-portal-api/res/commerce"
	"partner-portal-api/res/commerce/shopify"
	"partner-portal-api/res/mail"
	"partner-portal-api/res/notification"
	"partner-portal-api/res/storage"
	"partner-portal-api/res/store"
	"partner-portal-api/sys/form"

	"github.com/google/uuid"
)

// Config wires the submission pipeline to its external collaborators.
type Config struct {
	Logger        *log.Logger
	Store         store.Store
	Storage       storage.DocumentStorage
	Commerce      commerce.CommerceService
	Mail          mail.MailService
	Notifications notification.NotificationService

	// Notification email routing, selected per environment at startup.
	EmailFrom       string
	EmailRecipients []string
}

// Service runs the submission pipeline over a completed form snapshot.
type Service struct {
	*Config
}

func New(cfg *Config) *Service {
	return &Service{Config: cfg}
}

// ValidationError is a pre-submission failure; no external call was made.
type ValidationError struct {
	Errors []form.FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Message)
	}
	return strings.Join(msgs, "\n")
}

// Submit executes the submission pipeline. The business record insert is the
// success anchor: once it lands, Submit reports success no matter what
// happens to account-manager linking, document uploads, or the email.
// Customer creation failures before the insert abort everything; commerce
// customers already created are not rolled back when the insert fails
// afterwards (accepted inconsistency). There are no retries anywhere.
func (s *Service) Submit(ctx context.Context, snapshot *form.Snapshot) (*store.BusinessRecord, error) {
	// 1. Local validation; aborts before any external call.
	if err := s.validate(snapshot); err != nil {
		return nil, err
	}

	// 2. Decode document payloads, fanned out across entries.
	documents := s.decodeDocuments(snapshot.Licenses)

	// 3. Primary contact into the commerce platform; hard failure.
	mainCustomerID, err := s.createCustomer(ctx, snapshot, snapshot.MainContact, true)
	if err != nil {
		return nil, err
	}

	// 4. Additional contacts in parallel; any failure aborts.
	additionalCustomerIDs, err := s.createAdditionalCustomers(ctx, snapshot)
	if err != nil {
		return nil, err
	}

	// 5. The business record itself; hard failure.
	record := buildBusinessRecord(snapshot)
	if err := s.Store.BusinessRecords().Create(ctx, record); err != nil {
		s.Logger.Printf("Error inserting business record: %s", err)
		return nil, errors.New("failed to create business record")
	}
	s.Logger.Printf("Business record created with ID: %s", record.ID)

	// 6. Account managers, best effort from here on.
	s.insertAccountManagers(ctx, record.ID, snapshot, mainCustomerID, additionalCustomerIDs)

	// 7. Per-state document upload + state record, failures skipped per state.
	s.insertStateRecords(ctx, record.ID, snapshot.Licenses, documents)

	// 8. Notification email with the full stored snapshot, best effort.
	s.sendNotificationEmail(ctx, record.ID)

	// Webhook announcement, also best effort.
	if s.Notifications != nil {
		if err := s.Notifications.NotifyNewRegistration(ctx, record.BusinessName, record.ID, snapshot.MainContact.Email); err != nil {
			s.Logger.Printf("Warning: Failed to send registration notification: %v", err)
		}
	}

	return record, nil
}

func (s *Service) validate(snapshot *form.Snapshot) error {
	machine := form.NewMachine(snapshot)

	var all []form.FieldError
	for step := form.StepBasicInfo; step <= form.StepContacts; step++ {
		result := machine.ValidateStep(step)
		all = append(all, result.Errors...)
	}
	if len(all) > 0 {
		return &ValidationError{Errors: all}
	}
	return nil
}

// decodedDocument is one license document ready for upload. A nil entry
// means the state had no usable payload and will be stored without one.
type decodedDocument struct {
	data        []byte
	contentType string
	fileName    string
}

func (s *Service) decodeDocuments(licenses form.LicenseCollection) []*decodedDocument {
	documents := make([]*decodedDocument, len(licenses))

	var wg sync.WaitGroup
	for i := range licenses {
		if licenses[i].FileData == "" {
			continue
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			data, contentType, err := decodeDataURL(licenses[i].FileData)
			if err != nil {
				s.Logger.Printf("Error decoding document for state %s: %s", licenses[i].StateCode, err)
				return
			}
			documents[i] = &decodedDocument{data: data, contentType: contentType, fileName: licenses[i].FileName}
		}(i)
	}
	wg.Wait()

	return documents
}

func (s *Service) createCustomer(ctx context.Context, snapshot *form.Snapshot, contact form.Contact, isMain bool) (string, error) {
	customerID, userErrors, err := s.Commerce.CreateCustomer(ctx, commerce.CustomerInput{
		Email:            contact.Email,
		Phone:            contact.Phone,
		FirstName:        contact.FirstName,
		LastName:         contact.LastName,
		IsMain:           isMain,
		BusinessCategory: string(snapshot.BusinessCategory),
		Company:          snapshot.BusinessName,
		Address1:         snapshot.BusinessStreetAddress,
		City:             snapshot.BusinessCity,
		Province:         snapshot.BusinessState,
		Zip:              snapshot.BusinessZipCode,
		BusinessPhone:    snapshot.BusinessPhone,
	})
	if err != nil {
		s.Logger.Printf("Error inserting customer record for %s: %s", contact.Email, err)
		return "", err
	}
	if len(userErrors) > 0 {
		s.Logger.Printf("Error inserting customer record for %s: %s", contact.Email, userErrors[0].Message)
		return "", fmt.Errorf("%s for the user '%s'", userErrors[0].Message, contact.Email)
	}
	return customerID, nil
}

// createAdditionalCustomers mirrors every additional contact in parallel and
// collects the results before deciding. Any failure aborts the submission
// with the concatenated error messages; no partial commit.
func (s *Service) createAdditionalCustomers(ctx context.Context, snapshot *form.Snapshot) ([]string, error) {
	contacts := snapshot.AdditionalContacts
	if len(contacts) == 0 {
		return nil, nil
	}

	customerIDs := make([]string, len(contacts))
	failures := make([]error, len(contacts))

	var wg sync.WaitGroup
	for i := range contacts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			customerID, err := s.createCustomer(ctx, snapshot, contacts[i], false)
			if err != nil {
				failures[i] = err
				return
			}
			customerIDs[i] = customerID
		}(i)
	}
	wg.Wait()

	var messages []string
	for _, err := range failures {
		if err != nil {
			messages = append(messages, err.Error())
		}
	}
	if len(messages) > 0 {
		s.Logger.Printf("Some customers failed to create: %s", strings.Join(messages, "; "))
		return nil, errors.New(strings.Join(messages, "\n"))
	}

	return customerIDs, nil
}

func buildBusinessRecord(snapshot *form.Snapshot) *store.BusinessRecord {
	record := &store.BusinessRecord{
		ID:                    uuid.NewString(),
		BusinessName:          snapshot.BusinessName,
		BusinessStreetAddress: snapshot.BusinessStreetAddress,
		BusinessCity:          snapshot.BusinessCity,
		BusinessState:         snapshot.BusinessState,
		BusinessZipCode:       snapshot.BusinessZipCode,
		BusinessPhone:         snapshot.BusinessPhone,
		BusinessCategory:      string(snapshot.BusinessCategory),
		Subcategory:           snapshot.Subcategory,
		AccountRep:            snapshot.AccountRep,
		OutletTypes:           snapshot.OutletTypes,
		EIN:                   snapshot.EIN,
		LocationCount:         form.LocationCountValue(snapshot.LocationCount),
	}

	mainName := snapshot.MainContact.FullName()
	if mainName != "" {
		record.AccountManager = &mainName
	}
	if snapshot.WebsiteURL != "" {
		record.WebsiteURL = &snapshot.WebsiteURL
	}
	if snapshot.OtherSubcategory != "" {
		record.OtherSubcategory = &snapshot.OtherSubcategory
	}
	if snapshot.OtherOutletDescription != "" {
		record.OtherOutletDescription = &snapshot.OtherOutletDescription
	}
	if snapshot.WhySellReason != "" {
		record.WhySellReason = &snapshot.WhySellReason
	}

	return record
}

func (s *Service) insertAccountManagers(ctx context.Context, businessID string, snapshot *form.Snapshot, mainCustomerID string, additionalCustomerIDs []string) {
	mainManager := &store.AccountManager{
		ID:         uuid.NewString(),
		BusinessID: businessID,
		FirstName:  snapshot.MainContact.FirstName,
		LastName:   snapshot.MainContact.LastName,
		Email:      snapshot.MainContact.Email,
		Phone:      form.NormalizePhone(snapshot.MainContact.Phone),
		IsMain:     true,
	}
	if mainCustomerID != "" {
		tail := shopify.CustomerIDTail(mainCustomerID)
		mainManager.ShopifyCustomerID = &tail
	}

	if err := s.Store.AccountManagers().Create(ctx, mainManager); err != nil {
		// Continue with the process even if there's an error here
		s.Logger.Printf("Error inserting account manager: %s", err)
	} else {
		s.Logger.Printf("Main account manager inserted successfully")
	}

	if len(snapshot.AdditionalContacts) == 0 {
		return
	}

	additional := make([]*store.AccountManager, 0, len(snapshot.AdditionalContacts))
	for i, contact := range snapshot.AdditionalContacts {
		manager := &store.AccountManager{
			ID:         uuid.NewString(),
			BusinessID: businessID,
			FirstName:  contact.FirstName,
			LastName:   contact.LastName,
			Email:      contact.Email,
			Phone:      form.NormalizePhone(contact.Phone),
		}
		if i < len(additionalCustomerIDs) && additionalCustomerIDs[i] != "" {
			tail := shopify.CustomerIDTail(additionalCustomerIDs[i])
			manager.ShopifyCustomerID = &tail
		}
		additional = append(additional, manager)
	}

	if err := s.Store.AccountManagers().CreateBatch(ctx, additional); err != nil {
		s.Logger.Printf("Error inserting additional managers: %s", err)
	} else {
		s.Logger.Printf("Inserted %d additional account managers", len(additional))
	}
}

// insertStateRecords uploads each license document and inserts the state
// row referencing the stored filename. Each state proceeds independently; a
// failed upload or insert drops that state and never touches the others.
func (s *Service) insertStateRecords(ctx context.Context, businessID string, licenses form.LicenseCollection, documents []*decodedDocument) {
	if len(licenses) == 0 {
		return
	}
	s.Logger.Printf("Processing %d states with possible file uploads", len(licenses))

	var wg sync.WaitGroup
	for i := range licenses {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			license := licenses[i]
			state := &store.BusinessState{
				ID:             uuid.NewString(),
				BusinessID:     businessID,
				StateCode:      license.StateCode,
				StateName:      license.StateName,
				ResellerNumber: license.ResellerNumber,
			}

			if doc := documents[i]; doc != nil {
				objectPath := storage.BuildLicenseDocumentPath(businessID, license.StateCode, doc.fileName)
				storedPath, err := s.Storage.Upload(ctx, objectPath, doc.data, doc.contentType)
				if err != nil {
					s.Logger.Printf("Error uploading document for state %s: %s", license.StateCode, err)
					return
				}
				state.DocumentPath = &storedPath
			}

			if err := s.Store.BusinessStates().Create(ctx, state); err != nil {
				s.Logger.Printf("Error inserting state record for %s: %s", license.StateCode, err)
				return
			}
			s.Logger.Printf("Inserted state record for %s", license.StateCode)
		}(i)
	}
	wg.Wait()
}

func (s *Service) sendNotificationEmail(ctx context.Context, businessID string) {
	if s.Mail == nil || len(s.EmailRecipients) == 0 {
		return
	}

	record, err := s.Store.BusinessRecords().GetWithRelations(ctx, businessID)
	if err != nil {
		s.Logger.Printf("Error fetching record for notification email: %s", err)
		return
	}

	subject := fmt.Sprintf("Business Record: %s", record.BusinessName)
	htmlBody, err := renderBusinessRecordEmail(record)
	if err != nil {
		s.Logger.Printf("Error rendering notification email: %s", err)
		return
	}
	textBody := fmt.Sprintf("Business record details for %s. View in an HTML email client for formatting.", record.BusinessName)

	for _, recipient := range s.EmailRecipients {
		if err := s.Mail.Send(ctx, s.EmailFrom, recipient, subject, htmlBody, textBody); err != nil {
			// Don't fail the submission if email fails
			s.Logger.Printf("Error sending notification email to %s: %s", recipient, err)
		}
	}
}
