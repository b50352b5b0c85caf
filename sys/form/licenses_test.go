package form

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLicenseCollectionAdd(t *testing.T) {
	var licenses LicenseCollection

	require.NoError(t, licenses.Add("CA"))
	require.Len(t, licenses, 1)
	assert.Equal(t, "CA", licenses[0].StateCode)
	assert.Equal(t, "California", licenses[0].StateName)

	// Same state twice is rejected, collection unchanged
	assert.ErrorIs(t, licenses.Add("CA"), ErrStateAlreadyAdded)
	assert.Len(t, licenses, 1)

	assert.ErrorIs(t, licenses.Add("XX"), ErrUnknownState)
}

func TestLicenseCollectionRemove(t *testing.T) {
	var licenses LicenseCollection
	require.NoError(t, licenses.Add("CA"))
	require.NoError(t, licenses.Add("NY"))

	licenses.Remove("CA")
	require.Len(t, licenses, 1)
	assert.Equal(t, "NY", licenses[0].StateCode)

	// Removing an absent state is a no-op
	licenses.Remove("CA")
	assert.Len(t, licenses, 1)
}

func TestLicenseCollectionAttachDocument(t *testing.T) {
	var licenses LicenseCollection
	require.NoError(t, licenses.Add("TX"))

	err := licenses.AttachDocument("TX", "license.pdf", "application/pdf", []byte("pdf-bytes"))
	require.NoError(t, err)

	license := licenses[0]
	assert.Equal(t, "license.pdf", license.FileName)
	assert.True(t, license.HasDocument())
	assert.Empty(t, license.FileError)
	assert.True(t, strings.HasPrefix(license.FileData, "data:application/pdf;base64,"))
}

func TestLicenseCollectionAttachDocumentRejectsFormat(t *testing.T) {
	var licenses LicenseCollection
	require.NoError(t, licenses.Add("TX"))

	// A good attachment first, then a bad one replacing it
	require.NoError(t, licenses.AttachDocument("TX", "license.pdf", "application/pdf", []byte("pdf")))
	require.NoError(t, licenses.AttachDocument("TX", "license.docx", "application/msword", []byte("doc")))

	license := licenses[0]
	assert.False(t, license.HasDocument())
	assert.Empty(t, license.FileName)
	assert.Contains(t, license.FileError, "Unsupported file format")

	// A valid re-upload clears the error
	require.NoError(t, licenses.AttachDocument("TX", "license.jpg", "image/jpeg", []byte("jpg")))
	assert.True(t, licenses[0].HasDocument())
	assert.Empty(t, licenses[0].FileError)
}

func TestLicenseCollectionAttachDocumentUnknownState(t *testing.T) {
	var licenses LicenseCollection
	err := licenses.AttachDocument("CA", "license.pdf", "application/pdf", []byte("pdf"))
	assert.ErrorIs(t, err, ErrStateNotFound)
}

func TestLicenseCollectionAvailable(t *testing.T) {
	var licenses LicenseCollection
	require.NoError(t, licenses.Add("CA"))

	available := licenses.Available()
	assert.Len(t, available, len(USStates)-1)
	for _, opt := range available {
		assert.NotEqual(t, "CA", opt.ID)
	}
}

func TestLicenseCollectionValidate(t *testing.T) {
	var licenses LicenseCollection
	assert.EqualError(t, licenses.Validate(), "Please add at least one state")

	require.NoError(t, licenses.Add("CA"))
	assert.EqualError(t, licenses.Validate(), "All states must have a reseller number and documentation")

	require.NoError(t, licenses.SetResellerNumber("CA", "RS-1234"))
	assert.EqualError(t, licenses.Validate(), "All states must have a reseller number and documentation")

	require.NoError(t, licenses.AttachDocument("CA", "license.docx", "application/msword", []byte("doc")))
	assert.EqualError(t, licenses.Validate(), "Please fix file format errors")

	require.NoError(t, licenses.AttachDocument("CA", "license.pdf", "application/pdf", []byte("pdf")))
	assert.NoError(t, licenses.Validate())
}

func TestLicenseCollectionValidateReDerivesFormat(t *testing.T) {
	// Collections bound straight from JSON never pass through
	// AttachDocument, so a disallowed extension can arrive with an empty
	// FileError. Validation must re-check the extension itself.
	licenses := LicenseCollection{{
		StateCode:      "CA",
		StateName:      "California",
		ResellerNumber: "RS-1234",
		FileName:       "license.exe",
		FileType:       "application/octet-stream",
		FileData:       "data:application/octet-stream;base64,cGF5bG9hZA==",
	}}

	assert.False(t, licenses[0].Complete())
	assert.EqualError(t, licenses.Validate(), "Please fix file format errors")
}

func TestLicenseCollectionValidateRejectsDuplicateStates(t *testing.T) {
	entry := StateLicense{
		StateCode:      "CA",
		StateName:      "California",
		ResellerNumber: "RS-1234",
		FileName:       "license.pdf",
		FileType:       "application/pdf",
		FileData:       "data:application/pdf;base64,cGRm",
	}
	// Add enforces uniqueness, but JSON binding bypasses it
	licenses := LicenseCollection{entry, entry}

	assert.EqualError(t, licenses.Validate(), "Please remove duplicate states")
}
