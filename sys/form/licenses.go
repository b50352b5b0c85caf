package form

import (
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// AcceptedDocumentFormats is the allow-list for reseller license documents.
var AcceptedDocumentFormats = []string{".pdf", ".jpg", ".jpeg", ".png", ".tiff"}

var (
	ErrStateAlreadyAdded = errors.New("form: state already added")
	ErrUnknownState      = errors.New("form: unknown state code")
	ErrStateNotFound     = errors.New("form: state not in collection")
)

// StateLicense is one state the business operates in, carrying the reseller
// number and the required license document. FileData holds the document as a
// base64 data URL, the transportable form the submission pipeline expects.
type StateLicense struct {
	StateCode      string `json:"stateCode"`
	StateName      string `json:"stateName"`
	ResellerNumber string `json:"resellerNumber"`

	FileName  string `json:"fileName,omitempty"`
	FileType  string `json:"fileType,omitempty"`
	FileSize  int64  `json:"fileSize,omitempty"`
	FileData  string `json:"fileData,omitempty"`
	FileError string `json:"fileError,omitempty"`
}

// HasDocument reports whether a document is currently attached.
func (l StateLicense) HasDocument() bool {
	return l.FileData != ""
}

// Complete reports whether the entry is ready for submission: reseller
// number filled in, a document attached whose extension passes the
// allow-list, and no file format error pending. The extension is re-derived
// from the file name; entries arriving pre-assembled over the wire get the
// same format check as ones built through AttachDocument.
func (l StateLicense) Complete() bool {
	if l.ResellerNumber == "" || !l.HasDocument() || l.FileError != "" {
		return false
	}
	return acceptedFormat(strings.ToLower(filepath.Ext(l.FileName)))
}

// LicenseCollection is the repeatable state/license sub-form. State codes
// are unique within the collection by construction.
type LicenseCollection []StateLicense

// Add appends a new empty entry for the given state code. Codes already in
// the collection and codes outside the US state list are rejected.
func (c *LicenseCollection) Add(code string) error {
	name := StateName(code)
	if name == "" {
		return ErrUnknownState
	}
	for _, l := range *c {
		if l.StateCode == code {
			return ErrStateAlreadyAdded
		}
	}
	*c = append(*c, StateLicense{StateCode: code, StateName: name})
	return nil
}

// Remove drops the entry for the given state code, if present.
func (c *LicenseCollection) Remove(code string) {
	kept := (*c)[:0]
	for _, l := range *c {
		if l.StateCode != code {
			kept = append(kept, l)
		}
	}
	*c = kept
}

// SetResellerNumber updates the reseller number for a state in place.
func (c LicenseCollection) SetResellerNumber(code, value string) error {
	for i := range c {
		if c[i].StateCode == code {
			c[i].ResellerNumber = value
			return nil
		}
	}
	return ErrStateNotFound
}

// AttachDocument validates the file against the extension allow-list and
// attaches it. On a format mismatch the entry keeps no document (a previous
// attachment is cleared) and carries the error message instead.
func (c LicenseCollection) AttachDocument(code, fileName, contentType string, data []byte) error {
	for i := range c {
		if c[i].StateCode != code {
			continue
		}

		ext := strings.ToLower(filepath.Ext(fileName))
		if !acceptedFormat(ext) {
			c[i].FileName = ""
			c[i].FileType = ""
			c[i].FileSize = 0
			c[i].FileData = ""
			c[i].FileError = fmt.Sprintf(
				"Unsupported file format. Please upload a %s file.",
				strings.Join(AcceptedDocumentFormats, ", "),
			)
			return nil
		}

		if contentType == "" {
			contentType = "application/octet-stream"
		}
		c[i].FileName = fileName
		c[i].FileType = contentType
		c[i].FileSize = int64(len(data))
		c[i].FileData = fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
		c[i].FileError = ""
		return nil
	}
	return ErrStateNotFound
}

// Available returns the state choices not yet present in the collection.
func (c LicenseCollection) Available() []Option {
	present := make(map[string]bool, len(c))
	for _, l := range c {
		present[l.StateCode] = true
	}
	var out []Option
	for _, s := range USStates {
		if !present[s.ID] {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks the whole collection for submission readiness. Snapshots
// bound straight from JSON never went through Add or AttachDocument, so the
// no-duplicate and format invariants are re-derived here rather than
// trusted.
func (c LicenseCollection) Validate() error {
	if len(c) == 0 {
		return errors.New("Please add at least one state")
	}

	seen := make(map[string]bool, len(c))
	for _, l := range c {
		if seen[l.StateCode] {
			return errors.New("Please remove duplicate states")
		}
		seen[l.StateCode] = true
	}

	var incomplete, fileErrors int
	for _, l := range c {
		if l.FileError != "" || (l.HasDocument() && !acceptedFormat(strings.ToLower(filepath.Ext(l.FileName)))) {
			fileErrors++
		}
		if !l.Complete() {
			incomplete++
		}
	}
	if fileErrors > 0 {
		return errors.New("Please fix file format errors")
	}
	if incomplete > 0 {
		return errors.New("All states must have a reseller number and documentation")
	}
	return nil
}

func acceptedFormat(ext string) bool {
	for _, f := range AcceptedDocumentFormats {
		if f == ext {
			return true
		}
	}
	return false
}
