package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"partner-portal-api/res/store"

	"github.com/gin-gonic/gin"
)

const documentURLLifespan = 1 * time.Hour

// Columns the dashboard is allowed to touch through PATCH. Relation tables
// and metadata stay server-owned.
var updatableRecordColumns = map[string]bool{
	"business_name":            true,
	"business_street_address":  true,
	"business_city":            true,
	"business_state":           true,
	"business_zip_code":        true,
	"business_phone":           true,
	"website_url":              true,
	"business_category":        true,
	"subcategory":              true,
	"other_subcategory":        true,
	"account_rep":              true,
	"account_manager":          true,
	"location_count":           true,
	"outlet_types":             true,
	"other_outlet_description": true,
	"why_sell_reason":          true,
	"ein":                      true,
}

// ListRecords returns every business record with its account managers and
// state licenses. Stored document paths are swapped for short-lived signed
// URLs so the dashboard can link them directly.
func (h *Handler) ListRecords(c *gin.Context) {
	ctx := c.Request.Context()

	records, err := h.Store.BusinessRecords().ListWithRelations(ctx)
	if err != nil {
		h.Logger.Printf("Error listing business records: %s", err)
		respondError(c, http.StatusInternalServerError, "error listing business records")
		return
	}

	for _, record := range records {
		h.signDocumentURLs(c, record)
	}

	respondOK(c, records)
}

// UpdateRecord applies a partial column update to one record and returns
// the updated record.
func (h *Handler) UpdateRecord(c *gin.Context) {
	recordID := c.Param("id")
	ctx := c.Request.Context()

	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, "Malformed request body")
		return
	}

	updates := make(map[string]interface{}, len(payload))
	for column, value := range payload {
		if !updatableRecordColumns[column] {
			respondError(c, http.StatusBadRequest, fmt.Sprintf("field cannot be updated: %s", column))
			return
		}
		updates[column] = value
	}
	if len(updates) == 0 {
		respondError(c, http.StatusBadRequest, "no updatable fields in request")
		return
	}

	if err := h.Store.BusinessRecords().Update(ctx, recordID, updates); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "business record not found")
			return
		}
		h.Logger.Printf("Error updating business record %s: %s", recordID, err)
		respondError(c, http.StatusInternalServerError, "error updating business record")
		return
	}

	record, err := h.Store.BusinessRecords().GetWithRelations(ctx, recordID)
	if err != nil {
		h.Logger.Printf("Error reloading business record %s: %s", recordID, err)
		respondError(c, http.StatusInternalServerError, "error updating business record")
		return
	}

	h.signDocumentURLs(c, record)
	respondOK(c, record)
}

// ExportRecords streams the full record set as a CSV attachment.
func (h *Handler) ExportRecords(c *gin.Context) {
	records, err := h.Store.BusinessRecords().ListWithRelations(c.Request.Context())
	if err != nil {
		h.Logger.Printf("Error listing business records for export: %s", err)
		respondError(c, http.StatusInternalServerError, "error exporting business records")
		return
	}

	csv := h.Exporter.CSV(records)

	filename := fmt.Sprintf("business-records-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

// signDocumentURLs replaces stored object paths with signed URLs in place.
// A failed signing leaves the state without a link rather than failing the
// whole request.
func (h *Handler) signDocumentURLs(c *gin.Context, record *store.BusinessRecord) {
	for i := range record.States {
		state := &record.States[i]
		if state.DocumentPath == nil {
			continue
		}

		signedURL, err := h.Storage.SignedURL(c.Request.Context(), *state.DocumentPath, documentURLLifespan)
		if err != nil {
			h.Logger.Printf("Error signing document URL for state %s: %s", state.StateCode, err)
			state.DocumentPath = nil
			continue
		}
		state.DocumentPath = &signedURL
	}
}
