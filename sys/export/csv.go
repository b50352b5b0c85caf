package export

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"partner-portal-api/res/storage"
	"partner-portal-api/res/store"
)

// Fixed column order for the identity portion of the export. Columns only
// appear when at least one record carries them; the flattened
// additional-account-manager and state column groups are appended after
// these, each group sorted, followed by any remaining columns.
var orderedHeaders = []string{
	"business_name",
	"business_street_address",
	"business_city",
	"business_state",
	"business_zip_code",
	"business_phone",
	"website_url",
	"ein",

	"business_category",
	"subcategory",
	"other_subcategory",
	"account_rep",
	"location_count",

	"contact_name",
	"contact_email",
	"contact_phone",

	"main_account_manager_name",
	"main_account_manager_email",
	"main_account_manager_phone",

	"outlet_types",
	"other_outlet_description",
	"why_sell_reason",

	"created_at",
	"updated_at",
	"id",
}

// Exporter renders business records as CSV for the admin dashboard. State
// document paths are expanded to public storage URLs in the output.
type Exporter struct {
	storage storage.DocumentStorage
}

func New(documentStorage storage.DocumentStorage) *Exporter {
	return &Exporter{storage: documentStorage}
}

// CSV flattens the records and renders them as one CSV document. The header
// row is the union of columns across all records; every cell is wrapped in
// double quotes with embedded quotes doubled, and absent values render as
// empty quoted strings.
func (e *Exporter) CSV(records []*store.BusinessRecord) string {
	rows := make([]map[string]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, e.flatten(record))
	}
	return renderCSV(rows)
}

func (e *Exporter) flatten(record *store.BusinessRecord) map[string]string {
	row := map[string]string{
		"id":                      record.ID,
		"business_name":           record.BusinessName,
		"business_street_address": record.BusinessStreetAddress,
		"business_city":           record.BusinessCity,
		"business_state":          record.BusinessState,
		"business_zip_code":       record.BusinessZipCode,
		"business_phone":          record.BusinessPhone,
		"website_url":             stringOrEmpty(record.WebsiteURL),
		"ein":                     record.EIN,

		"business_category": record.BusinessCategory,
		"subcategory":       record.Subcategory,
		"other_subcategory": stringOrEmpty(record.OtherSubcategory),
		"account_rep":       record.AccountRep,
		"account_manager":   stringOrEmpty(record.AccountManager),

		"outlet_types":             strings.Join(record.OutletTypes, "; "),
		"other_outlet_description": stringOrEmpty(record.OtherOutletDescription),
		"why_sell_reason":          stringOrEmpty(record.WhySellReason),

		"created_at": record.CreatedAt.Format(time.RFC3339),
		"updated_at": record.UpdatedAt.Format(time.RFC3339),
	}

	if record.LocationCount != nil {
		row["location_count"] = strconv.Itoa(*record.LocationCount)
	} else {
		row["location_count"] = ""
	}

	e.flattenManagers(row, record.AccountManagers)
	e.flattenStates(row, record.States)

	return row
}

func (e *Exporter) flattenManagers(row map[string]string, managers []store.AccountManager) {
	additionalIndex := 0
	for i := range managers {
		manager := &managers[i]
		if manager.IsMain {
			row["main_account_manager_name"] = manager.FullName()
			row["main_account_manager_email"] = manager.Email
			row["main_account_manager_phone"] = manager.Phone
			continue
		}

		additionalIndex++
		prefix := fmt.Sprintf("additional_account_manager_%d", additionalIndex)
		row[prefix+"_name"] = manager.FullName()
		row[prefix+"_email"] = manager.Email
		row[prefix+"_phone"] = manager.Phone
	}
}

func (e *Exporter) flattenStates(row map[string]string, states []store.BusinessState) {
	var documentLinks []string

	for i := range states {
		state := &states[i]
		prefix := fmt.Sprintf("state_%d", i+1)
		row[prefix+"_code"] = state.StateCode
		row[prefix+"_name"] = state.StateName
		row[prefix+"_reseller_number"] = state.ResellerNumber

		if state.DocumentPath != nil {
			documentURL := e.storage.PublicURL(*state.DocumentPath)
			row[prefix+"_document_url"] = documentURL
			documentLinks = append(documentLinks, fmt.Sprintf("%s: %s", state.StateName, documentURL))
		}
	}

	if len(documentLinks) > 0 {
		row["state_documents"] = strings.Join(documentLinks, "\n")
	}
}

func renderCSV(rows []map[string]string) string {
	if len(rows) == 0 {
		return ""
	}

	allColumns := make(map[string]bool)
	for _, row := range rows {
		for column := range row {
			allColumns[column] = true
		}
	}

	headers := orderColumns(allColumns)

	var b strings.Builder
	cells := make([]string, len(headers))
	for i, header := range headers {
		cells[i] = quoteCell(header)
	}
	b.WriteString(strings.Join(cells, ","))

	for _, row := range rows {
		b.WriteByte('\n')
		for i, header := range headers {
			cells[i] = quoteCell(row[header])
		}
		b.WriteString(strings.Join(cells, ","))
	}

	return b.String()
}

func orderColumns(allColumns map[string]bool) []string {
	headers := make([]string, 0, len(allColumns))
	placed := make(map[string]bool, len(allColumns))
	for _, header := range orderedHeaders {
		if allColumns[header] {
			headers = append(headers, header)
			placed[header] = true
		}
	}

	var managerColumns, stateColumns, leftovers []string
	for column := range allColumns {
		if placed[column] {
			continue
		}
		switch {
		case strings.HasPrefix(column, "additional_account_manager"):
			managerColumns = append(managerColumns, column)
		case strings.HasPrefix(column, "state_"):
			stateColumns = append(stateColumns, column)
		default:
			leftovers = append(leftovers, column)
		}
	}
	sort.Strings(managerColumns)
	sort.Strings(stateColumns)
	sort.Strings(leftovers)

	headers = append(headers, managerColumns...)
	headers = append(headers, stateColumns...)
	headers = append(headers, leftovers...)
	return headers
}

// Every cell is quoted, including empty ones, with embedded double quotes
// escaped by doubling.
func quoteCell(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
