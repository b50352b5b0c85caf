package registration

import (
	"bytes"
	"html/template"
	"strings"

	"partner-portal-api/res/store"
	"partner-portal-api/sys/form"
)

// The notification email mirrors the admin record view: plain sections with
// label/value rows, rendered from the stored record after submission.
var businessRecordEmailTemplate = template.Must(template.New("business-record").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <meta http-equiv="Content-Type" content="text/html; charset=UTF-8">
  <title>Business Record Details</title>
  <style>
    body { font-family: 'Courier New', Courier, monospace; color: #333; line-height: 1.5; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    h1 { font-size: 24px; margin-bottom: 20px; }
    h2 { color: #9D783C; font-size: 18px; margin-top: 30px; margin-bottom: 10px; border-bottom: 1px solid #eee; padding-bottom: 5px; }
    h3 { font-size: 16px; margin: 15px 0 5px; }
    .info-row { margin-bottom: 10px; }
    .label { font-weight: bold; color: #666; }
    .card { border: 1px solid #ddd; padding: 15px; margin-bottom: 15px; border-radius: 4px; }
    table { width: 100%; border-collapse: collapse; }
    table td { padding: 8px; }
    .link { color: #9D783C; }
  </style>
</head>
<body>
  <div class="container">
    <h1>Business Record Details</h1>

    <h2>Basic Business Information</h2>
    <div class="info-row"><div class="label">Business Name</div><div>{{.Record.BusinessName}}</div></div>
    <div class="info-row"><div class="label">Business Phone</div><div>{{.BusinessPhone}}</div></div>
    <div class="info-row"><div class="label">Business Address</div><div>{{.Record.BusinessStreetAddress}}, {{.Record.BusinessCity}}, {{.Record.BusinessState}} {{.Record.BusinessZipCode}}</div></div>
    <div class="info-row"><div class="label">Website URL</div><div>{{if .Record.WebsiteURL}}<a href="{{.Record.WebsiteURL}}" class="link">{{.Record.WebsiteURL}}</a>{{else}}Not provided{{end}}</div></div>
    <div class="info-row"><div class="label">EIN</div><div>{{.Record.EIN}}</div></div>

    <h2>Business Category</h2>
    <div class="info-row"><div class="label">Category</div><div>{{.CategoryLabel}}</div></div>
    <div class="info-row"><div class="label">Type</div><div>{{.SubcategoryLabel}}</div></div>
    <div class="info-row"><div class="label">Account Representative</div><div>{{.AccountRepLabel}}</div></div>
    <div class="info-row"><div class="label">Number of Locations</div><div>{{if .Record.LocationCount}}{{.Record.LocationCount}}{{else}}Not specified{{end}}</div></div>

    <h2>Contact Information</h2>
    {{if .MainManager}}
    <div class="card">
      <h3>Primary Representative</h3>
      <table>
        <tr><td class="label">Name</td><td>{{.MainManager.FullName}}</td></tr>
        <tr><td class="label">Email</td><td>{{if .MainManager.Email}}<a href="mailto:{{.MainManager.Email}}" class="link">{{.MainManager.Email}}</a>{{else}}Not specified{{end}}</td></tr>
        <tr><td class="label">Phone</td><td>{{if .MainManager.Phone}}{{.MainManager.Phone}}{{else}}Not specified{{end}}</td></tr>
      </table>
    </div>
    {{end}}
    {{if .AdditionalManagers}}
    <h3>Additional Contacts</h3>
    {{range .AdditionalManagers}}
    <div class="card">
      <table>
        <tr><td class="label">Name</td><td>{{.FullName}}</td></tr>
        <tr><td class="label">Email</td><td>{{if .Email}}<a href="mailto:{{.Email}}" class="link">{{.Email}}</a>{{else}}Not specified{{end}}</td></tr>
        <tr><td class="label">Phone</td><td>{{if .Phone}}{{.Phone}}{{else}}Not specified{{end}}</td></tr>
      </table>
    </div>
    {{end}}
    {{end}}

    <h2>Additional Details</h2>
    {{if .OutletTypes}}<div class="info-row"><div class="label">Outlet Types</div><div>{{.OutletTypes}}</div></div>{{end}}
    {{if .Record.OtherOutletDescription}}<div class="info-row"><div class="label">Other Outlet Description</div><div>{{.Record.OtherOutletDescription}}</div></div>{{end}}
    {{if .Record.WhySellReason}}<div class="info-row"><div class="label">Reason for Partnering</div><div>{{.Record.WhySellReason}}</div></div>{{end}}

    <h2>States</h2>
    {{if .Record.States}}
    {{range .Record.States}}
    <div class="card">
      <h3>{{.StateName}} ({{.StateCode}})</h3>
      <table>
        <tr><td class="label">Reseller Number</td><td>{{.ResellerNumber}}</td></tr>
        <tr><td class="label">Documentation</td><td>{{if .DocumentPath}}Document on file: {{.DocumentPath}}{{else}}No document provided{{end}}</td></tr>
      </table>
    </div>
    {{end}}
    {{else}}
    <div class="info-row"><p>No states added</p></div>
    {{end}}

    <h2>Metadata</h2>
    <div class="info-row"><div class="label">Submission Date</div><div>{{.Record.CreatedAt.Format "Jan 2, 2006 15:04 MST"}}</div></div>
    <div class="info-row"><div class="label">Last Updated</div><div>{{.Record.UpdatedAt.Format "Jan 2, 2006 15:04 MST"}}</div></div>
    <div class="info-row"><div class="label">Record ID</div><div><code>{{.Record.ID}}</code></div></div>
  </div>
</body>
</html>
`))

type businessRecordEmailData struct {
	Record             *store.BusinessRecord
	BusinessPhone      string
	CategoryLabel      string
	SubcategoryLabel   string
	AccountRepLabel    string
	OutletTypes        string
	MainManager        *store.AccountManager
	AdditionalManagers []*store.AccountManager
}

func renderBusinessRecordEmail(record *store.BusinessRecord) (string, error) {
	snapshot := form.Snapshot{
		BusinessCategory: form.Category(record.BusinessCategory),
		Subcategory:      record.Subcategory,
	}
	if record.OtherSubcategory != nil {
		snapshot.OtherSubcategory = *record.OtherSubcategory
	}

	data := businessRecordEmailData{
		Record:           record,
		BusinessPhone:    form.FormatPhone(record.BusinessPhone),
		CategoryLabel:    snapshot.CategoryLabel(),
		SubcategoryLabel: snapshot.SubcategoryLabel(),
		AccountRepLabel:  form.LabelFor(record.AccountRep, form.AccountReps),
	}

	if len(record.OutletTypes) > 0 {
		labels := make([]string, 0, len(record.OutletTypes))
		for _, t := range record.OutletTypes {
			labels = append(labels, form.LabelFor(t, form.OutletTypeOptions))
		}
		data.OutletTypes = strings.Join(labels, ", ")
	}

	for i := range record.AccountManagers {
		manager := &record.AccountManagers[i]
		if manager.IsMain && data.MainManager == nil {
			data.MainManager = manager
		} else {
			data.AdditionalManagers = append(data.AdditionalManagers, manager)
		}
	}

	var buf bytes.Buffer
	if err := businessRecordEmailTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
