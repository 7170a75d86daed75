package models

// ReportType classifies an abuse report.
type ReportType string

const (
	ReportFake         ReportType = "FAKE"
	ReportAltered      ReportType = "ALTERED"
	ReportUnauthorized ReportType = "UNAUTHORIZED"
	ReportOther        ReportType = "OTHER"
)

// Draft is the wire shape of POST /api/v1/verifications/reports. The
// reporter email is deliberately not omitempty: the backend has always
// received an empty string from the web client and its tolerance for a
// missing key is unspecified.
type Draft struct {
	DocumentHash  string     `json:"document_hash"`
	ReportType    ReportType `json:"report_type"`
	Reason        string     `json:"reason"`
	ReporterEmail string     `json:"reporter_email"`
}
