package validation

import (
	"path/filepath"
	"regexp"
	"strings"
)

// documentHashRe matches a lowercase hex SHA-256 digest.
var documentHashRe = regexp.MustCompile(`^[0-9a-f]{64}$`)

// IsDocumentHash reports whether s looks like a SHA-256 document hash.
// User-entered hashes are still submitted verbatim; the backend is
// authoritative, so this is only used for warnings.
func IsDocumentHash(s string) bool {
	return documentHashRe.MatchString(s)
}

// Report types accepted by the reports endpoint.
const (
	ReportTypeFake         = "FAKE"
	ReportTypeAltered      = "ALTERED"
	ReportTypeUnauthorized = "UNAUTHORIZED"
	ReportTypeOther        = "OTHER"
)

func IsReportType(s string) bool {
	switch s {
	case ReportTypeFake, ReportTypeAltered, ReportTypeUnauthorized, ReportTypeOther:
		return true
	}
	return false
}

// acceptedExtensions mirrors the upload surface contract: PDF, JPG, PNG, DOCX.
var acceptedExtensions = map[string]struct{}{
	".pdf":  {},
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".docx": {},
}

// IsAcceptedDocumentExt reports whether the file extension is in the upload
// envelope. Matching is case-insensitive.
func IsAcceptedDocumentExt(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := acceptedExtensions[ext]
	return ok
}
