// internal/app/system/limits/limits.go
package limits

// Request body size limits for various features.
// These limits help prevent memory exhaustion from oversized requests.
const (
	// MaxJSONBody is the maximum size for JSON API payloads.
	MaxJSONBody = 1 << 20 // 1 MB

	// MaxCSVUpload is the maximum size for bulk-import CSV files.
	MaxCSVUpload = 5 << 20 // 5 MB

	// MaxDocumentUpload is the maximum size for submission documents
	// (proposal/documentation/project deliverables).
	MaxDocumentUpload = 25 << 20 // 25 MB

	// MaxImportRows caps how many records one CSV import may carry.
	MaxImportRows = 2000
)
