package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
	// SourceFilePermissions is the permission for generated scripts (rw-r--r--)
	SourceFilePermissions = 0o644
)

// Timeout and duration constants
const (
	// DefaultRunTimeout is the wall-clock bound on an executed script
	DefaultRunTimeout = 60 * time.Second
	// DefaultHTTPClientTimeout is the timeout for HTTP client requests
	DefaultHTTPClientTimeout = 60 * time.Second
)

// History constants
const (
	// HistoryCapacity bounds the in-session history log; the oldest entry
	// is evicted once the capacity is exceeded
	HistoryCapacity = 10
	// DefaultHistoryLimit is the default number of audit records to display
	DefaultHistoryLimit = 20
	// DefaultHistoryRetainDays is the default number of days to retain audit records
	DefaultHistoryRetainDays = 30
)

// Cache constants
const (
	// DefaultCacheTTL is how long cached model responses stay valid
	DefaultCacheTTL = time.Hour
	// DefaultMaxCacheEntries is the maximum number of cached responses
	DefaultMaxCacheEntries = 100
)

// Rate limiting constants
const (
	// DefaultRequestsPerMinute bounds calls against the model service
	DefaultRequestsPerMinute = 30
)

// Model configuration constants
const (
	// DefaultMaxTokens is the default maximum number of output tokens
	DefaultMaxTokens = 8192
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)

// RecognizedSuffixes lists the artifact file types the workspace index
// serves, lower-case with leading dot.
func RecognizedSuffixes() []string {
	return []string{".dxf", ".png", ".svg", ".csv", ".json", ".html", ".txt", ".py"}
}
