package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 255 to provide reasonable UX (names should be short
	// and descriptive) and to keep derived dedup keys compact.
	MaxFolderNameLength = 255

	// MaxFolderTypeLength is the maximum length for folder type labels.
	// Types are short classifier words (Company, Applicant, Cargo), not
	// free text.
	MaxFolderTypeLength = 64

	// MaxBatchDeleteSize caps the number of folder ids accepted by a
	// single batch delete. Every id expands into a subtree walk, so the
	// cap bounds the worst-case work of one request.
	MaxBatchDeleteSize = 50

	// MaxDeleteConcurrency bounds the workers tombstoning one depth
	// level of a subtree. Sized well below the store's per-table write
	// throughput so a wide level does not starve foreground writes.
	MaxDeleteConcurrency = 8

	// DefaultPageSize is the page size applied when a list request
	// does not specify one.
	DefaultPageSize = 50

	// MaxPageSize caps a caller-supplied page size.
	MaxPageSize = 200
)
