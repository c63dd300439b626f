package capabilities

// TypeCapabilities is the capability flag set attached to a folder type.
// The namespace engine resolves a folder's type once and branches on these
// flags instead of comparing type strings at call sites.
type TypeCapabilities struct {
	// HousesAttachments marks types whose folders own attached files; the
	// attachment store is drained before such a folder is soft-deleted.
	HousesAttachments bool `yaml:"houses_attachments" json:"housesAttachments"`

	// CascadesToJobRegistry marks job-container types; the job registry is
	// notified when such a folder is deleted directly.
	CascadesToJobRegistry bool `yaml:"cascades_to_job_registry" json:"cascadesToJobRegistry"`
}

// folderTypeConfig is the shape of the embedded capability YAML file.
type folderTypeConfig struct {
	Default TypeCapabilities            `yaml:"default"`
	Types   map[string]TypeCapabilities `yaml:"types"`
}
