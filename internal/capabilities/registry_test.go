package capabilities

import "testing"

func TestForType(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	tests := []struct {
		name                  string
		folderType            string
		housesAttachments     bool
		cascadesToJobRegistry bool
	}{
		{
			name:       "company folders have no cascades",
			folderType: "Company",
		},
		{
			name:                  "cargo folders cascade to the job registry",
			folderType:            "Cargo",
			cascadesToJobRegistry: true,
		},
		{
			name:              "applicant folders house attachments",
			folderType:        "Applicant",
			housesAttachments: true,
		},
		{
			name:       "generic folder type",
			folderType: "Folder",
		},
		{
			name:       "unknown type falls back to default",
			folderType: "Pipeline",
		},
		{
			name:       "type lookup is case-sensitive",
			folderType: "cargo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps := registry.ForType(tt.folderType)

			if caps.HousesAttachments != tt.housesAttachments {
				t.Errorf("ForType(%q).HousesAttachments = %v, want %v",
					tt.folderType, caps.HousesAttachments, tt.housesAttachments)
			}
			if caps.CascadesToJobRegistry != tt.cascadesToJobRegistry {
				t.Errorf("ForType(%q).CascadesToJobRegistry = %v, want %v",
					tt.folderType, caps.CascadesToJobRegistry, tt.cascadesToJobRegistry)
			}
		})
	}
}

func TestTypesListsConfiguredTypes(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	types := registry.Types()
	seen := make(map[string]bool, len(types))
	for _, ft := range types {
		seen[ft] = true
	}

	for _, want := range []string{"Company", "Cargo", "Applicant", "Folder"} {
		if !seen[want] {
			t.Errorf("Types() missing %q, got %v", want, types)
		}
	}
}
