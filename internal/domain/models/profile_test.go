package models

import "testing"

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name    string
		profile UserProfile
		want    string
	}{
		{
			name:    "full name wins",
			profile: UserProfile{FullName: "Jane Doe", FirstName: "Janet", LastName: "Smith"},
			want:    "Jane Doe",
		},
		{
			name:    "first and last joined",
			profile: UserProfile{FirstName: "Jane", LastName: "Doe"},
			want:    "Jane Doe",
		},
		{
			name:    "first name alone",
			profile: UserProfile{FirstName: "Jane"},
			want:    "Jane",
		},
		{
			name:    "last name alone is not usable",
			profile: UserProfile{LastName: "Doe"},
			want:    "",
		},
		{
			name:    "whitespace full name falls through",
			profile: UserProfile{FullName: "   ", FirstName: "Jane", LastName: "Doe"},
			want:    "Jane Doe",
		},
		{
			name:    "empty profile",
			profile: UserProfile{},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.profile.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}
