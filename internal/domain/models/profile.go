package models

import "strings"

// UserProfile is the identity directory's view of a subject, fetched when a
// system folder is created on behalf of a user without an explicit name.
type UserProfile struct {
	SubjectID string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// DisplayName derives a human-readable label for the subject: full name,
// else first and last, else first alone. Returns "" when the profile holds
// no usable name; callers substitute their own fallback.
func (p *UserProfile) DisplayName() string {
	if name := strings.TrimSpace(p.FullName); name != "" {
		return name
	}
	first := strings.TrimSpace(p.FirstName)
	last := strings.TrimSpace(p.LastName)
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	default:
		return ""
	}
}
