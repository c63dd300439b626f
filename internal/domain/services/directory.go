package services

import (
	"context"

	"hirebase/internal/domain/models"
)

// DirectoryService resolves foreign subject identifiers against the identity
// provider's admin API. Used by system folder creation to derive display
// names for folders created on another user's behalf.
type DirectoryService interface {
	// GetProfile fetches a subject's profile. Returns domain.ErrNotFound
	// (wrapped) when the subject does not exist.
	GetProfile(ctx context.Context, subjectID string) (*models.UserProfile, error)
}
