package repositories

import (
	"context"

	"hirebase/internal/domain/models"
)

// AttachmentRepository is the cascade collaborator for folder-owned files.
// The namespace engine drains a folder's attachments before soft-deleting
// the folder itself; per-attachment failures are logged and skipped.
type AttachmentRepository interface {
	// ListByFolder enumerates the attachments under a folder.
	ListByFolder(ctx context.Context, ownerID, folderID string) ([]models.Attachment, error)

	// Delete removes a single attachment row.
	Delete(ctx context.Context, attachmentID, ownerID string) error
}
