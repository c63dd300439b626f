package repositories

import "context"

// JobRepository is the cascade collaborator for the job registry. The
// namespace engine notifies it when a job-container folder is deleted; a
// failed notification is logged, never propagated as a deletion failure.
type JobRepository interface {
	// DeleteByFolder soft-deletes every job record owned by the folder.
	DeleteByFolder(ctx context.Context, ownerID, folderID string) error
}
