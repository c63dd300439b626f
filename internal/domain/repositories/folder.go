package repositories

import (
	"context"

	"hirebase/internal/domain/models"
)

// FolderQuery is the open filter for owner-scoped folder enumeration.
// ParentID and RootsOnly are mutually exclusive; when neither is set the
// query spans all of the owner's folders.
type FolderQuery struct {
	ParentID  *string // only children of this folder
	RootsOnly bool    // only folders without a parent
	Type      string  // optional type filter
	Limit     int32   // page size; 0 = store default
	Cursor    string  // opaque continuation token from a previous page
}

// FolderPage is one page of query results. NextCursor is empty on the last
// page; otherwise it round-trips unchanged into the next query.
type FolderPage struct {
	Folders    []models.Folder
	NextCursor string
}

// FolderRepository is the store adapter contract for the folder table.
// Point operations are atomic per (folderId, ownerId) key; enumeration runs
// against the (ownerId, parentKey) index and excludes soft-deleted rows.
// There are no multi-key transactions.
type FolderRepository interface {
	// Put unconditionally upserts a folder by composite key.
	Put(ctx context.Context, folder *models.Folder) error

	// Get point-reads a folder. Returns domain.ErrNotFound (wrapped) when
	// the key is absent.
	Get(ctx context.Context, folderID, ownerID string) (*models.Folder, error)

	// Update applies a partial point update and returns the new state.
	// Returns domain.ErrNotFound (wrapped) when the key is absent.
	Update(ctx context.Context, folderID, ownerID string, update models.FolderUpdate) (*models.Folder, error)

	// GetByUniqueKey point-looks-up the dedup index. Returns
	// domain.ErrNotFound (wrapped) when no row carries the key.
	GetByUniqueKey(ctx context.Context, uniqueKey string) (*models.Folder, error)

	// ListChildren returns the active direct children of a folder
	// (nil parentID = roots), unpaginated.
	ListChildren(ctx context.Context, ownerID string, parentID *string) ([]models.Folder, error)

	// ListByOwner returns all of an owner's active folders, paging through
	// the index internally. This is the snapshot source for descendant and
	// depth computation.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Folder, error)

	// CountChildren counts a folder's active direct children.
	CountChildren(ctx context.Context, ownerID, folderID string) (int, error)

	// Query enumerates an owner's active folders under an open filter with
	// pagination.
	Query(ctx context.Context, ownerID string, q FolderQuery) (*FolderPage, error)
}
