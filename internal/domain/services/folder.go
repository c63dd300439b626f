package services

import (
	"context"

	"hirebase/internal/domain/models"
)

// FolderService is the namespace engine: the owner-scoped folder tree with
// idempotent creation, path resolution, and ordered recursive deletion.
type FolderService interface {
	// CreateFolder creates a folder, or returns the existing active folder
	// when the derived uniqueKey already exists (idempotent create).
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)

	// CreateSystemFolder is CreateFolder for trusted internal callers. When
	// the name is omitted and a subjectId is supplied, the display name is
	// resolved through the identity directory.
	CreateSystemFolder(ctx context.Context, req *CreateSystemFolderRequest) (*models.Folder, error)

	// GetFolder retrieves an active folder with computed path and live
	// children count.
	GetFolder(ctx context.Context, ownerID, folderID string) (*models.Folder, error)

	// ListChildren pages through a folder's active direct children.
	ListChildren(ctx context.Context, req *ListChildrenRequest) (*FolderPage, error)

	// ListRoots pages through the owner's active root folders.
	ListRoots(ctx context.Context, req *ListRootsRequest) (*FolderPage, error)

	// QueryFolders pages through the owner's active folders under an open
	// parent/type filter.
	QueryFolders(ctx context.Context, req *QueryFoldersRequest) (*FolderPage, error)

	// UpdateFolder applies a partial update (name, type, merged metadata).
	UpdateFolder(ctx context.Context, req *UpdateFolderRequest) (*models.Folder, error)

	// DeleteFolder soft-deletes a folder and its entire subtree,
	// deepest-first, draining attachment-housing folders and notifying the
	// job registry for job containers.
	DeleteFolder(ctx context.Context, ownerID, folderID string) (*DeleteResult, error)

	// DeleteFolders batch-deletes folders deepest-first across the whole
	// input, collecting per-id failures instead of aborting.
	DeleteFolders(ctx context.Context, ownerID string, folderIDs []string) (*BatchDeleteResult, error)
}

// CreateFolderRequest carries a folder creation command. OwnerID comes from
// the verified caller identity, never from the request body.
type CreateFolderRequest struct {
	OwnerID  string            `json:"-"`
	Name     string            `json:"name"`
	Type     string            `json:"type"`
	ParentID *string           `json:"parentId,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// CreateSystemFolderRequest is the internal-caller variant. OwnerID is
// supplied by the calling service; SubjectID optionally names a foreign
// subject whose directory profile supplies the folder name.
type CreateSystemFolderRequest struct {
	OwnerID   string            `json:"ownerId"`
	Name      string            `json:"name,omitempty"`
	Type      string            `json:"type"`
	ParentID  *string           `json:"parentId,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	SubjectID string            `json:"subjectId,omitempty"`
}

// UpdateFolderRequest carries a partial folder update. Metadata is merged
// into the stored map, never replaced. At least one field must be present.
type UpdateFolderRequest struct {
	OwnerID  string            `json:"-"`
	FolderID string            `json:"-"`
	Name     *string           `json:"name,omitempty"`
	Type     *string           `json:"type,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// ListChildrenRequest pages through a folder's direct children.
type ListChildrenRequest struct {
	OwnerID  string
	FolderID string
	Limit    int32
	Cursor   string
}

// ListRootsRequest pages through the owner's root folders.
type ListRootsRequest struct {
	OwnerID string
	Limit   int32
	Cursor  string
}

// QueryFoldersRequest is the open enumeration filter.
type QueryFoldersRequest struct {
	OwnerID   string
	ParentID  *string
	RootsOnly bool
	Type      string
	Limit     int32
	Cursor    string
}

// FolderPage is one page of folders, each carrying its computed path.
type FolderPage struct {
	Folders    []models.Folder `json:"folders"`
	NextCursor string          `json:"nextCursor,omitempty"`
}

// DeleteFailure records one folder that could not be soft-deleted during a
// recursive or batch deletion. Already-applied deletions are not rolled
// back; the failure list is the caller's complete account of what remains.
type DeleteFailure struct {
	FolderID string `json:"folderId"`
	Reason   string `json:"reason"`
}

// DeleteResult reports a subtree deletion: how many folders were
// soft-deleted (target included) and which ones failed.
type DeleteResult struct {
	FolderID    string          `json:"folderId"`
	Descendants int             `json:"descendants"`
	Deleted     int             `json:"deleted"`
	Failures    []DeleteFailure `json:"failures,omitempty"`
}

// BatchDeleteResult aggregates the per-id outcomes of a batch deletion.
type BatchDeleteResult struct {
	Requested int             `json:"requested"`
	Deleted   int             `json:"deleted"`
	Failures  []DeleteFailure `json:"failures,omitempty"`
}
