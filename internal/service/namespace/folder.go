package namespace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"hirebase/internal/capabilities"
	"hirebase/internal/config"
	"hirebase/internal/domain"
	"hirebase/internal/domain/models"
	"hirebase/internal/domain/repositories"
	"hirebase/internal/domain/services"
)

type folderService struct {
	folders     repositories.FolderRepository
	attachments repositories.AttachmentRepository
	jobs        repositories.JobRepository
	directory   services.DirectoryService
	registry    *capabilities.Registry
	logger      *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	attachmentRepo repositories.AttachmentRepository,
	jobRepo repositories.JobRepository,
	directory services.DirectoryService,
	registry *capabilities.Registry,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folders:     folderRepo,
		attachments: attachmentRepo,
		jobs:        jobRepo,
		directory:   directory,
		registry:    registry,
		logger:      logger,
	}
}

// CreateFolder creates a folder for the authenticated owner. Creation is
// idempotent: a request matching an existing active folder's derived key
// returns that folder instead of a duplicate.
func (s *folderService) CreateFolder(ctx context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	req.Name = strings.TrimSpace(req.Name)
	// Normalize empty string to nil for root-level folders
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}

	if err := validateCreateFolderRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	return s.create(ctx, req.OwnerID, req.Name, req.Type, req.ParentID, req.Metadata)
}

// CreateSystemFolder creates a folder on behalf of another platform service.
// When no name is given it is resolved from the subject's directory profile,
// falling back to a generic label when the profile carries no usable name.
func (s *folderService) CreateSystemFolder(ctx context.Context, req *services.CreateSystemFolderRequest) (*models.Folder, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Type == "" {
		req.Type = models.DefaultFolderType
	}
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}

	if err := validateCreateSystemFolderRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	name := req.Name
	if name == "" {
		profile, err := s.directory.GetProfile(ctx, req.SubjectID)
		if err != nil {
			return nil, fmt.Errorf("%w: resolve display name for %s: %v", domain.ErrValidation, req.SubjectID, err)
		}
		name = profile.DisplayName()
		if name == "" {
			name = "User " + req.SubjectID
		}
		s.logger.Debug("system folder name resolved",
			"subject_id", req.SubjectID,
			"name", name,
		)
	}

	return s.create(ctx, req.OwnerID, name, req.Type, req.ParentID, req.Metadata)
}

// create runs the shared creation path: dedup lookup, parent check, write.
// The dedup short-circuit comes first so a replayed create returns the
// existing folder before any other read.
func (s *folderService) create(ctx context.Context, ownerID, name, folderType string, parentID *string, metadata map[string]string) (*models.Folder, error) {
	if folderType == "" {
		folderType = models.DefaultFolderType
	}

	uniqueKey := models.FolderUniqueKey(ownerID, name, folderType, parentID)
	existing, err := s.folders.GetByUniqueKey(ctx, uniqueKey)
	if err == nil {
		s.decorate(ctx, existing)
		s.logger.Info("folder create deduplicated",
			"folder_id", existing.FolderID,
			"owner_id", ownerID,
			"name", existing.Name,
		)
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if parentID != nil {
		parent, err := s.folders.Get(ctx, *parentID, ownerID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, &domain.ParentNotFoundError{ParentID: *parentID}
			}
			return nil, err
		}
		if !parent.IsActive {
			return nil, &domain.ParentNotFoundError{ParentID: *parentID}
		}
	}

	folder := models.NewFolder(ownerID, name, folderType, parentID, metadata)
	if err := s.folders.Put(ctx, folder); err != nil {
		return nil, err
	}

	s.decorate(ctx, folder)
	s.logger.Info("folder created",
		"folder_id", folder.FolderID,
		"owner_id", ownerID,
		"name", folder.Name,
		"type", folder.Type,
		"parent_key", folder.ParentKey,
	)

	return folder, nil
}

// GetFolder retrieves an active folder with its computed path and child count
func (s *folderService) GetFolder(ctx context.Context, ownerID, folderID string) (*models.Folder, error) {
	folder, err := s.folders.Get(ctx, folderID, ownerID)
	if err != nil {
		return nil, err
	}
	if !folder.IsActive {
		return nil, fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
	}

	s.decorate(ctx, folder)
	return folder, nil
}

// ListChildren returns one page of a folder's active immediate children
func (s *folderService) ListChildren(ctx context.Context, req *services.ListChildrenRequest) (*services.FolderPage, error) {
	parent, err := s.folders.Get(ctx, req.FolderID, req.OwnerID)
	if err != nil {
		return nil, err
	}
	if !parent.IsActive {
		return nil, fmt.Errorf("folder %s: %w", req.FolderID, domain.ErrNotFound)
	}

	page, err := s.folders.Query(ctx, req.OwnerID, repositories.FolderQuery{
		ParentID: &req.FolderID,
		Limit:    clampLimit(req.Limit),
		Cursor:   req.Cursor,
	})
	if err != nil {
		return nil, err
	}

	s.decoratePage(ctx, page.Folders)
	return folderPage(page), nil
}

// ListRoots returns one page of the owner's active root folders
func (s *folderService) ListRoots(ctx context.Context, req *services.ListRootsRequest) (*services.FolderPage, error) {
	page, err := s.folders.Query(ctx, req.OwnerID, repositories.FolderQuery{
		RootsOnly: true,
		Limit:     clampLimit(req.Limit),
		Cursor:    req.Cursor,
	})
	if err != nil {
		return nil, err
	}

	s.decoratePage(ctx, page.Folders)
	return folderPage(page), nil
}

// QueryFolders runs a filtered page over the owner's active folders. An
// unknown parent filter yields an empty page rather than an error; the query
// surface is a search, not a lookup.
func (s *folderService) QueryFolders(ctx context.Context, req *services.QueryFoldersRequest) (*services.FolderPage, error) {
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}

	page, err := s.folders.Query(ctx, req.OwnerID, repositories.FolderQuery{
		ParentID:  req.ParentID,
		RootsOnly: req.RootsOnly,
		Type:      req.Type,
		Limit:     clampLimit(req.Limit),
		Cursor:    req.Cursor,
	})
	if err != nil {
		return nil, err
	}

	s.decoratePage(ctx, page.Folders)
	return folderPage(page), nil
}

// UpdateFolder applies a partial update to an active folder. A rename or
// retype rederives the dedup key so future creates match the new identity;
// no duplicate check runs against siblings, the last write wins.
func (s *folderService) UpdateFolder(ctx context.Context, req *services.UpdateFolderRequest) (*models.Folder, error) {
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}

	if err := validateUpdateFolderRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folder, err := s.folders.Get(ctx, req.FolderID, req.OwnerID)
	if err != nil {
		return nil, err
	}
	if !folder.IsActive {
		return nil, fmt.Errorf("folder %s: %w", req.FolderID, domain.ErrNotFound)
	}

	update := models.FolderUpdate{UpdatedAt: time.Now().UTC()}

	name := folder.Name
	folderType := folder.Type
	if req.Name != nil {
		update.Name = req.Name
		name = *req.Name
	}
	if req.Type != nil {
		update.Type = req.Type
		folderType = *req.Type
	}
	if update.Name != nil || update.Type != nil {
		key := models.FolderUniqueKey(req.OwnerID, name, folderType, folder.ParentID)
		update.UniqueKey = &key
	}

	// Metadata merges key-by-key; the stored map is replaced wholesale so the
	// non-transactional store never sees a partial map.
	if req.Metadata != nil {
		merged := make(map[string]string, len(folder.Metadata)+len(req.Metadata))
		for k, v := range folder.Metadata {
			merged[k] = v
		}
		for k, v := range req.Metadata {
			merged[k] = v
		}
		update.Metadata = merged
	}

	updated, err := s.folders.Update(ctx, req.FolderID, req.OwnerID, update)
	if err != nil {
		return nil, err
	}

	s.decorate(ctx, updated)
	s.logger.Info("folder updated",
		"folder_id", updated.FolderID,
		"owner_id", req.OwnerID,
		"name", updated.Name,
	)

	return updated, nil
}

// decorate fills the computed read-side fields. Failures degrade the
// decoration rather than the read.
func (s *folderService) decorate(ctx context.Context, folder *models.Folder) {
	folder.Path = s.buildPath(ctx, folder)

	count, err := s.folders.CountChildren(ctx, folder.OwnerID, folder.FolderID)
	if err != nil {
		s.logger.Warn("failed to count children", "folder_id", folder.FolderID, "error", err)
		return
	}
	folder.ChildrenCount = count
}

// decoratePage computes display paths for one page of folders. The page's
// own rows seed the ancestor cache, since siblings share their whole chain.
func (s *folderService) decoratePage(ctx context.Context, folders []models.Folder) {
	ancestors := make(map[string]*models.Folder, len(folders))
	for i := range folders {
		ancestors[folders[i].FolderID] = &folders[i]
	}
	for i := range folders {
		folders[i].Path = s.buildPathCached(ctx, &folders[i], ancestors)
	}
}

// buildPath walks parent links to the root and returns the ordered names
// from root to this folder. The walk stops at the first missing or
// soft-deleted ancestor, so a broken chain degrades to a shorter breadcrumb.
func (s *folderService) buildPath(ctx context.Context, folder *models.Folder) []string {
	return s.buildPathCached(ctx, folder, make(map[string]*models.Folder))
}

func (s *folderService) buildPathCached(ctx context.Context, folder *models.Folder, ancestors map[string]*models.Folder) []string {
	names := []string{folder.Name}
	current := folder.ParentID
	for current != nil && *current != "" {
		parent, ok := ancestors[*current]
		if !ok {
			fetched, err := s.folders.Get(ctx, *current, folder.OwnerID)
			if err != nil {
				if !errors.Is(err, domain.ErrNotFound) {
					s.logger.Warn("failed to resolve path ancestor",
						"folder_id", folder.FolderID,
						"ancestor_id", *current,
						"error", err,
					)
				}
				break
			}
			ancestors[*current] = fetched
			parent = fetched
		}
		if !parent.IsActive {
			break
		}
		names = append([]string{parent.Name}, names...)
		current = parent.ParentID
	}
	return names
}

func folderPage(page *repositories.FolderPage) *services.FolderPage {
	folders := page.Folders
	if folders == nil {
		folders = []models.Folder{}
	}
	return &services.FolderPage{
		Folders:    folders,
		NextCursor: page.NextCursor,
	}
}

func clampLimit(limit int32) int32 {
	if limit <= 0 {
		return config.DefaultPageSize
	}
	if limit > config.MaxPageSize {
		return config.MaxPageSize
	}
	return limit
}
