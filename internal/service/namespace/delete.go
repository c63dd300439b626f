package namespace

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"hirebase/internal/config"
	"hirebase/internal/domain"
	"hirebase/internal/domain/models"
	"hirebase/internal/domain/services"
)

// DeleteFolder soft-deletes a folder and its whole subtree, deepest level
// first, then notifies the job registry when the folder's type cascades.
// Row failures never roll anything back; they are reported in the result.
func (s *folderService) DeleteFolder(ctx context.Context, ownerID, folderID string) (*services.DeleteResult, error) {
	folder, err := s.folders.Get(ctx, folderID, ownerID)
	if err != nil {
		return nil, err
	}
	if !folder.IsActive {
		return nil, fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
	}

	result, err := s.deleteSubtree(ctx, folder)
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder delete finished",
		"folder_id", folderID,
		"owner_id", ownerID,
		"descendants", result.Descendants,
		"deleted", result.Deleted,
		"failures", len(result.Failures),
	)

	return result, nil
}

// DeleteFolders deletes a batch of subtrees. Requested folders are ordered
// deepest first so that a requested descendant is processed before a
// requested ancestor swallows it; each subtree then re-reads the owner's
// tree, so folders already gone are not attempted twice.
func (s *folderService) DeleteFolders(ctx context.Context, ownerID string, folderIDs []string) (*services.BatchDeleteResult, error) {
	if err := validateBatchDeleteRequest(folderIDs); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	unique := dedupeIDs(folderIDs)

	snapshot, err := s.folders.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	index := models.IndexByID(snapshot)

	batch := &services.BatchDeleteResult{Requested: len(unique)}

	type target struct {
		folder *models.Folder
		depth  int
	}
	var targets []target
	for _, id := range unique {
		folder, ok := index[id]
		if !ok || !folder.IsActive {
			batch.Failures = append(batch.Failures, services.DeleteFailure{
				FolderID: id,
				Reason:   "folder not found",
			})
			continue
		}
		targets = append(targets, target{folder: folder, depth: folder.Depth(index)})
	}

	sort.SliceStable(targets, func(i, j int) bool {
		return targets[i].depth > targets[j].depth
	})

	for _, tgt := range targets {
		result, err := s.deleteSubtree(ctx, tgt.folder)
		if err != nil {
			batch.Failures = append(batch.Failures, services.DeleteFailure{
				FolderID: tgt.folder.FolderID,
				Reason:   err.Error(),
			})
			continue
		}
		if !hasFailureFor(result.Failures, tgt.folder.FolderID) {
			batch.Deleted++
		}
		batch.Failures = append(batch.Failures, result.Failures...)
	}

	s.logger.Info("folder batch delete finished",
		"owner_id", ownerID,
		"requested", batch.Requested,
		"deleted", batch.Deleted,
		"failures", len(batch.Failures),
	)

	return batch, nil
}

// deleteSubtree tombstones a folder and every active descendant. Candidates
// are grouped by depth and processed deepest level first, bounded workers
// within a level, so a child is always gone before its parent and an
// interrupted run strands no reachable subtree. The returned error covers
// only the snapshot read; per-row outcomes live in the result.
func (s *folderService) deleteSubtree(ctx context.Context, folder *models.Folder) (*services.DeleteResult, error) {
	snapshot, err := s.folders.ListByOwner(ctx, folder.OwnerID)
	if err != nil {
		return nil, err
	}

	index := models.IndexByID(snapshot)
	descendants := folder.Descendants(snapshot)
	candidates := append(descendants, *folder)

	byDepth := make(map[int][]models.Folder)
	maxDepth := 0
	for _, candidate := range candidates {
		depth := candidate.Depth(index)
		byDepth[depth] = append(byDepth[depth], candidate)
		if depth > maxDepth {
			maxDepth = depth
		}
	}

	rec := &deleteRecorder{}
	for depth := maxDepth; depth >= 0; depth-- {
		level := byDepth[depth]
		if len(level) == 0 {
			continue
		}
		s.deleteLevel(ctx, level, rec)
	}

	// The registry cascade fires once, for the folder the caller named, and
	// only after its own tombstone landed. A failed notification is logged,
	// never reported as a deletion failure.
	caps := s.registry.ForType(folder.Type)
	if caps.CascadesToJobRegistry && !rec.failed(folder.FolderID) {
		if err := s.jobs.DeleteByFolder(ctx, folder.OwnerID, folder.FolderID); err != nil {
			s.logger.Warn("job registry cascade failed",
				"folder_id", folder.FolderID,
				"error", err,
			)
		}
	}

	return &services.DeleteResult{
		FolderID:    folder.FolderID,
		Descendants: len(descendants),
		Deleted:     rec.deleted,
		Failures:    rec.failures,
	}, nil
}

// deleteLevel tombstones one depth level. Folders within a level share no
// ancestry, so they delete concurrently under a bounded worker pool; the
// barrier between levels keeps the deepest-first ordering.
func (s *folderService) deleteLevel(ctx context.Context, level []models.Folder, rec *deleteRecorder) {
	sem := make(chan struct{}, config.MaxDeleteConcurrency)
	var wg sync.WaitGroup

	for _, folder := range level {
		wg.Add(1)
		sem <- struct{}{}
		go func(f models.Folder) {
			defer wg.Done()
			defer func() { <-sem }()
			s.deleteOne(ctx, &f, rec)
		}(folder)
	}

	wg.Wait()
}

// deleteOne drains a folder's attachments when its type houses them, then
// tombstones the row. Only a failed tombstone counts as a deletion failure.
func (s *folderService) deleteOne(ctx context.Context, folder *models.Folder, rec *deleteRecorder) {
	caps := s.registry.ForType(folder.Type)
	if caps.HousesAttachments {
		s.drainAttachments(ctx, folder)
	}

	inactive := false
	_, err := s.folders.Update(ctx, folder.FolderID, folder.OwnerID, models.FolderUpdate{
		IsActive:  &inactive,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		rec.fail(folder.FolderID, fmt.Sprintf("soft delete: %v", err))
		return
	}

	rec.success()
	s.logger.Debug("folder soft deleted",
		"folder_id", folder.FolderID,
		"name", folder.Name,
	)
}

// drainAttachments deletes the files housed in a folder before its tombstone.
// Collaborator failures are logged and swallowed; the folder deletes either
// way and a later retry can reap what was left behind.
func (s *folderService) drainAttachments(ctx context.Context, folder *models.Folder) {
	attachments, err := s.attachments.ListByFolder(ctx, folder.OwnerID, folder.FolderID)
	if err != nil {
		s.logger.Warn("attachment enumeration failed",
			"folder_id", folder.FolderID,
			"error", err,
		)
		return
	}

	drained := 0
	for _, attachment := range attachments {
		if err := s.attachments.Delete(ctx, attachment.AttachmentID, folder.OwnerID); err != nil {
			s.logger.Warn("attachment delete failed",
				"folder_id", folder.FolderID,
				"attachment_id", attachment.AttachmentID,
				"error", err,
			)
			continue
		}
		drained++
	}

	if drained > 0 {
		s.logger.Debug("attachments drained",
			"folder_id", folder.FolderID,
			"count", drained,
		)
	}
}

// deleteRecorder accumulates per-row outcomes across the worker pool
type deleteRecorder struct {
	mu       sync.Mutex
	deleted  int
	failures []services.DeleteFailure
}

func (r *deleteRecorder) success() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted++
}

func (r *deleteRecorder) fail(folderID, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, services.DeleteFailure{FolderID: folderID, Reason: reason})
}

func (r *deleteRecorder) failed(folderID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return hasFailureFor(r.failures, folderID)
}

func hasFailureFor(failures []services.DeleteFailure, folderID string) bool {
	for _, failure := range failures {
		if failure.FolderID == folderID {
			return true
		}
	}
	return false
}

func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
