package namespace

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"hirebase/internal/capabilities"
	"hirebase/internal/domain"
	"hirebase/internal/domain/models"
	"hirebase/internal/domain/repositories"
	"hirebase/internal/domain/services"
)

// fakeFolderRepo is an in-memory FolderRepository that records the order of
// update calls so tests can assert deletion ordering.
type fakeFolderRepo struct {
	mu          sync.Mutex
	rows        map[string]*models.Folder
	updateOrder []string
	failUpdates map[string]error
}

func newFakeFolderRepo() *fakeFolderRepo {
	return &fakeFolderRepo{
		rows:        make(map[string]*models.Folder),
		failUpdates: make(map[string]error),
	}
}

func (f *fakeFolderRepo) Put(_ context.Context, folder *models.Folder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *folder
	f.rows[folder.FolderID] = &stored
	return nil
}

func (f *fakeFolderRepo) Get(_ context.Context, folderID, ownerID string) (*models.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[folderID]
	if !ok || row.OwnerID != ownerID {
		return nil, fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
	}
	out := *row
	return &out, nil
}

func (f *fakeFolderRepo) Update(_ context.Context, folderID, ownerID string, update models.FolderUpdate) (*models.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.failUpdates[folderID]; ok {
		return nil, err
	}

	row, ok := f.rows[folderID]
	if !ok || row.OwnerID != ownerID {
		return nil, fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
	}

	if update.Name != nil {
		row.Name = *update.Name
	}
	if update.Type != nil {
		row.Type = *update.Type
	}
	if update.UniqueKey != nil {
		row.UniqueKey = *update.UniqueKey
	}
	if update.Metadata != nil {
		row.Metadata = update.Metadata
	}
	if update.IsActive != nil {
		row.IsActive = *update.IsActive
	}
	row.UpdatedAt = update.UpdatedAt

	f.updateOrder = append(f.updateOrder, folderID)

	out := *row
	return &out, nil
}

func (f *fakeFolderRepo) GetByUniqueKey(_ context.Context, uniqueKey string) (*models.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.UniqueKey == uniqueKey && row.IsActive {
			out := *row
			return &out, nil
		}
	}
	return nil, fmt.Errorf("folder by unique key: %w", domain.ErrNotFound)
}

func (f *fakeFolderRepo) ListChildren(_ context.Context, ownerID string, parentID *string) ([]models.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Folder
	want := models.ParentKeyFor(parentID)
	for _, row := range f.rows {
		if row.OwnerID == ownerID && row.IsActive && row.ParentKey == want {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeFolderRepo) ListByOwner(_ context.Context, ownerID string) ([]models.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Folder
	for _, row := range f.rows {
		if row.OwnerID == ownerID && row.IsActive {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeFolderRepo) CountChildren(_ context.Context, ownerID, folderID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, row := range f.rows {
		if row.OwnerID == ownerID && row.IsActive && row.ParentKey == folderID {
			count++
		}
	}
	return count, nil
}

func (f *fakeFolderRepo) Query(_ context.Context, ownerID string, q repositories.FolderQuery) (*repositories.FolderPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Folder
	for _, row := range f.rows {
		if row.OwnerID != ownerID || !row.IsActive {
			continue
		}
		if q.RootsOnly && row.ParentKey != models.RootSentinel {
			continue
		}
		if q.ParentID != nil && row.ParentKey != *q.ParentID {
			continue
		}
		if q.Type != "" && row.Type != q.Type {
			continue
		}
		out = append(out, *row)
	}
	return &repositories.FolderPage{Folders: out}, nil
}

// active reports whether a stored row is still active
func (f *fakeFolderRepo) active(folderID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[folderID]
	return ok && row.IsActive
}

func (f *fakeFolderRepo) rowCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

func (f *fakeFolderRepo) order() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.updateOrder))
	copy(out, f.updateOrder)
	return out
}

// fakeAttachmentRepo records attachment deletions
type fakeAttachmentRepo struct {
	mu         sync.Mutex
	byFolder   map[string][]models.Attachment
	deleted    []string
	listErr    error
	failDelete map[string]error
}

func newFakeAttachmentRepo() *fakeAttachmentRepo {
	return &fakeAttachmentRepo{
		byFolder:   make(map[string][]models.Attachment),
		failDelete: make(map[string]error),
	}
}

func (f *fakeAttachmentRepo) ListByFolder(_ context.Context, _, folderID string) ([]models.Attachment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.byFolder[folderID], nil
}

func (f *fakeAttachmentRepo) Delete(_ context.Context, attachmentID, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failDelete[attachmentID]; ok {
		return err
	}
	f.deleted = append(f.deleted, attachmentID)
	return nil
}

func (f *fakeAttachmentRepo) deletedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.deleted))
	copy(out, f.deleted)
	return out
}

// fakeJobRepo records which folders triggered a registry cascade
type fakeJobRepo struct {
	mu       sync.Mutex
	notified []string
	err      error
}

func (f *fakeJobRepo) DeleteByFolder(_ context.Context, _, folderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.notified = append(f.notified, folderID)
	return nil
}

func (f *fakeJobRepo) notifiedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.notified))
	copy(out, f.notified)
	return out
}

// fakeDirectory serves canned user profiles
type fakeDirectory struct {
	profiles map[string]*models.UserProfile
	err      error
}

func (f *fakeDirectory) GetProfile(_ context.Context, subjectID string) (*models.UserProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	profile, ok := f.profiles[subjectID]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", subjectID, domain.ErrNotFound)
	}
	return profile, nil
}

type testEnv struct {
	svc         services.FolderService
	folders     *fakeFolderRepo
	attachments *fakeAttachmentRepo
	jobs        *fakeJobRepo
	directory   *fakeDirectory
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	registry, err := capabilities.NewRegistry()
	if err != nil {
		t.Fatalf("load capability registry: %v", err)
	}

	env := &testEnv{
		folders:     newFakeFolderRepo(),
		attachments: newFakeAttachmentRepo(),
		jobs:        &fakeJobRepo{},
		directory:   &fakeDirectory{profiles: make(map[string]*models.UserProfile)},
	}
	env.svc = NewFolderService(
		env.folders,
		env.attachments,
		env.jobs,
		env.directory,
		registry,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return env
}

// seedFolder puts a prebuilt folder row directly into the fake store
func (e *testEnv) seedFolder(t *testing.T, ownerID, name, folderType string, parentID *string) *models.Folder {
	t.Helper()
	folder := models.NewFolder(ownerID, name, folderType, parentID, nil)
	if err := e.folders.Put(context.Background(), folder); err != nil {
		t.Fatalf("seed folder %s: %v", name, err)
	}
	return folder
}
