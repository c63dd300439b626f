package namespace

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"hirebase/internal/domain"
	"hirebase/internal/domain/models"
	"hirebase/internal/domain/services"
)

func TestCreateFolderIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.svc.CreateFolder(ctx, &services.CreateFolderRequest{
		OwnerID: "owner-1",
		Name:    "Acme Corp",
		Type:    "Company",
	})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}

	// Same identity modulo case and surrounding whitespace
	second, err := env.svc.CreateFolder(ctx, &services.CreateFolderRequest{
		OwnerID: "owner-1",
		Name:    "  acme corp ",
		Type:    "Company",
	})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}

	if first.FolderID != second.FolderID {
		t.Errorf("expected dedup to return the same folder, got %s and %s", first.FolderID, second.FolderID)
	}
	if env.folders.rowCount() != 1 {
		t.Errorf("expected a single stored row, got %d", env.folders.rowCount())
	}
}

func TestCreateFolderDistinctIdentities(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	base, err := env.svc.CreateFolder(ctx, &services.CreateFolderRequest{
		OwnerID: "owner-1",
		Name:    "Shipping",
		Type:    "Folder",
	})
	if err != nil {
		t.Fatalf("create base: %v", err)
	}

	tests := []struct {
		name string
		req  *services.CreateFolderRequest
	}{
		{
			name: "different type",
			req:  &services.CreateFolderRequest{OwnerID: "owner-1", Name: "Shipping", Type: "Cargo"},
		},
		{
			name: "different owner",
			req:  &services.CreateFolderRequest{OwnerID: "owner-2", Name: "Shipping", Type: "Folder"},
		},
		{
			name: "different name",
			req:  &services.CreateFolderRequest{OwnerID: "owner-1", Name: "Receiving", Type: "Folder"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := env.svc.CreateFolder(ctx, tt.req)
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if created.FolderID == base.FolderID {
				t.Error("expected a new folder, got the deduplicated base")
			}
		})
	}
}

func TestCreateFolderParentNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bogus := "no-such-folder"
	_, err := env.svc.CreateFolder(ctx, &services.CreateFolderRequest{
		OwnerID:  "owner-1",
		Name:     "Child",
		Type:     "Folder",
		ParentID: &bogus,
	})
	if !errors.Is(err, domain.ErrParentNotFound) {
		t.Fatalf("expected parent-not-found, got %v", err)
	}
	if env.folders.rowCount() != 0 {
		t.Error("failed create must persist nothing")
	}
}

func TestCreateFolderForeignOwnedParent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	parent := env.seedFolder(t, "owner-2", "Theirs", "Folder", nil)

	_, err := env.svc.CreateFolder(ctx, &services.CreateFolderRequest{
		OwnerID:  "owner-1",
		Name:     "Child",
		Type:     "Folder",
		ParentID: &parent.FolderID,
	})
	if !errors.Is(err, domain.ErrParentNotFound) {
		t.Fatalf("expected parent-not-found for foreign parent, got %v", err)
	}
}

func TestCreateFolderInactiveParent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	parent := env.seedFolder(t, "owner-1", "Gone", "Folder", nil)
	if _, err := env.svc.DeleteFolder(ctx, "owner-1", parent.FolderID); err != nil {
		t.Fatalf("delete parent: %v", err)
	}

	_, err := env.svc.CreateFolder(ctx, &services.CreateFolderRequest{
		OwnerID:  "owner-1",
		Name:     "Child",
		Type:     "Folder",
		ParentID: &parent.FolderID,
	})
	if !errors.Is(err, domain.ErrParentNotFound) {
		t.Fatalf("expected parent-not-found for soft-deleted parent, got %v", err)
	}
}

func TestCreateFolderValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *services.CreateFolderRequest
	}{
		{name: "missing name", req: &services.CreateFolderRequest{OwnerID: "owner-1", Type: "Folder"}},
		{name: "whitespace name", req: &services.CreateFolderRequest{OwnerID: "owner-1", Name: "   ", Type: "Folder"}},
		{name: "missing type", req: &services.CreateFolderRequest{OwnerID: "owner-1", Name: "Docs"}},
		{name: "missing owner", req: &services.CreateFolderRequest{Name: "Docs", Type: "Folder"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.CreateFolder(ctx, tt.req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}

	if env.folders.rowCount() != 0 {
		t.Error("rejected creates must persist nothing")
	}
}

func TestCreateSystemFolderResolvesDisplayName(t *testing.T) {
	tests := []struct {
		name     string
		profile  *models.UserProfile
		wantName string
	}{
		{
			name:     "full name",
			profile:  &models.UserProfile{SubjectID: "subj-1", FullName: "Dana Kim", FirstName: "Dana", LastName: "Kim"},
			wantName: "Dana Kim",
		},
		{
			name:     "first and last",
			profile:  &models.UserProfile{SubjectID: "subj-1", FirstName: "Dana", LastName: "Kim"},
			wantName: "Dana Kim",
		},
		{
			name:     "first only",
			profile:  &models.UserProfile{SubjectID: "subj-1", FirstName: "Dana"},
			wantName: "Dana",
		},
		{
			name:     "no usable name",
			profile:  &models.UserProfile{SubjectID: "subj-1", Email: "dana@example.com"},
			wantName: "User subj-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.directory.profiles["subj-1"] = tt.profile

			folder, err := env.svc.CreateSystemFolder(context.Background(), &services.CreateSystemFolderRequest{
				OwnerID:   "owner-1",
				Type:      "Applicant",
				SubjectID: "subj-1",
			})
			if err != nil {
				t.Fatalf("create system folder: %v", err)
			}
			if folder.Name != tt.wantName {
				t.Errorf("folder name = %q, want %q", folder.Name, tt.wantName)
			}
		})
	}
}

func TestCreateSystemFolderDirectoryFailure(t *testing.T) {
	env := newTestEnv(t)
	env.directory.err = errors.New("directory down")

	_, err := env.svc.CreateSystemFolder(context.Background(), &services.CreateSystemFolderRequest{
		OwnerID:   "owner-1",
		SubjectID: "subj-1",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error when name resolution fails, got %v", err)
	}
}

func TestCreateSystemFolderIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.directory.profiles["subj-1"] = &models.UserProfile{SubjectID: "subj-1", FullName: "Dana Kim"}

	first, err := env.svc.CreateSystemFolder(ctx, &services.CreateSystemFolderRequest{
		OwnerID:   "owner-1",
		Type:      "Applicant",
		SubjectID: "subj-1",
	})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}

	second, err := env.svc.CreateSystemFolder(ctx, &services.CreateSystemFolderRequest{
		OwnerID:   "owner-1",
		Type:      "Applicant",
		SubjectID: "subj-1",
	})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}

	if first.FolderID != second.FolderID {
		t.Errorf("expected dedup, got %s and %s", first.FolderID, second.FolderID)
	}
}

func TestGetFolderPath(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.seedFolder(t, "owner-1", "Root", "Folder", nil)
	a := env.seedFolder(t, "owner-1", "A", "Folder", &root.FolderID)
	b := env.seedFolder(t, "owner-1", "B", "Folder", &a.FolderID)
	c := env.seedFolder(t, "owner-1", "C", "Folder", &b.FolderID)

	got, err := env.svc.GetFolder(ctx, "owner-1", c.FolderID)
	if err != nil {
		t.Fatalf("get folder: %v", err)
	}

	want := []string{"Root", "A", "B", "C"}
	if !reflect.DeepEqual(got.Path, want) {
		t.Errorf("path = %v, want %v", got.Path, want)
	}
}

func TestGetFolderChildrenCount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.seedFolder(t, "owner-1", "Root", "Folder", nil)
	env.seedFolder(t, "owner-1", "A", "Folder", &root.FolderID)
	env.seedFolder(t, "owner-1", "B", "Folder", &root.FolderID)

	got, err := env.svc.GetFolder(ctx, "owner-1", root.FolderID)
	if err != nil {
		t.Fatalf("get folder: %v", err)
	}
	if got.ChildrenCount != 2 {
		t.Errorf("children count = %d, want 2", got.ChildrenCount)
	}
}

func TestGetFolderNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.svc.GetFolder(ctx, "owner-1", "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing folder: expected not-found, got %v", err)
	}

	theirs := env.seedFolder(t, "owner-2", "Theirs", "Folder", nil)
	if _, err := env.svc.GetFolder(ctx, "owner-1", theirs.FolderID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("foreign folder: expected not-found, got %v", err)
	}

	gone := env.seedFolder(t, "owner-1", "Gone", "Folder", nil)
	if _, err := env.svc.DeleteFolder(ctx, "owner-1", gone.FolderID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := env.svc.GetFolder(ctx, "owner-1", gone.FolderID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("soft-deleted folder: expected not-found, got %v", err)
	}
}

func TestListChildren(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.seedFolder(t, "owner-1", "Root", "Folder", nil)
	env.seedFolder(t, "owner-1", "A", "Folder", &root.FolderID)
	env.seedFolder(t, "owner-1", "B", "Folder", &root.FolderID)
	env.seedFolder(t, "owner-1", "Stray", "Folder", nil)

	page, err := env.svc.ListChildren(ctx, &services.ListChildrenRequest{
		OwnerID:  "owner-1",
		FolderID: root.FolderID,
	})
	if err != nil {
		t.Fatalf("list children: %v", err)
	}

	if len(page.Folders) != 2 {
		t.Fatalf("got %d children, want 2", len(page.Folders))
	}
	for _, child := range page.Folders {
		want := []string{"Root", child.Name}
		if !reflect.DeepEqual(child.Path, want) {
			t.Errorf("child %s path = %v, want %v", child.Name, child.Path, want)
		}
	}
}

func TestListChildrenMissingParent(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.ListChildren(context.Background(), &services.ListChildrenRequest{
		OwnerID:  "owner-1",
		FolderID: "missing",
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestListRoots(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	r1 := env.seedFolder(t, "owner-1", "R1", "Folder", nil)
	env.seedFolder(t, "owner-1", "R2", "Folder", nil)
	env.seedFolder(t, "owner-1", "Nested", "Folder", &r1.FolderID)
	env.seedFolder(t, "owner-2", "Foreign", "Folder", nil)

	page, err := env.svc.ListRoots(ctx, &services.ListRootsRequest{OwnerID: "owner-1"})
	if err != nil {
		t.Fatalf("list roots: %v", err)
	}

	if len(page.Folders) != 2 {
		t.Fatalf("got %d roots, want 2", len(page.Folders))
	}
	for _, folder := range page.Folders {
		if !folder.IsRoot() {
			t.Errorf("folder %s is not a root", folder.Name)
		}
	}
}

func TestQueryFoldersByType(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.seedFolder(t, "owner-1", "Acme", "Company", nil)
	env.seedFolder(t, "owner-1", "Backend", "Cargo", &root.FolderID)
	env.seedFolder(t, "owner-1", "Frontend", "Cargo", &root.FolderID)
	env.seedFolder(t, "owner-1", "Misc", "Folder", &root.FolderID)

	page, err := env.svc.QueryFolders(ctx, &services.QueryFoldersRequest{
		OwnerID: "owner-1",
		Type:    "Cargo",
	})
	if err != nil {
		t.Fatalf("query folders: %v", err)
	}

	if len(page.Folders) != 2 {
		t.Fatalf("got %d folders, want 2", len(page.Folders))
	}
	for _, folder := range page.Folders {
		if folder.Type != "Cargo" {
			t.Errorf("folder %s has type %s, want Cargo", folder.Name, folder.Type)
		}
	}
}

func TestUpdateFolderMergesMetadata(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder := models.NewFolder("owner-1", "Docs", "Folder", nil, map[string]string{
		"color": "red",
		"icon":  "file",
	})
	if err := env.folders.Put(ctx, folder); err != nil {
		t.Fatalf("seed: %v", err)
	}

	updated, err := env.svc.UpdateFolder(ctx, &services.UpdateFolderRequest{
		OwnerID:  "owner-1",
		FolderID: folder.FolderID,
		Metadata: map[string]string{
			"color": "blue",
			"tag":   "archive",
		},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	want := map[string]string{"color": "blue", "icon": "file", "tag": "archive"}
	if !reflect.DeepEqual(updated.Metadata, want) {
		t.Errorf("metadata = %v, want %v", updated.Metadata, want)
	}
}

func TestUpdateFolderRenameRederivesKey(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder := env.seedFolder(t, "owner-1", "Old Name", "Folder", nil)

	newName := "  New Name "
	updated, err := env.svc.UpdateFolder(ctx, &services.UpdateFolderRequest{
		OwnerID:  "owner-1",
		FolderID: folder.FolderID,
		Name:     &newName,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Name != "New Name" {
		t.Errorf("name = %q, want trimmed %q", updated.Name, "New Name")
	}

	wantKey := models.FolderUniqueKey("owner-1", "New Name", "Folder", nil)
	if updated.UniqueKey != wantKey {
		t.Errorf("unique key = %q, want %q", updated.UniqueKey, wantKey)
	}

	// A create under the new identity must dedup against the renamed folder
	again, err := env.svc.CreateFolder(ctx, &services.CreateFolderRequest{
		OwnerID: "owner-1",
		Name:    "new name",
		Type:    "Folder",
	})
	if err != nil {
		t.Fatalf("create after rename: %v", err)
	}
	if again.FolderID != folder.FolderID {
		t.Errorf("expected create after rename to dedup, got %s", again.FolderID)
	}
}

func TestUpdateFolderValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folder := env.seedFolder(t, "owner-1", "Docs", "Folder", nil)

	_, err := env.svc.UpdateFolder(ctx, &services.UpdateFolderRequest{
		OwnerID:  "owner-1",
		FolderID: folder.FolderID,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty update: expected validation error, got %v", err)
	}

	empty := "   "
	_, err = env.svc.UpdateFolder(ctx, &services.UpdateFolderRequest{
		OwnerID:  "owner-1",
		FolderID: folder.FolderID,
		Name:     &empty,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("blank rename: expected validation error, got %v", err)
	}
}

func TestUpdateFolderNotFound(t *testing.T) {
	env := newTestEnv(t)

	name := "Renamed"
	_, err := env.svc.UpdateFolder(context.Background(), &services.UpdateFolderRequest{
		OwnerID:  "owner-1",
		FolderID: "missing",
		Name:     &name,
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

// TestFolderLifecycleScenario runs the full journey: a company root, a job
// folder under it, a duplicate create collapsing onto the existing child,
// and a root deletion taking the subtree down.
func TestFolderLifecycleScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root, err := env.svc.CreateFolder(ctx, &services.CreateFolderRequest{
		OwnerID: "owner-1",
		Name:    "Acme Corp",
		Type:    "Company",
	})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	if !reflect.DeepEqual(root.Path, []string{"Acme Corp"}) {
		t.Errorf("root path = %v, want [Acme Corp]", root.Path)
	}

	child, err := env.svc.CreateFolder(ctx, &services.CreateFolderRequest{
		OwnerID:  "owner-1",
		Name:     "Backend Engineer",
		Type:     "Cargo",
		ParentID: &root.FolderID,
	})
	if err != nil {
		t.Fatalf("create child: %v", err)
	}
	if !reflect.DeepEqual(child.Path, []string{"Acme Corp", "Backend Engineer"}) {
		t.Errorf("child path = %v, want [Acme Corp Backend Engineer]", child.Path)
	}

	duplicate, err := env.svc.CreateFolder(ctx, &services.CreateFolderRequest{
		OwnerID:  "owner-1",
		Name:     "Backend Engineer",
		Type:     "Cargo",
		ParentID: &root.FolderID,
	})
	if err != nil {
		t.Fatalf("create duplicate: %v", err)
	}
	if duplicate.FolderID != child.FolderID {
		t.Errorf("duplicate create returned %s, want existing %s", duplicate.FolderID, child.FolderID)
	}

	result, err := env.svc.DeleteFolder(ctx, "owner-1", root.FolderID)
	if err != nil {
		t.Fatalf("delete root: %v", err)
	}
	if result.Deleted != 2 {
		t.Errorf("deleted = %d, want 2", result.Deleted)
	}

	if env.folders.active(root.FolderID) {
		t.Error("root is still active after deletion")
	}
	if env.folders.active(child.FolderID) {
		t.Error("child is still active after deletion")
	}
}
