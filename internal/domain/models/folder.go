package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultFolderType is assigned when a folder is constructed without an
// explicit type.
const DefaultFolderType = "Folder"

// RootSentinel is the parentKey value for root folders. It also terminates
// the uniqueKey derivation for folders without a parent.
const RootSentinel = "ROOT"

// Folder is a node in the owner-scoped hierarchical namespace: a typed
// container that other resources (jobs, attachments) nest under.
//
// uniqueKey and parentKey are derived storage attributes, never exposed over
// the API. Path and ChildrenCount are computed on read and never persisted.
type Folder struct {
	FolderID  string            `json:"folderId" dynamodbav:"folderId"`
	OwnerID   string            `json:"ownerId" dynamodbav:"ownerId"`
	Name      string            `json:"name" dynamodbav:"name"`
	Type      string            `json:"type" dynamodbav:"type"`
	ParentID  *string           `json:"parentId,omitempty" dynamodbav:"parentId,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty" dynamodbav:"metadata,omitempty"`
	IsActive  bool              `json:"isActive" dynamodbav:"isActive"`
	UniqueKey string            `json:"-" dynamodbav:"uniqueKey"`
	ParentKey string            `json:"-" dynamodbav:"parentKey"`
	CreatedAt time.Time         `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt" dynamodbav:"updatedAt"`

	Path          []string `json:"path,omitempty" dynamodbav:"-"`
	ChildrenCount int      `json:"childrenCount,omitempty" dynamodbav:"-"`
}

// NewFolder constructs an active folder with a fresh ID, defaulted type,
// creation timestamps, and derived uniqueKey/parentKey.
func NewFolder(ownerID, name, folderType string, parentID *string, metadata map[string]string) *Folder {
	if folderType == "" {
		folderType = DefaultFolderType
	}
	name = strings.TrimSpace(name)
	now := time.Now().UTC()

	return &Folder{
		FolderID:  uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		Type:      folderType,
		ParentID:  parentID,
		Metadata:  metadata,
		IsActive:  true,
		UniqueKey: FolderUniqueKey(ownerID, name, folderType, parentID),
		ParentKey: ParentKeyFor(parentID),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FolderUniqueKey derives the idempotency key for a folder. Only the name is
// normalized (lower-cased, trimmed); owner, type, and parent participate
// verbatim. The formula is a compatibility contract with stored data: any
// change silently breaks idempotent creation against existing rows.
func FolderUniqueKey(ownerID, name, folderType string, parentID *string) string {
	parent := RootSentinel
	if parentID != nil && *parentID != "" {
		parent = *parentID
	}
	return fmt.Sprintf("%s#%s#%s#%s", ownerID, strings.ToLower(strings.TrimSpace(name)), folderType, parent)
}

// ParentKeyFor returns the children-index sort key for a parent reference:
// the parent's folderId, or the root sentinel when absent.
func ParentKeyFor(parentID *string) string {
	if parentID == nil || *parentID == "" {
		return RootSentinel
	}
	return *parentID
}

// IsRoot reports whether the folder has no parent.
func (f *Folder) IsRoot() bool {
	return f.ParentID == nil || *f.ParentID == ""
}

// ComputePath walks parentId links outward through the supplied snapshot and
// returns the ordered list of names from root to this folder. The walk stops
// at the first missing or soft-deleted parent rather than erroring, so
// broken chains degrade to a shorter breadcrumb.
func (f *Folder) ComputePath(all []Folder) []string {
	index := IndexByID(all)

	names := []string{f.Name}
	current := f.ParentID
	for current != nil && *current != "" {
		parent, ok := index[*current]
		if !ok || !parent.IsActive {
			break
		}
		names = append([]string{parent.Name}, names...)
		current = parent.ParentID
	}
	return names
}

// Descendants returns every folder in the snapshot transitively reachable
// from this one by following parentId downward, via repeated child-set
// expansion. Pure function: the caller supplies the candidate set (typically
// all of one owner's active folders).
func (f *Folder) Descendants(all []Folder) []Folder {
	childrenOf := make(map[string][]Folder, len(all))
	for _, candidate := range all {
		if candidate.ParentID == nil || *candidate.ParentID == "" {
			continue
		}
		childrenOf[*candidate.ParentID] = append(childrenOf[*candidate.ParentID], candidate)
	}

	var descendants []Folder
	frontier := []string{f.FolderID}
	for len(frontier) > 0 {
		var next []string
		for _, id := range frontier {
			for _, child := range childrenOf[id] {
				descendants = append(descendants, child)
				next = append(next, child.FolderID)
			}
		}
		frontier = next
	}
	return descendants
}

// Depth returns the number of ancestor hops from this folder to a root.
// A missing parent terminates the walk, so detached subtrees report depth
// relative to their highest reachable ancestor.
func (f *Folder) Depth(index map[string]*Folder) int {
	depth := 0
	current := f.ParentID
	for current != nil && *current != "" {
		parent, ok := index[*current]
		if !ok {
			break
		}
		depth++
		current = parent.ParentID
	}
	return depth
}

// IndexByID builds a folderId lookup over a snapshot, for depth computation.
func IndexByID(all []Folder) map[string]*Folder {
	index := make(map[string]*Folder, len(all))
	for i := range all {
		index[all[i].FolderID] = &all[i]
	}
	return index
}

// FolderUpdate carries the fields of a partial point update. Nil fields are
// left untouched; Metadata replaces the stored map wholesale (the service
// layer merges before persisting). UniqueKey rides along whenever a rename or
// retype changes the derived dedup key.
type FolderUpdate struct {
	Name      *string
	Type      *string
	UniqueKey *string
	Metadata  map[string]string
	IsActive  *bool
	UpdatedAt time.Time
}
