package models

import "time"

// Job statuses. Jobs beside the namespace engine carry a richer lifecycle
// than folders; the engine only ever moves them to StatusDeleted when their
// owning folder disappears.
const (
	JobStatusDraft     = "draft"
	JobStatusPublished = "published"
	JobStatusDeleted   = "deleted"
)

// Job is a job-posting record referencing its owning folder by ID. When a
// job-container folder is deleted, the registry cascade-deletes its jobs.
type Job struct {
	JobID     string    `json:"jobId" dynamodbav:"jobId"`
	OwnerID   string    `json:"ownerId" dynamodbav:"ownerId"`
	FolderID  string    `json:"folderId" dynamodbav:"folderId"`
	Title     string    `json:"title" dynamodbav:"title"`
	Status    string    `json:"status" dynamodbav:"status"`
	IsActive  bool      `json:"isActive" dynamodbav:"isActive"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}
