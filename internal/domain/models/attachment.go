package models

import "time"

// Attachment is a file reference owned by a folder of an attachment-housing
// type (applicant folders). The engine never reads attachment content; it
// only enumerates and deletes rows when the owning folder is removed.
type Attachment struct {
	AttachmentID string    `json:"attachmentId" dynamodbav:"attachmentId"`
	OwnerID      string    `json:"ownerId" dynamodbav:"ownerId"`
	FolderID     string    `json:"folderId" dynamodbav:"folderId"`
	FileName     string    `json:"fileName" dynamodbav:"fileName"`
	ContentType  string    `json:"contentType,omitempty" dynamodbav:"contentType,omitempty"`
	Size         int64     `json:"size" dynamodbav:"size"`
	UploadedAt   time.Time `json:"uploadedAt" dynamodbav:"uploadedAt"`
}
