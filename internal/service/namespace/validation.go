package namespace

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"hirebase/internal/config"
	"hirebase/internal/domain/services"
)

// validateCreateFolderRequest validates a folder creation request.
// The caller trims the name first, so Required also rejects whitespace-only
// names.
func validateCreateFolderRequest(req *services.CreateFolderRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
		),
		validation.Field(&req.Type,
			validation.Required,
			validation.Length(1, config.MaxFolderTypeLength),
		),
	)
}

// validateCreateSystemFolderRequest validates a service-to-service creation
// request. The name may be absent when a subject is given to resolve it from.
func validateCreateSystemFolderRequest(req *services.CreateSystemFolderRequest) error {
	if req.Name == "" && req.SubjectID == "" {
		return fmt.Errorf("either name or subjectId must be provided")
	}

	return validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
		validation.Field(&req.Name, validation.Length(0, config.MaxFolderNameLength)),
		validation.Field(&req.Type, validation.Length(0, config.MaxFolderTypeLength)),
	)
}

// validateUpdateFolderRequest validates a partial update request
func validateUpdateFolderRequest(req *services.UpdateFolderRequest) error {
	if req.Name == nil && req.Type == nil && req.Metadata == nil {
		return fmt.Errorf("at least one field must be provided")
	}

	rules := []*validation.FieldRules{
		validation.Field(&req.OwnerID, validation.Required),
		validation.Field(&req.FolderID, validation.Required),
	}

	if req.Name != nil {
		rules = append(rules,
			validation.Field(&req.Name,
				validation.Required,
				validation.Length(1, config.MaxFolderNameLength),
			),
		)
	}
	if req.Type != nil {
		rules = append(rules,
			validation.Field(&req.Type,
				validation.Required,
				validation.Length(1, config.MaxFolderTypeLength),
			),
		)
	}

	return validation.ValidateStruct(req, rules...)
}

// validateBatchDeleteRequest validates the id list of a batch delete
func validateBatchDeleteRequest(folderIDs []string) error {
	return validation.Validate(folderIDs,
		validation.Required.Error("at least one folder id is required"),
		validation.Length(1, config.MaxBatchDeleteSize),
		validation.Each(validation.Required),
	)
}
