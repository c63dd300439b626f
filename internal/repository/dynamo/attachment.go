package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"hirebase/internal/domain/models"
	"hirebase/internal/domain/repositories"
)

// DynamoAttachmentRepository implements the AttachmentRepository interface
type DynamoAttachmentRepository struct {
	client *dynamodb.Client
	tables *TableNames
}

// NewAttachmentRepository creates a new attachment repository
func NewAttachmentRepository(config *RepositoryConfig) repositories.AttachmentRepository {
	return &DynamoAttachmentRepository{
		client: config.Client,
		tables: config.Tables,
	}
}

// ListByFolder lists every attachment housed in a folder. The folder index
// is keyed by folderId alone; the owner filter guards against a stale or
// cross-owner folder reference.
func (r *DynamoAttachmentRepository) ListByFolder(ctx context.Context, ownerID, folderID string) ([]models.Attachment, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tables.Attachments),
		IndexName:              aws.String(IndexFolder),
		KeyConditionExpression: aws.String("folderId = :folderId"),
		FilterExpression:       aws.String("ownerId = :ownerId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":folderId": &types.AttributeValueMemberS{Value: folderID},
			":ownerId":  &types.AttributeValueMemberS{Value: ownerID},
		},
	}

	var attachments []models.Attachment
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, storeError("list attachments by folder", err)
		}

		var batch []models.Attachment
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("unmarshal attachments: %w", err)
		}
		attachments = append(attachments, batch...)
	}

	return attachments, nil
}

// Delete removes an attachment row. Attachments are hard-deleted; the blob
// itself lives in object storage and is reaped separately.
func (r *DynamoAttachmentRepository) Delete(ctx context.Context, attachmentID, ownerID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tables.Attachments),
		Key: map[string]types.AttributeValue{
			"attachmentId": &types.AttributeValueMemberS{Value: attachmentID},
			"ownerId":      &types.AttributeValueMemberS{Value: ownerID},
		},
	})
	if err != nil {
		return storeError("delete attachment", err)
	}

	return nil
}
