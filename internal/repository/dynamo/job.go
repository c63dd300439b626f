package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"hirebase/internal/domain/models"
	"hirebase/internal/domain/repositories"
)

// DynamoJobRepository implements the JobRepository interface
type DynamoJobRepository struct {
	client *dynamodb.Client
	tables *TableNames
}

// NewJobRepository creates a new job repository
func NewJobRepository(config *RepositoryConfig) repositories.JobRepository {
	return &DynamoJobRepository{
		client: config.Client,
		tables: config.Tables,
	}
}

// DeleteByFolder soft-deletes every active job registered under a folder.
// Jobs follow the same tombstone convention as folders so postings stay
// auditable after their folder is gone. Individual row failures are collected
// rather than aborting the sweep.
func (r *DynamoJobRepository) DeleteByFolder(ctx context.Context, ownerID, folderID string) error {
	jobs, err := r.listActiveByFolder(ctx, ownerID, folderID)
	if err != nil {
		return err
	}

	var errs []error
	for _, job := range jobs {
		if err := r.softDelete(ctx, job.JobID, ownerID); err != nil {
			errs = append(errs, fmt.Errorf("job %s: %w", job.JobID, err))
		}
	}

	return errors.Join(errs...)
}

func (r *DynamoJobRepository) listActiveByFolder(ctx context.Context, ownerID, folderID string) ([]models.Job, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tables.Jobs),
		IndexName:              aws.String(IndexFolder),
		KeyConditionExpression: aws.String("folderId = :folderId"),
		FilterExpression:       aws.String("ownerId = :ownerId AND isActive = :active"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":folderId": &types.AttributeValueMemberS{Value: folderID},
			":ownerId":  &types.AttributeValueMemberS{Value: ownerID},
			":active":   &types.AttributeValueMemberBOOL{Value: true},
		},
	}

	var jobs []models.Job
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, storeError("list jobs by folder", err)
		}

		var batch []models.Job
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("unmarshal jobs: %w", err)
		}
		jobs = append(jobs, batch...)
	}

	return jobs, nil
}

// softDelete tombstones one job row. status is a DynamoDB reserved word and
// goes through an expression alias.
func (r *DynamoJobRepository) softDelete(ctx context.Context, jobID, ownerID string) error {
	now, err := attributevalue.Marshal(time.Now().UTC())
	if err != nil {
		return fmt.Errorf("marshal updated at: %w", err)
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tables.Jobs),
		Key: map[string]types.AttributeValue{
			"jobId":   &types.AttributeValueMemberS{Value: jobID},
			"ownerId": &types.AttributeValueMemberS{Value: ownerID},
		},
		UpdateExpression: aws.String("SET isActive = :inactive, #status = :status, updatedAt = :updatedAt"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":inactive":  &types.AttributeValueMemberBOOL{Value: false},
			":status":    &types.AttributeValueMemberS{Value: models.JobStatusDeleted},
			":updatedAt": now,
		},
		ConditionExpression: aws.String("attribute_exists(jobId)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil
		}
		return storeError("soft delete job", err)
	}

	return nil
}
