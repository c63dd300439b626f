package dynamo

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"hirebase/internal/domain"
	"hirebase/internal/domain/models"
	"hirebase/internal/domain/repositories"
)

// DynamoFolderRepository implements the FolderRepository interface
type DynamoFolderRepository struct {
	client *dynamodb.Client
	tables *TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &DynamoFolderRepository{
		client: config.Client,
		tables: config.Tables,
	}
}

// Put writes a folder row, replacing any existing row with the same key
func (r *DynamoFolderRepository) Put(ctx context.Context, folder *models.Folder) error {
	item, err := attributevalue.MarshalMap(folder)
	if err != nil {
		return fmt.Errorf("marshal folder: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tables.Folders),
		Item:      item,
	})
	if err != nil {
		return storeError("put folder", err)
	}

	return nil
}

// Get retrieves a folder row by its composite key. Point reads are strongly
// consistent so a caller sees its own writes.
func (r *DynamoFolderRepository) Get(ctx context.Context, folderID, ownerID string) (*models.Folder, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tables.Folders),
		Key:            folderKey(folderID, ownerID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, storeError("get folder", err)
	}
	if len(out.Item) == 0 {
		return nil, fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
	}

	var folder models.Folder
	if err := attributevalue.UnmarshalMap(out.Item, &folder); err != nil {
		return nil, fmt.Errorf("unmarshal folder: %w", err)
	}

	return &folder, nil
}

// Update applies a partial update and returns the stored row as it now is.
// The condition expression turns an update of a missing row into NotFound
// instead of silently creating one.
func (r *DynamoFolderRepository) Update(ctx context.Context, folderID, ownerID string, update models.FolderUpdate) (*models.Folder, error) {
	expr, names, values, err := buildFolderUpdate(update)
	if err != nil {
		return nil, err
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tables.Folders),
		Key:                       folderKey(folderID, ownerID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ConditionExpression:       aws.String("attribute_exists(folderId)"),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, fmt.Errorf("folder %s: %w", folderID, domain.ErrNotFound)
		}
		return nil, storeError("update folder", err)
	}

	var folder models.Folder
	if err := attributevalue.UnmarshalMap(out.Attributes, &folder); err != nil {
		return nil, fmt.Errorf("unmarshal folder: %w", err)
	}

	return &folder, nil
}

// GetByUniqueKey finds the active folder carrying the given dedup key.
// The lookup runs on a global index and is eventually consistent; soft-deleted
// rows keep their key, so the query filters them out rather than trusting the
// first row of the partition.
func (r *DynamoFolderRepository) GetByUniqueKey(ctx context.Context, uniqueKey string) (*models.Folder, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tables.Folders),
		IndexName:              aws.String(IndexUniqueKey),
		KeyConditionExpression: aws.String("uniqueKey = :uniqueKey"),
		FilterExpression:       aws.String("isActive = :active"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uniqueKey": &types.AttributeValueMemberS{Value: uniqueKey},
			":active":    &types.AttributeValueMemberBOOL{Value: true},
		},
	}

	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, storeError("get folder by unique key", err)
		}
		if len(page.Items) == 0 {
			continue
		}

		var folder models.Folder
		if err := attributevalue.UnmarshalMap(page.Items[0], &folder); err != nil {
			return nil, fmt.Errorf("unmarshal folder: %w", err)
		}
		return &folder, nil
	}

	return nil, fmt.Errorf("folder by unique key: %w", domain.ErrNotFound)
}

// ListChildren lists all active immediate children of a parent. A nil parent
// lists the owner's root folders.
func (r *DynamoFolderRepository) ListChildren(ctx context.Context, ownerID string, parentID *string) ([]models.Folder, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tables.Folders),
		IndexName:              aws.String(IndexOwnerParent),
		KeyConditionExpression: aws.String("ownerId = :ownerId AND parentKey = :parentKey"),
		FilterExpression:       aws.String("isActive = :active"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ownerId":   &types.AttributeValueMemberS{Value: ownerID},
			":parentKey": &types.AttributeValueMemberS{Value: models.ParentKeyFor(parentID)},
			":active":    &types.AttributeValueMemberBOOL{Value: true},
		},
	}

	var folders []models.Folder
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, storeError("list folder children", err)
		}
		batch, err := unmarshalFolders(page.Items)
		if err != nil {
			return nil, err
		}
		folders = append(folders, batch...)
	}

	return folders, nil
}

// ListByOwner retrieves every active folder of an owner as a flat list
func (r *DynamoFolderRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Folder, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tables.Folders),
		IndexName:              aws.String(IndexOwnerParent),
		KeyConditionExpression: aws.String("ownerId = :ownerId"),
		FilterExpression:       aws.String("isActive = :active"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ownerId": &types.AttributeValueMemberS{Value: ownerID},
			":active":  &types.AttributeValueMemberBOOL{Value: true},
		},
	}

	var folders []models.Folder
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, storeError("list folders by owner", err)
		}
		batch, err := unmarshalFolders(page.Items)
		if err != nil {
			return nil, err
		}
		folders = append(folders, batch...)
	}

	return folders, nil
}

// CountChildren counts the active immediate children of a folder
func (r *DynamoFolderRepository) CountChildren(ctx context.Context, ownerID, folderID string) (int, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tables.Folders),
		IndexName:              aws.String(IndexOwnerParent),
		KeyConditionExpression: aws.String("ownerId = :ownerId AND parentKey = :parentKey"),
		FilterExpression:       aws.String("isActive = :active"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ownerId":   &types.AttributeValueMemberS{Value: ownerID},
			":parentKey": &types.AttributeValueMemberS{Value: folderID},
			":active":    &types.AttributeValueMemberBOOL{Value: true},
		},
		Select: types.SelectCount,
	}

	count := 0
	paginator := dynamodb.NewQueryPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return 0, storeError("count folder children", err)
		}
		count += int(page.Count)
	}

	return count, nil
}

// Query runs a single filtered page over an owner's folders. The page size
// bounds rows evaluated, not rows returned, so a page can come back short
// while a cursor still remains.
func (r *DynamoFolderRepository) Query(ctx context.Context, ownerID string, q repositories.FolderQuery) (*repositories.FolderPage, error) {
	keyCond := "ownerId = :ownerId"
	values := map[string]types.AttributeValue{
		":ownerId": &types.AttributeValueMemberS{Value: ownerID},
		":active":  &types.AttributeValueMemberBOOL{Value: true},
	}

	switch {
	case q.RootsOnly:
		keyCond += " AND parentKey = :parentKey"
		values[":parentKey"] = &types.AttributeValueMemberS{Value: models.RootSentinel}
	case q.ParentID != nil:
		keyCond += " AND parentKey = :parentKey"
		values[":parentKey"] = &types.AttributeValueMemberS{Value: *q.ParentID}
	}

	filter := "isActive = :active"
	var names map[string]string
	if q.Type != "" {
		filter += " AND #type = :type"
		names = map[string]string{"#type": "type"}
		values[":type"] = &types.AttributeValueMemberS{Value: q.Type}
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tables.Folders),
		IndexName:                 aws.String(IndexOwnerParent),
		KeyConditionExpression:    aws.String(keyCond),
		FilterExpression:          aws.String(filter),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	}
	if q.Limit > 0 {
		input.Limit = aws.Int32(q.Limit)
	}

	startKey, err := decodeCursor(q.Cursor)
	if err != nil {
		return nil, err
	}
	if startKey != nil {
		input.ExclusiveStartKey = startKey
	}

	out, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, storeError("query folders", err)
	}

	folders, err := unmarshalFolders(out.Items)
	if err != nil {
		return nil, err
	}

	nextCursor, err := encodeCursor(out.LastEvaluatedKey)
	if err != nil {
		return nil, err
	}

	return &repositories.FolderPage{
		Folders:    folders,
		NextCursor: nextCursor,
	}, nil
}

// buildFolderUpdate assembles the SET expression for a partial folder update.
// The name and type attributes are DynamoDB reserved words and go through
// expression aliases.
func buildFolderUpdate(update models.FolderUpdate) (string, map[string]string, map[string]types.AttributeValue, error) {
	updatedAt, err := attributevalue.Marshal(update.UpdatedAt)
	if err != nil {
		return "", nil, nil, fmt.Errorf("marshal updated at: %w", err)
	}

	sets := []string{"updatedAt = :updatedAt"}
	names := map[string]string{}
	values := map[string]types.AttributeValue{
		":updatedAt": updatedAt,
	}

	if update.Name != nil {
		sets = append(sets, "#name = :name")
		names["#name"] = "name"
		values[":name"] = &types.AttributeValueMemberS{Value: *update.Name}
	}
	if update.Type != nil {
		sets = append(sets, "#type = :type")
		names["#type"] = "type"
		values[":type"] = &types.AttributeValueMemberS{Value: *update.Type}
	}
	if update.UniqueKey != nil {
		sets = append(sets, "uniqueKey = :uniqueKey")
		values[":uniqueKey"] = &types.AttributeValueMemberS{Value: *update.UniqueKey}
	}
	if update.Metadata != nil {
		metadata, err := attributevalue.Marshal(update.Metadata)
		if err != nil {
			return "", nil, nil, fmt.Errorf("marshal metadata: %w", err)
		}
		sets = append(sets, "metadata = :metadata")
		values[":metadata"] = metadata
	}
	if update.IsActive != nil {
		sets = append(sets, "isActive = :isActive")
		values[":isActive"] = &types.AttributeValueMemberBOOL{Value: *update.IsActive}
	}

	if len(names) == 0 {
		names = nil
	}

	return "SET " + strings.Join(sets, ", "), names, values, nil
}

func folderKey(folderID, ownerID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"folderId": &types.AttributeValueMemberS{Value: folderID},
		"ownerId":  &types.AttributeValueMemberS{Value: ownerID},
	}
}

func unmarshalFolders(items []map[string]types.AttributeValue) ([]models.Folder, error) {
	var folders []models.Folder
	if err := attributevalue.UnmarshalListOfMaps(items, &folders); err != nil {
		return nil, fmt.Errorf("unmarshal folders: %w", err)
	}
	return folders, nil
}
