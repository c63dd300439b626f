package dynamo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// Secondary index names. OwnerParentIndex backs children/roots listing and
// owner snapshots; UniqueKeyIndex backs idempotent-create dedup lookups;
// FolderIndex backs folder-scoped cascade queries on attachments and jobs.
const (
	IndexOwnerParent = "OwnerParentIndex"
	IndexUniqueKey   = "UniqueKeyIndex"
	IndexFolder      = "FolderIndex"
)

// RepositoryConfig holds the shared dependencies of repository implementations
type RepositoryConfig struct {
	Client *dynamodb.Client
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds environment-prefixed table names
type TableNames struct {
	Folders     string
	Attachments string
	Jobs        string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Folders:     fmt.Sprintf("%sfolders", prefix),
		Attachments: fmt.Sprintf("%sattachments", prefix),
		Jobs:        fmt.Sprintf("%sjobs", prefix),
	}
}

// NewClient creates a DynamoDB client.
//
// The SDK's standard retryer provides the store's bounded
// retry-with-backoff; failures that reach the repositories have already
// exhausted it and surface as StoreUnavailable.
//
// When endpoint is non-empty the client targets a local DynamoDB instance
// (dynamodb-local, LocalStack) with static throwaway credentials, so dev and
// test runs need no AWS account.
func NewClient(ctx context.Context, region, endpoint string) (*dynamodb.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
		awsconfig.WithRetryMaxAttempts(4),
	}
	if endpoint != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	return client, nil
}

// Ping verifies the store is reachable and the folders table exists.
func Ping(ctx context.Context, client *dynamodb.Client, tables *TableNames) error {
	_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(tables.Folders),
	})
	if err != nil {
		if isResourceNotFound(err) {
			return fmt.Errorf("table %s does not exist, run cmd/seed to create it: %w", tables.Folders, err)
		}
		return fmt.Errorf("describe table %s: %w", tables.Folders, err)
	}
	return nil
}
