package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"hirebase/internal/capabilities"
	"hirebase/internal/config"
	"hirebase/internal/domain/models"
	"hirebase/internal/domain/services"
	"hirebase/internal/repository/dynamo"
	"hirebase/internal/service/directory"
	"hirebase/internal/service/namespace"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up tables, don't seed folders (for use with shell scripts)")
	clearData := flag.Bool("clear-data", false, "Clear the seed owner's folders, attachments and jobs (keep tables)")
	owner := flag.String("owner", "seed-user-1", "Owner ID the demo tree is seeded under")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *clearData {
		log.Printf("🧹 Clearing data only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else if *schemaOnly {
		log.Printf("🏗️  Setting up tables only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else {
		log.Printf("🌱 Seeding folder namespace (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	// Create DynamoDB client
	ctx := context.Background()
	client, err := dynamo.NewClient(ctx, cfg.AWSRegion, cfg.DynamoEndpoint)
	if err != nil {
		log.Fatalf("Failed to create DynamoDB client: %v", err)
	}

	// Create table names
	tables := dynamo.NewTableNames(cfg.TablePrefix)

	// Drop tables if requested
	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, client, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	// Ensure tables and indexes exist
	log.Println("📋 Ensuring tables and indexes exist...")
	if err := ensureTables(ctx, client, tables); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}
	log.Println("✅ Tables ready")

	// Exit early if schema-only mode
	if *schemaOnly {
		log.Println("✅ Table setup complete (schema-only mode)")
		return
	}

	if *clearData {
		log.Println("🧹 Clearing existing folders, attachments and jobs...")
		if err := clearOwnerData(ctx, client, tables, *owner); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Println("✅ Data cleared successfully")
		return
	}

	// Create repositories
	repoConfig := &dynamo.RepositoryConfig{
		Client: client,
		Tables: tables,
		Logger: logger,
	}
	folderRepo := dynamo.NewFolderRepository(repoConfig)
	attachmentRepo := dynamo.NewAttachmentRepository(repoConfig)
	jobRepo := dynamo.NewJobRepository(repoConfig)

	directoryClient := directory.NewClient(cfg.IdentityURL, cfg.IdentityServiceKey, logger)

	capabilityRegistry, err := capabilities.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to initialize capability registry: %v", err)
	}

	// Seed through the service layer so dedup keys and paths are real
	folderService := namespace.NewFolderService(
		folderRepo,
		attachmentRepo,
		jobRepo,
		directoryClient,
		capabilityRegistry,
		logger,
	)

	// Clear existing data for a repeatable tree
	log.Println("⚠️  Clearing existing folders, attachments and jobs...")
	if err := clearOwnerData(ctx, client, tables, *owner); err != nil {
		log.Printf("Warning: Could not clear data: %v", err)
	}

	log.Println("📁 Seeding demo folder tree...")

	seedFolders := getSeedFolders()
	created := make(map[string]string) // folder name -> folderId

	for i, f := range seedFolders {
		req := &services.CreateFolderRequest{
			OwnerID: *owner,
			Name:    f.name,
			Type:    f.folderType,
		}
		if f.parent != "" {
			parentID, ok := created[f.parent]
			if !ok {
				log.Printf("❌ Skipping folder '%s': parent '%s' was not created", f.name, f.parent)
				continue
			}
			req.ParentID = &parentID
		}

		folder, err := folderService.CreateFolder(ctx, req)
		if err != nil {
			log.Printf("❌ Failed to create folder '%s': %v", f.name, err)
			continue
		}
		created[f.name] = folder.FolderID

		log.Printf("✅ Created folder %d/%d: %s (ID: %s, Path: %s)",
			i+1, len(seedFolders), f.name, folder.FolderID, strings.Join(folder.Path, " / "))
	}

	// Seed attachment and job rows beside the tree so recursive deletes
	// have collaborators to exercise
	log.Println("📎 Seeding attachments and jobs...")
	if err := seedCollaterals(ctx, client, tables, *owner, created); err != nil {
		log.Fatalf("Failed to seed attachments and jobs: %v", err)
	}

	log.Println("🎉 Seeding complete!")
}

// seedFolder describes one folder of the demo tree. Parents are referenced
// by name and must appear earlier in the slice.
type seedFolder struct {
	name       string
	folderType string
	parent     string
}

func getSeedFolders() []seedFolder {
	return []seedFolder{
		{name: "Acme Corp", folderType: "Company"},
		{name: "Engineering", folderType: "Folder", parent: "Acme Corp"},
		{name: "Backend Engineer", folderType: "Cargo", parent: "Engineering"},
		{name: "Frontend Engineer", folderType: "Cargo", parent: "Engineering"},
		{name: "Sales", folderType: "Folder", parent: "Acme Corp"},
		{name: "Account Executive", folderType: "Cargo", parent: "Sales"},
		{name: "Globex", folderType: "Company"},
		{name: "Operations", folderType: "Folder", parent: "Globex"},
		{name: "Forklift Operator", folderType: "Cargo", parent: "Operations"},
		{name: "Jane Doe", folderType: "Applicant"},
	}
}

// seedCollaterals writes attachment rows under the applicant folder and job
// rows under the cargo folders, directly against the store
func seedCollaterals(ctx context.Context, client *dynamodb.Client, tables *dynamo.TableNames, ownerID string, created map[string]string) error {
	now := time.Now().UTC()

	attachments := []models.Attachment{
		{
			AttachmentID: uuid.NewString(),
			OwnerID:      ownerID,
			FolderID:     created["Jane Doe"],
			FileName:     "resume.pdf",
			ContentType:  "application/pdf",
			Size:         48213,
			UploadedAt:   now,
		},
		{
			AttachmentID: uuid.NewString(),
			OwnerID:      ownerID,
			FolderID:     created["Jane Doe"],
			FileName:     "cover-letter.pdf",
			ContentType:  "application/pdf",
			Size:         19027,
			UploadedAt:   now,
		},
	}

	jobs := []models.Job{
		{
			JobID:     uuid.NewString(),
			OwnerID:   ownerID,
			FolderID:  created["Backend Engineer"],
			Title:     "Backend Engineer (Go)",
			Status:    models.JobStatusPublished,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			JobID:     uuid.NewString(),
			OwnerID:   ownerID,
			FolderID:  created["Frontend Engineer"],
			Title:     "Frontend Engineer (React)",
			Status:    models.JobStatusDraft,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			JobID:     uuid.NewString(),
			OwnerID:   ownerID,
			FolderID:  created["Account Executive"],
			Title:     "Account Executive",
			Status:    models.JobStatusPublished,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	for _, a := range attachments {
		if a.FolderID == "" {
			continue
		}
		item, err := attributevalue.MarshalMap(a)
		if err != nil {
			return err
		}
		if _, err := client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(tables.Attachments),
			Item:      item,
		}); err != nil {
			return err
		}
		log.Printf("  ✓ Attachment %s", a.FileName)
	}

	for _, j := range jobs {
		if j.FolderID == "" {
			continue
		}
		item, err := attributevalue.MarshalMap(j)
		if err != nil {
			return err
		}
		if _, err := client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(tables.Jobs),
			Item:      item,
		}); err != nil {
			return err
		}
		log.Printf("  ✓ Job %s", j.Title)
	}

	return nil
}

// ensureTables creates the three tables with their indexes, skipping any
// that already exist
func ensureTables(ctx context.Context, client *dynamodb.Client, tables *dynamo.TableNames) error {
	folderTable := &dynamodb.CreateTableInput{
		TableName:   aws.String(tables.Folders),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("folderId"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("ownerId"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("parentKey"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("uniqueKey"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("folderId"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String("ownerId"), KeyType: types.KeyTypeRange},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			{
				IndexName: aws.String(dynamo.IndexOwnerParent),
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String("ownerId"), KeyType: types.KeyTypeHash},
					{AttributeName: aws.String("parentKey"), KeyType: types.KeyTypeRange},
				},
				Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
			},
			{
				IndexName: aws.String(dynamo.IndexUniqueKey),
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String("uniqueKey"), KeyType: types.KeyTypeHash},
				},
				Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
			},
		},
	}

	attachmentTable := &dynamodb.CreateTableInput{
		TableName:   aws.String(tables.Attachments),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("attachmentId"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("ownerId"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("folderId"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("attachmentId"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String("ownerId"), KeyType: types.KeyTypeRange},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			{
				IndexName: aws.String(dynamo.IndexFolder),
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String("folderId"), KeyType: types.KeyTypeHash},
				},
				Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
			},
		},
	}

	jobTable := &dynamodb.CreateTableInput{
		TableName:   aws.String(tables.Jobs),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("jobId"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("ownerId"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("folderId"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("jobId"), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String("ownerId"), KeyType: types.KeyTypeRange},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			{
				IndexName: aws.String(dynamo.IndexFolder),
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String("folderId"), KeyType: types.KeyTypeHash},
				},
				Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
			},
		},
	}

	for _, input := range []*dynamodb.CreateTableInput{folderTable, attachmentTable, jobTable} {
		if err := createTable(ctx, client, input); err != nil {
			return err
		}
	}

	return nil
}

// createTable creates one table and waits for it to become active. An
// already-existing table is not an error.
func createTable(ctx context.Context, client *dynamodb.Client, input *dynamodb.CreateTableInput) error {
	_, err := client.CreateTable(ctx, input)
	if err != nil {
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			log.Printf("  ✓ Table %s already exists", *input.TableName)
			return nil
		}
		return err
	}

	waiter := dynamodb.NewTableExistsWaiter(client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{
		TableName: input.TableName,
	}, 2*time.Minute); err != nil {
		return err
	}

	log.Printf("  ✓ Created table %s", *input.TableName)
	return nil
}

// dropAllTables deletes the three tables and waits for them to disappear
func dropAllTables(ctx context.Context, client *dynamodb.Client, tables *dynamo.TableNames) error {
	tableNames := []string{
		tables.Folders,
		tables.Attachments,
		tables.Jobs,
	}

	for _, table := range tableNames {
		_, err := client.DeleteTable(ctx, &dynamodb.DeleteTableInput{
			TableName: aws.String(table),
		})
		if err != nil {
			var notFound *types.ResourceNotFoundException
			if errors.As(err, &notFound) {
				continue
			}
			return err
		}

		waiter := dynamodb.NewTableNotExistsWaiter(client)
		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{
			TableName: aws.String(table),
		}, 2*time.Minute); err != nil {
			return err
		}
		log.Printf("  ✓ Dropped %s", table)
	}

	return nil
}

// clearOwnerData removes every row the seed owner has in the three tables
func clearOwnerData(ctx context.Context, client *dynamodb.Client, tables *dynamo.TableNames, ownerID string) error {
	targets := []struct {
		table string
		pk    string
	}{
		{table: tables.Folders, pk: "folderId"},
		{table: tables.Attachments, pk: "attachmentId"},
		{table: tables.Jobs, pk: "jobId"},
	}

	for _, target := range targets {
		if err := clearTable(ctx, client, target.table, target.pk, ownerID); err != nil {
			return err
		}
	}

	return nil
}

// clearTable scans one table for the owner's rows and deletes them one by one
func clearTable(ctx context.Context, client *dynamodb.Client, table, pkName, ownerID string) error {
	paginator := dynamodb.NewScanPaginator(client, &dynamodb.ScanInput{
		TableName:            aws.String(table),
		FilterExpression:     aws.String("ownerId = :ownerId"),
		ProjectionExpression: aws.String(pkName + ", ownerId"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ownerId": &types.AttributeValueMemberS{Value: ownerID},
		},
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return err
		}

		for _, item := range page.Items {
			_, err := client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
				TableName: aws.String(table),
				Key: map[string]types.AttributeValue{
					pkName:    item[pkName],
					"ownerId": item["ownerId"],
				},
			})
			if err != nil {
				return err
			}
		}
	}

	return nil
}
