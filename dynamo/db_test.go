package dynamo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"
	container "github.com/testcontainers/testcontainers-go/modules/dynamodb"
)

var dynamoClient *dynamodb.Client
var db *DB

const testTableName = "Registrations-Test"

func TestMain(m *testing.M) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*60)
	defer cancel()

	teardown, err := setupTestStore(ctx)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer teardown()

	os.Exit(m.Run())
}

// setupTestStore connects to a local dynamo instance: the one CI provides on
// port 8000 when TEST_IN_CI is set, otherwise a dynamodb-local testcontainer.
func setupTestStore(ctx context.Context) (func(), error) {
	endpoint := "http://localhost:8000"
	teardown := func() {}

	if _, inCI := os.LookupEnv("TEST_IN_CI"); !inCI {
		dynamoContainer, err := container.Run(ctx, "amazon/dynamodb-local")
		if err != nil {
			return nil, fmt.Errorf("failed to start dynamodb-local container: %w", err)
		}
		teardown = func() {
			if err := dynamoContainer.Terminate(context.Background()); err != nil {
				fmt.Printf("failed to terminate dynamodb-local container: %s\n", err)
			}
		}

		containerEndpoint, err := dynamoContainer.Endpoint(ctx, "")
		if err != nil {
			teardown()
			return nil, fmt.Errorf("failed to resolve container endpoint: %w", err)
		}
		endpoint = "http://" + containerEndpoint
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion("localhost"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("local", "local", "")),
	)
	if err != nil {
		teardown()
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	dynamoClient = dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	if err := createRegistrationsTable(ctx); err != nil {
		teardown()
		return nil, err
	}

	db = NewDB(dynamoClient, testTableName)

	return teardown, nil
}

func createRegistrationsTable(ctx context.Context) error {
	stringAttr := func(name string) types.AttributeDefinition {
		return types.AttributeDefinition{
			AttributeName: aws.String(name),
			AttributeType: types.ScalarAttributeTypeS,
		}
	}
	keySchema := func(hashKey string, sortKey string) []types.KeySchemaElement {
		return []types.KeySchemaElement{
			{AttributeName: aws.String(hashKey), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String(sortKey), KeyType: types.KeyTypeRange},
		}
	}

	_, err := dynamoClient.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName:   aws.String(testTableName),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			stringAttr("PK"),
			stringAttr("SK"),
			stringAttr("GSI1PK"),
			stringAttr("GSI1SK"),
		},
		KeySchema: keySchema("PK", "SK"),
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			{
				IndexName: aws.String(gsi1),
				KeySchema: keySchema("GSI1PK", "GSI1SK"),
				Projection: &types.Projection{
					ProjectionType: types.ProjectionTypeAll,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create table %s: %w", testTableName, err)
	}

	return nil
}

// resetTable drops and recreates the table so each subtest starts empty.
func resetTable(t *testing.T, ctx context.Context) {
	t.Helper()

	_, err := dynamoClient.DeleteTable(ctx, &dynamodb.DeleteTableInput{
		TableName: aws.String(testTableName),
	})
	require.NoError(t, err)

	require.NoError(t, createRegistrationsTable(ctx))
}
