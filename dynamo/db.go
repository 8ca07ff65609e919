package dynamo

import (
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const (
	gsi1 = "GSI1"
)

type DB struct {
	dynamoClient *dynamodb.Client
	tableName    string
}

func NewDB(dynamoClient *dynamodb.Client, tableName string) *DB {
	return &DB{
		dynamoClient: dynamoClient,
		tableName:    tableName,
	}
}

// Ping reports whether the table is reachable.
func (d *DB) Ping(ctx context.Context) error {
	_, err := d.dynamoClient.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(d.tableName),
	})
	return err
}

// WaitUntilAvailable blocks until the table answers a Ping, retrying with a
// fixed delay. Connection establishment is the only place we retry; requests
// themselves fail fast.
func (d *DB) WaitUntilAvailable(ctx context.Context, logger *slog.Logger, delay time.Duration) error {
	for {
		err := d.Ping(ctx)
		if err == nil {
			return nil
		}

		logger.Error("Store not reachable yet, retrying",
			slog.String("table", d.tableName),
			slog.Duration("retry-in", delay),
			slog.String("error", err.Error()),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}
