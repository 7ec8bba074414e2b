package db

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Timeouts
const CONNECT_TIMEOUT = time.Second * 10

// SOCKET_TIMEOUT is the limit that binds for slow pipelines. The driver
// drops the round trip after 10s, long before the server enforces
// QUERY_MAX_TIME.
const SOCKET_TIMEOUT = time.Second * 10
const QUERY_MAX_TIME = time.Second * 60

// Startup ping retries
const MAX_PING_RETRIES = 5

// Ctx is the context used for store round trips. Requests do not cancel
// queries when the client goes away.
var Ctx = context.Background()

type MongoConnection struct {
	client   *mongo.Client
	database *mongo.Database
}

func (m *MongoConnection) GetCollection(collection string) *mongo.Collection {
	return m.database.Collection(collection)
}

func (m *MongoConnection) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoConnection) Disconnect(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func clientOptions(uri string) *options.ClientOptions {
	return options.Client().
		ApplyURI(uri).
		SetConnectTimeout(CONNECT_TIMEOUT).
		SetSocketTimeout(SOCKET_TIMEOUT).
		SetServerSelectionTimeout(CONNECT_TIMEOUT)
}

// NewConnection connects to the document store and waits until it answers
// a ping. Only the startup ping is retried.
func NewConnection(ctx context.Context, uri, dbName string) (*MongoConnection, error) {
	client, err := mongo.Connect(ctx, clientOptions(uri))
	if err != nil {
		return nil, err
	}
	conn := &MongoConnection{
		client:   client,
		database: client.Database(dbName),
	}

	retryBackoff := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), MAX_PING_RETRIES),
		ctx,
	)
	if err := backoff.Retry(func() error {
		return conn.Ping(ctx)
	}, retryBackoff); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return conn, nil
}

// AggregateOptions applies the server side execution limit used by every
// pipeline.
func AggregateOptions() *options.AggregateOptions {
	return options.Aggregate().
		SetMaxTime(QUERY_MAX_TIME).
		SetAllowDiskUse(true)
}

func FindOptions() *options.FindOptions {
	return options.Find().SetMaxTime(QUERY_MAX_TIME)
}
