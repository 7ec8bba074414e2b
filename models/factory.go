package models

import (
	"context"

	"github.com/CPU-commits/Intranet_BCourseStats/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Collection interface {
	GetAll(ctx context.Context, filter bson.D, options ...*options.FindOptions) (*mongo.Cursor, error)
	Aggreagate(ctx context.Context, pipeline mongo.Pipeline, options ...*options.AggregateOptions) (*mongo.Cursor, error)
	NewDocument(ctx context.Context, data interface{}) (*mongo.InsertOneResult, error)
}

// Model is a collection bound to the shared store connection.
type Model struct {
	CollectionName string
	conn           *db.MongoConnection
}

func (model *Model) Use() *mongo.Collection {
	return model.conn.GetCollection(model.CollectionName)
}

func (model *Model) GetAll(
	ctx context.Context,
	filter bson.D,
	options ...*options.FindOptions,
) (*mongo.Cursor, error) {
	cursor, err := model.Use().Find(ctx, filter, options...)
	return cursor, err
}

func (model *Model) Aggreagate(
	ctx context.Context,
	pipeline mongo.Pipeline,
	options ...*options.AggregateOptions,
) (*mongo.Cursor, error) {
	cursor, err := model.Use().Aggregate(ctx, pipeline, options...)
	return cursor, err
}

func (model *Model) NewDocument(ctx context.Context, data interface{}) (*mongo.InsertOneResult, error) {
	result, err := model.Use().InsertOne(ctx, data)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func newModel(conn *db.MongoConnection, collectionName string) *Model {
	return &Model{
		CollectionName: collectionName,
		conn:           conn,
	}
}
