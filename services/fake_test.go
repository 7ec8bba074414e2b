package services

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fakeCollection answers every read with canned documents.
type fakeCollection struct {
	mu        sync.Mutex
	documents []interface{}
	// Optional per call answer, wins over documents
	aggregate func(pipeline mongo.Pipeline) []interface{}
	err       error

	filters   []bson.D
	pipelines []mongo.Pipeline
	inserted  []interface{}
}

func (f *fakeCollection) GetAll(
	ctx context.Context,
	filter bson.D,
	options ...*options.FindOptions,
) (*mongo.Cursor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return nil, f.err
	}
	return mongo.NewCursorFromDocuments(f.documents, nil, nil)
}

func (f *fakeCollection) Aggreagate(
	ctx context.Context,
	pipeline mongo.Pipeline,
	options ...*options.AggregateOptions,
) (*mongo.Cursor, error) {
	f.mu.Lock()
	f.pipelines = append(f.pipelines, pipeline)
	err := f.err
	documents := f.documents
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if f.aggregate != nil {
		documents = f.aggregate(pipeline)
	}
	return mongo.NewCursorFromDocuments(documents, nil, nil)
}

func (f *fakeCollection) NewDocument(ctx context.Context, data interface{}) (*mongo.InsertOneResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.inserted = append(f.inserted, data)
	return &mongo.InsertOneResult{InsertedID: len(f.inserted)}, nil
}

// flakyStore fails every call.
type flakyStore struct {
	err error
}

func (s flakyStore) Get(context.Context, string, interface{}) error {
	return s.err
}

func (s flakyStore) Set(context.Context, string, interface{}, time.Duration) error {
	return s.err
}
