package services

import (
	"context"

	"github.com/CPU-commits/Intranet_BCourseStats/db"
	"github.com/CPU-commits/Intranet_BCourseStats/models"
	"github.com/CPU-commits/Intranet_BCourseStats/res"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DataService reads and writes schemaless documents.
type DataService struct {
	data   models.Collection
	logger *zap.Logger
}

func (d *DataService) GetData(ctx context.Context) ([]bson.M, *res.ErrorRes) {
	cursor, err := d.data.GetAll(ctx, bson.D{}, db.FindOptions())
	if err != nil {
		return nil, storeError(d.logger, "get_data", err)
	}
	documents, err := decodeAll[bson.M](ctx, cursor)
	if err != nil {
		return nil, storeError(d.logger, "get_data", err)
	}
	return documents, nil
}

func (d *DataService) InsertData(ctx context.Context, document map[string]interface{}) (interface{}, *res.ErrorRes) {
	result, err := d.data.NewDocument(ctx, document)
	if err != nil {
		return nil, storeError(d.logger, "insert_data", err)
	}
	return result.InsertedID, nil
}

func NewDataService(data models.Collection, logger *zap.Logger) *DataService {
	return &DataService{
		data:   data,
		logger: logger.Named("data"),
	}
}
