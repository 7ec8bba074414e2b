package services

import (
	"context"

	"github.com/CPU-commits/Intranet_BCourseStats/res"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Max enrollment queries in flight for one course
const SECTIONS_SEM_WEIGHT = 5

func storeError(logger *zap.Logger, operation string, err error) *res.ErrorRes {
	logger.Error("store operation failed",
		zap.String("operation", operation),
		zap.Error(err),
	)
	return res.NewStoreError(err)
}

func decodeAll[T any](ctx context.Context, cursor *mongo.Cursor) ([]T, error) {
	results := make([]T, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
