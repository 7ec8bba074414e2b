package models

import "github.com/CPU-commits/Intranet_BCourseStats/db"

const DATA_COLLECTION = "data"

func NewDataModel(conn *db.MongoConnection, collectionName string) *Model {
	if collectionName == "" {
		collectionName = DATA_COLLECTION
	}
	return newModel(conn, collectionName)
}
