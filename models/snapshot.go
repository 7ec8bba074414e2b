package models

import (
	"time"

	"github.com/CPU-commits/Intranet_BCourseStats/db"
)

// Time-series collection. Documents are
// {courseInfo: {semester, year, classNumber}, seatsAvailable, dateTimeRetrieved}
const SNAPSHOT_COLLECTION = "sectionsTS"

type EnrollmentPoint struct {
	SeatsAvailable    int       `json:"seatsAvailable" bson:"seatsAvailable" example:"12"`
	DateTimeRetrieved time.Time `json:"dateTimeRetrieved" bson:"dateTimeRetrieved"`
}

type EnrollmentRate struct {
	Capacity int               `json:"capacity" bson:"capacity" example:"40"`
	Series   []EnrollmentPoint `json:"series" bson:"series"`
}

func NewSnapshotModel(conn *db.MongoConnection, collectionName string) *Model {
	if collectionName == "" {
		collectionName = SNAPSHOT_COLLECTION
	}
	return newModel(conn, collectionName)
}
