package models

import "github.com/CPU-commits/Intranet_BCourseStats/db"

const SUBJECT_COLLECTION = "subjects"

type CourseSubject struct {
	Name     string `json:"name" bson:"name" example:"Electrical & Computer Engineer"`
	Code     string `json:"code" bson:"code" example:"ECE"`
	Semester string `json:"semester" bson:"semester" example:"Spring"`
	Year     int    `json:"year" bson:"year" example:"2025"`
}

func NewSubjectModel(conn *db.MongoConnection, collectionName string) *Model {
	if collectionName == "" {
		collectionName = SUBJECT_COLLECTION
	}
	return newModel(conn, collectionName)
}
