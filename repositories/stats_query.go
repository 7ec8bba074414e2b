package repositories

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Sections fetched per enrollment query. Two is enough to detect a
// duplicated class number.
const ENROLLMENT_SECTION_LIMIT = 2

func getLookupSeries(tsCollection string, start, end time.Time) bson.D {
	return bson.D{{
		Key: "$lookup",
		Value: bson.M{
			"from": tsCollection,
			"let": bson.M{
				"sem":      "$semester",
				"year":     "$year",
				"classNum": "$classNumber",
			},
			"pipeline": bson.A{
				bson.M{
					"$match": bson.M{
						"$expr": bson.M{
							"$and": bson.A{
								bson.M{"$eq": bson.A{"$courseInfo.semester", "$$sem"}},
								bson.M{"$eq": bson.A{"$courseInfo.year", "$$year"}},
								bson.M{"$eq": bson.A{"$courseInfo.classNumber", "$$classNum"}},
								bson.M{"$gte": bson.A{"$dateTimeRetrieved", start}},
								bson.M{"$lt": bson.A{"$dateTimeRetrieved", end}},
							},
						},
					},
				},
				bson.M{
					"$sort": bson.M{
						"dateTimeRetrieved": 1,
					},
				},
				bson.M{
					"$project": bson.M{
						"_id":               0,
						"seatsAvailable":    1,
						"dateTimeRetrieved": 1,
					},
				},
			},
			"as": "series",
		},
	}}
}

// EnrollmentRatePipeline joins one section with its snapshots retrieved in
// [start, end).
func EnrollmentRatePipeline(
	semester string,
	year,
	classNumber int,
	start,
	end time.Time,
	tsCollection string,
) mongo.Pipeline {
	match := bson.D{{
		Key: "$match",
		Value: bson.M{
			"semester":    semester,
			"year":        year,
			"classNumber": classNumber,
		},
	}}
	limit := bson.D{{
		Key:   "$limit",
		Value: ENROLLMENT_SECTION_LIMIT,
	}}
	project := bson.D{{
		Key: "$project",
		Value: bson.M{
			"_id":      0,
			"capacity": 1,
			"series":   1,
		},
	}}
	return mongo.Pipeline{
		match,
		limit,
		getLookupSeries(tsCollection, start, end),
		project,
	}
}
