package repositories

import (
	"github.com/CPU-commits/Intranet_BCourseStats/forms"
	"github.com/CPU-commits/Intranet_BCourseStats/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Instructor placeholders written by the scraper
var PlaceholderInstructors = []string{"TBA", "X TBA", "-"}

// CourseSearchFilter builds the sections filter. Every optional criterion
// is ANDed, absent ones add nothing.
func CourseSearchFilter(form forms.CourseSearchForm) bson.D {
	filter := bson.D{
		{Key: "semester", Value: form.Semester},
		{Key: "year", Value: form.Year},
		{Key: "subjectCode", Value: form.SubjectCode},
	}
	if form.CatalogNumber != "" {
		filter = append(filter, bson.E{Key: "catalogNumber", Value: form.CatalogNumber})
	}
	if form.Name != "" {
		filter = append(filter, bson.E{
			Key: "$text",
			Value: bson.M{
				"$search": form.Name,
			},
		})
	}
	if form.StartDate != nil {
		filter = append(filter, bson.E{
			Key: "startDate",
			Value: bson.M{
				"$gte": *form.StartDate,
			},
		})
	}
	if form.EndDate != nil {
		filter = append(filter, bson.E{
			Key: "endDate",
			Value: bson.M{
				"$lte": *form.EndDate,
			},
		})
	}

	var and bson.A
	if len(form.Days) > 0 {
		// Flat list for one meeting, list of lists for several
		and = append(and, bson.M{
			"$or": bson.A{
				bson.M{
					"days": bson.M{
						"$in": form.Days,
					},
				},
				bson.M{
					"days": bson.M{
						"$elemMatch": bson.M{
							"$elemMatch": bson.M{
								"$in": form.Days,
							},
						},
					},
				},
			},
		})
	}
	if form.Instructor != "" {
		and = append(and, bson.M{
			"$or": bson.A{
				bson.M{
					"instructor": form.Instructor,
				},
				bson.M{
					"instructor": bson.M{
						"$elemMatch": bson.M{
							"$elemMatch": bson.M{
								"$eq": form.Instructor,
							},
						},
					},
				},
			},
		})
	}
	if len(and) > 0 {
		filter = append(filter, bson.E{Key: "$and", Value: and})
	}
	return filter
}

func sectionProjection() bson.D {
	projection := bson.D{{Key: "_id", Value: 0}}
	for _, field := range models.SectionFields {
		projection = append(projection, bson.E{Key: field, Value: 1})
	}
	return projection
}

// CourseSearchOptions sorts by catalogNumber as a string, so "101" comes
// before "99".
func CourseSearchOptions() *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "catalogNumber", Value: 1}}).
		SetProjection(sectionProjection())
}

func HistoricalInstructorsPipeline(subjectCode, catalogNumber string) mongo.Pipeline {
	match := bson.D{{
		Key: "$match",
		Value: bson.M{
			"subjectCode":   subjectCode,
			"catalogNumber": catalogNumber,
			"instructor": bson.M{
				"$nin": bson.A{"X TBA", nil},
			},
		},
	}}
	// Two passes flatten both nesting depths
	unwind := bson.D{{
		Key:   "$unwind",
		Value: "$instructor",
	}}
	group := bson.D{{
		Key: "$group",
		Value: bson.M{
			"_id": nil,
			"instructors": bson.M{
				"$addToSet": "$instructor",
			},
		},
	}}
	project := bson.D{{
		Key: "$project",
		Value: bson.M{
			"_id":         0,
			"instructors": 1,
		},
	}}
	return mongo.Pipeline{
		match,
		unwind,
		unwind,
		group,
		project,
	}
}

func SubjectsFilter(form forms.SubjectsForm) bson.D {
	filter := bson.D{}
	if form.Semester != "" {
		filter = append(filter, bson.E{Key: "semester", Value: form.Semester})
	}
	if form.Year != 0 {
		filter = append(filter, bson.E{Key: "year", Value: form.Year})
	}
	return filter
}

func SubjectsOptions() *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetProjection(bson.D{{Key: "_id", Value: 0}})
}
