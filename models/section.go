package models

import (
	"context"
	"fmt"
	"time"

	"github.com/CPU-commits/Intranet_BCourseStats/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/mongo"
)

const SECTION_COLLECTION = "sections"

// Course holds the fields shared by both section shapes.
type Course struct {
	Name             string `json:"name" bson:"name" example:"Digital Design"`
	SubjectCode      string `json:"subjectCode" bson:"subjectCode" example:"ECE"`
	CatalogNumber    string `json:"catalogNumber" bson:"catalogNumber" example:"421"`
	SectionType      string `json:"sectionType" bson:"sectionType" example:"LEC"`
	SectionCode      string `json:"sectionCode" bson:"sectionCode" example:"D"`
	ClassNumber      int    `json:"classNumber" bson:"classNumber" example:"5385"`
	Capacity         int    `json:"capacity" bson:"capacity" example:"40"`
	MultipleMeetings bool   `json:"multipleMeetings" bson:"multipleMeetings"`
}

type CourseWithOneMeeting struct {
	Course     `bson:",inline"`
	Classroom  *string   `json:"classroom" bson:"classroom" example:"Stubblefield 204"`
	Instructor []string  `json:"instructor" bson:"instructor"`
	Days       []string  `json:"days" bson:"days"`
	TimeStart  time.Time `json:"timeStart" bson:"timeStart"`
	TimeEnd    time.Time `json:"timeEnd" bson:"timeEnd"`
	StartDate  time.Time `json:"startDate" bson:"startDate"`
	EndDate    time.Time `json:"endDate" bson:"endDate"`
}

// One inner list per meeting pattern
type CourseWithMultipleMeetings struct {
	Course     `bson:",inline"`
	Classroom  []string    `json:"classroom" bson:"classroom"`
	Instructor [][]string  `json:"instructor" bson:"instructor"`
	Days       [][]string  `json:"days" bson:"days"`
	TimeStart  []time.Time `json:"timeStart" bson:"timeStart"`
	TimeEnd    []time.Time `json:"timeEnd" bson:"timeEnd"`
	StartDate  []time.Time `json:"startDate" bson:"startDate"`
	EndDate    []time.Time `json:"endDate" bson:"endDate"`
}

// CourseContainer holds exactly one of the two section shapes. Build it
// with NewSingleMeetingContainer or NewMultipleMeetingsContainer.
type CourseContainer struct {
	CourseWithOneMeeting       *CourseWithOneMeeting       `json:"courseWithOneMeeting"`
	CourseWithMultipleMeetings *CourseWithMultipleMeetings `json:"courseWithMultipleMeetings"`
}

func NewSingleMeetingContainer(course *CourseWithOneMeeting) *CourseContainer {
	return &CourseContainer{CourseWithOneMeeting: course}
}

func NewMultipleMeetingsContainer(course *CourseWithMultipleMeetings) *CourseContainer {
	return &CourseContainer{CourseWithMultipleMeetings: course}
}

// Section returns the shared fields of whichever shape is held.
func (c *CourseContainer) Section() Course {
	if c.CourseWithMultipleMeetings != nil {
		return c.CourseWithMultipleMeetings.Course
	}
	return c.CourseWithOneMeeting.Course
}

// Fields projected out of the sections collection, discriminator included
var SectionFields = []string{
	"name",
	"subjectCode",
	"catalogNumber",
	"sectionType",
	"sectionCode",
	"classNumber",
	"capacity",
	"multipleMeetings",
	"classroom",
	"instructor",
	"days",
	"timeStart",
	"timeEnd",
	"startDate",
	"endDate",
}

// Fields the scraper writes as null for unscheduled sections
var nullableSectionFields = map[string]bool{
	"classroom":  true,
	"instructor": true,
	"days":       true,
}

type DeserializationError struct {
	Field string
	Err   error
}

func (e *DeserializationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("cannot deserialize course section: %v", e.Err)
	}
	return fmt.Sprintf("cannot deserialize course section field %q: %v", e.Field, e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}

// NormalizeSection decodes a projected section document into the shape
// selected by its multipleMeetings flag.
func NormalizeSection(raw bson.Raw) (*CourseContainer, error) {
	flag, err := raw.LookupErr("multipleMeetings")
	if err != nil {
		return nil, &DeserializationError{Field: "multipleMeetings", Err: err}
	}
	multipleMeetings, ok := flag.BooleanOK()
	if !ok {
		return nil, &DeserializationError{
			Field: "multipleMeetings",
			Err:   fmt.Errorf("expected boolean, got %s", flag.Type),
		}
	}
	for _, field := range SectionFields {
		value, err := raw.LookupErr(field)
		if err != nil {
			return nil, &DeserializationError{Field: field, Err: err}
		}
		if value.Type == bsontype.Null && !nullableSectionFields[field] {
			return nil, &DeserializationError{Field: field, Err: fmt.Errorf("null value")}
		}
	}

	if multipleMeetings {
		var course *CourseWithMultipleMeetings
		if err := bson.Unmarshal(raw, &course); err != nil {
			return nil, &DeserializationError{Err: err}
		}
		return NewMultipleMeetingsContainer(course), nil
	}
	var course *CourseWithOneMeeting
	if err := bson.Unmarshal(raw, &course); err != nil {
		return nil, &DeserializationError{Err: err}
	}
	return NewSingleMeetingContainer(course), nil
}

type SectionModel struct {
	*Model
}

// EnsureIndexes creates the text index used by name searches.
func (section *SectionModel) EnsureIndexes(ctx context.Context) error {
	_, err := section.Use().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{
				Key:   "name",
				Value: "text",
			},
		},
	})
	return err
}

func NewSectionModel(conn *db.MongoConnection, collectionName string) *SectionModel {
	if collectionName == "" {
		collectionName = SECTION_COLLECTION
	}
	return &SectionModel{
		Model: newModel(conn, collectionName),
	}
}
