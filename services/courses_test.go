package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/CPU-commits/Intranet_BCourseStats/cache"
	"github.com/CPU-commits/Intranet_BCourseStats/forms"
	"github.com/CPU-commits/Intranet_BCourseStats/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap/zaptest"
)

func newCoursesService(t *testing.T, sections, subjects *fakeCollection, store cache.Store) *CoursesService {
	return NewCoursesService(sections, subjects, store, zaptest.NewLogger(t))
}

func TestQueryHistoricalInstructors(t *testing.T) {
	tests := []struct {
		name       string
		documents  []interface{}
		want       []string
		wantStatus int
	}{
		{
			name: "placeholders removed and sorted",
			documents: []interface{}{
				bson.M{"instructors": bson.A{"Roxana Amed", "TBA", "-", "", "Mark Friedman", "X TBA"}},
			},
			want: []string{"Mark Friedman", "Roxana Amed"},
		},
		{
			name:       "no matching sections",
			documents:  []interface{}{},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "only placeholders",
			documents: []interface{}{
				bson.M{"instructors": bson.A{"TBA", "-"}},
			},
			wantStatus: http.StatusNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections := &fakeCollection{documents: tt.documents}
			service := newCoursesService(t, sections, &fakeCollection{}, nil)

			instructors, errRes := service.QueryHistoricalInstructors(context.Background(), forms.HistoricalInstructorsForm{
				SubjectCode:   "ECE",
				CatalogNumber: "421",
			})

			if tt.wantStatus != 0 {
				require.NotNil(t, errRes)
				assert.Equal(t, tt.wantStatus, errRes.StatusCode)
				return
			}
			require.Nil(t, errRes)
			assert.Equal(t, tt.want, instructors)
			require.Len(t, sections.pipelines, 1)
		})
	}
}

func TestQueryHistoricalInstructorsStoreError(t *testing.T) {
	sections := &fakeCollection{err: errors.New("server selection timeout")}
	service := newCoursesService(t, sections, &fakeCollection{}, nil)

	_, errRes := service.QueryHistoricalInstructors(context.Background(), forms.HistoricalInstructorsForm{
		SubjectCode:   "ECE",
		CatalogNumber: "421",
	})

	require.NotNil(t, errRes)
	assert.Equal(t, http.StatusInternalServerError, errRes.StatusCode)
	assert.EqualError(t, errRes, "server selection timeout")
}

func TestCourseSearch(t *testing.T) {
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	single := bson.M{
		"name":             "Digital Design",
		"subjectCode":      "ECE",
		"catalogNumber":    "421",
		"sectionType":      "LEC",
		"sectionCode":      "D",
		"classNumber":      5385,
		"capacity":         40,
		"multipleMeetings": false,
		"classroom":        "Frost North Studio 330",
		"instructor":       bson.A{"Roxana Amed"},
		"days":             bson.A{"Tuesday", "Thursday"},
		"timeStart":        day,
		"timeEnd":          day,
		"startDate":        day,
		"endDate":          day,
	}
	multiple := bson.M{
		"name":             "Digital Design Lab",
		"subjectCode":      "ECE",
		"catalogNumber":    "421",
		"sectionType":      "LAB",
		"sectionCode":      "E",
		"classNumber":      5386,
		"capacity":         20,
		"multipleMeetings": true,
		"classroom":        bson.A{"Stubblefield 204", "Stubblefield 205"},
		"instructor":       bson.A{bson.A{"Roxana Amed"}, bson.A{"Mark Friedman"}},
		"days":             bson.A{bson.A{"Monday"}, bson.A{"Wednesday"}},
		"timeStart":        bson.A{day, day},
		"timeEnd":          bson.A{day, day},
		"startDate":        bson.A{day, day},
		"endDate":          bson.A{day, day},
	}
	sections := &fakeCollection{documents: []interface{}{single, multiple}}
	service := newCoursesService(t, sections, &fakeCollection{}, nil)

	courses, errRes := service.CourseSearch(context.Background(), forms.CourseSearchForm{
		Semester:    "Spring",
		Year:        2025,
		SubjectCode: "ECE",
	})

	require.Nil(t, errRes)
	require.Len(t, courses, 2)
	require.NotNil(t, courses[0].CourseWithOneMeeting)
	require.NotNil(t, courses[1].CourseWithMultipleMeetings)
	assert.Equal(t, [][]string{{"Monday"}, {"Wednesday"}}, courses[1].CourseWithMultipleMeetings.Days)
	require.Len(t, sections.filters, 1)
	assert.Equal(t, "semester", sections.filters[0][0].Key)
}

func TestCourseSearchEmpty(t *testing.T) {
	service := newCoursesService(t, &fakeCollection{documents: []interface{}{}}, &fakeCollection{}, nil)

	courses, errRes := service.CourseSearch(context.Background(), forms.CourseSearchForm{
		Semester:    "Spring",
		Year:        2025,
		SubjectCode: "ZZZ",
	})

	require.Nil(t, errRes)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)
}

func TestCourseSearchMalformedDocument(t *testing.T) {
	broken := bson.M{"name": "Digital Design", "multipleMeetings": "no"}
	service := newCoursesService(t, &fakeCollection{documents: []interface{}{broken}}, &fakeCollection{}, nil)

	_, errRes := service.CourseSearch(context.Background(), forms.CourseSearchForm{
		Semester:    "Spring",
		Year:        2025,
		SubjectCode: "ECE",
	})

	require.NotNil(t, errRes)
	assert.Equal(t, http.StatusInternalServerError, errRes.StatusCode)
	var deserializationErr *models.DeserializationError
	assert.True(t, errors.As(errRes, &deserializationErr))
}

func TestGetSubjectsCached(t *testing.T) {
	subjects := &fakeCollection{documents: []interface{}{
		bson.M{"name": "Accounting", "code": "ACC", "semester": "Fall", "year": 2024},
		bson.M{"name": "Zoology", "code": "ZOO", "semester": "Fall", "year": 2024},
	}}
	service := newCoursesService(t, &fakeCollection{}, subjects, cache.NewMemoryStore())
	form := forms.SubjectsForm{Semester: "Fall", Year: 2024}

	first, errRes := service.GetSubjects(context.Background(), form)
	require.Nil(t, errRes)
	second, errRes := service.GetSubjects(context.Background(), form)
	require.Nil(t, errRes)

	assert.Equal(t, first, second)
	assert.Equal(t, "ACC", first[0].Code)
	assert.Len(t, subjects.filters, 1)
	assert.Equal(t, bson.D{{Key: "semester", Value: "Fall"}, {Key: "year", Value: 2024}}, subjects.filters[0])
}

func TestGetSubjectsCacheFailure(t *testing.T) {
	subjects := &fakeCollection{documents: []interface{}{}}
	service := newCoursesService(t, &fakeCollection{}, subjects, flakyStore{err: errors.New("redis down")})

	result, errRes := service.GetSubjects(context.Background(), forms.SubjectsForm{})

	require.Nil(t, errRes)
	assert.NotNil(t, result)
	assert.Empty(t, result)
	assert.Equal(t, bson.D{}, subjects.filters[0])
}

func TestCourseSearchNullInstructor(t *testing.T) {
	day := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	section := func(classNumber int, instructor interface{}) bson.M {
		return bson.M{
			"name":             "Independent Study",
			"subjectCode":      "ECE",
			"catalogNumber":    "379",
			"sectionType":      "IND",
			"sectionCode":      "A",
			"classNumber":      classNumber,
			"capacity":         5,
			"multipleMeetings": false,
			"classroom":        nil,
			"instructor":       instructor,
			"days":             bson.A{"TBA"},
			"timeStart":        day,
			"timeEnd":          day,
			"startDate":        day,
			"endDate":          day,
		}
	}
	sections := &fakeCollection{documents: []interface{}{
		section(6001, bson.A{"Roxana Amed"}),
		section(6002, nil),
		section(6003, bson.A{"Mark Friedman"}),
	}}
	service := newCoursesService(t, sections, &fakeCollection{}, nil)

	courses, errRes := service.CourseSearch(context.Background(), forms.CourseSearchForm{
		Semester:    "Spring",
		Year:        2025,
		SubjectCode: "ECE",
	})

	require.Nil(t, errRes)
	require.Len(t, courses, 3)
	assert.Nil(t, courses[1].CourseWithOneMeeting.Instructor)
	assert.Equal(t, 6002, courses[1].Section().ClassNumber)
	assert.Equal(t, []string{"Mark Friedman"}, courses[2].CourseWithOneMeeting.Instructor)
}
