package services

import (
	"context"
	"fmt"
	"time"

	"github.com/CPU-commits/Intranet_BCourseStats/db"
	"github.com/CPU-commits/Intranet_BCourseStats/forms"
	"github.com/CPU-commits/Intranet_BCourseStats/models"
	"github.com/CPU-commits/Intranet_BCourseStats/repositories"
	"github.com/CPU-commits/Intranet_BCourseStats/res"
	"github.com/CPU-commits/Intranet_BCourseStats/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type StatsService struct {
	sections     models.Collection
	tsCollection string
	logger       *zap.Logger
}

func (s *StatsService) enrollmentRate(
	ctx context.Context,
	semester string,
	year,
	classNumber int,
	start,
	end time.Time,
) (*models.EnrollmentRate, *res.ErrorRes) {
	cursor, err := s.sections.Aggreagate(
		ctx,
		repositories.EnrollmentRatePipeline(semester, year, classNumber, start, end, s.tsCollection),
		db.AggregateOptions(),
	)
	if err != nil {
		return nil, storeError(s.logger, "enrollment_rate", err)
	}
	rates, err := decodeAll[models.EnrollmentRate](ctx, cursor)
	if err != nil {
		return nil, storeError(s.logger, "enrollment_rate", err)
	}

	if len(rates) == 0 {
		return nil, res.NewNotFoundError(fmt.Sprintf(
			"No section found for class number %d in %s %d",
			classNumber,
			semester,
			year,
		))
	}
	if len(rates) > 1 {
		s.logger.Warn("duplicated class number",
			zap.String("semester", semester),
			zap.Int("year", year),
			zap.Int("classNumber", classNumber),
		)
		return nil, res.NewConflictError(fmt.Sprintf(
			"More than one section found for class number %d in %s %d",
			classNumber,
			semester,
			year,
		))
	}
	rate := rates[0]
	if rate.Series == nil {
		rate.Series = []models.EnrollmentPoint{}
	}
	return &rate, nil
}

// EnrollmentRate returns the capacity of one section and its seat snapshots
// retrieved inside the requested window, oldest first.
func (s *StatsService) EnrollmentRate(
	ctx context.Context,
	form forms.EnrollmentRateForm,
) (*models.EnrollmentRate, *res.ErrorRes) {
	start, end := form.Window()
	return s.enrollmentRate(ctx, form.Semester, form.Year, form.ClassNumber, start, end)
}

func (s *StatsService) findSections(
	ctx context.Context,
	form forms.CourseStatisticsForm,
) ([]models.Course, *res.ErrorRes) {
	filter := repositories.CourseSearchFilter(forms.CourseSearchForm{
		Semester:      form.Semester,
		Year:          form.Year,
		SubjectCode:   form.SubjectCode,
		CatalogNumber: form.CatalogNumber,
	})
	findOptions := options.Find().
		SetSort(bson.D{{Key: "classNumber", Value: 1}}).
		SetProjection(bson.D{
			{Key: "_id", Value: 0},
			{Key: "classNumber", Value: 1},
			{Key: "sectionCode", Value: 1},
			{Key: "sectionType", Value: 1},
			{Key: "capacity", Value: 1},
		})

	cursor, err := s.sections.GetAll(ctx, filter, db.FindOptions(), findOptions)
	if err != nil {
		return nil, storeError(s.logger, "course_statistics", err)
	}
	sections, err := decodeAll[models.Course](ctx, cursor)
	if err != nil {
		return nil, storeError(s.logger, "course_statistics", err)
	}
	return sections, nil
}

// CourseStatistics computes seat statistics for every section of a course.
func (s *StatsService) CourseStatistics(
	ctx context.Context,
	form forms.CourseStatisticsForm,
) ([]SectionStatistics, *res.ErrorRes) {
	sections, errRes := s.findSections(ctx, form)
	if errRes != nil {
		return nil, errRes
	}
	if len(sections) == 0 {
		return nil, res.NewNotFoundError("No sections found for the given course.")
	}

	start := form.StartingDate
	end := start.AddDate(0, 0, form.NumDays)
	statistics := make([]SectionStatistics, len(sections))
	errRes = utils.Concurrency(
		ctx,
		SECTIONS_SEM_WEIGHT,
		len(sections),
		func(ctx context.Context, index int, setError func(errRes *res.ErrorRes)) {
			section := sections[index]
			rate, errRes := s.enrollmentRate(
				ctx,
				form.Semester,
				form.Year,
				section.ClassNumber,
				start,
				end,
			)
			if errRes != nil {
				setError(errRes)
				return
			}
			statistics[index] = NewSectionStatistics(section, rate)
		},
	)
	if errRes != nil {
		return nil, errRes
	}
	return statistics, nil
}

func NewStatsService(
	sections models.Collection,
	tsCollection string,
	logger *zap.Logger,
) *StatsService {
	if tsCollection == "" {
		tsCollection = models.SNAPSHOT_COLLECTION
	}
	return &StatsService{
		sections:     sections,
		tsCollection: tsCollection,
		logger:       logger.Named("stats"),
	}
}
