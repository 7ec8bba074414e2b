package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/CPU-commits/Intranet_BCourseStats/cache"
	"github.com/CPU-commits/Intranet_BCourseStats/db"
	"github.com/CPU-commits/Intranet_BCourseStats/forms"
	"github.com/CPU-commits/Intranet_BCourseStats/funct"
	"github.com/CPU-commits/Intranet_BCourseStats/models"
	"github.com/CPU-commits/Intranet_BCourseStats/repositories"
	"github.com/CPU-commits/Intranet_BCourseStats/res"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const SUBJECTS_CACHE_TTL = 10 * time.Minute

type CoursesService struct {
	sections models.Collection
	subjects models.Collection
	cache    cache.Store
	logger   *zap.Logger
}

func isPlaceholder(instructor string) bool {
	if instructor == "" {
		return true
	}
	return funct.Some(repositories.PlaceholderInstructors, func(x string) bool {
		return x == instructor
	})
}

// QueryHistoricalInstructors lists every distinct instructor that has
// taught the course, placeholders excluded, in ascending order.
func (c *CoursesService) QueryHistoricalInstructors(
	ctx context.Context,
	form forms.HistoricalInstructorsForm,
) ([]string, *res.ErrorRes) {
	cursor, err := c.sections.Aggreagate(
		ctx,
		repositories.HistoricalInstructorsPipeline(form.SubjectCode, form.CatalogNumber),
		db.AggregateOptions(),
	)
	if err != nil {
		return nil, storeError(c.logger, "historical_instructors", err)
	}
	groups, err := decodeAll[struct {
		Instructors []string `bson:"instructors"`
	}](ctx, cursor)
	if err != nil {
		return nil, storeError(c.logger, "historical_instructors", err)
	}

	var instructors []string
	for _, group := range groups {
		instructors = append(instructors, funct.Filter(group.Instructors, func(x string) bool {
			return !isPlaceholder(x)
		})...)
	}
	if len(instructors) == 0 {
		return nil, res.NewNotFoundError("No instructors found for the given course.")
	}
	sort.Strings(instructors)
	return instructors, nil
}

func (c *CoursesService) CourseSearch(
	ctx context.Context,
	form forms.CourseSearchForm,
) ([]*models.CourseContainer, *res.ErrorRes) {
	cursor, err := c.sections.GetAll(
		ctx,
		repositories.CourseSearchFilter(form),
		db.FindOptions(),
		repositories.CourseSearchOptions(),
	)
	if err != nil {
		return nil, storeError(c.logger, "course_search", err)
	}
	raws, err := decodeAll[bson.Raw](ctx, cursor)
	if err != nil {
		return nil, storeError(c.logger, "course_search", err)
	}
	courses, err := funct.Map(raws, models.NormalizeSection)
	if err != nil {
		return nil, storeError(c.logger, "course_search", err)
	}
	return courses, nil
}

func subjectsCacheKey(form forms.SubjectsForm) string {
	return fmt.Sprintf("subjects:%s:%d", form.Semester, form.Year)
}

func (c *CoursesService) GetSubjects(
	ctx context.Context,
	form forms.SubjectsForm,
) ([]models.CourseSubject, *res.ErrorRes) {
	key := subjectsCacheKey(form)
	var subjects []models.CourseSubject
	err := c.cache.Get(ctx, key, &subjects)
	if err == nil && subjects != nil {
		return subjects, nil
	}
	if err != nil && !errors.Is(err, cache.ErrMiss) {
		c.logger.Warn("subjects cache read failed", zap.String("key", key), zap.Error(err))
	}

	cursor, err := c.subjects.GetAll(
		ctx,
		repositories.SubjectsFilter(form),
		db.FindOptions(),
		repositories.SubjectsOptions(),
	)
	if err != nil {
		return nil, storeError(c.logger, "subjects", err)
	}
	subjects, err = decodeAll[models.CourseSubject](ctx, cursor)
	if err != nil {
		return nil, storeError(c.logger, "subjects", err)
	}
	if err := c.cache.Set(ctx, key, subjects, SUBJECTS_CACHE_TTL); err != nil {
		c.logger.Warn("subjects cache write failed", zap.String("key", key), zap.Error(err))
	}
	return subjects, nil
}

func NewCoursesService(
	sections models.Collection,
	subjects models.Collection,
	store cache.Store,
	logger *zap.Logger,
) *CoursesService {
	if store == nil {
		store = cache.NopStore{}
	}
	return &CoursesService{
		sections: sections,
		subjects: subjects,
		cache:    store,
		logger:   logger.Named("courses"),
	}
}
