package forms

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type HistoricalInstructorsForm struct {
	SubjectCode   string `form:"subjectCode" binding:"required,notblank" example:"ECE"`
	CatalogNumber string `form:"catalogNumber" binding:"required,notblank" example:"421"`
}

func (f *HistoricalInstructorsForm) Normalize() {
	f.SubjectCode = strings.TrimSpace(f.SubjectCode)
	f.CatalogNumber = strings.TrimSpace(f.CatalogNumber)
}

type SubjectsForm struct {
	Semester string `form:"semester" example:"Spring"`
	Year     int    `form:"year" binding:"omitempty,min=0" example:"2025"`
}

type CourseSearchForm struct {
	Semester      string     `form:"semester" binding:"required,notblank" example:"Spring"`
	Year          int        `form:"year" binding:"required" example:"2025"`
	SubjectCode   string     `form:"subjectCode" binding:"required,notblank" example:"ECE"`
	CatalogNumber string     `form:"catalogNumber" example:"421"`
	Name          string     `form:"name" example:"Digital"`
	Days          []string   `form:"days" binding:"omitempty,dive,weekday"`
	StartDate     *time.Time `form:"startDate" time_format:"2006-01-02" time_utc:"1"`
	EndDate       *time.Time `form:"endDate" time_format:"2006-01-02" time_utc:"1"`
	Instructor    string     `form:"instructor" example:"Mark Friedman"`
}

var weekdays = map[string]bool{
	"Monday":    true,
	"Tuesday":   true,
	"Wednesday": true,
	"Thursday":  true,
	"Friday":    true,
	"Saturday":  true,
	"Sunday":    true,
	"TBA":       true,
}

func splitList(values []string) []string {
	var result []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				result = append(result, part)
			}
		}
	}
	return result
}

// Weekday accepts a full day name or a comma separated list of them
var Weekday validator.Func = func(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	for _, day := range splitList([]string{value}) {
		if !weekdays[day] {
			return false
		}
	}
	return true
}

// Normalize trims free text, expands comma separated day lists and turns
// zero dates into absent ones.
func (f *CourseSearchForm) Normalize() {
	f.Semester = strings.TrimSpace(f.Semester)
	f.SubjectCode = strings.TrimSpace(f.SubjectCode)
	f.CatalogNumber = strings.TrimSpace(f.CatalogNumber)
	f.Name = strings.TrimSpace(f.Name)
	f.Instructor = strings.TrimSpace(f.Instructor)
	f.Days = splitList(f.Days)
	if f.StartDate != nil && f.StartDate.IsZero() {
		f.StartDate = nil
	}
	if f.EndDate != nil && f.EndDate.IsZero() {
		f.EndDate = nil
	}
}
