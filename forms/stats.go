package forms

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	EXPORT_XLSX = "xlsx"
	EXPORT_PDF  = "pdf"
)

type EnrollmentRateForm struct {
	Semester     string    `form:"semester" binding:"required,notblank" example:"Spring"`
	Year         int       `form:"year" binding:"required" example:"2025"`
	ClassNumber  int       `form:"classNumber" binding:"required" example:"5385"`
	StartingDate time.Time `form:"startingDate" binding:"required" time_format:"2006-01-02" time_utc:"1"`
	NumDays      int       `form:"numDays" binding:"required,min=1" example:"7"`
}

// Window returns the half open retrieval window [start, start+numDays).
func (f *EnrollmentRateForm) Window() (time.Time, time.Time) {
	return f.StartingDate, f.StartingDate.AddDate(0, 0, f.NumDays)
}

type EnrollmentExportForm struct {
	EnrollmentRateForm
	Format string `form:"format" binding:"required,exportFormat" example:"xlsx"`
}

type CourseStatisticsForm struct {
	Semester      string    `form:"semester" binding:"required,notblank" example:"Spring"`
	Year          int       `form:"year" binding:"required" example:"2025"`
	SubjectCode   string    `form:"subjectCode" binding:"required,notblank" example:"ECE"`
	CatalogNumber string    `form:"catalogNumber" binding:"required,notblank" example:"421"`
	StartingDate  time.Time `form:"startingDate" binding:"required" time_format:"2006-01-02" time_utc:"1"`
	NumDays       int       `form:"numDays" binding:"required,min=1" example:"28"`
}

var ExportFormat validator.Func = func(fl validator.FieldLevel) bool {
	if fl.Field().Interface() == EXPORT_XLSX {
		return true
	}
	if fl.Field().Interface() == EXPORT_PDF {
		return true
	}
	return false
}
