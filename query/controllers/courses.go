package controllers

import (
	"context"
	"net/http"

	"github.com/CPU-commits/Intranet_BCourseStats/db"
	"github.com/CPU-commits/Intranet_BCourseStats/forms"
	"github.com/CPU-commits/Intranet_BCourseStats/models"
	"github.com/CPU-commits/Intranet_BCourseStats/res"
	"github.com/gin-gonic/gin"
)

type CoursesService interface {
	QueryHistoricalInstructors(ctx context.Context, form forms.HistoricalInstructorsForm) ([]string, *res.ErrorRes)
	CourseSearch(ctx context.Context, form forms.CourseSearchForm) ([]*models.CourseContainer, *res.ErrorRes)
	GetSubjects(ctx context.Context, form forms.SubjectsForm) ([]models.CourseSubject, *res.ErrorRes)
}

type CoursesController struct {
	coursesService CoursesService
}

// GetHistoricalInstructors godoc
// @Summary     Get historical instructors
// @Description Every distinct instructor that has taught the course, placeholders excluded
// @Tags        courses
// @Accept      json
// @Produce     json
// @Param       subjectCode   query    string true "Subject code"
// @Param       catalogNumber query    string true "Catalog number"
// @Success     200           {array}  string
// @Failure     400           {object} res.Response{} "Missing parameters"
// @Failure     404           {object} res.Response{} "No instructors found"
// @Failure     500           {object} res.Response{} "Store error"
// @Router      /courses/historical-instructors [get]
func (controller *CoursesController) GetHistoricalInstructors(c *gin.Context) {
	var form forms.HistoricalInstructorsForm
	if err := c.ShouldBindQuery(&form); err != nil {
		res.AbortWithError(c, res.NewValidationError(err))
		return
	}
	form.Normalize()
	instructors, errRes := controller.coursesService.QueryHistoricalInstructors(db.Ctx, form)
	if errRes != nil {
		res.AbortWithError(c, errRes)
		return
	}
	c.JSON(http.StatusOK, instructors)
}

// CourseSearch godoc
// @Summary     Search course sections
// @Description Sections of a subject in a term, narrowed by the optional criteria
// @Tags        courses
// @Accept      json
// @Produce     json
// @Param       semester      query    string true  "Semester"
// @Param       year          query    int    true  "Year"
// @Param       subjectCode   query    string true  "Subject code"
// @Param       catalogNumber query    string false "Catalog number"
// @Param       name          query    string false "Text search on the course name"
// @Param       days          query    string false "Comma separated weekdays"
// @Param       startDate     query    string false "Sections starting on or after (YYYY-MM-DD)"
// @Param       endDate       query    string false "Sections ending on or before (YYYY-MM-DD)"
// @Param       instructor    query    string false "Exact instructor name"
// @Success     200           {array}  models.CourseContainer
// @Failure     400           {object} res.Response{}
// @Failure     500           {object} res.Response{} "Store error"
// @Router      /courses/course-search [get]
func (controller *CoursesController) CourseSearch(c *gin.Context) {
	var form forms.CourseSearchForm
	if err := c.ShouldBindQuery(&form); err != nil {
		res.AbortWithError(c, res.NewValidationError(err))
		return
	}
	form.Normalize()

	courses, errRes := controller.coursesService.CourseSearch(db.Ctx, form)
	if errRes != nil {
		res.AbortWithError(c, errRes)
		return
	}
	c.JSON(http.StatusOK, courses)
}

// GetSubjects godoc
// @Summary     List subjects
// @Description Subjects sorted by name, optionally for one term
// @Tags        courses
// @Produce     json
// @Param       semester query    string false "Semester"
// @Param       year     query    int    false "Year"
// @Success     200      {array}  models.CourseSubject
// @Failure     400      {object} res.Response{}
// @Failure     500      {object} res.Response{} "Store error"
// @Router      /courses/subjects [get]
func (controller *CoursesController) GetSubjects(c *gin.Context) {
	var form forms.SubjectsForm
	if err := c.ShouldBindQuery(&form); err != nil {
		res.AbortWithError(c, res.NewValidationError(err))
		return
	}
	subjects, errRes := controller.coursesService.GetSubjects(db.Ctx, form)
	if errRes != nil {
		res.AbortWithError(c, errRes)
		return
	}
	c.JSON(http.StatusOK, subjects)
}

func NewCoursesController(coursesService CoursesService) *CoursesController {
	return &CoursesController{
		coursesService: coursesService,
	}
}
