package controllers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/CPU-commits/Intranet_BCourseStats/db"
	"github.com/CPU-commits/Intranet_BCourseStats/forms"
	"github.com/CPU-commits/Intranet_BCourseStats/models"
	"github.com/CPU-commits/Intranet_BCourseStats/res"
	"github.com/CPU-commits/Intranet_BCourseStats/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

type StatsService interface {
	EnrollmentRate(ctx context.Context, form forms.EnrollmentRateForm) (*models.EnrollmentRate, *res.ErrorRes)
	CourseStatistics(ctx context.Context, form forms.CourseStatisticsForm) ([]services.SectionStatistics, *res.ErrorRes)
	ExportEnrollmentRate(ctx context.Context, form forms.EnrollmentExportForm, w io.Writer) *res.ErrorRes
}

type DataService interface {
	GetData(ctx context.Context) ([]bson.M, *res.ErrorRes)
	InsertData(ctx context.Context, document map[string]interface{}) (interface{}, *res.ErrorRes)
}

type StatsController struct {
	statsService StatsService
	dataService  DataService
}

// GetEnrollmentRate godoc
// @Summary     Get enrollment rate
// @Description Capacity of a section and its seat snapshots in [startingDate, startingDate+numDays)
// @Tags        stats
// @Produce     json
// @Param       semester     query    string true "Semester"
// @Param       year         query    int    true "Year"
// @Param       classNumber  query    int    true "Class number"
// @Param       startingDate query    string true "First day (YYYY-MM-DD, UTC)"
// @Param       numDays      query    int    true "Window length in days"
// @Success     200          {object} models.EnrollmentRate
// @Failure     400          {object} res.Response{}
// @Failure     404          {object} res.Response{} "Section not found"
// @Failure     409          {object} res.Response{} "Class number matches more than one section"
// @Failure     500          {object} res.Response{} "Store error"
// @Router      /stats/enrollment-rate [get]
func (controller *StatsController) GetEnrollmentRate(c *gin.Context) {
	var form forms.EnrollmentRateForm
	if err := c.ShouldBindQuery(&form); err != nil {
		res.AbortWithError(c, res.NewValidationError(err))
		return
	}
	rate, errRes := controller.statsService.EnrollmentRate(db.Ctx, form)
	if errRes != nil {
		res.AbortWithError(c, errRes)
		return
	}
	c.JSON(http.StatusOK, rate)
}

// ExportEnrollmentRate godoc
// @Summary     Export enrollment rate
// @Description Enrollment series as an Excel workbook or a PDF table
// @Tags        stats
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce     application/pdf
// @Param       format query    string true "xlsx or pdf"
// @Success     200    {file}   file
// @Failure     400    {object} res.Response{}
// @Failure     404    {object} res.Response{} "Section not found"
// @Failure     409    {object} res.Response{} "Class number matches more than one section"
// @Failure     500    {object} res.Response{} "Store error"
// @Router      /stats/enrollment-rate/export [get]
func (controller *StatsController) ExportEnrollmentRate(c *gin.Context) {
	var form forms.EnrollmentExportForm
	if err := c.ShouldBindQuery(&form); err != nil {
		res.AbortWithError(c, res.NewValidationError(err))
		return
	}
	var buf bytes.Buffer
	if errRes := controller.statsService.ExportEnrollmentRate(db.Ctx, form, &buf); errRes != nil {
		res.AbortWithError(c, errRes)
		return
	}
	c.Header(
		"Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", services.ExportFileName(form)),
	)
	c.Data(http.StatusOK, services.ExportContentType(form.Format), buf.Bytes())
}

// GetCourseStatistics godoc
// @Summary     Get course statistics
// @Description Daily changes and weekly mean and variance of seats open for every section of a course
// @Tags        stats
// @Produce     json
// @Param       semester      query    string true "Semester"
// @Param       year          query    int    true "Year"
// @Param       subjectCode   query    string true "Subject code"
// @Param       catalogNumber query    string true "Catalog number"
// @Param       startingDate  query    string true "First day (YYYY-MM-DD, UTC)"
// @Param       numDays       query    int    true "Window length in days"
// @Success     200           {array}  services.SectionStatistics
// @Failure     400           {object} res.Response{}
// @Failure     404           {object} res.Response{} "No sections"
// @Failure     500           {object} res.Response{} "Store error"
// @Router      /stats/course-statistics [get]
func (controller *StatsController) GetCourseStatistics(c *gin.Context) {
	var form forms.CourseStatisticsForm
	if err := c.ShouldBindQuery(&form); err != nil {
		res.AbortWithError(c, res.NewValidationError(err))
		return
	}
	statistics, errRes := controller.statsService.CourseStatistics(db.Ctx, form)
	if errRes != nil {
		res.AbortWithError(c, errRes)
		return
	}
	c.JSON(http.StatusOK, statistics)
}

// GetData godoc
// @Summary     Get raw data
// @Tags        stats
// @Produce     json
// @Success     200 {array}  object
// @Failure     500 {object} res.Response{} "Store error"
// @Router      /stats/data [get]
func (controller *StatsController) GetData(c *gin.Context) {
	documents, errRes := controller.dataService.GetData(db.Ctx)
	if errRes != nil {
		res.AbortWithError(c, errRes)
		return
	}
	c.JSON(http.StatusOK, documents)
}

// InsertData godoc
// @Summary     Insert raw data
// @Tags        stats
// @Accept      json
// @Produce     json
// @Param       document body     object true "Any JSON object"
// @Success     200      {object} object{insertedId=string}
// @Failure     400      {object} res.Response{}
// @Failure     401      {object} res.Response{} "Unauthorized"
// @Failure     500      {object} res.Response{} "Store error"
// @Security    ApiKeyAuth
// @Router      /stats/data [post]
func (controller *StatsController) InsertData(c *gin.Context) {
	var document map[string]interface{}
	if err := c.ShouldBindJSON(&document); err != nil {
		res.AbortWithError(c, res.NewValidationError(err))
		return
	}
	if document == nil {
		res.AbortWithError(c, res.NewValidationError(errors.New("body must be a JSON object")))
		return
	}
	insertedID, errRes := controller.dataService.InsertData(db.Ctx, document)
	if errRes != nil {
		res.AbortWithError(c, errRes)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"insertedId": insertedID,
	})
}

func NewStatsController(statsService StatsService, dataService DataService) *StatsController {
	return &StatsController{
		statsService: statsService,
		dataService:  dataService,
	}
}
