package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/CPU-commits/Intranet_BCourseStats/forms"
	"github.com/CPU-commits/Intranet_BCourseStats/models"
	"github.com/CPU-commits/Intranet_BCourseStats/res"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const EXPORT_SHEET = "Enrollment"

const EXPORT_DATE_FORMAT = "2006-01-02 15:04"

var exportHeaders = []string{"Date retrieved", "Seats available", "Seats taken", "Capacity"}

func exportRow(rate *models.EnrollmentRate, point models.EnrollmentPoint) []interface{} {
	return []interface{}{
		point.DateTimeRetrieved.UTC().Format(EXPORT_DATE_FORMAT),
		point.SeatsAvailable,
		rate.Capacity - point.SeatsAvailable,
		rate.Capacity,
	}
}

// ExportFileName names the attachment for the given form.
func ExportFileName(form forms.EnrollmentExportForm) string {
	return fmt.Sprintf(
		"enrollment-%d-%s-%d-%s.%s",
		form.ClassNumber,
		form.Semester,
		form.Year,
		form.StartingDate.Format("20060102"),
		form.Format,
	)
}

func ExportContentType(format string) string {
	if format == forms.EXPORT_PDF {
		return "application/pdf"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func writeEnrollmentExcel(rate *models.EnrollmentRate, w io.Writer) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", EXPORT_SHEET); err != nil {
		return err
	}
	if err := file.SetSheetRow(EXPORT_SHEET, "A1", &exportHeaders); err != nil {
		return err
	}
	for i, point := range rate.Series {
		row := exportRow(rate, point)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(EXPORT_SHEET, cell, &row); err != nil {
			return err
		}
	}
	if err := file.SetColWidth(EXPORT_SHEET, "A", "D", 18); err != nil {
		return err
	}
	return file.Write(w)
}

func writeEnrollmentPDF(form forms.EnrollmentExportForm, rate *models.EnrollmentRate, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.AddPage()

	title := fmt.Sprintf(
		"Enrollment - class %d - %s %d",
		form.ClassNumber,
		form.Semester,
		form.Year,
	)
	start, end := form.Window()
	window := fmt.Sprintf(
		"From %s to %s",
		start.Format("2006-01-02"),
		end.AddDate(0, 0, -1).Format("2006-01-02"),
	)
	pdf.Text(10, 12, title)
	pdf.Text(10, 17, window)
	// Footer
	_, height := pdf.GetPageSize()
	pdf.Text(10, height-8, fmt.Sprintf("Issued %s", time.Now().UTC().Format("2006-01-02")))

	// Table
	widths := []float64{50, 35, 35, 35}
	pdf.SetXY(10, 25)
	for i, header := range exportHeaders {
		pdf.CellFormat(widths[i], 6, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	for _, point := range rate.Series {
		pdf.SetX(10)
		for i, value := range exportRow(rate, point) {
			pdf.CellFormat(widths[i], 6, fmt.Sprint(value), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
	return pdf.Output(w)
}

// ExportEnrollmentRate writes the enrollment series in the requested format.
func (s *StatsService) ExportEnrollmentRate(
	ctx context.Context,
	form forms.EnrollmentExportForm,
	w io.Writer,
) *res.ErrorRes {
	rate, errRes := s.EnrollmentRate(ctx, form.EnrollmentRateForm)
	if errRes != nil {
		return errRes
	}

	var err error
	switch form.Format {
	case forms.EXPORT_PDF:
		err = writeEnrollmentPDF(form, rate, w)
	case forms.EXPORT_XLSX:
		err = writeEnrollmentExcel(rate, w)
	default:
		return res.NewValidationError(fmt.Errorf("unsupported export format %q", form.Format))
	}
	if err != nil {
		s.logger.Error("export failed", zap.String("format", form.Format), zap.Error(err))
		return &res.ErrorRes{
			Err:        err,
			StatusCode: http.StatusInternalServerError,
		}
	}
	return nil
}
