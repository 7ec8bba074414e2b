package services

import (
	"math"
	"sort"

	"github.com/CPU-commits/Intranet_BCourseStats/models"
	"gonum.org/v1/gonum/stat"
)

type WeeklyStatistics struct {
	Year              int     `json:"year" example:"2025"`
	WeekNumber        int     `json:"weekNumber" example:"3"`
	Samples           int     `json:"samples" example:"7"`
	MeanSeatsOpen     float64 `json:"meanSeatsOpen" example:"-28.5"`
	VarianceSeatsOpen float64 `json:"varianceSeatsOpen" example:"2.25"`
}

type SectionStatistics struct {
	ClassNumber      int                `json:"classNumber" example:"5385"`
	SectionCode      string             `json:"sectionCode" example:"D"`
	SectionType      string             `json:"sectionType" example:"LEC"`
	Capacity         int                `json:"capacity" example:"40"`
	DailyChanges     []float64          `json:"dailyChanges"`
	WeeklyStatistics []WeeklyStatistics `json:"weeklyStatistics"`
}

func sortedSeries(series []models.EnrollmentPoint) []models.EnrollmentPoint {
	sorted := make([]models.EnrollmentPoint, len(series))
	copy(sorted, series)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DateTimeRetrieved.Before(sorted[j].DateTimeRetrieved)
	})
	return sorted
}

// SeatsOpen is seatsAvailable minus capacity for every point in retrieval
// order.
func SeatsOpen(rate *models.EnrollmentRate) []float64 {
	series := sortedSeries(rate.Series)
	seatsOpen := make([]float64, len(series))
	for i, point := range series {
		seatsOpen[i] = float64(point.SeatsAvailable - rate.Capacity)
	}
	return seatsOpen
}

// DailyChanges is the difference in seats open between consecutive
// snapshots.
func DailyChanges(rate *models.EnrollmentRate) []float64 {
	seatsOpen := SeatsOpen(rate)
	changes := make([]float64, 0, len(seatsOpen))
	for i := 1; i < len(seatsOpen); i++ {
		changes = append(changes, seatsOpen[i]-seatsOpen[i-1])
	}
	return changes
}

// CalculateWeeklyStatistics groups seats open by ISO week, in order of first
// appearance.
func CalculateWeeklyStatistics(rate *models.EnrollmentRate) []WeeklyStatistics {
	type isoWeek struct {
		year int
		week int
	}

	var order []isoWeek
	groups := make(map[isoWeek][]float64)
	for _, point := range sortedSeries(rate.Series) {
		year, week := point.DateTimeRetrieved.UTC().ISOWeek()
		key := isoWeek{year: year, week: week}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], float64(point.SeatsAvailable-rate.Capacity))
	}

	weekly := make([]WeeklyStatistics, 0, len(order))
	for _, key := range order {
		values := groups[key]
		variance := stat.Variance(values, nil)
		// Single sample
		if math.IsNaN(variance) {
			variance = 0
		}
		weekly = append(weekly, WeeklyStatistics{
			Year:              key.year,
			WeekNumber:        key.week,
			Samples:           len(values),
			MeanSeatsOpen:     stat.Mean(values, nil),
			VarianceSeatsOpen: variance,
		})
	}
	return weekly
}

func NewSectionStatistics(section models.Course, rate *models.EnrollmentRate) SectionStatistics {
	return SectionStatistics{
		ClassNumber:      section.ClassNumber,
		SectionCode:      section.SectionCode,
		SectionType:      section.SectionType,
		Capacity:         rate.Capacity,
		DailyChanges:     DailyChanges(rate),
		WeeklyStatistics: CalculateWeeklyStatistics(rate),
	}
}
