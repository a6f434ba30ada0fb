package dto

import "github.com/GregMSThompson/receipts-backend/internal/models"

type ExpenseTypeCount struct {
	ExpenseType models.ExpenseType `json:"expenseType"`
	Count       int                `json:"count"`
}

type MonthlyTotal struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	TotalSum float64 `json:"totalSum"`
}

type ExpenseTypeAverage struct {
	ExpenseType models.ExpenseType `json:"expenseType"`
	AverageSum  float64            `json:"averageSum"`
}

type DayOfWeekCount struct {
	DayOfWeek models.Weekday `json:"dayOfWeek"`
	Count     int            `json:"count"`
}

type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// StatsSummary carries all five views computed over one snapshot.
type StatsSummary struct {
	TotalCount              int                  `json:"totalCount"`
	CountByExpenseType      []ExpenseTypeCount   `json:"countByExpenseType"`
	TotalSumByMonth         []MonthlyTotal       `json:"totalSumByMonth"`
	AverageSumByExpenseType []ExpenseTypeAverage `json:"averageSumByExpenseType"`
	ReceiptsPerDayOfWeek    []DayOfWeekCount     `json:"receiptsPerDayOfWeek"`
	TopLocations            []LocationCount      `json:"topLocations"`
}
