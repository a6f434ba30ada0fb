package query

import (
	"cmp"
	"slices"
	"time"

	"github.com/GregMSThompson/receipts-backend/internal/dto"
	"github.com/GregMSThompson/receipts-backend/internal/models"
)

// TopLocationsLimit caps the TopLocations view.
const TopLocationsLimit = 5

type typeBucket struct {
	count int
	total float64
}

// bucketByType groups by expense type. The result is indexed by ordinal;
// receipts with an undeclared type are skipped.
func bucketByType(receipts []models.Receipt) []typeBucket {
	buckets := make([]typeBucket, len(models.ExpenseTypes))
	for _, r := range receipts {
		if !r.ExpenseType.Valid() {
			continue
		}
		b := &buckets[r.ExpenseType]
		b.count++
		b.total += r.Sum
	}
	return buckets
}

// CountByExpenseType counts receipts per expense type in ordinal order.
// Types without receipts are omitted.
func CountByExpenseType(receipts []models.Receipt) []dto.ExpenseTypeCount {
	out := []dto.ExpenseTypeCount{}
	for i, b := range bucketByType(receipts) {
		if b.count == 0 {
			continue
		}
		out = append(out, dto.ExpenseTypeCount{ExpenseType: models.ExpenseTypes[i], Count: b.count})
	}
	return out
}

// AverageSumByExpenseType is the mean sum per expense type in ordinal order.
func AverageSumByExpenseType(receipts []models.Receipt) []dto.ExpenseTypeAverage {
	out := []dto.ExpenseTypeAverage{}
	for i, b := range bucketByType(receipts) {
		if b.count == 0 {
			continue
		}
		out = append(out, dto.ExpenseTypeAverage{
			ExpenseType: models.ExpenseTypes[i],
			AverageSum:  b.total / float64(b.count),
		})
	}
	return out
}

type yearMonth struct {
	year  int
	month time.Month
}

// TotalSumByMonth sums receipts per calendar month of their own date,
// ascending by year then month.
func TotalSumByMonth(receipts []models.Receipt) []dto.MonthlyTotal {
	totals := map[yearMonth]float64{}
	for _, r := range receipts {
		key := yearMonth{year: r.Date.Year(), month: r.Date.Month()}
		totals[key] += r.Sum
	}

	out := make([]dto.MonthlyTotal, 0, len(totals))
	for key, total := range totals {
		out = append(out, dto.MonthlyTotal{Year: key.year, Month: int(key.month), TotalSum: total})
	}
	slices.SortFunc(out, func(a, b dto.MonthlyTotal) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		return cmp.Compare(a.Month, b.Month)
	})
	return out
}

// ReceiptsPerDayOfWeek counts receipts per weekday, Sunday first.
func ReceiptsPerDayOfWeek(receipts []models.Receipt) []dto.DayOfWeekCount {
	var counts [7]int
	for _, r := range receipts {
		counts[r.Date.Weekday()]++
	}

	out := []dto.DayOfWeekCount{}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if counts[wd] == 0 {
			continue
		}
		out = append(out, dto.DayOfWeekCount{DayOfWeek: models.Weekday(wd), Count: counts[wd]})
	}
	return out
}

// TopLocations returns the most frequent locations by exact string match,
// descending by count. Ties keep first-encountered order.
func TopLocations(receipts []models.Receipt) []dto.LocationCount {
	index := map[string]int{}
	out := []dto.LocationCount{}
	for _, r := range receipts {
		i, ok := index[r.Location]
		if !ok {
			i = len(out)
			index[r.Location] = i
			out = append(out, dto.LocationCount{Location: r.Location})
		}
		out[i].Count++
	}

	slices.SortStableFunc(out, func(a, b dto.LocationCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if len(out) > TopLocationsLimit {
		out = out[:TopLocationsLimit]
	}
	return out
}

// Summary computes every view over the same receipts.
func Summary(receipts []models.Receipt) dto.StatsSummary {
	return dto.StatsSummary{
		TotalCount:              len(receipts),
		CountByExpenseType:      CountByExpenseType(receipts),
		TotalSumByMonth:         TotalSumByMonth(receipts),
		AverageSumByExpenseType: AverageSumByExpenseType(receipts),
		ReceiptsPerDayOfWeek:    ReceiptsPerDayOfWeek(receipts),
		TopLocations:            TopLocations(receipts),
	}
}
