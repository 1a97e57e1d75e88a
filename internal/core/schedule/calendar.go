package schedule

import (
	"time"

	"github.com/asservice/shiftboard/internal/core/domain"
)

// Day is one cell of a month grid. Blank cells pad the first week and have
// an empty Date.
type Day struct {
	Date      string            `json:"date,omitempty"`
	WorkItems []domain.WorkItem `json:"work_items,omitempty"`
}

// Month is a Sunday-first calendar grid.
type Month struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Days  []Day `json:"days"`
}

// CalendarMonth lays out the given month: one blank cell per weekday before
// the 1st, then a cell per day holding that day's work items in store order.
func CalendarMonth(snap domain.Snapshot, year int, month time.Month) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysIn := first.AddDate(0, 1, -1).Day()
	lead := int(first.Weekday())

	byDate := make(map[string][]domain.WorkItem)
	for _, w := range snap.WorkItems {
		byDate[w.Date] = append(byDate[w.Date], w)
	}

	days := make([]Day, 0, lead+daysIn)
	for i := 0; i < lead; i++ {
		days = append(days, Day{})
	}
	for d := 1; d <= daysIn; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, time.UTC).Format(domain.DateLayout)
		days = append(days, Day{Date: date, WorkItems: byDate[date]})
	}
	return Month{Year: year, Month: int(month), Days: days}
}
