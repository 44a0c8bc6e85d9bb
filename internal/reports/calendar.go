package reports

import (
	"time"

	"github.com/AndreyLuiz0/mycashnest/internal/models"
)

// calendarCells is 6 weeks of 7 days, Sunday-first.
const calendarCells = 42

// CalendarDay is one cell of the month grid.
type CalendarDay struct {
	Day            int    `json:"day"`
	Date           string `json:"date"` // YYYY-MM-DD
	Active         bool   `json:"active"`
	IsToday        bool   `json:"isToday"`
	IsCurrentMonth bool   `json:"isCurrentMonth"`
}

// DateRange is an inclusive period selection.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// SelectRange builds the inclusive range of a two-click selection,
// swapping the endpoints when the second click precedes the first.
func SelectRange(first, second time.Time) DateRange {
	if second.Before(first) {
		first, second = second, first
	}
	return DateRange{Start: first, End: second}
}

// Contains reports whether the day d falls inside the range, endpoints included.
func (r DateRange) Contains(d time.Time) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// FilterByRange returns the rows whose date falls inside the range.
// Undated rows never match.
func FilterByRange(transactions []models.TransactionDB, r DateRange) []models.TransactionDB {
	filtered := make([]models.TransactionDB, 0, len(transactions))
	for _, t := range transactions {
		d, ok := parseDate(t.Date)
		if !ok {
			continue
		}
		if r.Contains(d) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// MonthGrid builds the 42-cell Sunday-first calendar for the given month,
// marking days on which the user has at least one transaction.
func MonthGrid(transactions []models.TransactionDB, year int, month time.Month, today time.Time) []CalendarDay {
	activeDays := map[int]bool{}
	for _, t := range transactions {
		d, ok := parseDate(t.Date)
		if !ok {
			continue
		}
		if d.Month() == month && d.Year() == year {
			activeDays[d.Day()] = true
		}
	}

	firstDay := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := firstDay.AddDate(0, 0, -int(firstDay.Weekday()))

	grid := make([]CalendarDay, 0, calendarCells)
	for i := 0; i < calendarCells; i++ {
		date := start.AddDate(0, 0, i)
		inMonth := date.Month() == month && date.Year() == year

		grid = append(grid, CalendarDay{
			Day:            date.Day(),
			Date:           date.Format("2006-01-02"),
			Active:         inMonth && activeDays[date.Day()],
			IsToday:        sameDay(date, today),
			IsCurrentMonth: inMonth,
		})
	}

	return grid
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
