package reports

import (
	"time"

	"github.com/AndreyLuiz0/mycashnest/internal/models"
)

// Options select what a Report is computed over.
type Options struct {
	Filter Filter     // type filter, FilterAll when empty
	Range  *DateRange // optional inclusive period selection
	Year   int        // calendar year, defaults to Now's
	Month  time.Month // calendar month, defaults to Now's
	Now    time.Time  // reference time for trend and "today"
}

// Report is the full set of derived views for one ledger snapshot.
type Report struct {
	Totals             Totals        `json:"totals"`
	StatusDistribution []StatusSlice `json:"statusDistribution"`
	Split              Split         `json:"split"`
	Trend              []TrendPoint  `json:"trend"`
	Calendar           []CalendarDay `json:"calendar"`
}

// Build derives every view from one transaction list. The type filter
// applies to the totals only; the period selection also narrows the
// status distribution and the split. Trend and calendar always cover
// the full ledger.
func Build(transactions []models.TransactionDB, opts Options) Report {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	year, month := opts.Year, opts.Month
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = now.Month()
	}

	ranged := transactions
	if opts.Range != nil {
		ranged = FilterByRange(transactions, *opts.Range)
	}
	filtered := FilterTransactions(ranged, opts.Filter)

	return Report{
		Totals:             ComputeTotals(filtered),
		StatusDistribution: StatusDistribution(ranged),
		Split:              ComputeSplit(ranged),
		Trend:              SixMonthTrend(transactions, now),
		Calendar:           MonthGrid(transactions, year, month, now),
	}
}
