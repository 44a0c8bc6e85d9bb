// Package reports derives the dashboard and ledger views from a user's
// transaction list. Every function is pure: (transactions, options) in,
// view structs out, nothing retained between calls.
package reports

import (
	"sort"
	"time"

	"github.com/AndreyLuiz0/mycashnest/internal/models"
)

// Filter narrows a transaction list by type.
type Filter string

// Ledger filters
const (
	FilterAll     Filter = "all"
	FilterIncome  Filter = "income"
	FilterExpense Filter = "expense"
)

// ValidFilter reports whether f is a known filter.
func ValidFilter(f Filter) bool {
	return f == FilterAll || f == FilterIncome || f == FilterExpense
}

// Totals are the ledger view's three sums over a filtered set.
type Totals struct {
	// Settled sums expense rows marked paid and income rows marked received.
	Settled float64 `json:"settled"`
	// Outstanding sums expense rows marked unpaid or pending and income rows marked pending.
	Outstanding float64 `json:"outstanding"`
	// Grand sums every filtered row regardless of status.
	Grand float64 `json:"grand"`
}

// StatusSlice is one wedge of the status distribution.
type StatusSlice struct {
	Label string  `json:"label"`
	Color string  `json:"color"`
	Total float64 `json:"total"`
}

// Split is the income-versus-expense ratio.
type Split struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// TrendPoint is one month of the trailing trend series.
type TrendPoint struct {
	Label   string  `json:"label"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// Status labels and colors, fixed per label.
var statusLabels = map[string]string{
	models.StatusPaid:     "Pago",
	models.StatusUnpaid:   "Não Pago",
	models.StatusReceived: "Recebido",
	models.StatusPending:  "A Receber",
}

var labelColors = map[string]string{
	"Pago":       "#4caf50",
	"Não Pago":   "#f44336",
	"Recebido":   "#2196f3",
	"A Receber":  "#ff9800",
	"Sem Status": "#9e9e9e",
}

// Portuguese month abbreviations, January first.
var monthAbbrev = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// FilterTransactions returns the rows matching the type filter.
func FilterTransactions(transactions []models.TransactionDB, f Filter) []models.TransactionDB {
	if f == FilterAll || f == "" {
		return transactions
	}
	filtered := make([]models.TransactionDB, 0, len(transactions))
	for _, t := range transactions {
		if t.Type == string(f) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// ComputeTotals derives the settled/outstanding/grand sums of a set.
func ComputeTotals(transactions []models.TransactionDB) Totals {
	var totals Totals
	for _, t := range transactions {
		settled := (t.Type == models.TypeExpense && t.Status == models.StatusPaid) ||
			(t.Type == models.TypeIncome && t.Status == models.StatusReceived)
		outstanding := (t.Type == models.TypeExpense && (t.Status == models.StatusUnpaid || t.Status == models.StatusPending)) ||
			(t.Type == models.TypeIncome && t.Status == models.StatusPending)

		if settled {
			totals.Settled += t.Amount
		}
		if outstanding {
			totals.Outstanding += t.Amount
		}
		totals.Grand += t.Amount
	}
	return totals
}

// StatusDistribution groups amounts by mapped status label, sorted by
// amount descending, each label carrying its fixed color.
func StatusDistribution(transactions []models.TransactionDB) []StatusSlice {
	sums := map[string]float64{}
	for _, t := range transactions {
		label, ok := statusLabels[t.Status]
		if !ok {
			label = "Sem Status"
		}
		sums[label] += t.Amount
	}

	slices := make([]StatusSlice, 0, len(sums))
	for label, total := range sums {
		slices = append(slices, StatusSlice{
			Label: label,
			Color: labelColors[label],
			Total: total,
		})
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Total != slices[j].Total {
			return slices[i].Total > slices[j].Total
		}
		return slices[i].Label < slices[j].Label
	})
	return slices
}

// ComputeSplit derives the income-versus-expense ratio of a set.
func ComputeSplit(transactions []models.TransactionDB) Split {
	var split Split
	for _, t := range transactions {
		if t.Type == models.TypeIncome {
			split.Income += t.Amount
		} else {
			split.Expense += t.Amount
		}
	}
	return split
}

// SixMonthTrend sums income and expense for each of the trailing six
// calendar months, current month last. Matching is on the (month, year)
// components of the transaction date; undated rows are skipped.
func SixMonthTrend(transactions []models.TransactionDB, now time.Time) []TrendPoint {
	points := make([]TrendPoint, 0, 6)

	for i := 5; i >= 0; i-- {
		month := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, time.UTC)
		point := TrendPoint{Label: monthAbbrev[month.Month()-1]}

		for _, t := range transactions {
			d, ok := parseDate(t.Date)
			if !ok {
				continue
			}
			if d.Month() != month.Month() || d.Year() != month.Year() {
				continue
			}
			if t.Type == models.TypeIncome {
				point.Income += t.Amount
			} else {
				point.Expense += t.Amount
			}
		}

		points = append(points, point)
	}

	return points
}

func parseDate(date *string) (time.Time, bool) {
	if date == nil || *date == "" {
		return time.Time{}, false
	}
	d, err := time.Parse("2006-01-02", *date)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
