package models

// CategoryStat is a per-category amount sum for the dashboard.
type CategoryStat struct {
	Category *string `json:"category" db:"category"` // NULL for uncategorized rows
	Total    float64 `json:"total" db:"total"`
}

// DashboardSummary aggregates a user's ledger for the dashboard view.
type DashboardSummary struct {
	RecentTransactions []TransactionDB `json:"recentTransactions"`
	IncomeTotal        float64         `json:"incomeTotal"`
	ExpenseTotal       float64         `json:"expenseTotal"`
	CategoryStats      []CategoryStat  `json:"categoryStats"`
}
