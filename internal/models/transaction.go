package models

// Transaction types
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction statuses. Each type owns a pair of statuses:
// expense rows settle as paid/unpaid, income rows as received/pending.
const (
	StatusPaid     = "paid"
	StatusUnpaid   = "unpaid"
	StatusPending  = "pending"
	StatusReceived = "received"
)

// TransactionDB represents a ledger entry in the database
type TransactionDB struct {
	TransactionID int64   `json:"id" db:"id"`                 // Primary key
	UserID        int64   `json:"userId" db:"user_id"`        // Owning user
	Type          string  `json:"type" db:"type"`             // income or expense
	Amount        float64 `json:"amount" db:"amount"`         // Monetary value, always positive
	Description   *string `json:"description" db:"description"`
	Category      *string `json:"category" db:"category"`
	Date          *string `json:"date" db:"date"`             // YYYY-MM-DD when set
	Status        string  `json:"status" db:"status"`         // Lifecycle tag, partitioned by Type
	CreatedAt     string  `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt     string  `json:"updated_at" db:"updated_at"` // Refreshed on every mutation
}

// ValidType reports whether t is a known transaction type.
func ValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

// ValidStatus reports whether s is one of the four enumerated statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPaid, StatusUnpaid, StatusPending, StatusReceived:
		return true
	}
	return false
}

// StatusMatchesType reports whether the status belongs to the type's pair.
func StatusMatchesType(t, s string) bool {
	switch t {
	case TypeExpense:
		return s == StatusPaid || s == StatusUnpaid
	case TypeIncome:
		return s == StatusReceived || s == StatusPending
	}
	return false
}

// DefaultStatus returns the outstanding status for a type: unpaid for
// expenses, pending for income.
func DefaultStatus(t string) string {
	if t == TypeIncome {
		return StatusPending
	}
	return StatusUnpaid
}
