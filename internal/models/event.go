package models

// Ledger event actions published to the event stream.
const (
	ActionCreated       = "created"
	ActionUpdated       = "updated"
	ActionStatusChanged = "status_changed"
	ActionDeleted       = "deleted"
)

// LedgerEvent describes a single ledger mutation, published per write.
type LedgerEvent struct {
	EventID       string `json:"event_id"`       // EventID is a unique identifier for the event.
	Timestamp     int64  `json:"timestamp"`      // Timestamp is the Unix timestamp (in seconds) of the mutation.
	UserID        int64  `json:"user_id"`        // UserID is the owner of the mutated row.
	TransactionID int64  `json:"transaction_id"` // TransactionID is the mutated ledger row.
	Action        string `json:"action"`         // Action is one of created, updated, status_changed, deleted.
}
