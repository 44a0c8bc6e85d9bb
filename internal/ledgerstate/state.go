// Package ledgerstate keeps an in-memory view of a user's ledger on top
// of the API client: the full transaction list, a type filter, derived
// totals, and optimistic status edits that roll back on remote failure.
package ledgerstate

import (
	"context"
	"errors"

	"github.com/AndreyLuiz0/mycashnest/internal/client"
	"github.com/AndreyLuiz0/mycashnest/internal/models"
	"github.com/AndreyLuiz0/mycashnest/internal/reports"
)

// ErrUnknownTransaction is returned when a status edit targets an id
// that is not in the loaded list.
var ErrUnknownTransaction = errors.New("transaction not in loaded ledger")

// API is the slice of the client the state consumes.
type API interface {
	Transactions(ctx context.Context) ([]models.TransactionDB, error)
	CreateTransaction(ctx context.Context, req client.CreateTransactionRequest) (*models.TransactionDB, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*models.TransactionDB, error)
	DeleteTransaction(ctx context.Context, id int64) error
}

// State is a single user's ledger view. Not safe for concurrent use;
// callers own the serialization.
type State struct {
	api          API
	transactions []models.TransactionDB
	filter       reports.Filter
}

// New creates an empty state over the given API.
func New(api API) *State {
	return &State{
		api:    api,
		filter: reports.FilterAll,
	}
}

// command is an applied local mutation paired with its inverse.
type command struct {
	apply  func()
	revert func()
}

// Load replaces the in-memory list with the server's. On failure the
// list is left empty rather than stale.
func (s *State) Load(ctx context.Context) error {
	transactions, err := s.api.Transactions(ctx)
	if err != nil {
		s.transactions = nil
		return err
	}
	s.transactions = transactions
	return nil
}

// SetFilter switches the active type filter.
func (s *State) SetFilter(f reports.Filter) {
	if reports.ValidFilter(f) {
		s.filter = f
	}
}

// Filtered returns the rows matching the active filter.
func (s *State) Filtered() []models.TransactionDB {
	return reports.FilterTransactions(s.transactions, s.filter)
}

// Totals recomputes the settled/outstanding/grand sums over the
// filtered set, not the full list.
func (s *State) Totals() reports.Totals {
	return reports.ComputeTotals(s.Filtered())
}

// Create persists a new transaction and prepends it to the list.
func (s *State) Create(ctx context.Context, req client.CreateTransactionRequest) (*models.TransactionDB, error) {
	txn, err := s.api.CreateTransaction(ctx, req)
	if err != nil {
		return nil, err
	}
	s.transactions = append([]models.TransactionDB{*txn}, s.transactions...)
	return txn, nil
}

// SetStatus optimistically applies the status locally, commits it
// remotely, and replays the inverse command when the commit fails.
func (s *State) SetStatus(ctx context.Context, id int64, status string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return ErrUnknownTransaction
	}

	previous := s.transactions[idx].Status
	cmd := command{
		apply:  func() { s.transactions[idx].Status = status },
		revert: func() { s.transactions[idx].Status = previous },
	}

	cmd.apply()

	updated, err := s.api.UpdateStatus(ctx, id, status)
	if err != nil {
		cmd.revert()
		return err
	}

	s.transactions[idx] = *updated
	return nil
}

// Delete removes a transaction remotely and drops it from the list.
func (s *State) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	idx := s.indexOf(id)
	if idx >= 0 {
		s.transactions = append(s.transactions[:idx], s.transactions[idx+1:]...)
	}
	return nil
}

func (s *State) indexOf(id int64) int {
	for i, t := range s.transactions {
		if t.TransactionID == id {
			return i
		}
	}
	return -1
}
