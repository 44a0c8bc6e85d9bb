package ledgerstate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndreyLuiz0/mycashnest/internal/client"
	"github.com/AndreyLuiz0/mycashnest/internal/models"
	"github.com/AndreyLuiz0/mycashnest/internal/reports"
)

// fakeAPI scripts the remote side of the state.
type fakeAPI struct {
	transactions   []models.TransactionDB
	listErr        error
	createResult   *models.TransactionDB
	createErr      error
	updateResult   *models.TransactionDB
	updateErr      error
	deleteErr      error
	deletedIDs     []int64
	updateRequests []string
}

func (f *fakeAPI) Transactions(context.Context) ([]models.TransactionDB, error) {
	return f.transactions, f.listErr
}

func (f *fakeAPI) CreateTransaction(_ context.Context, req client.CreateTransactionRequest) (*models.TransactionDB, error) {
	return f.createResult, f.createErr
}

func (f *fakeAPI) UpdateStatus(_ context.Context, id int64, status string) (*models.TransactionDB, error) {
	f.updateRequests = append(f.updateRequests, status)
	return f.updateResult, f.updateErr
}

func (f *fakeAPI) DeleteTransaction(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func seedTransactions() []models.TransactionDB {
	return []models.TransactionDB{
		{TransactionID: 1, Type: models.TypeExpense, Amount: 100, Status: models.StatusUnpaid},
		{TransactionID: 2, Type: models.TypeIncome, Amount: 1200, Status: models.StatusReceived},
		{TransactionID: 3, Type: models.TypeExpense, Amount: 50, Status: models.StatusPaid},
	}
}

func TestState_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the list", func(t *testing.T) {
		api := &fakeAPI{transactions: seedTransactions()}
		s := New(api)

		assert.NoError(t, s.Load(ctx))
		assert.Len(t, s.Filtered(), 3)
	})

	t.Run("failure leaves the list empty, not stale", func(t *testing.T) {
		api := &fakeAPI{transactions: seedTransactions()}
		s := New(api)
		require.NoError(t, s.Load(ctx))

		api.listErr = errors.New("connection refused")
		assert.Error(t, s.Load(ctx))
		assert.Empty(t, s.Filtered())
	})
}

func TestState_FilterAndTotals(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{transactions: seedTransactions()}
	s := New(api)
	require.NoError(t, s.Load(ctx))

	t.Run("totals over the full list", func(t *testing.T) {
		totals := s.Totals()
		assert.Equal(t, 1250.0, totals.Settled)
		assert.Equal(t, 100.0, totals.Outstanding)
		assert.Equal(t, 1350.0, totals.Grand)
	})

	t.Run("filter narrows rows and totals", func(t *testing.T) {
		s.SetFilter(reports.FilterExpense)

		filtered := s.Filtered()
		require.Len(t, filtered, 2)
		assert.Equal(t, reports.Totals{Settled: 50, Outstanding: 100, Grand: 150}, s.Totals())
	})

	t.Run("unknown filter is ignored", func(t *testing.T) {
		s.SetFilter("savings")
		assert.Len(t, s.Filtered(), 2)

		s.SetFilter(reports.FilterAll)
		assert.Len(t, s.Filtered(), 3)
	})
}

func TestState_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("prepends the persisted row", func(t *testing.T) {
		created := &models.TransactionDB{TransactionID: 9, Type: models.TypeExpense, Amount: 10, Status: models.StatusUnpaid}
		api := &fakeAPI{transactions: seedTransactions(), createResult: created}
		s := New(api)
		require.NoError(t, s.Load(ctx))

		got, err := s.Create(ctx, client.CreateTransactionRequest{Type: models.TypeExpense, Amount: 10})
		assert.NoError(t, err)
		assert.Equal(t, created, got)

		all := s.Filtered()
		require.Len(t, all, 4)
		assert.Equal(t, int64(9), all[0].TransactionID)
	})

	t.Run("remote failure leaves the list untouched", func(t *testing.T) {
		api := &fakeAPI{transactions: seedTransactions(), createErr: errors.New("boom")}
		s := New(api)
		require.NoError(t, s.Load(ctx))

		_, err := s.Create(ctx, client.CreateTransactionRequest{Type: models.TypeExpense, Amount: 10})
		assert.Error(t, err)
		assert.Len(t, s.Filtered(), 3)
	})
}

func TestState_SetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("commit replaces the row with the server's", func(t *testing.T) {
		updated := &models.TransactionDB{TransactionID: 1, Type: models.TypeExpense, Amount: 100, Status: models.StatusPaid}
		api := &fakeAPI{transactions: seedTransactions(), updateResult: updated}
		s := New(api)
		require.NoError(t, s.Load(ctx))

		assert.NoError(t, s.SetStatus(ctx, 1, models.StatusPaid))
		assert.Equal(t, models.StatusPaid, s.Filtered()[0].Status)
		assert.Equal(t, []string{models.StatusPaid}, api.updateRequests)
	})

	t.Run("remote failure rolls the status back", func(t *testing.T) {
		api := &fakeAPI{transactions: seedTransactions(), updateErr: errors.New("boom")}
		s := New(api)
		require.NoError(t, s.Load(ctx))

		err := s.SetStatus(ctx, 1, models.StatusPaid)
		assert.Error(t, err)
		assert.Equal(t, models.StatusUnpaid, s.Filtered()[0].Status)
	})

	t.Run("unknown id", func(t *testing.T) {
		api := &fakeAPI{transactions: seedTransactions()}
		s := New(api)
		require.NoError(t, s.Load(ctx))

		assert.ErrorIs(t, s.SetStatus(ctx, 99, models.StatusPaid), ErrUnknownTransaction)
	})
}

func TestState_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("drops the row after the remote delete", func(t *testing.T) {
		api := &fakeAPI{transactions: seedTransactions()}
		s := New(api)
		require.NoError(t, s.Load(ctx))

		assert.NoError(t, s.Delete(ctx, 2))
		assert.Len(t, s.Filtered(), 2)
		assert.Equal(t, []int64{2}, api.deletedIDs)
	})

	t.Run("remote failure keeps the row", func(t *testing.T) {
		api := &fakeAPI{transactions: seedTransactions(), deleteErr: errors.New("boom")}
		s := New(api)
		require.NoError(t, s.Load(ctx))

		assert.Error(t, s.Delete(ctx, 2))
		assert.Len(t, s.Filtered(), 3)
	})
}
