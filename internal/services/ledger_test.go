package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/AndreyLuiz0/mycashnest/internal/models"
	"github.com/AndreyLuiz0/mycashnest/internal/services"
)

func strPtr(s string) *string { return &s }

func TestLedgerService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockTransactionReader(ctrl)
	mockWriter := services.NewMockTransactionWriter(ctrl)
	mockCache := services.NewMockSummaryCache(ctrl)
	mockKafka := services.NewMockKafkaWriter(ctrl)

	svc := services.NewLedgerService(mockReader, mockWriter, mockCache, mockKafka)

	ctx := context.Background()

	t.Run("defaults expense status to unpaid", func(t *testing.T) {
		created := &models.TransactionDB{
			TransactionID: 7,
			UserID:        1,
			Type:          models.TypeExpense,
			Amount:        45.5,
			Status:        models.StatusUnpaid,
		}

		mockWriter.EXPECT().
			Save(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, txn *models.TransactionDB) (int64, error) {
				assert.Equal(t, models.StatusUnpaid, txn.Status)
				return int64(7), nil
			})
		mockReader.EXPECT().
			GetByID(ctx, int64(1), int64(7)).
			Return(created, nil)
		mockCache.EXPECT().
			InvalidateSummary(ctx, int64(1)).
			Return(nil)
		mockKafka.EXPECT().
			WriteMessages(ctx, gomock.Any()).
			Return(nil)

		got, err := svc.Create(ctx, 1, models.TypeExpense, 45.5, nil, nil, nil, "")
		assert.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("defaults income status to pending", func(t *testing.T) {
		created := &models.TransactionDB{
			TransactionID: 8,
			UserID:        1,
			Type:          models.TypeIncome,
			Amount:        1200,
			Status:        models.StatusPending,
		}

		mockWriter.EXPECT().
			Save(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, txn *models.TransactionDB) (int64, error) {
				assert.Equal(t, models.StatusPending, txn.Status)
				return int64(8), nil
			})
		mockReader.EXPECT().
			GetByID(ctx, int64(1), int64(8)).
			Return(created, nil)
		mockCache.EXPECT().
			InvalidateSummary(ctx, int64(1)).
			Return(nil)
		mockKafka.EXPECT().
			WriteMessages(ctx, gomock.Any()).
			Return(nil)

		got, err := svc.Create(ctx, 1, models.TypeIncome, 1200, nil, nil, nil, "")
		assert.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := svc.Create(ctx, 1, "savings", 10, nil, nil, nil, "")
		assert.ErrorIs(t, err, services.ErrInvalidType)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := svc.Create(ctx, 1, models.TypeExpense, 0, nil, nil, nil, "")
		assert.ErrorIs(t, err, services.ErrInvalidAmount)

		_, err = svc.Create(ctx, 1, models.TypeExpense, -5, nil, nil, nil, "")
		assert.ErrorIs(t, err, services.ErrInvalidAmount)
	})

	t.Run("rejects status from the other type's pair", func(t *testing.T) {
		_, err := svc.Create(ctx, 1, models.TypeExpense, 10, nil, nil, nil, models.StatusReceived)
		assert.ErrorIs(t, err, services.ErrInvalidStatus)

		_, err = svc.Create(ctx, 1, models.TypeIncome, 10, nil, nil, nil, models.StatusPaid)
		assert.ErrorIs(t, err, services.ErrInvalidStatus)
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		_, err := svc.Create(ctx, 1, models.TypeExpense, 10, nil, nil, strPtr("01/08/2025"), "")
		assert.ErrorIs(t, err, services.ErrInvalidDate)
	})

	t.Run("works without cache and kafka configured", func(t *testing.T) {
		bare := services.NewLedgerService(mockReader, mockWriter, nil, nil)

		created := &models.TransactionDB{
			TransactionID: 9,
			UserID:        1,
			Type:          models.TypeExpense,
			Amount:        10,
			Status:        models.StatusUnpaid,
		}

		mockWriter.EXPECT().
			Save(ctx, gomock.Any()).
			Return(int64(9), nil)
		mockReader.EXPECT().
			GetByID(ctx, int64(1), int64(9)).
			Return(created, nil)

		got, err := bare.Create(ctx, 1, models.TypeExpense, 10, nil, nil, nil, "")
		assert.NoError(t, err)
		assert.Equal(t, created, got)
	})

	t.Run("save error", func(t *testing.T) {
		mockWriter.EXPECT().
			Save(ctx, gomock.Any()).
			Return(int64(0), errors.New("db error"))

		_, err := svc.Create(ctx, 1, models.TypeExpense, 10, nil, nil, nil, "")
		assert.EqualError(t, err, "db error")
	})
}

func TestLedgerService_Replace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockTransactionReader(ctrl)
	mockWriter := services.NewMockTransactionWriter(ctrl)
	mockCache := services.NewMockSummaryCache(ctrl)
	mockKafka := services.NewMockKafkaWriter(ctrl)

	svc := services.NewLedgerService(mockReader, mockWriter, mockCache, mockKafka)

	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		updated := &models.TransactionDB{
			TransactionID: 7,
			UserID:        1,
			Type:          models.TypeExpense,
			Amount:        60,
			Status:        models.StatusPaid,
		}

		mockWriter.EXPECT().
			Update(ctx, gomock.Any()).
			Return(int64(1), nil)
		mockReader.EXPECT().
			GetByID(ctx, int64(1), int64(7)).
			Return(updated, nil)
		mockCache.EXPECT().
			InvalidateSummary(ctx, int64(1)).
			Return(nil)
		mockKafka.EXPECT().
			WriteMessages(ctx, gomock.Any()).
			Return(nil)

		got, err := svc.Replace(ctx, 1, 7, models.TypeExpense, 60, nil, nil, nil, models.StatusPaid)
		assert.NoError(t, err)
		assert.Equal(t, updated, got)
	})

	t.Run("no row matched", func(t *testing.T) {
		mockWriter.EXPECT().
			Update(ctx, gomock.Any()).
			Return(int64(0), nil)

		_, err := svc.Replace(ctx, 1, 99, models.TypeExpense, 60, nil, nil, nil, models.StatusPaid)
		assert.ErrorIs(t, err, services.ErrTransactionNotFound)
	})

	t.Run("invalid status for type", func(t *testing.T) {
		_, err := svc.Replace(ctx, 1, 7, models.TypeIncome, 60, nil, nil, nil, models.StatusPaid)
		assert.ErrorIs(t, err, services.ErrInvalidStatus)
	})
}

func TestLedgerService_ChangeStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockTransactionReader(ctrl)
	mockWriter := services.NewMockTransactionWriter(ctrl)
	mockCache := services.NewMockSummaryCache(ctrl)
	mockKafka := services.NewMockKafkaWriter(ctrl)

	svc := services.NewLedgerService(mockReader, mockWriter, mockCache, mockKafka)

	ctx := context.Background()

	expense := &models.TransactionDB{
		TransactionID: 7,
		UserID:        1,
		Type:          models.TypeExpense,
		Amount:        45.5,
		Status:        models.StatusUnpaid,
	}

	t.Run("expense marked paid", func(t *testing.T) {
		updated := &models.TransactionDB{
			TransactionID: 7,
			UserID:        1,
			Type:          models.TypeExpense,
			Amount:        45.5,
			Status:        models.StatusPaid,
		}

		mockReader.EXPECT().
			GetByID(ctx, int64(1), int64(7)).
			Return(expense, nil)
		mockWriter.EXPECT().
			UpdateStatus(ctx, int64(1), int64(7), models.StatusPaid).
			Return(int64(1), nil)
		mockReader.EXPECT().
			GetByID(ctx, int64(1), int64(7)).
			Return(updated, nil)
		mockCache.EXPECT().
			InvalidateSummary(ctx, int64(1)).
			Return(nil)
		mockKafka.EXPECT().
			WriteMessages(ctx, gomock.Any()).
			Return(nil)

		got, err := svc.ChangeStatus(ctx, 1, 7, models.StatusPaid)
		assert.NoError(t, err)
		assert.Equal(t, updated, got)
	})

	t.Run("expense rejects received", func(t *testing.T) {
		mockReader.EXPECT().
			GetByID(ctx, int64(1), int64(7)).
			Return(expense, nil)

		_, err := svc.ChangeStatus(ctx, 1, 7, models.StatusReceived)
		assert.ErrorIs(t, err, services.ErrInvalidStatus)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		mockReader.EXPECT().
			GetByID(ctx, int64(1), int64(99)).
			Return(nil, nil)

		_, err := svc.ChangeStatus(ctx, 1, 99, models.StatusPaid)
		assert.ErrorIs(t, err, services.ErrTransactionNotFound)
	})
}

func TestLedgerService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockTransactionReader(ctrl)
	mockWriter := services.NewMockTransactionWriter(ctrl)
	mockCache := services.NewMockSummaryCache(ctrl)
	mockKafka := services.NewMockKafkaWriter(ctrl)

	svc := services.NewLedgerService(mockReader, mockWriter, mockCache, mockKafka)

	ctx := context.Background()

	t.Run("deletes and publishes", func(t *testing.T) {
		mockWriter.EXPECT().
			Delete(ctx, int64(1), int64(7)).
			Return(int64(1), nil)
		mockCache.EXPECT().
			InvalidateSummary(ctx, int64(1)).
			Return(nil)
		mockKafka.EXPECT().
			WriteMessages(ctx, gomock.Any()).
			Return(nil)

		assert.NoError(t, svc.Delete(ctx, 1, 7))
	})

	t.Run("missing id is not an error", func(t *testing.T) {
		mockWriter.EXPECT().
			Delete(ctx, int64(1), int64(99)).
			Return(int64(0), nil)

		assert.NoError(t, svc.Delete(ctx, 1, 99))
	})

	t.Run("repository error", func(t *testing.T) {
		mockWriter.EXPECT().
			Delete(ctx, int64(1), int64(7)).
			Return(int64(0), errors.New("db error"))

		assert.EqualError(t, svc.Delete(ctx, 1, 7), "db error")
	})
}

func TestLedgerService_Summary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockTransactionReader(ctrl)
	mockWriter := services.NewMockTransactionWriter(ctrl)
	mockCache := services.NewMockSummaryCache(ctrl)

	svc := services.NewLedgerService(mockReader, mockWriter, mockCache, nil)

	ctx := context.Background()

	recent := []models.TransactionDB{
		{TransactionID: 2, UserID: 1, Type: models.TypeIncome, Amount: 1200, Status: models.StatusReceived},
	}
	stats := []models.CategoryStat{
		{Category: strPtr("Groceries"), Total: 45.5},
	}

	t.Run("cache hit skips the repository", func(t *testing.T) {
		cached := &models.DashboardSummary{IncomeTotal: 1200}

		mockCache.EXPECT().
			GetSummary(ctx, int64(1)).
			Return(cached, nil)

		got, err := svc.Summary(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, cached, got)
	})

	t.Run("cache miss recomputes and stores", func(t *testing.T) {
		mockCache.EXPECT().
			GetSummary(ctx, int64(1)).
			Return(nil, errors.New("cache miss"))
		mockReader.EXPECT().
			ListRecent(ctx, int64(1), 10).
			Return(recent, nil)
		mockReader.EXPECT().
			SumByType(ctx, int64(1), models.TypeIncome).
			Return(1200.0, nil)
		mockReader.EXPECT().
			SumByType(ctx, int64(1), models.TypeExpense).
			Return(45.5, nil)
		mockReader.EXPECT().
			SumByCategory(ctx, int64(1)).
			Return(stats, nil)
		mockCache.EXPECT().
			SetSummary(ctx, int64(1), gomock.Any()).
			Return(nil)

		got, err := svc.Summary(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, &models.DashboardSummary{
			RecentTransactions: recent,
			IncomeTotal:        1200,
			ExpenseTotal:       45.5,
			CategoryStats:      stats,
		}, got)
	})

	t.Run("read error surfaces", func(t *testing.T) {
		mockCache.EXPECT().
			GetSummary(ctx, int64(1)).
			Return(nil, errors.New("cache miss"))
		mockReader.EXPECT().
			ListRecent(ctx, int64(1), 10).
			Return(nil, errors.New("db error"))

		_, err := svc.Summary(ctx, 1)
		assert.EqualError(t, err, "db error")
	})
}
