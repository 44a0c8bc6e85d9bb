package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/AndreyLuiz0/mycashnest/internal/logger"
	"github.com/AndreyLuiz0/mycashnest/internal/models"
)

// Error variables
var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidType         = errors.New("invalid transaction type")
	ErrInvalidAmount       = errors.New("amount must be a positive number")
	ErrInvalidStatus       = errors.New("invalid status for transaction type")
	ErrInvalidDate         = errors.New("date must be in YYYY-MM-DD format")
)

// recentLimit caps the dashboard's recent-transactions list.
const recentLimit = 10

// TransactionReader defines read operations over a user's ledger.
type TransactionReader interface {
	ListByUserID(ctx context.Context, userID int64) ([]models.TransactionDB, error)
	GetByID(ctx context.Context, userID, id int64) (*models.TransactionDB, error)
	ListRecent(ctx context.Context, userID int64, limit int) ([]models.TransactionDB, error)
	SumByType(ctx context.Context, userID int64, txType string) (float64, error)
	SumByCategory(ctx context.Context, userID int64) ([]models.CategoryStat, error)
}

// TransactionWriter defines write operations over a user's ledger.
type TransactionWriter interface {
	Save(ctx context.Context, txn *models.TransactionDB) (int64, error)
	Update(ctx context.Context, txn *models.TransactionDB) (int64, error)
	UpdateStatus(ctx context.Context, userID, id int64, status string) (int64, error)
	Delete(ctx context.Context, userID, id int64) (int64, error)
}

// SummaryCache caches dashboard summaries per user.
type SummaryCache interface {
	GetSummary(ctx context.Context, userID int64) (*models.DashboardSummary, error)
	SetSummary(ctx context.Context, userID int64, summary *models.DashboardSummary) error
	InvalidateSummary(ctx context.Context, userID int64) error
}

// KafkaWriter defines the minimal producer interface for ledger events.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// LedgerService implements the per-user transaction ledger: CRUD, status
// transitions and dashboard aggregation.
type LedgerService struct {
	readRepo    TransactionReader
	writeRepo   TransactionWriter
	cacheRepo   SummaryCache
	kafkaWriter KafkaWriter
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(
	readRepo TransactionReader,
	writeRepo TransactionWriter,
	cacheRepo SummaryCache,
	kafkaWriter KafkaWriter,
) *LedgerService {
	return &LedgerService{
		readRepo:    readRepo,
		writeRepo:   writeRepo,
		cacheRepo:   cacheRepo,
		kafkaWriter: kafkaWriter,
	}
}

// publishEvent publishes a ledger mutation event to Kafka.
func (s *LedgerService) publishEvent(ctx context.Context, userID, transactionID int64, action string) {
	if s.kafkaWriter == nil {
		logger.Log.Debugw("Kafka writer not configured, skipping publishing", "transaction_id", transactionID, "action", action)
		return
	}

	event := models.LedgerEvent{
		EventID:       uuid.NewString(),
		Timestamp:     time.Now().Unix(),
		UserID:        userID,
		TransactionID: transactionID,
		Action:        action,
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal ledger event for Kafka", "transaction_id", transactionID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("%d", userID)),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish ledger event to Kafka", "transaction_id", transactionID, "error", err)
	} else {
		logger.Log.Infow("Ledger event published to Kafka", "transaction_id", transactionID, "action", action)
	}
}

// invalidateSummary drops the user's cached dashboard after a mutation.
func (s *LedgerService) invalidateSummary(ctx context.Context, userID int64) {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.InvalidateSummary(ctx, userID); err != nil {
		logger.Log.Errorw("failed to invalidate dashboard cache", "userID", userID, "error", err)
	}
}

// validateFields checks type, amount, status pairing and date format.
func validateFields(txType string, amount float64, status string, date *string) error {
	if !models.ValidType(txType) {
		return ErrInvalidType
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if !models.ValidStatus(status) || !models.StatusMatchesType(txType, status) {
		return ErrInvalidStatus
	}
	if date != nil && *date != "" {
		if _, err := time.Parse("2006-01-02", *date); err != nil {
			return ErrInvalidDate
		}
	}
	return nil
}

// List returns all of the user's transactions, most recent date first.
func (s *LedgerService) List(ctx context.Context, userID int64) ([]models.TransactionDB, error) {
	transactions, err := s.readRepo.ListByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list transactions", "userID", userID, "error", err)
		return nil, err
	}
	return transactions, nil
}

// Create inserts a new transaction for the user. When status is empty it
// defaults to the type's outstanding status (unpaid for expenses, pending
// for income). Returns the persisted row.
func (s *LedgerService) Create(ctx context.Context, userID int64, txType string, amount float64, description, category, date *string, status string) (*models.TransactionDB, error) {
	if status == "" {
		status = models.DefaultStatus(txType)
	}
	if err := validateFields(txType, amount, status, date); err != nil {
		logger.Log.Warnw("invalid transaction payload", "userID", userID, "type", txType, "status", status, "error", err)
		return nil, err
	}

	txn := &models.TransactionDB{
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		Description: description,
		Category:    category,
		Date:        date,
		Status:      status,
	}

	id, err := s.writeRepo.Save(ctx, txn)
	if err != nil {
		logger.Log.Errorw("failed to save transaction", "userID", userID, "error", err)
		return nil, err
	}

	created, err := s.readRepo.GetByID(ctx, userID, id)
	if err != nil {
		logger.Log.Errorw("failed to load created transaction", "userID", userID, "id", id, "error", err)
		return nil, err
	}
	if created == nil {
		return nil, ErrTransactionNotFound
	}

	s.invalidateSummary(ctx, userID)
	s.publishEvent(ctx, userID, id, models.ActionCreated)

	return created, nil
}

// Replace overwrites all mutable fields of an owned transaction in a
// single conditional update and returns the new row.
func (s *LedgerService) Replace(ctx context.Context, userID, id int64, txType string, amount float64, description, category, date *string, status string) (*models.TransactionDB, error) {
	if err := validateFields(txType, amount, status, date); err != nil {
		logger.Log.Warnw("invalid transaction payload", "userID", userID, "id", id, "status", status, "error", err)
		return nil, err
	}

	txn := &models.TransactionDB{
		TransactionID: id,
		UserID:        userID,
		Type:          txType,
		Amount:        amount,
		Description:   description,
		Category:      category,
		Date:          date,
		Status:        status,
	}

	rowsAffected, err := s.writeRepo.Update(ctx, txn)
	if err != nil {
		logger.Log.Errorw("failed to update transaction", "userID", userID, "id", id, "error", err)
		return nil, err
	}
	if rowsAffected == 0 {
		logger.Log.Warnw("transaction not found for update", "userID", userID, "id", id)
		return nil, ErrTransactionNotFound
	}

	updated, err := s.readRepo.GetByID(ctx, userID, id)
	if err != nil {
		logger.Log.Errorw("failed to load updated transaction", "userID", userID, "id", id, "error", err)
		return nil, err
	}
	if updated == nil {
		return nil, ErrTransactionNotFound
	}

	s.invalidateSummary(ctx, userID)
	s.publishEvent(ctx, userID, id, models.ActionUpdated)

	return updated, nil
}

// ChangeStatus transitions only the status of an owned transaction. The
// new status must belong to the row's type.
func (s *LedgerService) ChangeStatus(ctx context.Context, userID, id int64, status string) (*models.TransactionDB, error) {
	existing, err := s.readRepo.GetByID(ctx, userID, id)
	if err != nil {
		logger.Log.Errorw("failed to load transaction", "userID", userID, "id", id, "error", err)
		return nil, err
	}
	if existing == nil {
		return nil, ErrTransactionNotFound
	}

	if !models.ValidStatus(status) || !models.StatusMatchesType(existing.Type, status) {
		logger.Log.Warnw("invalid status transition", "userID", userID, "id", id, "type", existing.Type, "status", status)
		return nil, ErrInvalidStatus
	}

	rowsAffected, err := s.writeRepo.UpdateStatus(ctx, userID, id, status)
	if err != nil {
		logger.Log.Errorw("failed to update status", "userID", userID, "id", id, "error", err)
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, ErrTransactionNotFound
	}

	updated, err := s.readRepo.GetByID(ctx, userID, id)
	if err != nil {
		logger.Log.Errorw("failed to load updated transaction", "userID", userID, "id", id, "error", err)
		return nil, err
	}
	if updated == nil {
		return nil, ErrTransactionNotFound
	}

	s.invalidateSummary(ctx, userID)
	s.publishEvent(ctx, userID, id, models.ActionStatusChanged)

	return updated, nil
}

// Delete removes an owned transaction. Deleting an id that no longer
// exists is not an error.
func (s *LedgerService) Delete(ctx context.Context, userID, id int64) error {
	rowsAffected, err := s.writeRepo.Delete(ctx, userID, id)
	if err != nil {
		logger.Log.Errorw("failed to delete transaction", "userID", userID, "id", id, "error", err)
		return err
	}

	if rowsAffected > 0 {
		s.invalidateSummary(ctx, userID)
		s.publishEvent(ctx, userID, id, models.ActionDeleted)
	}

	return nil
}

// Summary returns the user's dashboard aggregation, served from the
// cache when present and recomputed otherwise.
func (s *LedgerService) Summary(ctx context.Context, userID int64) (*models.DashboardSummary, error) {
	if s.cacheRepo != nil {
		if cached, err := s.cacheRepo.GetSummary(ctx, userID); err == nil {
			return cached, nil
		}
	}

	recent, err := s.readRepo.ListRecent(ctx, userID, recentLimit)
	if err != nil {
		logger.Log.Errorw("failed to list recent transactions", "userID", userID, "error", err)
		return nil, err
	}

	incomeTotal, err := s.readRepo.SumByType(ctx, userID, models.TypeIncome)
	if err != nil {
		logger.Log.Errorw("failed to sum income", "userID", userID, "error", err)
		return nil, err
	}

	expenseTotal, err := s.readRepo.SumByType(ctx, userID, models.TypeExpense)
	if err != nil {
		logger.Log.Errorw("failed to sum expenses", "userID", userID, "error", err)
		return nil, err
	}

	categoryStats, err := s.readRepo.SumByCategory(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to sum categories", "userID", userID, "error", err)
		return nil, err
	}

	summary := &models.DashboardSummary{
		RecentTransactions: recent,
		IncomeTotal:        incomeTotal,
		ExpenseTotal:       expenseTotal,
		CategoryStats:      categoryStats,
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetSummary(ctx, userID, summary); err != nil {
			logger.Log.Errorw("failed to cache dashboard summary", "userID", userID, "error", err)
		}
	}

	return summary, nil
}
