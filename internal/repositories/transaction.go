package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/AndreyLuiz0/mycashnest/internal/logger"
	"github.com/AndreyLuiz0/mycashnest/internal/models"
)

// TransactionReadRepository handles ledger read operations
type TransactionReadRepository struct {
	db *sqlx.DB
}

func NewTransactionReadRepository(db *sqlx.DB) *TransactionReadRepository {
	return &TransactionReadRepository{db: db}
}

// ListByUserID returns all transactions owned by the user, most recent date first.
func (r *TransactionReadRepository) ListByUserID(ctx context.Context, userID int64) ([]models.TransactionDB, error) {
	const query = `
		SELECT id, user_id, type, amount, description, category, date, status, created_at, updated_at
		FROM transactions
		WHERE user_id = ?
		ORDER BY date DESC
	`

	transactions := []models.TransactionDB{}
	err := r.db.SelectContext(ctx, &transactions, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", len(transactions),
		"error", err,
	)

	return transactions, err
}

// GetByID returns the transaction with the given id scoped to the user,
// or nil when no owned row matches.
func (r *TransactionReadRepository) GetByID(ctx context.Context, userID, id int64) (*models.TransactionDB, error) {
	const query = `
		SELECT id, user_id, type, amount, description, category, date, status, created_at, updated_at
		FROM transactions
		WHERE id = ? AND user_id = ?
		LIMIT 1
	`

	var txn models.TransactionDB
	err := r.db.GetContext(ctx, &txn, query, id, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id, userID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &txn, nil
}

// ListRecent returns the user's most recent transactions by date, capped at limit.
func (r *TransactionReadRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]models.TransactionDB, error) {
	const query = `
		SELECT id, user_id, type, amount, description, category, date, status, created_at, updated_at
		FROM transactions
		WHERE user_id = ?
		ORDER BY date DESC
		LIMIT ?
	`

	transactions := []models.TransactionDB{}
	err := r.db.SelectContext(ctx, &transactions, query, userID, limit)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, limit},
		"result", len(transactions),
		"error", err,
	)

	return transactions, err
}

// SumByType returns the amount sum of the user's rows of the given type,
// regardless of status.
func (r *TransactionReadRepository) SumByType(ctx context.Context, userID int64, txType string) (float64, error) {
	const query = `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = ? AND type = ?
	`

	var total float64
	err := r.db.GetContext(ctx, &total, query, userID, txType)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, txType},
		"result", total,
		"error", err,
	)

	return total, err
}

// SumByCategory returns per-category amount sums for the user.
func (r *TransactionReadRepository) SumByCategory(ctx context.Context, userID int64) ([]models.CategoryStat, error) {
	const query = `
		SELECT category, SUM(amount) AS total
		FROM transactions
		WHERE user_id = ?
		GROUP BY category
	`

	stats := []models.CategoryStat{}
	err := r.db.SelectContext(ctx, &stats, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", len(stats),
		"error", err,
	)

	return stats, err
}

// TransactionWriteRepository handles ledger write operations
type TransactionWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewTransactionWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db, txGetter: txGetter}
}

// Save inserts a new transaction and returns the generated id.
func (r *TransactionWriteRepository) Save(ctx context.Context, txn *models.TransactionDB) (int64, error) {
	query := `
		INSERT INTO transactions (user_id, type, amount, description, category, date, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
	`
	args := []any{txn.UserID, txn.Type, txn.Amount, txn.Description, txn.Category, txn.Date, txn.Status}

	res, err := r.executor(ctx).ExecContext(ctx, query, args...)

	var id int64
	if res != nil {
		id, _ = res.LastInsertId()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", id,
		"error", err,
	)

	return id, err
}

// Update overwrites all mutable fields of the row scoped to (id, user_id)
// in a single conditional statement and reports the affected-row count.
func (r *TransactionWriteRepository) Update(ctx context.Context, txn *models.TransactionDB) (int64, error) {
	query := `
		UPDATE transactions
		SET type = ?,
		    amount = ?,
		    description = ?,
		    category = ?,
		    date = ?,
		    status = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?
	`
	args := []any{txn.Type, txn.Amount, txn.Description, txn.Category, txn.Date, txn.Status, txn.TransactionID, txn.UserID}

	res, err := r.executor(ctx).ExecContext(ctx, query, args...)

	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	return rowsAffected, err
}

// UpdateStatus rewrites only the status of the row scoped to (id, user_id)
// and reports the affected-row count.
func (r *TransactionWriteRepository) UpdateStatus(ctx context.Context, userID, id int64, status string) (int64, error) {
	query := `
		UPDATE transactions
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?
	`
	args := []any{status, id, userID}

	res, err := r.executor(ctx).ExecContext(ctx, query, args...)

	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	return rowsAffected, err
}

// Delete removes the row scoped to (id, user_id) and reports the
// affected-row count. Zero affected rows is not an error.
func (r *TransactionWriteRepository) Delete(ctx context.Context, userID, id int64) (int64, error) {
	query := `
		DELETE FROM transactions
		WHERE id = ? AND user_id = ?
	`
	args := []any{id, userID}

	res, err := r.executor(ctx).ExecContext(ctx, query, args...)

	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	return rowsAffected, err
}

func (r *TransactionWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}
