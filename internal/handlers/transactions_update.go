package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/AndreyLuiz0/mycashnest/internal/logger"
	"github.com/AndreyLuiz0/mycashnest/internal/middlewares"
	"github.com/AndreyLuiz0/mycashnest/internal/models"
	"github.com/AndreyLuiz0/mycashnest/internal/services"
)

// TransactionReplacer defines the interface that the service must implement.
type TransactionReplacer interface {
	Replace(ctx context.Context, userID, id int64, txType string, amount float64, description, category, date *string, status string) (*models.TransactionDB, error)
}

// UpdateTransactionRequest represents the JSON body for a full-row update.
// All mutable fields are rewritten together; omitted optional fields are
// persisted as null.
// swagger:model UpdateTransactionRequest
type UpdateTransactionRequest struct {
	// Transaction type
	// required: true
	// default: expense
	Type string `json:"type"`

	// Amount
	// required: true
	// default: 45.50
	Amount float64 `json:"amount"`

	// Free-text description
	Description *string `json:"description"`

	// Category
	Category *string `json:"category"`

	// Date in YYYY-MM-DD
	Date *string `json:"date"`

	// Status, must match the type's pair
	// required: true
	// default: paid
	Status string `json:"status"`
}

// UpdateTransactionErrorResponse represents an error response for transaction update
// swagger:model UpdateTransactionErrorResponse
type UpdateTransactionErrorResponse struct {
	// Error message
	// default: Transaction not found
	Error string `json:"error"`
}

// NewUpdateTransactionHandler returns an HTTP handler replacing a transaction.
// @Summary Update transaction
// @Description Overwrites all mutable fields of an owned transaction in one atomic conditional update.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction id"
// @Param request body handlers.UpdateTransactionRequest true "Full replacement row"
// @Success 200 {object} models.TransactionDB "Updated transaction"
// @Failure 400 {object} handlers.UpdateTransactionErrorResponse "Invalid fields or status"
// @Failure 401 {object} handlers.UpdateTransactionErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.UpdateTransactionErrorResponse "Transaction not found"
// @Failure 500 {object} handlers.UpdateTransactionErrorResponse "Internal server error"
// @Router /api/transactions/{id} [put]
// @Security BearerAuth
func NewUpdateTransactionHandler(svc TransactionReplacer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := middlewares.UserIDFromContext(ctx)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(UpdateTransactionErrorResponse{Error: "Unauthorized"})
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(UpdateTransactionErrorResponse{Error: "Invalid transaction id"})
			return
		}

		var req UpdateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Errorw("failed to decode update request", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(UpdateTransactionErrorResponse{Error: "Invalid request body"})
			return
		}

		txn, err := svc.Replace(ctx, userID, id, req.Type, req.Amount, req.Description, req.Category, req.Date, req.Status)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTransactionNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(UpdateTransactionErrorResponse{Error: "Transaction not found"})
			case errors.Is(err, services.ErrInvalidType),
				errors.Is(err, services.ErrInvalidAmount),
				errors.Is(err, services.ErrInvalidStatus),
				errors.Is(err, services.ErrInvalidDate):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(UpdateTransactionErrorResponse{Error: err.Error()})
			default:
				logger.Log.Errorw("failed to update transaction", "userID", userID, "id", id, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(UpdateTransactionErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(txn)
	}
}
