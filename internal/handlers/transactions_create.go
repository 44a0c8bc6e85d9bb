package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AndreyLuiz0/mycashnest/internal/logger"
	"github.com/AndreyLuiz0/mycashnest/internal/middlewares"
	"github.com/AndreyLuiz0/mycashnest/internal/models"
	"github.com/AndreyLuiz0/mycashnest/internal/services"
)

// TransactionCreator defines the interface that the service must implement.
type TransactionCreator interface {
	Create(ctx context.Context, userID int64, txType string, amount float64, description, category, date *string, status string) (*models.TransactionDB, error)
}

// CreateTransactionRequest represents the JSON body for creating a transaction
// swagger:model CreateTransactionRequest
type CreateTransactionRequest struct {
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

	// Status; defaults to unpaid (expense) or pending (income)
	Status string `json:"status"`
}

// CreateTransactionErrorResponse represents an error response for transaction creation
// swagger:model CreateTransactionErrorResponse
type CreateTransactionErrorResponse struct {
	// Error message
	// default: Type and amount are required
	Error string `json:"error"`
}

// NewCreateTransactionHandler returns an HTTP handler creating a transaction.
// @Summary Create transaction
// @Description Inserts a ledger entry for the authenticated user. Status must match the type's pair.
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body handlers.CreateTransactionRequest true "Transaction to create"
// @Success 201 {object} models.TransactionDB "Persisted transaction"
// @Failure 400 {object} handlers.CreateTransactionErrorResponse "Missing or invalid fields"
// @Failure 401 {object} handlers.CreateTransactionErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.CreateTransactionErrorResponse "Internal server error"
// @Router /api/transactions [post]
// @Security BearerAuth
func NewCreateTransactionHandler(svc TransactionCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := middlewares.UserIDFromContext(ctx)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(CreateTransactionErrorResponse{Error: "Unauthorized"})
			return
		}

		var req CreateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Errorw("failed to decode create request", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(CreateTransactionErrorResponse{Error: "Invalid request body"})
			return
		}

		if req.Type == "" || req.Amount == 0 {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(CreateTransactionErrorResponse{Error: "Type and amount are required"})
			return
		}

		txn, err := svc.Create(ctx, userID, req.Type, req.Amount, req.Description, req.Category, req.Date, req.Status)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidType),
				errors.Is(err, services.ErrInvalidAmount),
				errors.Is(err, services.ErrInvalidStatus),
				errors.Is(err, services.ErrInvalidDate):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(CreateTransactionErrorResponse{Error: err.Error()})
			default:
				logger.Log.Errorw("failed to create transaction", "userID", userID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(CreateTransactionErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(txn)
	}
}
