package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/AndreyLuiz0/mycashnest/internal/logger"
	"github.com/AndreyLuiz0/mycashnest/internal/middlewares"
	"github.com/AndreyLuiz0/mycashnest/internal/models"
)

// TransactionLister defines the interface that the service must implement.
type TransactionLister interface {
	List(ctx context.Context, userID int64) ([]models.TransactionDB, error)
}

// ListTransactionsErrorResponse represents an error response for the transaction list
// swagger:model ListTransactionsErrorResponse
type ListTransactionsErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

// NewListTransactionsHandler returns an HTTP handler listing the caller's transactions.
// @Summary List transactions
// @Description Returns all of the authenticated user's transactions, most recent date first.
// @Tags transactions
// @Produce json
// @Success 200 {array} models.TransactionDB "User transactions"
// @Failure 401 {object} handlers.ListTransactionsErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ListTransactionsErrorResponse "Internal server error"
// @Router /api/transactions [get]
// @Security BearerAuth
func NewListTransactionsHandler(svc TransactionLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := middlewares.UserIDFromContext(ctx)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ListTransactionsErrorResponse{Error: "Unauthorized"})
			return
		}

		transactions, err := svc.List(ctx, userID)
		if err != nil {
			logger.Log.Errorw("failed to list transactions", "userID", userID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ListTransactionsErrorResponse{Error: "Internal server error"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(transactions)
	}
}
