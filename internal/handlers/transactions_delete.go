package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/AndreyLuiz0/mycashnest/internal/logger"
	"github.com/AndreyLuiz0/mycashnest/internal/middlewares"
)

// TransactionDeleter defines the interface that the service must implement.
type TransactionDeleter interface {
	Delete(ctx context.Context, userID, id int64) error
}

// DeleteTransactionResponse represents a successful delete response
// swagger:model DeleteTransactionResponse
type DeleteTransactionResponse struct {
	// Always true on success
	// default: true
	OK bool `json:"ok"`
}

// DeleteTransactionErrorResponse represents an error response for transaction deletion
// swagger:model DeleteTransactionErrorResponse
type DeleteTransactionErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

// NewDeleteTransactionHandler returns an HTTP handler deleting a transaction.
// @Summary Delete transaction
// @Description Deletes an owned transaction. Deleting an id that no longer exists still reports ok.
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction id"
// @Success 200 {object} handlers.DeleteTransactionResponse "Deleted"
// @Failure 401 {object} handlers.DeleteTransactionErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.DeleteTransactionErrorResponse "Internal server error"
// @Router /api/transactions/{id} [delete]
// @Security BearerAuth
func NewDeleteTransactionHandler(svc TransactionDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := middlewares.UserIDFromContext(ctx)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(DeleteTransactionErrorResponse{Error: "Unauthorized"})
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(DeleteTransactionErrorResponse{Error: "Invalid transaction id"})
			return
		}

		if err := svc.Delete(ctx, userID, id); err != nil {
			logger.Log.Errorw("failed to delete transaction", "userID", userID, "id", id, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(DeleteTransactionErrorResponse{Error: "Internal server error"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(DeleteTransactionResponse{OK: true})
	}
}
