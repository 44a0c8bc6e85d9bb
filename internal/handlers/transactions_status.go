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

// StatusChanger defines the interface that the service must implement.
type StatusChanger interface {
	ChangeStatus(ctx context.Context, userID, id int64, status string) (*models.TransactionDB, error)
}

// ChangeStatusRequest represents the JSON body for a status-only transition
// swagger:model ChangeStatusRequest
type ChangeStatusRequest struct {
	// New status, must match the transaction type's pair
	// required: true
	// default: paid
	Status string `json:"status"`
}

// ChangeStatusErrorResponse represents an error response for a status transition
// swagger:model ChangeStatusErrorResponse
type ChangeStatusErrorResponse struct {
	// Error message
	// default: invalid status for transaction type
	Error string `json:"error"`
}

// NewChangeStatusHandler returns an HTTP handler transitioning a transaction's status.
// @Summary Change transaction status
// @Description Rewrites only the status of an owned transaction. The other fields are untouched.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction id"
// @Param request body handlers.ChangeStatusRequest true "New status"
// @Success 200 {object} models.TransactionDB "Updated transaction"
// @Failure 400 {object} handlers.ChangeStatusErrorResponse "Invalid status"
// @Failure 401 {object} handlers.ChangeStatusErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ChangeStatusErrorResponse "Transaction not found"
// @Failure 500 {object} handlers.ChangeStatusErrorResponse "Internal server error"
// @Router /api/transactions/{id}/status [patch]
// @Security BearerAuth
func NewChangeStatusHandler(svc StatusChanger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := middlewares.UserIDFromContext(ctx)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ChangeStatusErrorResponse{Error: "Unauthorized"})
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ChangeStatusErrorResponse{Error: "Invalid transaction id"})
			return
		}

		var req ChangeStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Log.Errorw("failed to decode status request", "error", err)
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ChangeStatusErrorResponse{Error: "Invalid request body"})
			return
		}

		txn, err := svc.ChangeStatus(ctx, userID, id, req.Status)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTransactionNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(ChangeStatusErrorResponse{Error: "Transaction not found"})
			case errors.Is(err, services.ErrInvalidStatus):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ChangeStatusErrorResponse{Error: err.Error()})
			default:
				logger.Log.Errorw("failed to change status", "userID", userID, "id", id, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ChangeStatusErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(txn)
	}
}
