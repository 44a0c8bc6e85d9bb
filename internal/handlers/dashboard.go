package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/AndreyLuiz0/mycashnest/internal/logger"
	"github.com/AndreyLuiz0/mycashnest/internal/middlewares"
	"github.com/AndreyLuiz0/mycashnest/internal/models"
)

// Summarizer defines the interface that the service must implement.
type Summarizer interface {
	Summary(ctx context.Context, userID int64) (*models.DashboardSummary, error)
}

// DashboardErrorResponse represents an error response for the dashboard
// swagger:model DashboardErrorResponse
type DashboardErrorResponse struct {
	// Error message
	// default: Internal server error
	Error string `json:"error"`
}

// NewDashboardHandler returns an HTTP handler serving the dashboard summary.
// @Summary Dashboard summary
// @Description Returns the 10 most recent transactions, income and expense totals, and per-category sums.
// @Tags transactions
// @Produce json
// @Success 200 {object} models.DashboardSummary "Dashboard aggregation"
// @Failure 401 {object} handlers.DashboardErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.DashboardErrorResponse "Internal server error"
// @Router /api/transactions/dashboard [get]
// @Security BearerAuth
func NewDashboardHandler(svc Summarizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := middlewares.UserIDFromContext(ctx)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(DashboardErrorResponse{Error: "Unauthorized"})
			return
		}

		summary, err := svc.Summary(ctx, userID)
		if err != nil {
			logger.Log.Errorw("failed to build dashboard summary", "userID", userID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(DashboardErrorResponse{Error: "Internal server error"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(summary)
	}
}
