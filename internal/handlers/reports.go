package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/AndreyLuiz0/mycashnest/internal/logger"
	"github.com/AndreyLuiz0/mycashnest/internal/middlewares"
	"github.com/AndreyLuiz0/mycashnest/internal/models"
	"github.com/AndreyLuiz0/mycashnest/internal/reports"
)

// ReportLister defines the interface that the service must implement.
type ReportLister interface {
	List(ctx context.Context, userID int64) ([]models.TransactionDB, error)
}

// ReportsErrorResponse represents an error response for the reports endpoint
// swagger:model ReportsErrorResponse
type ReportsErrorResponse struct {
	// Error message
	// default: Invalid date range
	Error string `json:"error"`
}

// NewReportsHandler returns an HTTP handler serving the derived ledger views.
// @Summary Ledger reports
// @Description Returns filtered totals, status distribution, income/expense split, six-month trend and the month calendar. Optional from/to selects an inclusive period; reversed endpoints are swapped.
// @Tags transactions
// @Produce json
// @Param filter query string false "Type filter: all, income or expense" default(all)
// @Param from query string false "Range start, YYYY-MM-DD"
// @Param to query string false "Range end, YYYY-MM-DD"
// @Param month query int false "Calendar month 1-12, defaults to current"
// @Param year query int false "Calendar year, defaults to current"
// @Success 200 {object} reports.Report "Derived views"
// @Failure 400 {object} handlers.ReportsErrorResponse "Invalid filter or range"
// @Failure 401 {object} handlers.ReportsErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ReportsErrorResponse "Internal server error"
// @Router /api/transactions/reports [get]
// @Security BearerAuth
func NewReportsHandler(svc ReportLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := middlewares.UserIDFromContext(ctx)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ReportsErrorResponse{Error: "Unauthorized"})
			return
		}

		opts, err := parseReportOptions(r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ReportsErrorResponse{Error: err.Error()})
			return
		}

		transactions, err := svc.List(ctx, userID)
		if err != nil {
			logger.Log.Errorw("failed to list transactions for reports", "userID", userID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ReportsErrorResponse{Error: "Internal server error"})
			return
		}

		report := reports.Build(transactions, opts)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(report)
	}
}

func parseReportOptions(r *http.Request) (reports.Options, error) {
	q := r.URL.Query()
	opts := reports.Options{Filter: reports.FilterAll}

	if f := q.Get("filter"); f != "" {
		opts.Filter = reports.Filter(f)
		if !reports.ValidFilter(opts.Filter) {
			return opts, errInvalidFilter
		}
	}

	from, to := q.Get("from"), q.Get("to")
	if (from == "") != (to == "") {
		return opts, errHalfRange
	}
	if from != "" {
		start, err := time.Parse("2006-01-02", from)
		if err != nil {
			return opts, errInvalidRange
		}
		end, err := time.Parse("2006-01-02", to)
		if err != nil {
			return opts, errInvalidRange
		}
		rng := reports.SelectRange(start, end)
		opts.Range = &rng
	}

	if m := q.Get("month"); m != "" {
		month, err := strconv.Atoi(m)
		if err != nil || month < 1 || month > 12 {
			return opts, errInvalidMonth
		}
		opts.Month = time.Month(month)
	}
	if y := q.Get("year"); y != "" {
		year, err := strconv.Atoi(y)
		if err != nil || year < 1 {
			return opts, errInvalidYear
		}
		opts.Year = year
	}

	return opts, nil
}
