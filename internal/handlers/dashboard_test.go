package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/AndreyLuiz0/mycashnest/internal/middlewares"
	"github.com/AndreyLuiz0/mycashnest/internal/models"
)

func TestDashboardHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockSummarizer(ctrl)

	summary := &models.DashboardSummary{
		RecentTransactions: []models.TransactionDB{
			{TransactionID: 1, UserID: 1, Type: models.TypeIncome, Amount: 1200, Status: models.StatusReceived},
		},
		IncomeTotal:  1200,
		ExpenseTotal: 45.5,
		CategoryStats: []models.CategoryStat{
			{Category: strPtr("Groceries"), Total: 45.5},
		},
	}

	tests := []struct {
		name         string
		withUser     bool
		mockSetup    func()
		expectedCode int
	}{
		{
			name:     "success",
			withUser: true,
			mockSetup: func() {
				mockSvc.EXPECT().
					Summary(gomock.Any(), int64(1)).
					Return(summary, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "no user in context",
			withUser:     false,
			mockSetup:    func() {},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:     "internal error",
			withUser: true,
			mockSetup: func() {
				mockSvc.EXPECT().
					Summary(gomock.Any(), int64(1)).
					Return(nil, errors.New("redis down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			req := httptest.NewRequest(http.MethodGet, "/api/transactions/dashboard", nil)
			if tt.withUser {
				req = req.WithContext(middlewares.ContextWithUserID(req.Context(), 1))
			}
			w := httptest.NewRecorder()

			handler := NewDashboardHandler(mockSvc)
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)

			if tt.expectedCode == http.StatusOK {
				var got models.DashboardSummary
				err := json.Unmarshal(w.Body.Bytes(), &got)
				assert.NoError(t, err)
				assert.Equal(t, *summary, got)
			}
		})
	}
}
