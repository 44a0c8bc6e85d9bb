package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/AndreyLuiz0/mycashnest/internal/middlewares"
	"github.com/AndreyLuiz0/mycashnest/internal/models"
	"github.com/AndreyLuiz0/mycashnest/internal/services"
)

func TestCreateTransactionHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockTransactionCreator(ctrl)

	created := &models.TransactionDB{
		TransactionID: 7,
		UserID:        1,
		Type:          models.TypeExpense,
		Amount:        45.5,
		Category:      strPtr("Groceries"),
		Date:          strPtr("2025-08-01"),
		Status:        models.StatusUnpaid,
	}

	tests := []struct {
		name         string
		withUser     bool
		inputBody    interface{}
		mockSetup    func()
		expectedCode int
		expectedErr  string
	}{
		{
			name:     "success with defaulted status",
			withUser: true,
			inputBody: CreateTransactionRequest{
				Type:     models.TypeExpense,
				Amount:   45.5,
				Category: strPtr("Groceries"),
				Date:     strPtr("2025-08-01"),
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Create(gomock.Any(), int64(1), models.TypeExpense, 45.5, gomock.Nil(), strPtr("Groceries"), strPtr("2025-08-01"), "").
					Return(created, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "no user in context",
			withUser:     false,
			inputBody:    CreateTransactionRequest{Type: models.TypeExpense, Amount: 10},
			mockSetup:    func() {},
			expectedCode: http.StatusUnauthorized,
			expectedErr:  "Unauthorized",
		},
		{
			name:         "invalid JSON",
			withUser:     true,
			inputBody:    "{invalid json}",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "Invalid request body",
		},
		{
			name:         "missing type and amount",
			withUser:     true,
			inputBody:    CreateTransactionRequest{},
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "Type and amount are required",
		},
		{
			name:     "status does not match type",
			withUser: true,
			inputBody: CreateTransactionRequest{
				Type:   models.TypeExpense,
				Amount: 10,
				Status: models.StatusReceived,
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Create(gomock.Any(), int64(1), models.TypeExpense, 10.0, gomock.Nil(), gomock.Nil(), gomock.Nil(), models.StatusReceived).
					Return(nil, services.ErrInvalidStatus)
			},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "invalid status for transaction type",
		},
		{
			name:     "negative amount",
			withUser: true,
			inputBody: CreateTransactionRequest{
				Type:   models.TypeExpense,
				Amount: -5,
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Create(gomock.Any(), int64(1), models.TypeExpense, -5.0, gomock.Nil(), gomock.Nil(), gomock.Nil(), "").
					Return(nil, services.ErrInvalidAmount)
			},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "amount must be a positive number",
		},
		{
			name:     "internal error",
			withUser: true,
			inputBody: CreateTransactionRequest{
				Type:   models.TypeExpense,
				Amount: 10,
			},
			mockSetup: func() {
				mockSvc.EXPECT().
					Create(gomock.Any(), int64(1), models.TypeExpense, 10.0, gomock.Nil(), gomock.Nil(), gomock.Nil(), "").
					Return(nil, errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedErr:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			var bodyBytes []byte
			switch v := tt.inputBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, _ = json.Marshal(v)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/transactions", bytes.NewReader(bodyBytes))
			if tt.withUser {
				req = req.WithContext(middlewares.ContextWithUserID(req.Context(), 1))
			}
			w := httptest.NewRecorder()

			handler := NewCreateTransactionHandler(mockSvc)
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)

			if tt.expectedCode == http.StatusCreated {
				var got models.TransactionDB
				err := json.Unmarshal(w.Body.Bytes(), &got)
				assert.NoError(t, err)
				assert.Equal(t, *created, got)
			} else {
				var got CreateTransactionErrorResponse
				err := json.Unmarshal(w.Body.Bytes(), &got)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedErr, got.Error)
			}
		})
	}
}
