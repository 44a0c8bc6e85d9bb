package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/AndreyLuiz0/mycashnest/internal/models"
	"github.com/AndreyLuiz0/mycashnest/internal/services"
)

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockJWT := services.NewMockJWTGenerator(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockJWT)

	tests := []struct {
		name         string
		userName     string
		email        string
		password     string
		existingUser *models.UserDB
		readerErr    error
		writerErr    error
		wantErr      error
	}{
		{
			name:     "successful registration",
			userName: "Alice",
			email:    "alice@example.com",
			password: "pass123",
		},
		{
			name:         "email already registered",
			userName:     "Bob",
			email:        "bob@example.com",
			password:     "pass123",
			existingUser: &models.UserDB{UserID: 2, Email: "bob@example.com"},
			wantErr:      services.ErrEmailTaken,
		},
		{
			name:      "reader error",
			userName:  "Eve",
			email:     "eve@example.com",
			password:  "pass123",
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
		{
			name:      "writer error",
			userName:  "Carol",
			email:     "carol@example.com",
			password:  "pass123",
			writerErr: errors.New("save error"),
			wantErr:   errors.New("save error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()

			mockReader.EXPECT().
				GetByEmail(ctx, tt.email).
				Return(tt.existingUser, tt.readerErr)

			if tt.readerErr == nil && tt.existingUser == nil {
				mockWriter.EXPECT().
					Save(ctx, tt.userName, tt.email, gomock.Any()).
					Return(int64(1), tt.writerErr)

				if tt.writerErr == nil {
					mockJWT.EXPECT().
						Generate(ctx, int64(1)).
						Return("JWT_TOKEN", nil)
				}
			}

			user, token, err := svc.Register(ctx, tt.userName, tt.email, tt.password)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, user)
				assert.Empty(t, token)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "JWT_TOKEN", token)
			assert.Equal(t, &models.PublicUser{UserID: 1, Name: tt.userName, Email: tt.email}, user)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockJWT := services.NewMockJWTGenerator(ctrl)

	svc := services.NewAuthService(mockReader, mockWriter, mockJWT)

	hash, err := bcrypt.GenerateFromPassword([]byte("pass123"), bcrypt.MinCost)
	assert.NoError(t, err)

	storedUser := &models.UserDB{
		UserID:   1,
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: string(hash),
	}

	tests := []struct {
		name      string
		email     string
		password  string
		stored    *models.UserDB
		readerErr error
		wantErr   error
	}{
		{
			name:     "successful login",
			email:    "alice@example.com",
			password: "pass123",
			stored:   storedUser,
		},
		{
			name:     "unknown email",
			email:    "ghost@example.com",
			password: "pass123",
			wantErr:  services.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "alice@example.com",
			password: "wrongpass",
			stored:   storedUser,
			wantErr:  services.ErrInvalidCredentials,
		},
		{
			name:      "reader error",
			email:     "alice@example.com",
			password:  "pass123",
			readerErr: errors.New("db error"),
			wantErr:   errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()

			mockReader.EXPECT().
				GetByEmail(ctx, tt.email).
				Return(tt.stored, tt.readerErr)

			if tt.wantErr == nil {
				mockJWT.EXPECT().
					Generate(ctx, storedUser.UserID).
					Return("JWT_TOKEN", nil)
			}

			user, token, err := svc.Login(ctx, tt.email, tt.password)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Nil(t, user)
				assert.Empty(t, token)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "JWT_TOKEN", token)
			assert.Equal(t, &models.PublicUser{UserID: 1, Name: "Alice", Email: "alice@example.com"}, user)
		})
	}
}
