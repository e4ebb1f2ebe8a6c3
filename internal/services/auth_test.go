package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/foodgram/internal/models"
	"github.com/sbilibin2017/foodgram/internal/repositories"
	"github.com/sbilibin2017/foodgram/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func validRegistration() models.RegisterRequest {
	return models.RegisterRequest{
		Email:     "vpupkin@yandex.ru",
		Username:  "vasya.pupkin",
		FirstName: "Вася",
		LastName:  "Пупкин",
		Password:  "Qwerty123",
	}
}

func TestAuthService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := services.NewMockAccountRepository(ctrl)
	svc := services.NewAuthService(mockUsers, services.NewMockJWTGenerator(ctrl), services.NewMockTokenRevoker(ctrl))

	t.Run("success", func(t *testing.T) {
		mockUsers.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, u *models.UserDB) error {
				assert.Equal(t, "vasya.pupkin", u.Username)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("Qwerty123")))
				u.ID = 7
				return nil
			})

		user, err := svc.Register(context.Background(), validRegistration())
		require.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
	})

	validationTests := []struct {
		name    string
		modify  func(r *models.RegisterRequest)
		field   string
		message string
	}{
		{
			name:    "bad username characters",
			modify:  func(r *models.RegisterRequest) { r.Username = "bad name!" },
			field:   "username",
			message: "invalid characters:  !",
		},
		{
			name:    "missing email",
			modify:  func(r *models.RegisterRequest) { r.Email = "" },
			field:   "email",
			message: "this field is required",
		},
		{
			name:    "malformed email",
			modify:  func(r *models.RegisterRequest) { r.Email = "not-an-email" },
			field:   "email",
			message: "enter a valid email address",
		},
		{
			name:    "missing password",
			modify:  func(r *models.RegisterRequest) { r.Password = "" },
			field:   "password",
			message: "this field is required",
		},
		{
			name:    "password longer than bcrypt accepts",
			modify:  func(r *models.RegisterRequest) { r.Password = strings.Repeat("a", 100) },
			field:   "password",
			message: "ensure this field has no more than 72 bytes",
		},
	}

	for _, tt := range validationTests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegistration()
			tt.modify(&req)

			_, err := svc.Register(context.Background(), req)

			var verr *services.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.message, verr.Fields[tt.field])
		})
	}

	constraintTests := []struct {
		constraint string
		field      string
	}{
		{constraint: repositories.ConstraintUserEmail, field: "email"},
		{constraint: repositories.ConstraintUserUsername, field: "username"},
	}

	for _, tt := range constraintTests {
		t.Run("taken "+tt.field, func(t *testing.T) {
			mockUsers.EXPECT().Create(gomock.Any(), gomock.Any()).
				Return(&repositories.ConstraintError{Err: repositories.ErrDuplicate, Constraint: tt.constraint})

			_, err := svc.Register(context.Background(), validRegistration())

			var verr *services.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields[tt.field], "already exists")
		})
	}

	t.Run("storage error", func(t *testing.T) {
		mockUsers.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		_, err := svc.Register(context.Background(), validRegistration())
		assert.EqualError(t, err, "db down")
	})
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := services.NewMockAccountRepository(ctrl)
	mockJWT := services.NewMockJWTGenerator(ctrl)
	svc := services.NewAuthService(mockUsers, mockJWT, services.NewMockTokenRevoker(ctrl))

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.UserDB{ID: 3, Email: "a@b.c", PasswordHash: string(hash)}

	tests := []struct {
		name      string
		password  string
		user      *models.UserDB
		readerErr error
		token     string
		jwtErr    error
		wantErr   error
	}{
		{name: "success", password: "secret", user: user, token: "tok"},
		{name: "unknown email", password: "secret", readerErr: repositories.ErrNotFound, wantErr: services.ErrInvalidCredentials},
		{name: "wrong password", password: "nope", user: user, wantErr: services.ErrInvalidCredentials},
		{name: "jwt error", password: "secret", user: user, jwtErr: errors.New("sign"), wantErr: errors.New("sign")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers.EXPECT().GetByEmail(gomock.Any(), "a@b.c").Return(tt.user, tt.readerErr)
			if tt.user != nil && tt.password == "secret" {
				mockJWT.EXPECT().Generate(gomock.Any(), int64(3)).Return(tt.token, tt.jwtErr)
			}

			token, err := svc.Login(context.Background(), models.LoginRequest{Email: "a@b.c", Password: tt.password})
			if tt.wantErr != nil {
				assert.EqualError(t, err, tt.wantErr.Error())
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "tok", token)
		})
	}

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Login(context.Background(), models.LoginRequest{})
		var verr *services.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "email")
		assert.Contains(t, verr.Fields, "password")
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRevoker := services.NewMockTokenRevoker(ctrl)
	svc := services.NewAuthService(services.NewMockAccountRepository(ctrl), services.NewMockJWTGenerator(ctrl), mockRevoker)

	mockRevoker.EXPECT().Revoke(gomock.Any(), "jti", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, ttl time.Duration) error {
			assert.True(t, ttl > 59*time.Minute && ttl <= time.Hour)
			return nil
		})
	assert.NoError(t, svc.Logout(context.Background(), "jti", time.Now().Add(time.Hour)))

	mockRevoker.EXPECT().Revoke(gomock.Any(), "jti", gomock.Any()).Return(errors.New("redis down"))
	assert.Error(t, svc.Logout(context.Background(), "jti", time.Now().Add(time.Hour)))
}

func TestAuthService_SetPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUsers := services.NewMockAccountRepository(ctrl)
	svc := services.NewAuthService(mockUsers, services.NewMockJWTGenerator(ctrl), services.NewMockTokenRevoker(ctrl))

	hash, err := bcrypt.GenerateFromPassword([]byte("old"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.UserDB{ID: 5, PasswordHash: string(hash)}

	t.Run("success", func(t *testing.T) {
		mockUsers.EXPECT().GetByID(gomock.Any(), int64(5)).Return(user, nil)
		mockUsers.EXPECT().UpdatePassword(gomock.Any(), int64(5), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int64, newHash string) error {
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("new")))
				return nil
			})

		err := svc.SetPassword(context.Background(), 5, models.SetPasswordRequest{NewPassword: "new", CurrentPassword: "old"})
		assert.NoError(t, err)
	})

	t.Run("wrong current password", func(t *testing.T) {
		mockUsers.EXPECT().GetByID(gomock.Any(), int64(5)).Return(user, nil)

		err := svc.SetPassword(context.Background(), 5, models.SetPasswordRequest{NewPassword: "new", CurrentPassword: "bad"})
		var verr *services.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "wrong password", verr.Fields["current_password"])
	})

	t.Run("new password too long", func(t *testing.T) {
		mockUsers.EXPECT().GetByID(gomock.Any(), int64(5)).Return(user, nil)

		err := svc.SetPassword(context.Background(), 5, models.SetPasswordRequest{
			NewPassword:     strings.Repeat("я", 40),
			CurrentPassword: "old",
		})
		var verr *services.ValidationError
		require.True(t, errors.As(err, &verr), "got %v", err)
		assert.Equal(t, "ensure this field has no more than 72 bytes", verr.Fields["new_password"])
	})

	t.Run("missing new password", func(t *testing.T) {
		err := svc.SetPassword(context.Background(), 5, models.SetPasswordRequest{CurrentPassword: "old"})
		var verr *services.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Contains(t, verr.Fields, "new_password")
	})
}
