package services

import (
	"context"
	"errors"
	"time"

	"github.com/sbilibin2017/foodgram/internal/logger"
	"github.com/sbilibin2017/foodgram/internal/models"
	"github.com/sbilibin2017/foodgram/internal/repositories"
	"github.com/sbilibin2017/foodgram/internal/validators"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

// AccountRepository defines the user operations needed for authentication.
type AccountRepository interface {
	Create(ctx context.Context, u *models.UserDB) error
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// JWTGenerator defines an interface for generating JWT tokens.
type JWTGenerator interface {
	Generate(ctx context.Context, userID int64) (string, error)
}

// TokenRevoker remembers tokens that must no longer be accepted.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

// AuthService handles registration, token login and logout, and password changes.
type AuthService struct {
	users   AccountRepository
	jwt     JWTGenerator
	revoker TokenRevoker
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(users AccountRepository, jwt JWTGenerator, revoker TokenRevoker) *AuthService {
	return &AuthService{
		users:   users,
		jwt:     jwt,
		revoker: revoker,
	}
}

// Register validates req and creates the user.
func (svc *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.UserDB, error) {
	verr := validateStruct(req)
	if _, failed := verr.Fields["username"]; !failed {
		if err := validators.ValidateUsername(req.Username); err != nil {
			verr.add("username", err.Error())
		}
	}
	if err := verr.errOrNil(); err != nil {
		logger.Log.Debugw("registration rejected", "email", req.Email, "error", err)
		return nil, err
	}

	hashedPassword, err := hashPassword("password", req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.UserDB{
		Email:        req.Email,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hashedPassword),
	}
	if err := svc.users.Create(ctx, user); err != nil {
		var cErr *repositories.ConstraintError
		if errors.As(err, &cErr) {
			switch cErr.Constraint {
			case repositories.ConstraintUserEmail:
				return nil, fieldError("email", "a user with this email already exists")
			case repositories.ConstraintUserUsername:
				return nil, fieldError("username", "a user with this username already exists")
			}
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	return user, nil
}

// Login checks the credentials and returns a new token.
func (svc *AuthService) Login(ctx context.Context, req models.LoginRequest) (string, error) {
	if err := validateStruct(req).errOrNil(); err != nil {
		return "", err
	}

	user, err := svc.users.GetByEmail(ctx, req.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		logger.Log.Infow("login for unknown email", "email", req.Email)
		return "", ErrInvalidCredentials
	}
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.Log.Infow("invalid credentials", "email", req.Email)
		return "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	return token, nil
}

// Logout revokes the token with tokenID until it expires.
func (svc *AuthService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if err := svc.revoker.Revoke(ctx, tokenID, time.Until(expiresAt)); err != nil {
		logger.Log.Errorw("failed to revoke token", "token_id", tokenID, "err", err)
		return err
	}
	return nil
}

// SetPassword replaces the password of userID after checking the current one.
func (svc *AuthService) SetPassword(ctx context.Context, userID int64, req models.SetPasswordRequest) error {
	if err := validateStruct(req).errOrNil(); err != nil {
		return err
	}

	user, err := svc.users.GetByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return fieldError("current_password", "wrong password")
	}

	hashedPassword, err := hashPassword("new_password", req.NewPassword)
	if err != nil {
		return err
	}

	if err := svc.users.UpdatePassword(ctx, userID, string(hashedPassword)); err != nil {
		logger.Log.Errorw("failed to update password", "user_id", userID, "err", err)
		return err
	}
	return nil
}

// hashPassword hashes password with bcrypt. Passwords bcrypt cannot take are
// reported against field.
func hashPassword(field, password string) ([]byte, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, fieldError(field, "ensure this field has no more than 72 bytes")
	}
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}
	return hashed, nil
}
