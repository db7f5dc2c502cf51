package services

import (
	"context"
	"errors"
	"time"

	"foodexpress/apperr"
	"foodexpress/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the email is unknown so that the unknown-email
// and wrong-secret paths take comparable time.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// IdentityService registers and authenticates accounts
type IdentityService struct {
	users  UserRepository
	logger *logrus.Logger
}

// NewIdentityService creates a new IdentityService
func NewIdentityService(users UserRepository, logger *logrus.Logger) *IdentityService {
	return &IdentityService{users: users, logger: logger}
}

// Register creates a new account. Username and email are case-sensitive exact-match
// keys; a clash on either yields apperr.ErrConflict. Only a bcrypt hash of the
// password is stored.
func (s *IdentityService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	if req.Username == "" {
		return nil, apperr.Validation("username", "username is required")
	}
	if req.Email == "" {
		return nil, apperr.Validation("email", "email is required")
	}
	if req.Password == "" {
		return nil, apperr.Validation("password", "password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		Address:      req.Address,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":  user.ID.Hex(),
		"username": user.Username,
	}).Info("User registered")
	return user, nil
}

// Authenticate checks an email/password pair. The failure is uniform for an unknown
// email and a wrong password so callers cannot probe account existence.
func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (*models.UserSummary, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperr.ErrInvalidCredentials
	}

	return &models.UserSummary{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Phone:    user.Phone,
		Address:  user.Address,
	}, nil
}
