package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"fitscan-backend/internal/credits"
	"fitscan-backend/internal/shared/auth"
)

// Service contains account business logic. Registration grants the initial
// credit balance through the ledger so the audit trail starts at signup.
type Service struct {
	Repo           Repo
	Credits        *credits.Service
	JWTSecret      string
	JWTTTL         time.Duration
	InitialCredits int
}

// AuthResult bundles a user with a freshly issued access token.
type AuthResult struct {
	User  User
	Token string
}

// Register creates an account, grants initial credits and issues a token.
func (s *Service) Register(ctx context.Context, email, password, name string) (AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return AuthResult{}, ErrInvalidCredentials
	}

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return AuthResult{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResult{}, err
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return AuthResult{}, err
	}

	if s.Credits != nil && s.InitialCredits > 0 {
		if err := s.Credits.Grant(ctx, user.ID, s.InitialCredits, "signup grant"); err != nil {
			return AuthResult{}, err
		}
	}

	token, err := auth.Sign(s.JWTSecret, user.ID, user.Email, user.Name, s.JWTTTL)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token}, nil
}

// Login verifies credentials and issues a token.
func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := auth.Sign(s.JWTSecret, user.ID, user.Email, user.Name, s.JWTTTL)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token}, nil
}

// Get returns a user by ID.
func (s *Service) Get(ctx context.Context, userID string) (User, error) {
	if userID == "" {
		return User{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID)
}
