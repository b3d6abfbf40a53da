package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"fitPerksAPI/internal/apperr"
	"fitPerksAPI/internal/auth"
	"fitPerksAPI/internal/i18n"
	"fitPerksAPI/internal/store"
	"fitPerksAPI/internal/types/user"
)

const minPasswordLength = 6

type AuthService struct {
	store     store.Store
	jwtSecret []byte
}

func NewAuthService(st store.Store, jwtSecret []byte) *AuthService {
	return &AuthService{store: st, jwtSecret: jwtSecret}
}

// Register creates a new account and returns the sanitized user plus a
// signed session token. Username and email uniqueness is checked
// case-insensitively.
func (s *AuthService) Register(ctx context.Context, req *user.RegisterRequest, loc i18n.Locale) (*user.View, string, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, "", fmt.Errorf("%w: username, email and password are required", apperr.ErrInvalidInput)
	}
	if len(req.Password) < minPasswordLength {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", apperr.ErrInvalidInput, minPasswordLength)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	created := user.User{
		ID:                  uuid.NewString(),
		Username:            req.Username,
		Email:               req.Email,
		PasswordHash:        hash,
		Points:              0,
		CompletedChallenges: []string{},
		RedeemedRewards:     []user.Redemption{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	err = s.store.Update(func(doc *store.Document) error {
		if doc.UserByUsername(req.Username) != nil {
			return fmt.Errorf("%w: username is already taken", apperr.ErrConflict)
		}
		if doc.UserByEmail(req.Email) != nil {
			return fmt.Errorf("%w: email is already registered", apperr.ErrConflict)
		}
		doc.Users = append(doc.Users, created)
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	token, err := auth.GenerateToken(created.ID, created.Username, s.jwtSecret, auth.TokenValidity)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}

	log.Printf("Registered new user %s (%s)", created.Username, created.ID)

	view := created.Localized(loc)
	return &view, token, nil
}

// Login verifies credentials and mints a 7-day session token. Unknown
// username and wrong password produce the identical error so callers
// cannot probe which accounts exist.
func (s *AuthService) Login(ctx context.Context, req *user.LoginRequest, loc i18n.Locale) (*user.View, string, error) {
	if req.Username == "" || req.Password == "" {
		return nil, "", fmt.Errorf("%w: username and password are required", apperr.ErrInvalidInput)
	}

	doc, err := s.store.Load()
	if err != nil {
		return nil, "", fmt.Errorf("failed to load document: %w", err)
	}

	account := doc.UserByUsername(req.Username)
	if account == nil || !auth.CheckPassword(account.PasswordHash, req.Password) {
		return nil, "", apperr.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(account.ID, account.Username, s.jwtSecret, auth.TokenValidity)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}

	view := account.Localized(loc)
	return &view, token, nil
}
