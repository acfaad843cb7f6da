// Package services – AccountService
//
// This file implements the AccountService, which manages user registration and
// login. Registration stores the submitted credential verbatim in the
// password_hash column: real hashing and verification are the responsibility
// of an external collaborator and are explicitly NOT performed here. Login
// resolves the account by email only; the password argument is accepted so
// the wire contract stays stable once verification is wired in.
//
// Service-level errors (ErrDuplicateEmail, ErrInvalidCredentials, ErrEmptyName)
// are returned for predictable cases so handlers can map them to HTTP results
// consistently.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/setrep/go-workout-backend/internal/domain"
)

// UserRepo defines the repository contract required by AccountService.
type UserRepo interface {
	// CreateUser inserts a new user row; the email unique index is enforced
	// by the store.
	CreateUser(ctx context.Context, db *gorm.DB, email, passwordHash, name string) (*domain.User, error)

	// GetUserByEmail fetches a user by exact email match.
	GetUserByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error)
}

// AccountService provides account-level operations: registration and login.
type AccountService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the user repository used by this service.
	Repo UserRepo
}

// NewAccountService constructs an AccountService.
func NewAccountService(db *gorm.DB, r UserRepo) *AccountService {
	return &AccountService{DB: db, Repo: r}
}

// Register creates a new account. Email and name are trimmed; a blank name
// yields ErrEmptyName. A duplicate email yields ErrDuplicateEmail.
//
// The password is persisted as-is into the credential column; see the package
// comment for why no hashing happens at this layer.
func (s *AccountService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	u, err := s.Repo.CreateUser(ctx, s.DB, email, password, name)
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return u, nil
}

// Login resolves an account by email and returns the full stored record.
//
// An unknown email yields ErrInvalidCredentials. The password is NOT verified:
// credential verification is delegated to an external collaborator and is
// intentionally unimplemented here. The returned error never distinguishes
// "unknown email" from "wrong password".
func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	_ = password // accepted but unverified, see above

	u, err := s.Repo.GetUserByEmail(ctx, s.DB, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return u, nil
}
