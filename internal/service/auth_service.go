package service

import (
	"context"
	"errors"
	"strings"

	"cinevault/internal/auth"
	"cinevault/internal/domain"
	"cinevault/internal/repository"
)

// AuthService verifies credentials and issues access tokens.
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, string, error)
}

type authService struct {
	users  repository.UserRepository
	hasher auth.Hasher
	tokens *auth.TokenManager
}

func NewAuthService(users repository.UserRepository, hasher auth.Hasher, tokens *auth.TokenManager) AuthService {
	return &authService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// dummyDigest is a bcrypt hash of an unguessable throwaway value. The
// unknown-username path verifies against it so both failure branches pay the
// same hashing cost and return the same error.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func (s *authService) Authenticate(ctx context.Context, username, password string) (*domain.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(password, dummyDigest)
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return nil, "", err
	}
	return sanitizeUser(user), token, nil
}
