package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"cinevault/internal/auth"
	"cinevault/internal/domain"
	"cinevault/internal/repository"
)

// ProfileRequest carries the fields a client may set on registration or
// profile update.
type ProfileRequest struct {
	Username string     `json:"username" validate:"required,min=5,alphanum"`
	Password string     `json:"password" validate:"required"`
	Email    string     `json:"email" validate:"required,email"`
	Birthday *time.Time `json:"birthday"`
}

// ValidationError reports per-field input problems; the boundary renders it
// as an unprocessable-entity response.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %d field(s) rejected", len(e.Fields))
}

// UserService owns the account lifecycle and the favorites list.
type UserService interface {
	Register(ctx context.Context, req ProfileRequest) (*domain.User, error)
	Update(ctx context.Context, username string, req ProfileRequest) (*domain.User, error)
	Deregister(ctx context.Context, username string) error
	List(ctx context.Context) ([]domain.User, error)
	AddFavorite(ctx context.Context, username, movieID string) (*domain.User, error)
	RemoveFavorite(ctx context.Context, username, movieID string) (*domain.User, error)
}

type userService struct {
	users    repository.UserRepository
	movies   repository.MovieRepository
	hasher   auth.Hasher
	validate *validator.Validate
}

func NewUserService(users repository.UserRepository, movies repository.MovieRepository, hasher auth.Hasher) UserService {
	return &userService{
		users:    users,
		movies:   movies,
		hasher:   hasher,
		validate: validator.New(),
	}
}

func (s *userService) Register(ctx context.Context, req ProfileRequest) (*domain.User, error) {
	if err := s.validateProfile(req); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: hash,
		Email:        strings.TrimSpace(req.Email),
		Birthday:     req.Birthday,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) Update(ctx context.Context, username string, req ProfileRequest) (*domain.User, error) {
	if err := s.validateProfile(req); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	updated, err := s.users.Update(ctx, username, &domain.User{
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: hash,
		Email:        strings.TrimSpace(req.Email),
		Birthday:     req.Birthday,
	})
	if err != nil {
		return nil, err
	}
	return sanitizeUser(updated), nil
}

func (s *userService) Deregister(ctx context.Context, username string) error {
	return s.users.Delete(ctx, username)
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, len(users))
	for i := range users {
		out[i] = *sanitizeUser(&users[i])
	}
	return out, nil
}

// AddFavorite checks the movie exists, then performs an atomic set-add on the
// user's favorites. Adding an already-present id is a no-op.
func (s *userService) AddFavorite(ctx context.Context, username, movieID string) (*domain.User, error) {
	if _, err := s.movies.GetByID(ctx, movieID); err != nil {
		return nil, err
	}
	updated, err := s.users.AddFavorite(ctx, username, movieID)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(updated), nil
}

// RemoveFavorite mirrors AddFavorite; removing an absent id is a no-op.
func (s *userService) RemoveFavorite(ctx context.Context, username, movieID string) (*domain.User, error) {
	if _, err := s.movies.GetByID(ctx, movieID); err != nil {
		return nil, err
	}
	updated, err := s.users.RemoveFavorite(ctx, username, movieID)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(updated), nil
}

func (s *userService) validateProfile(req ProfileRequest) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			name := strings.ToLower(fe.Field())
			switch fe.Tag() {
			case "required":
				fields[name] = fmt.Sprintf("The %s field is required.", name)
			case "min":
				fields[name] = fmt.Sprintf("The %s must be at least %s characters.", name, fe.Param())
			case "alphanum":
				fields[name] = fmt.Sprintf("The %s may only contain letters and numbers.", name)
			case "email":
				fields[name] = "The email must be a valid email address."
			default:
				fields[name] = fmt.Sprintf("The %s field is invalid.", name)
			}
		}
	} else {
		fields["request"] = "Invalid input data."
	}
	return &ValidationError{Fields: fields}
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clean := *user
	clean.PasswordHash = ""
	if clean.FavoriteMovies == nil {
		clean.FavoriteMovies = []string{}
	}
	return &clean
}
