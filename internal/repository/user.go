package repository

import (
	"context"

	"cinevault/internal/domain"
)

// UserRepository defines persistence operations for User entities. Favorites
// mutations must be atomic set operations on the user document; callers rely
// on this instead of taking locks.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, username string, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, username string) error
	AddFavorite(ctx context.Context, username, movieID string) (*domain.User, error)
	RemoveFavorite(ctx context.Context, username, movieID string) (*domain.User, error)
}
