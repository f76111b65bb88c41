package repository

import (
	"context"

	"cinevault/internal/domain"
)

// MovieRepository defines read access to the movie catalog. Insert exists for
// the seed tooling only; the API never writes movies.
type MovieRepository interface {
	Init(ctx context.Context) error
	Insert(ctx context.Context, movie *domain.Movie) error
	List(ctx context.Context) ([]domain.Movie, error)
	GetByID(ctx context.Context, id string) (*domain.Movie, error)
	GetByTitle(ctx context.Context, title string) (*domain.Movie, error)
	GetGenre(ctx context.Context, name string) (*domain.Genre, error)
	GetDirector(ctx context.Context, name string) (*domain.Director, error)
}
