package service

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"cinevault/internal/domain"
	"cinevault/internal/repository"
	"cinevault/internal/storage"
)

const posterURLExpiry = 15 * time.Minute

// CatalogService exposes read-only queries over the movie catalog.
type CatalogService interface {
	ListMovies(ctx context.Context) ([]domain.Movie, error)
	GetMovieByTitle(ctx context.Context, title string) (*domain.Movie, error)
	GetGenre(ctx context.Context, name string) (*domain.Genre, error)
	GetDirector(ctx context.Context, name string) (*domain.Director, error)
}

type catalogService struct {
	movies  repository.MovieRepository
	posters storage.Service
	bucket  string
	logger  *logrus.Logger
}

// NewCatalogService builds the catalog. posters may be nil (or bucket empty)
// when object storage is not configured; image paths then pass through as-is.
func NewCatalogService(movies repository.MovieRepository, posters storage.Service, bucket string, logger *logrus.Logger) CatalogService {
	return &catalogService{
		movies:  movies,
		posters: posters,
		bucket:  bucket,
		logger:  logger,
	}
}

func (s *catalogService) ListMovies(ctx context.Context) ([]domain.Movie, error) {
	movies, err := s.movies.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range movies {
		movies[i].ImagePath = s.resolvePoster(ctx, movies[i].ImagePath)
	}
	if movies == nil {
		movies = []domain.Movie{}
	}
	return movies, nil
}

func (s *catalogService) GetMovieByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	movie, err := s.movies.GetByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	movie.ImagePath = s.resolvePoster(ctx, movie.ImagePath)
	return movie, nil
}

func (s *catalogService) GetGenre(ctx context.Context, name string) (*domain.Genre, error) {
	return s.movies.GetGenre(ctx, name)
}

func (s *catalogService) GetDirector(ctx context.Context, name string) (*domain.Director, error) {
	return s.movies.GetDirector(ctx, name)
}

// resolvePoster turns a stored object key into a presigned URL. Absolute URLs
// and unconfigured storage are passed through untouched; a presign failure
// degrades to the raw key rather than failing the catalog read.
func (s *catalogService) resolvePoster(ctx context.Context, imagePath string) string {
	if imagePath == "" || s.posters == nil || s.bucket == "" {
		return imagePath
	}
	if strings.HasPrefix(imagePath, "http://") || strings.HasPrefix(imagePath, "https://") {
		return imagePath
	}
	url, err := s.posters.ObjectURL(ctx, s.bucket, imagePath, posterURLExpiry)
	if err != nil {
		s.logger.Warnf("presign poster %s: %v", imagePath, err)
		return imagePath
	}
	return url
}
