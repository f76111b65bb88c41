package service

import (
	"context"
	"sync"

	"cinevault/internal/domain"
	"cinevault/internal/repository"
)

// In-memory repositories backing the service tests.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) Init(context.Context) error { return nil }

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return domain.ErrDuplicateUsername
	}
	user.ID = "user-" + user.Username
	if user.FavoriteMovies == nil {
		user.FavoriteMovies = []string{}
	}
	clone := *user
	r.users[user.Username] = &clone
	return nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *memUserRepo) List(context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, nil
}

func (r *memUserRepo) Update(_ context.Context, username string, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if user.Username != username {
		if _, taken := r.users[user.Username]; taken {
			return nil, domain.ErrDuplicateUsername
		}
		delete(r.users, username)
	}
	current.Username = user.Username
	current.PasswordHash = user.PasswordHash
	current.Email = user.Email
	current.Birthday = user.Birthday
	r.users[current.Username] = current
	clone := *current
	return &clone, nil
}

func (r *memUserRepo) Delete(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[username]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, username)
	return nil
}

func (r *memUserRepo) AddFavorite(_ context.Context, username, movieID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if !user.HasFavorite(movieID) {
		user.FavoriteMovies = append(user.FavoriteMovies, movieID)
	}
	clone := *user
	return &clone, nil
}

func (r *memUserRepo) RemoveFavorite(_ context.Context, username, movieID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	kept := user.FavoriteMovies[:0]
	for _, id := range user.FavoriteMovies {
		if id != movieID {
			kept = append(kept, id)
		}
	}
	user.FavoriteMovies = kept
	clone := *user
	return &clone, nil
}

var _ repository.UserRepository = (*memUserRepo)(nil)

type memMovieRepo struct {
	mu     sync.Mutex
	movies map[string]*domain.Movie
}

func newMemMovieRepo(movies ...domain.Movie) *memMovieRepo {
	repo := &memMovieRepo{movies: make(map[string]*domain.Movie)}
	for i := range movies {
		m := movies[i]
		repo.movies[m.ID] = &m
	}
	return repo
}

func (r *memMovieRepo) Init(context.Context) error { return nil }

func (r *memMovieRepo) Insert(_ context.Context, movie *domain.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.movies {
		if m.Title == movie.Title {
			return domain.ErrDuplicateTitle
		}
	}
	if movie.ID == "" {
		movie.ID = "movie-" + movie.Title
	}
	clone := *movie
	r.movies[movie.ID] = &clone
	return nil
}

func (r *memMovieRepo) List(context.Context) ([]domain.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Movie
	for _, m := range r.movies {
		out = append(out, *m)
	}
	return out, nil
}

func (r *memMovieRepo) GetByID(_ context.Context, id string) (*domain.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	movie, ok := r.movies[id]
	if !ok {
		return nil, domain.ErrMovieNotFound
	}
	clone := *movie
	return &clone, nil
}

func (r *memMovieRepo) GetByTitle(_ context.Context, title string) (*domain.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.movies {
		if m.Title == title {
			clone := *m
			return &clone, nil
		}
	}
	return nil, domain.ErrMovieNotFound
}

func (r *memMovieRepo) GetGenre(_ context.Context, name string) (*domain.Genre, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.movies {
		if m.Genre.Name == name {
			genre := m.Genre
			return &genre, nil
		}
	}
	return nil, domain.ErrGenreNotFound
}

func (r *memMovieRepo) GetDirector(_ context.Context, name string) (*domain.Director, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.movies {
		if m.Director.Name == name {
			director := m.Director
			return &director, nil
		}
	}
	return nil, domain.ErrDirectorNotFound
}

var _ repository.MovieRepository = (*memMovieRepo)(nil)
