package domain

import "errors"

var (
	// ErrInvalidCredentials indicates that provided login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrMalformedToken indicates a token whose structure or signature does not check out.
	ErrMalformedToken = errors.New("malformed token")
	// ErrTokenExpired indicates a structurally valid token past its expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrUserNotFound indicates no user record matches the given username.
	ErrUserNotFound = errors.New("user not found")
	// ErrMovieNotFound indicates no movie matches the given id or title.
	ErrMovieNotFound = errors.New("movie not found")
	// ErrGenreNotFound indicates no movie carries the given genre name.
	ErrGenreNotFound = errors.New("genre not found")
	// ErrDirectorNotFound indicates no movie carries the given director name.
	ErrDirectorNotFound = errors.New("director not found")

	// ErrDuplicateUsername indicates the username is already taken.
	ErrDuplicateUsername = errors.New("username already taken")
	// ErrDuplicateTitle indicates a movie with the same title is already cataloged.
	ErrDuplicateTitle = errors.New("movie title already cataloged")

	// ErrStoreUnavailable wraps infrastructure failures from the document store.
	ErrStoreUnavailable = errors.New("store unavailable")
)
