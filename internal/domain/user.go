package domain

import "time"

// User represents a registered account and its favorites list.
type User struct {
	ID             string     `bson:"_id,omitempty"`
	Username       string     `bson:"username"`
	PasswordHash   string     `bson:"password_hash"`
	Email          string     `bson:"email"`
	Birthday       *time.Time `bson:"birthday,omitempty"`
	FavoriteMovies []string   `bson:"favorite_movies"`
	CreatedAt      time.Time  `bson:"created_at"`
	UpdatedAt      time.Time  `bson:"updated_at"`
}

// HasFavorite reports whether the movie id is already in the favorites set.
func (u *User) HasFavorite(movieID string) bool {
	for _, id := range u.FavoriteMovies {
		if id == movieID {
			return true
		}
	}
	return false
}
