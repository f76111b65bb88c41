package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cinevault/internal/domain"
	"cinevault/internal/repository"
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *DB) repository.UserRepository {
	return &UserRepository{collection: db.Collection("users")}
}

// Init enforces username uniqueness at the store level so concurrent
// registrations cannot race past the application-side check.
func (r *UserRepository) Init(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create username index: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.FavoriteMovies == nil {
		user.FavoriteMovies = []string{}
	}

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateUsername
		}
		return storeErr("insert user", err)
	}
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeErr("find user", err)
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, storeErr("list users", err)
	}
	var users []domain.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, storeErr("decode users", err)
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, username string, user *domain.User) (*domain.User, error) {
	update := bson.M{"$set": bson.M{
		"username":      user.Username,
		"password_hash": user.PasswordHash,
		"email":         user.Email,
		"birthday":      user.Birthday,
		"updated_at":    time.Now().UTC(),
	}}

	var updated domain.User
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"username": username},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, domain.ErrUserNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, domain.ErrDuplicateUsername
		default:
			return nil, storeErr("update user", err)
		}
	}
	return &updated, nil
}

func (r *UserRepository) Delete(ctx context.Context, username string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"username": username})
	if err != nil {
		return storeErr("delete user", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// AddFavorite appends movieID to the user's favorites with $addToSet, a single
// atomic document update. Re-adding a present id leaves the set unchanged.
func (r *UserRepository) AddFavorite(ctx context.Context, username, movieID string) (*domain.User, error) {
	return r.mutateFavorites(ctx, username, bson.M{"$addToSet": bson.M{"favorite_movies": movieID}})
}

// RemoveFavorite pulls movieID from the favorites set; removing an absent id
// is a no-op.
func (r *UserRepository) RemoveFavorite(ctx context.Context, username, movieID string) (*domain.User, error) {
	return r.mutateFavorites(ctx, username, bson.M{"$pull": bson.M{"favorite_movies": movieID}})
}

func (r *UserRepository) mutateFavorites(ctx context.Context, username string, update bson.M) (*domain.User, error) {
	var updated domain.User
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"username": username},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeErr("update favorites", err)
	}
	return &updated, nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, domain.ErrStoreUnavailable)
}
