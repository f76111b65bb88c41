package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cinevault/internal/domain"
	"cinevault/internal/repository"
)

type MovieRepository struct {
	collection *mongo.Collection
}

func NewMovieRepository(db *DB) repository.MovieRepository {
	return &MovieRepository{collection: db.Collection("movies")}
}

func (r *MovieRepository) Init(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "title", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create title index: %w", err)
	}
	return nil
}

func (r *MovieRepository) Insert(ctx context.Context, movie *domain.Movie) error {
	if movie.ID == "" {
		movie.ID = uuid.NewString()
	}
	if _, err := r.collection.InsertOne(ctx, movie); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateTitle
		}
		return storeErr("insert movie", err)
	}
	return nil
}

func (r *MovieRepository) List(ctx context.Context) ([]domain.Movie, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, storeErr("list movies", err)
	}
	var movies []domain.Movie
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, storeErr("decode movies", err)
	}
	return movies, nil
}

func (r *MovieRepository) GetByID(ctx context.Context, id string) (*domain.Movie, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MovieRepository) GetByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	return r.findOne(ctx, bson.M{"title": title})
}

func (r *MovieRepository) GetGenre(ctx context.Context, name string) (*domain.Genre, error) {
	movie, err := r.findOne(ctx, bson.M{"genre.name": name})
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			return nil, domain.ErrGenreNotFound
		}
		return nil, err
	}
	return &movie.Genre, nil
}

func (r *MovieRepository) GetDirector(ctx context.Context, name string) (*domain.Director, error) {
	movie, err := r.findOne(ctx, bson.M{"director.name": name})
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			return nil, domain.ErrDirectorNotFound
		}
		return nil, err
	}
	return &movie.Director, nil
}

func (r *MovieRepository) findOne(ctx context.Context, filter bson.M) (*domain.Movie, error) {
	var movie domain.Movie
	err := r.collection.FindOne(ctx, filter).Decode(&movie)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMovieNotFound
		}
		return nil, storeErr("find movie", err)
	}
	return &movie, nil
}
