// Command seed loads a movies JSON file into the catalog collection and
// optionally uploads a directory of poster images to the configured bucket.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"

	"cinevault/internal/config"
	"cinevault/internal/domain"
	"cinevault/internal/repository/mongodb"
	"cinevault/internal/storage"
)

type seedGenre struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type seedDirector struct {
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	BirthYear int    `json:"birth_year"`
	DeathYear *int   `json:"death_year,omitempty"`
}

type seedMovie struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Genre       seedGenre    `json:"genre"`
	Director    seedDirector `json:"director"`
	ImagePath   string       `json:"image_path"`
	Featured    bool         `json:"featured"`
}

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	moviesPath := flag.String("movies", "seed/movies.json", "path to the movies JSON file")
	postersDir := flag.String("posters", "", "optional directory of poster images to upload")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := mongodb.Open(cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close(context.Background())

	movieRepo := mongodb.NewMovieRepository(db)
	if err := movieRepo.Init(ctx); err != nil {
		logger.Fatalf("init movie repository: %v", err)
	}

	movies, err := readMovies(*moviesPath)
	if err != nil {
		logger.Fatalf("read movies: %v", err)
	}

	var inserted, skipped int
	for i := range movies {
		err := movieRepo.Insert(ctx, &movies[i])
		switch {
		case err == nil:
			inserted++
		case errors.Is(err, domain.ErrDuplicateTitle):
			skipped++
		default:
			logger.Fatalf("insert movie %q: %v", movies[i].Title, err)
		}
	}
	logger.Infof("catalog seeded: %d inserted, %d already present", inserted, skipped)

	if *postersDir == "" {
		return
	}
	if cfg.Storage.Bucket == "" {
		logger.Fatalf("poster upload requested but no storage bucket configured")
	}

	store, err := buildStorage(ctx, cfg)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}

	uploaded, err := uploadPosters(ctx, store, cfg.Storage.Bucket, cfg.Storage.KeyPrefix, *postersDir)
	if err != nil {
		logger.Fatalf("upload posters: %v", err)
	}
	logger.Infof("uploaded %d poster(s) to s3://%s/%s", uploaded, cfg.Storage.Bucket, cfg.Storage.KeyPrefix)
}

func readMovies(path string) ([]domain.Movie, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw []seedMovie
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	movies := make([]domain.Movie, len(raw))
	for i, m := range raw {
		if strings.TrimSpace(m.Title) == "" {
			return nil, fmt.Errorf("movie %d has no title", i)
		}
		movies[i] = domain.Movie{
			Title:       m.Title,
			Description: m.Description,
			Genre:       domain.Genre(m.Genre),
			Director: domain.Director{
				Name:      m.Director.Name,
				Bio:       m.Director.Bio,
				BirthYear: m.Director.BirthYear,
				DeathYear: m.Director.DeathYear,
			},
			ImagePath: m.ImagePath,
			Featured:  m.Featured,
		}
	}
	return movies, nil
}

// uploadPosters pushes every regular file under dir to the bucket, skipping
// keys that already exist.
func uploadPosters(ctx context.Context, store storage.Service, bucket, keyPrefix, dir string) (int, error) {
	existing, err := store.ListObjects(ctx, bucket, keyPrefix)
	if err != nil {
		return 0, err
	}
	present := make(map[string]struct{}, len(existing))
	for _, obj := range existing {
		present[obj.Key] = struct{}{}
	}

	var uploaded int
	err = filepath.Walk(dir, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", path, err)
		}
		key := strings.Trim(keyPrefix, "/") + "/" + filepath.ToSlash(rel)
		if _, ok := present[key]; ok {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open poster %s: %w", path, err)
		}
		defer f.Close()

		if _, err := store.Upload(ctx, bucket, key, f); err != nil {
			return err
		}
		uploaded++
		return nil
	})
	return uploaded, err
}

func buildStorage(ctx context.Context, cfg config.Config) (storage.Service, error) {
	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	return storage.NewS3Service(client), nil
}
