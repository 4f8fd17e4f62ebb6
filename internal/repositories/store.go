package repositories

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"marketadmin/pkg/database"

	"go.uber.org/zap"
)

// Backend names reported in seed summaries
const (
	BackendMongo    = "mongodb"
	BackendPostgres = "postgres"
)

// DefaultMongoDatabase is used when the URL has no database path
const DefaultMongoDatabase = "marketplace"

// BackendFor returns the backend a store URL selects
func BackendFor(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse store url: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "mongodb", "mongodb+srv":
		return BackendMongo, nil
	case "postgres", "postgresql":
		return BackendPostgres, nil
	default:
		return "", fmt.Errorf("unsupported store url scheme %q", u.Scheme)
	}
}

// MongoDatabase extracts the database name from a mongodb URL path
func MongoDatabase(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return DefaultMongoDatabase
	}
	if name := strings.Trim(u.Path, "/"); name != "" {
		return name
	}
	return DefaultMongoDatabase
}

// OpenCategoryStore connects to the backend rawURL names. Postgres stores get
// their schema migrated before use.
func OpenCategoryStore(ctx context.Context, rawURL string, logger *zap.Logger) (CategoryHierarchyRepository, string, error) {
	backend, err := BackendFor(rawURL)
	if err != nil {
		return nil, "", err
	}

	switch backend {
	case BackendPostgres:
		pool, err := database.NewPool(ctx, rawURL, logger)
		if err != nil {
			return nil, "", err
		}
		if err := database.Migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, "", err
		}
		return NewCategoryRepo(pool), backend, nil
	default:
		client, err := ConnectMongo(ctx, rawURL)
		if err != nil {
			return nil, "", err
		}
		name := MongoDatabase(rawURL)
		logger.Info("mongo connected", zap.String("database", name))
		return NewCategoryMongoRepo(client, name), backend, nil
	}
}
