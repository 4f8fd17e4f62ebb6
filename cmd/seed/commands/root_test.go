package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"marketadmin/internal/models"
	"marketadmin/internal/repositories"
	"marketadmin/internal/seeder"
	"marketadmin/internal/taxonomy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type failingStore struct {
	insertErr error
	inserts   int
	closed    bool
}

func (s *failingStore) DeleteAll(context.Context) (int64, error) { return 0, nil }

func (s *failingStore) Insert(context.Context, models.CategoryNode) error {
	s.inserts++
	return s.insertErr
}

func (s *failingStore) Count(context.Context) (int64, error) { return int64(s.inserts), nil }

func (s *failingStore) Close(context.Context) error {
	s.closed = true
	return nil
}

// withSeedEnv points the command at a store URL and restores flags and the opener afterwards
func withSeedEnv(t *testing.T, url string, open func(context.Context, string, *zap.Logger) (repositories.CategoryHierarchyRepository, string, error)) {
	t.Helper()
	t.Setenv("CATEGORY_STORE_URL", url)
	t.Setenv("APP_ENV", "production")
	t.Setenv("MINIO_ENDPOINT", "")
	t.Setenv("SEED_REPORT_BUCKET", "")

	prevOpen, prevURL, prevDry, prevJSON := openStore, storeURL, dryRun, jsonOutput
	t.Cleanup(func() {
		openStore, storeURL, dryRun, jsonOutput = prevOpen, prevURL, prevDry, prevJSON
	})
	openStore = open
	storeURL, dryRun, jsonOutput = "", false, false
}

func TestRunSeed_OpenFailure(t *testing.T) {
	withSeedEnv(t, "postgres://localhost:1/shop", func(context.Context, string, *zap.Logger) (repositories.CategoryHierarchyRepository, string, error) {
		return nil, "", errors.New("connection refused")
	})

	var out bytes.Buffer
	err := runSeed(context.Background(), &out)
	assert.ErrorContains(t, err, "connection refused")
	assert.Empty(t, out.String())
}

func TestRunSeed_InsertFailureSkipsSummary(t *testing.T) {
	store := &failingStore{insertErr: errors.New("disk full")}
	withSeedEnv(t, "mongodb://localhost/shop", func(context.Context, string, *zap.Logger) (repositories.CategoryHierarchyRepository, string, error) {
		return store, repositories.BackendMongo, nil
	})

	var out bytes.Buffer
	err := runSeed(context.Background(), &out)
	assert.ErrorContains(t, err, "disk full")
	assert.Empty(t, out.String(), "no summary after a failed run")
	assert.Equal(t, 1, store.inserts, "the run stops at the first failed insert")
	assert.True(t, store.closed)
}

func TestRunSeed_DryRunNeverOpensStore(t *testing.T) {
	opened := false
	withSeedEnv(t, "mongodb://localhost/shop", func(context.Context, string, *zap.Logger) (repositories.CategoryHierarchyRepository, string, error) {
		opened = true
		return nil, "", errors.New("must not be called")
	})
	dryRun = true
	jsonOutput = true

	var out bytes.Buffer
	require.NoError(t, runSeed(context.Background(), &out))
	assert.False(t, opened)

	var summary seeder.Summary
	require.NoError(t, json.Unmarshal(out.Bytes(), &summary))
	assert.True(t, summary.DryRun)
	assert.Equal(t, repositories.BackendMongo, summary.Backend)
	assert.Equal(t, int64(taxonomy.LeafCount(taxonomy.Tree)), summary.Inserted)
}

func TestRunSeed_Success(t *testing.T) {
	store := &failingStore{}
	withSeedEnv(t, "mongodb://localhost/shop", func(context.Context, string, *zap.Logger) (repositories.CategoryHierarchyRepository, string, error) {
		return store, repositories.BackendMongo, nil
	})
	storeURL = "postgres://override/shop"

	var out bytes.Buffer
	require.NoError(t, runSeed(context.Background(), &out))
	assert.Equal(t, taxonomy.LeafCount(taxonomy.Tree), store.inserts)
	assert.Contains(t, out.String(), "Category hierarchy seeded")
	assert.True(t, store.closed)
}
