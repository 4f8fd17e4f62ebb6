package seeder

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"marketadmin/internal/models"
	"marketadmin/internal/taxonomy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingStore keeps rows in memory and records the order of calls
type recordingStore struct {
	rows      []models.CategoryNode
	calls     []string
	failAfter int // fail the Nth insert when > 0
	inserts   int
	deleteErr error
}

func (r *recordingStore) DeleteAll(context.Context) (int64, error) {
	r.calls = append(r.calls, "delete")
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	n := int64(len(r.rows))
	r.rows = nil
	return n, nil
}

func (r *recordingStore) Insert(_ context.Context, node models.CategoryNode) error {
	r.calls = append(r.calls, "insert")
	r.inserts++
	if r.failAfter > 0 && r.inserts == r.failAfter {
		return errors.New("write conflict")
	}
	r.rows = append(r.rows, node)
	return nil
}

func (r *recordingStore) Count(context.Context) (int64, error) {
	r.calls = append(r.calls, "count")
	return int64(len(r.rows)), nil
}

func (r *recordingStore) Close(context.Context) error { return nil }

func triples(rows []models.CategoryNode) map[models.Triple]int {
	out := map[models.Triple]int{}
	for _, r := range rows {
		out[r.Triple()]++
	}
	return out
}

func TestRun_Idempotent(t *testing.T) {
	store := &recordingStore{}
	s := New(store, "memory", taxonomy.Tree, nil)

	first, err := s.Run(context.Background())
	require.NoError(t, err)
	afterFirst := triples(store.rows)

	second, err := s.Run(context.Background())
	require.NoError(t, err)
	afterSecond := triples(store.rows)

	assert.Equal(t, afterFirst, afterSecond)
	assert.Len(t, store.rows, taxonomy.LeafCount(taxonomy.Tree))
	assert.Equal(t, int64(0), first.Deleted)
	assert.Equal(t, int64(taxonomy.LeafCount(taxonomy.Tree)), second.Deleted)
	assert.Equal(t, second.Inserted, second.Stored)
}

func TestRun_EveryTripleExactlyOnce(t *testing.T) {
	store := &recordingStore{}
	_, err := New(store, "memory", taxonomy.Tree, nil).Run(context.Background())
	require.NoError(t, err)

	got := triples(store.rows)
	for _, node := range taxonomy.Flatten(taxonomy.Tree) {
		assert.Equal(t, 1, got[node.Triple()], "triple %v", node.Triple())
	}
	assert.Len(t, got, taxonomy.LeafCount(taxonomy.Tree))

	for _, row := range store.rows {
		assert.True(t, row.IsActive)
		assert.False(t, row.CreatedAt.IsZero())
	}
}

func TestRun_DeleteBeforeInsert(t *testing.T) {
	stale := models.CategoryNode{MainCategory: "Old", SubCategory: "Old", SubSubCategory: "Old", IsActive: false}
	store := &recordingStore{rows: []models.CategoryNode{stale, stale}}

	_, err := New(store, "memory", taxonomy.Tree, nil).Run(context.Background())
	require.NoError(t, err)

	require.NotEmpty(t, store.calls)
	assert.Equal(t, "delete", store.calls[0], "delete must precede every insert")
	for _, c := range store.calls[1:] {
		assert.NotEqual(t, "delete", c)
	}
	assert.Equal(t, "count", store.calls[len(store.calls)-1])
	assert.Zero(t, triples(store.rows)[stale.Triple()], "rows from a prior run never survive")
}

func TestRun_InsertOrderFollowsTree(t *testing.T) {
	store := &recordingStore{}
	_, err := New(store, "memory", taxonomy.Tree, nil).Run(context.Background())
	require.NoError(t, err)

	want := taxonomy.Flatten(taxonomy.Tree)
	require.Len(t, store.rows, len(want))
	for i := range want {
		assert.Equal(t, want[i].Triple(), store.rows[i].Triple())
	}
}

func TestRun_DeleteFailureWritesNothing(t *testing.T) {
	store := &recordingStore{deleteErr: errors.New("connection reset")}
	_, err := New(store, "memory", taxonomy.Tree, nil).Run(context.Background())

	assert.ErrorContains(t, err, "connection reset")
	assert.Equal(t, []string{"delete"}, store.calls)
}

func TestRun_InsertFailureAbortsWithoutRollback(t *testing.T) {
	store := &recordingStore{failAfter: 5}
	_, err := New(store, "memory", taxonomy.Tree, nil).Run(context.Background())

	require.Error(t, err)
	assert.ErrorContains(t, err, "write conflict")
	assert.Len(t, store.rows, 4, "rows written before the failure stay")
	assert.Equal(t, 5, store.inserts, "no inserts after the failure")
}

func TestPlan(t *testing.T) {
	summary := Plan(taxonomy.Tree, "mongodb")
	assert.True(t, summary.DryRun)
	assert.Equal(t, int64(154), summary.Inserted)
	assert.Len(t, summary.Mains, 8)
}

func TestSummary_Render(t *testing.T) {
	store := &recordingStore{}
	summary, err := New(store, "memory", taxonomy.Tree, nil).Run(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, summary.Render(&buf))
	out := buf.String()
	assert.Contains(t, out, "Category hierarchy seeded")
	assert.Contains(t, out, "Electronics")
	assert.Contains(t, out, "Total rows: 154")
}
