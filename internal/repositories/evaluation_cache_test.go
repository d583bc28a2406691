package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-reviewer/internal/models"
)

// countingRepository records how often lookups reach the wrapped store.
type countingRepository struct {
	*MemoryEvaluationRepository
	finds int
}

func (r *countingRepository) FindByID(ctx context.Context, id string) (*models.ResumeEvaluation, error) {
	r.finds++
	return r.MemoryEvaluationRepository.FindByID(ctx, id)
}

func newCachedRepo(t *testing.T) (EvaluationRepository, *countingRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	inner := &countingRepository{MemoryEvaluationRepository: NewMemoryEvaluationRepository()}
	return NewCachedEvaluationRepository(inner, client, time.Hour), inner, mr
}

func TestCachedRepositoryServesCreatedRecordFromCache(t *testing.T) {
	repo, inner, mr := newCachedRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, sampleEvaluation())
	require.NoError(t, err)
	assert.True(t, mr.Exists(cacheKeyPrefix+id))

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Go developer", got.FileContent)
	assert.Equal(t, 0, inner.finds)
}

func TestCachedRepositoryReadThrough(t *testing.T) {
	repo, inner, mr := newCachedRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, sampleEvaluation())
	require.NoError(t, err)
	mr.Del(cacheKeyPrefix + id)

	_, err = repo.FindByID(ctx, id)
	require.NoError(t, err)
	_, err = repo.FindByID(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.finds)
}

func TestCachedRepositoryNotFound(t *testing.T) {
	repo, _, _ := newCachedRepo(t)

	_, err := repo.FindByID(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCachedRepositoryFallsBackWhenRedisIsDown(t *testing.T) {
	repo, inner, mr := newCachedRepo(t)
	ctx := context.Background()

	id, err := inner.Create(ctx, sampleEvaluation())
	require.NoError(t, err)
	mr.Close()

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
}
