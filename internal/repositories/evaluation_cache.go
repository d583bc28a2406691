package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"alfredoptarigan/resume-reviewer/internal/models"
)

const cacheKeyPrefix = "resume_evaluation:"

// cachedEvaluationRepository puts a Redis read-through cache in front of
// another repository. Records never change after creation, so entries only
// expire by TTL. Redis failures degrade to the underlying repository.
type cachedEvaluationRepository struct {
	next   EvaluationRepository
	client redis.UniversalClient
	ttl    time.Duration
}

func NewCachedEvaluationRepository(next EvaluationRepository, client redis.UniversalClient, ttl time.Duration) EvaluationRepository {
	return &cachedEvaluationRepository{
		next:   next,
		client: client,
		ttl:    ttl,
	}
}

func (r *cachedEvaluationRepository) Create(ctx context.Context, eval *models.ResumeEvaluation) (string, error) {
	id, err := r.next.Create(ctx, eval)
	if err != nil {
		return "", err
	}
	r.store(ctx, eval)
	return id, nil
}

func (r *cachedEvaluationRepository) FindByID(ctx context.Context, id string) (*models.ResumeEvaluation, error) {
	raw, err := r.client.Get(ctx, cacheKeyPrefix+id).Bytes()
	switch {
	case err == nil:
		var eval models.ResumeEvaluation
		if jsonErr := json.Unmarshal(raw, &eval); jsonErr == nil {
			return &eval, nil
		}
		log.Warn().Str("id", id).Msg("⚠️  Discarding undecodable cached evaluation")
	case !errors.Is(err, redis.Nil):
		log.Warn().Err(err).Str("id", id).Msg("⚠️  Redis lookup failed, falling back to database")
	}

	eval, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, eval)
	return eval, nil
}

func (r *cachedEvaluationRepository) FindAll(ctx context.Context) ([]models.ResumeEvaluation, error) {
	return r.next.FindAll(ctx)
}

func (r *cachedEvaluationRepository) store(ctx context.Context, eval *models.ResumeEvaluation) {
	payload, err := json.Marshal(eval)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, cacheKeyPrefix+eval.ID, payload, r.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("id", eval.ID).Msg("⚠️  Failed to cache evaluation")
	}
}
