package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-reviewer/internal/models"
)

// MemoryEvaluationRepository keeps records in process memory. It backs the
// CLI when no database is requested and the handler tests.
type MemoryEvaluationRepository struct {
	mu      sync.RWMutex
	records map[string]models.ResumeEvaluation
	order   []string
}

func NewMemoryEvaluationRepository() *MemoryEvaluationRepository {
	return &MemoryEvaluationRepository{
		records: make(map[string]models.ResumeEvaluation),
	}
}

func (r *MemoryEvaluationRepository) Create(ctx context.Context, eval *models.ResumeEvaluation) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if eval.ID == "" {
		eval.ID = uuid.NewString()
	}
	if _, exists := r.records[eval.ID]; exists {
		return "", fmt.Errorf("%w: %s", ErrAlreadyExists, eval.ID)
	}
	if eval.CreatedAt.IsZero() {
		eval.CreatedAt = time.Now()
	}

	r.records[eval.ID] = *eval
	r.order = append(r.order, eval.ID)
	return eval.ID, nil
}

func (r *MemoryEvaluationRepository) FindByID(ctx context.Context, id string) (*models.ResumeEvaluation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	eval, ok := r.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &eval, nil
}

func (r *MemoryEvaluationRepository) FindAll(ctx context.Context) ([]models.ResumeEvaluation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	evals := make([]models.ResumeEvaluation, 0, len(r.order))
	for _, id := range r.order {
		evals = append(evals, r.records[id])
	}
	return evals, nil
}

// Count reports how many records are stored.
func (r *MemoryEvaluationRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

var _ EvaluationRepository = (*MemoryEvaluationRepository)(nil)
