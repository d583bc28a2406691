package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-reviewer/internal/models"
)

var (
	ErrNotFound      = errors.New("evaluation not found")
	ErrAlreadyExists = errors.New("evaluation already exists")
)

// EvaluationRepository persists write-once evaluation records. There is no
// update or delete on purpose.
type EvaluationRepository interface {
	Create(ctx context.Context, eval *models.ResumeEvaluation) (string, error)
	FindByID(ctx context.Context, id string) (*models.ResumeEvaluation, error)
	FindAll(ctx context.Context) ([]models.ResumeEvaluation, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) Create(ctx context.Context, eval *models.ResumeEvaluation) (string, error) {
	if eval.ID == "" {
		eval.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).Create(eval).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", fmt.Errorf("%w: %s", ErrAlreadyExists, eval.ID)
		}
		return "", fmt.Errorf("failed to create evaluation: %w", err)
	}
	return eval.ID, nil
}

func (r *evaluationRepository) FindByID(ctx context.Context, id string) (*models.ResumeEvaluation, error) {
	var eval models.ResumeEvaluation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&eval).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find evaluation: %w", err)
	}
	return &eval, nil
}

func (r *evaluationRepository) FindAll(ctx context.Context) ([]models.ResumeEvaluation, error) {
	var evals []models.ResumeEvaluation
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&evals).Error

	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}

	return evals, nil
}
