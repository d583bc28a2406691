package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"alfredoptarigan/resume-reviewer/internal/models"
	"alfredoptarigan/resume-reviewer/internal/repositories"
)

// SubmissionInput is an upload that already passed format, extraction and
// form validation.
type SubmissionInput struct {
	FileName string
	Content  []byte
	Text     string
	Job      models.JobContext
}

type SubmissionService interface {
	Submit(ctx context.Context, in SubmissionInput) (*models.ResumeEvaluation, error)
}

type submissionService struct {
	evaluator EvaluatorService
	storage   StorageService
	repo      repositories.EvaluationRepository
}

func NewSubmissionService(
	evaluator EvaluatorService,
	storage StorageService,
	repo repositories.EvaluationRepository,
) SubmissionService {
	return &submissionService{
		evaluator: evaluator,
		storage:   storage,
		repo:      repo,
	}
}

// Submit generates the feedback, archives the original file and persists the
// record. Nothing is stored unless every step succeeds.
func (s *submissionService) Submit(ctx context.Context, in SubmissionInput) (*models.ResumeEvaluation, error) {
	feedback, err := s.evaluator.GenerateFeedback(ctx, in.Text, in.Job)
	if err != nil {
		return nil, err
	}

	storedFile, err := s.storage.Save(ctx, in.FileName, bytes.NewReader(in.Content))
	if err != nil {
		return nil, fmt.Errorf("failed to archive upload: %w", err)
	}

	record := &models.ResumeEvaluation{
		FileName:           in.FileName,
		FileContent:        in.Text,
		JobType:            in.Job.JobType,
		Profession:         in.Job.Profession,
		CompanyDescription: in.Job.CompanyDescription,
		Evaluation:         feedback.Evaluation,
		Improvements:       feedback.Improvements,
		StoredFile:         storedFile,
	}

	id, err := s.repo.Create(ctx, record)
	if err != nil {
		// Cleanup archived file if database insert fails
		if storedFile != "" {
			if delErr := s.storage.Delete(context.WithoutCancel(ctx), storedFile); delErr != nil {
				log.Warn().Err(delErr).Str("key", storedFile).Msg("⚠️  Failed to remove archived upload")
			}
		}
		return nil, fmt.Errorf("failed to save evaluation: %w", err)
	}
	record.ID = id

	log.Info().Str("id", id).Str("file", in.FileName).Msg("✅ Evaluation stored")
	return record, nil
}
