package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"alfredoptarigan/resume-reviewer/internal/models"
)

// Feedback holds both generated documents, already converted to HTML.
type Feedback struct {
	Evaluation   string
	Improvements string
}

type EvaluatorService interface {
	GenerateFeedback(ctx context.Context, resumeText string, job models.JobContext) (*Feedback, error)
}

type EvaluatorOptions struct {
	// CallTimeout bounds a single model call; zero disables the bound.
	CallTimeout       time.Duration
	MaxRetries        int
	RetryInitialDelay time.Duration
	// MaxConcurrent caps in-flight model calls across all requests.
	MaxConcurrent int
	Parallel      bool
}

type evaluatorService struct {
	generator     TextGenerator
	markdown      MarkdownRenderer
	promptBuilder *PromptBuilder
	limiter       *semaphore.Weighted
	opts          EvaluatorOptions
}

func NewEvaluatorService(generator TextGenerator, markdown MarkdownRenderer, opts EvaluatorOptions) EvaluatorService {
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}
	if opts.MaxConcurrent < 1 {
		opts.MaxConcurrent = 1
	}

	return &evaluatorService{
		generator:     generator,
		markdown:      markdown,
		promptBuilder: NewPromptBuilder(),
		limiter:       semaphore.NewWeighted(int64(opts.MaxConcurrent)),
		opts:          opts,
	}
}

// GenerateFeedback asks the model for an evaluation and for improvement
// suggestions. Both calls must succeed; any failure is reported as
// ErrGeneration.
func (e *evaluatorService) GenerateFeedback(ctx context.Context, resumeText string, job models.JobContext) (*Feedback, error) {
	prompt := e.promptBuilder.BuildUserPrompt(resumeText, job)
	evaluatorInstruction := e.promptBuilder.BuildEvaluatorInstruction(job)
	improverInstruction := e.promptBuilder.BuildImproverInstruction(job)

	log.Debug().Int("prompt_chars", len(prompt)).Bool("parallel", e.opts.Parallel).Msg("📝 Generating résumé feedback")

	var evaluation, improvements string

	if e.opts.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			evaluation, err = e.generate(gctx, "evaluation", evaluatorInstruction, prompt)
			return err
		})
		g.Go(func() error {
			var err error
			improvements, err = e.generate(gctx, "improvements", improverInstruction, prompt)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		var err error
		if evaluation, err = e.generate(ctx, "evaluation", evaluatorInstruction, prompt); err != nil {
			return nil, err
		}
		if improvements, err = e.generate(ctx, "improvements", improverInstruction, prompt); err != nil {
			return nil, err
		}
	}

	return &Feedback{
		Evaluation:   e.markdown.ToHTML(evaluation),
		Improvements: e.markdown.ToHTML(improvements),
	}, nil
}

// generate runs one model call under the concurrency limit, retrying with
// exponential backoff.
func (e *evaluatorService) generate(ctx context.Context, kind, instruction, prompt string) (string, error) {
	if err := e.limiter.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrGeneration, kind, err)
	}
	defer e.limiter.Release(1)

	var lastErr error
	delay := e.opts.RetryInitialDelay

	for attempt := 1; attempt <= e.opts.MaxRetries; attempt++ {
		text, err := e.callOnce(ctx, instruction, prompt)
		if err == nil {
			log.Debug().Str("kind", kind).Int("chars", len(text)).Msg("✅ Model response received")
			return text, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrGeneration, kind, ctx.Err())
		}

		if attempt < e.opts.MaxRetries {
			log.Warn().Err(err).Str("kind", kind).Int("attempt", attempt).Msg("⚠️  Model call failed, retrying")
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %s: %w", ErrGeneration, kind, ctx.Err())
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	log.Error().Err(lastErr).Str("kind", kind).Int("attempts", e.opts.MaxRetries).Msg("❌ Model call failed")
	return "", fmt.Errorf("%w: %s failed after %d attempts: %w", ErrGeneration, kind, e.opts.MaxRetries, lastErr)
}

func (e *evaluatorService) callOnce(ctx context.Context, instruction, prompt string) (string, error) {
	if e.opts.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.CallTimeout)
		defer cancel()
	}

	text, err := e.generator.GenerateText(ctx, instruction, prompt)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", errEmptyResponse
	}
	return text, nil
}
