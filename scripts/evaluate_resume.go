package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"alfredoptarigan/resume-reviewer/internal/config"
	applog "alfredoptarigan/resume-reviewer/internal/logger"
	"alfredoptarigan/resume-reviewer/internal/models"
	"alfredoptarigan/resume-reviewer/internal/repositories"
	"alfredoptarigan/resume-reviewer/internal/services"
)

var (
	resumeFile string
	jobType    string
	profession string
	company    string
	saveRecord bool
	outputFile string
)

var rootCmd = &cobra.Command{
	Use:   "evaluate-resume",
	Short: "Review a local résumé file against a job description",
	Long:  "Extracts the text of a .docx, .doc or .pdf résumé, asks Gemini for an evaluation and improvement suggestions, and prints both as HTML. With --save the result is stored in the configured database.",
	RunE:  runEvaluate,
}

func init() {
	rootCmd.Flags().StringVarP(&resumeFile, "file", "f", "", "Path to the résumé (.docx, .doc or .pdf) (required)")
	rootCmd.Flags().StringVarP(&jobType, "job-type", "t", "", "Job type, e.g. Estágio or CLT (required)")
	rootCmd.Flags().StringVarP(&profession, "profession", "p", "", "Target profession (required)")
	rootCmd.Flags().StringVarP(&company, "company", "c", "", "Company description (required)")
	rootCmd.Flags().BoolVar(&saveRecord, "save", false, "Persist the evaluation in the configured database")
	rootCmd.Flags().StringVarP(&outputFile, "out", "o", "", "Write the HTML feedback to this file instead of stdout")

	for _, name := range []string{"file", "job-type", "profession", "company"} {
		if err := rootCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	job := models.JobContext{
		JobType:            strings.TrimSpace(jobType),
		Profession:         strings.TrimSpace(profession),
		CompanyDescription: strings.TrimSpace(company),
	}
	switch {
	case job.JobType == "":
		return &services.FieldError{Field: "job-type"}
	case job.Profession == "":
		return &services.FieldError{Field: "profession"}
	case job.CompanyDescription == "":
		return &services.FieldError{Field: "company"}
	}

	format, err := services.ParseFormat(resumeFile)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(resumeFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", resumeFile, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applog.Init(applog.Config{Level: cfg.Log.Level, Format: "pretty"})

	text, err := services.NewExtractorService().Extract(ctx, bytes.NewReader(content), format)
	if err != nil {
		return err
	}
	log.Info().Str("file", resumeFile).Int("chars", len(text)).Msg("✅ Text extracted")

	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Temperature)
	if err != nil {
		return err
	}

	evaluator := services.NewEvaluatorService(geminiService, services.NewMarkdownRenderer(), services.EvaluatorOptions{
		CallTimeout:       cfg.Gemini.Timeout,
		MaxRetries:        cfg.Generation.RetryMaxAttempts,
		RetryInitialDelay: cfg.Generation.RetryInitialDelay,
		MaxConcurrent:     cfg.Generation.MaxConcurrent,
		Parallel:          cfg.Generation.Parallel,
	})

	var repo repositories.EvaluationRepository = repositories.NewMemoryEvaluationRepository()
	var storage services.StorageService = services.NoopStorageService{}
	if saveRecord {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			return err
		}
		repo = repositories.NewEvaluationRepository(db)

		if storage, err = services.NewStorageService(ctx, cfg.Storage); err != nil {
			return err
		}
	}

	record, err := services.NewSubmissionService(evaluator, storage, repo).Submit(ctx, services.SubmissionInput{
		FileName: filepath.Base(resumeFile),
		Content:  content,
		Text:     text,
		Job:      job,
	})
	if err != nil {
		return err
	}

	report := fmt.Sprintf("<h1>Avaliação</h1>\n%s\n<h1>Sugestões de Melhorias</h1>\n%s", record.Evaluation, record.Improvements)
	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(report), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outputFile, err)
		}
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), report)
	}

	if saveRecord {
		log.Info().Str("id", record.ID).Msg("✅ Evaluation saved")
	}
	return nil
}
