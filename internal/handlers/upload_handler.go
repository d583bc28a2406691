package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"alfredoptarigan/resume-reviewer/internal/models"
	"alfredoptarigan/resume-reviewer/internal/services"
)

const (
	msgNoFile            = "Nenhum arquivo enviado."
	msgNoFileSelected    = "Nenhum arquivo selecionado."
	msgUnsupportedFormat = "Formato de arquivo não suportado."
	msgExtractionFailed  = "Não foi possível extrair o texto do currículo."
	msgGenerationFailed  = "Falha ao gerar a avaliação do currículo."
	msgPersistFailed     = "Falha ao salvar a avaliação do currículo."
	msgInvalidForm       = "Formulário inválido."
)

type UploadHandler struct {
	extractor   services.ExtractorService
	submission  services.SubmissionService
	validate    *validator.Validate
	maxFileSize int64
}

func NewUploadHandler(
	extractor services.ExtractorService,
	submission services.SubmissionService,
	maxFileSize int64,
) *UploadHandler {
	validate := validator.New()
	// Report fields by their form names so clients see tipo_vaga, not JobType.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return &UploadHandler{
		extractor:   extractor,
		submission:  submission,
		validate:    validate,
		maxFileSize: maxFileSize,
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Erro: msg})
}

// HandleUpload validates the upload, extracts its text, generates the
// feedback and redirects to the stored record.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(c, msgNoFile)
	}

	fileHeaders := form.File["file"]
	if len(fileHeaders) == 0 {
		// A part sent with filename="" is parsed as a plain value.
		if _, sent := form.Value["file"]; sent {
			return badRequest(c, msgNoFileSelected)
		}
		return badRequest(c, msgNoFile)
	}

	fileHeader := fileHeaders[0]
	if strings.TrimSpace(fileHeader.Filename) == "" {
		return badRequest(c, msgNoFileSelected)
	}

	if h.maxFileSize > 0 && fileHeader.Size > h.maxFileSize {
		return badRequest(c, fmt.Sprintf("Arquivo muito grande. Tamanho máximo: %d bytes.", h.maxFileSize))
	}

	format, err := services.ParseFormat(fileHeader.Filename)
	if err != nil {
		return badRequest(c, msgUnsupportedFormat)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("failed to read uploaded file: %w", err)
	}

	ctx := c.UserContext()

	text, err := h.extractor.Extract(ctx, bytes.NewReader(content), format)
	if err != nil {
		log.Warn().Err(err).Str("file", fileHeader.Filename).Msg("⚠️  Text extraction failed")
		return badRequest(c, msgExtractionFailed)
	}

	job, err := h.parseJobContext(c)
	if err != nil {
		var fieldErr *services.FieldError
		switch {
		case errors.As(err, &fieldErr):
			return badRequest(c, fmt.Sprintf("Campo obrigatório ausente: %s", fieldErr.Field))
		case errors.Is(err, services.ErrValidation):
			log.Warn().Err(err).Msg("⚠️  Invalid upload form")
			return badRequest(c, msgInvalidForm)
		default:
			return err
		}
	}

	record, err := h.submission.Submit(ctx, services.SubmissionInput{
		FileName: fileHeader.Filename,
		Content:  content,
		Text:     text,
		Job:      job,
	})
	if err != nil {
		if errors.Is(err, services.ErrGeneration) {
			log.Error().Err(err).Str("file", fileHeader.Filename).Msg("❌ Feedback generation failed")
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Erro: msgGenerationFailed})
		}
		log.Error().Err(err).Str("file", fileHeader.Filename).Msg("❌ Failed to store evaluation")
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Erro: msgPersistFailed})
	}

	return c.Redirect("/avaliacao/"+record.ID, fiber.StatusFound)
}

// parseJobContext binds and validates the three job-context fields. Values
// are trimmed, so whitespace-only input counts as missing. Failures match
// services.ErrValidation.
func (h *UploadHandler) parseJobContext(c *fiber.Ctx) (models.JobContext, error) {
	var job models.JobContext
	if err := c.BodyParser(&job); err != nil {
		return job, fmt.Errorf("%w: %w", services.ErrValidation, err)
	}

	job.JobType = strings.TrimSpace(job.JobType)
	job.Profession = strings.TrimSpace(job.Profession)
	job.CompanyDescription = strings.TrimSpace(job.CompanyDescription)

	if err := h.validate.Struct(job); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return job, &services.FieldError{Field: verrs[0].Field()}
		}
		return job, fmt.Errorf("%w: %w", services.ErrValidation, err)
	}

	return job, nil
}
