package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
)

// DocumentFormat is the closed set of résumé formats accepted for upload.
type DocumentFormat int

const (
	FormatDocx DocumentFormat = iota + 1
	FormatDoc
	FormatPDF
)

func (f DocumentFormat) String() string {
	switch f {
	case FormatDocx:
		return "docx"
	case FormatDoc:
		return "doc"
	case FormatPDF:
		return "pdf"
	default:
		return "unknown"
	}
}

// ParseFormat maps the suffix after the last dot of filename, case
// insensitively, to a DocumentFormat.
func ParseFormat(filename string) (DocumentFormat, error) {
	ext := filename
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		ext = filename[idx+1:]
	}

	switch strings.ToLower(strings.TrimSpace(ext)) {
	case "docx":
		return FormatDocx, nil
	case "doc":
		return FormatDoc, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filename)
	}
}

type ExtractorService interface {
	Extract(ctx context.Context, r io.Reader, format DocumentFormat) (string, error)
}

type extractorService struct {
	docx    DocxParserService
	pdf     PDFParserService
	generic GenericParserService
}

func NewExtractorService() ExtractorService {
	docx := NewDocxParserService()
	pdf := NewPDFParserService()
	return &extractorService{
		docx:    docx,
		pdf:     pdf,
		generic: NewGenericParserService(docx, pdf),
	}
}

// Extract reads the whole document and returns its plain text. Every decoder
// failure, and an empty result, is reported as ErrExtraction.
func (e *extractorService) Extract(ctx context.Context, r io.Reader, format DocumentFormat) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: read upload: %w", ErrExtraction, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrExtraction)
	}

	var text string
	switch format {
	case FormatDocx:
		text, err = e.docx.ExtractText(bytes.NewReader(data), int64(len(data)))
	case FormatPDF:
		text, err = e.pdf.ExtractText(bytes.NewReader(data), int64(len(data)))
	case FormatDoc:
		text, err = e.generic.ExtractText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrExtraction, format, err)
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: no text content found in %s", ErrExtraction, format)
	}

	return text, nil
}
