package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
)

type PDFParserService interface {
	ExtractText(r io.ReaderAt, size int64) (string, error)
	ExtractTextWithMetaData(r io.ReaderAt, size int64) (*PDFContent, error)
}

type PDFContent struct {
	Text      string
	PageCount int
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

func (p *pdfParserService) ExtractText(r io.ReaderAt, size int64) (string, error) {
	content, err := p.ExtractTextWithMetaData(r, size)
	if err != nil {
		return "", err
	}
	return content.Text, nil
}

// ExtractTextWithMetaData concatenates the plain text of every page in page
// order. Pages are joined without a separator, so words at a page boundary
// may run together.
func (p *pdfParserService) ExtractTextWithMetaData(r io.ReaderAt, size int64) (content *PDFContent, err error) {
	// the pdf package panics on some malformed cross-reference tables
	defer func() {
		if rec := recover(); rec != nil {
			content = nil
			err = fmt.Errorf("failed to read PDF: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Warn().Err(err).Int("page", pageIndex).Msg("⚠️  Skipping unreadable PDF page")
			continue
		}

		textBuilder.WriteString(text)
	}

	return &PDFContent{
		Text:      textBuilder.String(),
		PageCount: totalPage,
	}, nil
}
