package services

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"strings"
	"unicode/utf8"

	"code.sajari.com/docconv"
	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/net/html/charset"
)

const (
	mimeDocx      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimePDF       = "application/pdf"
	mimeMSWord    = "application/msword"
	mimeOLE       = "application/x-ole-storage"
	mimePlainText = "text/plain"
)

// Formats docconv can turn into text. Legacy Word needs the wvText binary
// from wv on PATH, RTF needs unrtf.
var docconvFormats = map[string]string{
	mimeMSWord:                                mimeMSWord,
	mimeOLE:                                   mimeMSWord,
	"text/rtf":                                "text/rtf",
	"application/rtf":                         "text/rtf",
	"application/vnd.oasis.opendocument.text": "application/vnd.oasis.opendocument.text",
	"text/html":                               "text/html",
	"text/xml":                                "text/xml",
	"application/xml":                         "text/xml",
}

var errUndetectedFormat = errors.New("could not detect document format")

// GenericParserService sniffs the real format of a payload and decodes it to
// UTF-8 text. It serves legacy .doc uploads, which in practice are often RTF,
// HTML or renamed .docx files.
type GenericParserService interface {
	ExtractText(data []byte) (string, error)
}

type genericParserService struct {
	docx DocxParserService
	pdf  PDFParserService
}

func NewGenericParserService(docx DocxParserService, pdf PDFParserService) GenericParserService {
	return &genericParserService{docx: docx, pdf: pdf}
}

func (g *genericParserService) ExtractText(data []byte) (string, error) {
	detected := mimetype.Detect(data)

	switch {
	case detected.Is(mimeDocx):
		return g.docx.ExtractText(bytes.NewReader(data), int64(len(data)))
	case detected.Is(mimePDF):
		return g.pdf.ExtractText(bytes.NewReader(data), int64(len(data)))
	}

	for m := detected; m != nil; m = m.Parent() {
		if target, ok := docconvFormats[baseMediaType(m.String())]; ok {
			return convertWithDocconv(data, target)
		}
	}

	for m := detected; m != nil; m = m.Parent() {
		if m.Is(mimePlainText) {
			return decodeText(data, detected.String())
		}
	}

	return "", fmt.Errorf("%w (detected %s)", errUndetectedFormat, detected.String())
}

func convertWithDocconv(data []byte, mimeType string) (string, error) {
	res, err := docconv.Convert(bytes.NewReader(data), mimeType, false)
	if err != nil {
		return "", fmt.Errorf("docconv %s: %w", mimeType, err)
	}
	if res.Error != "" {
		return "", fmt.Errorf("docconv %s: %s", mimeType, res.Error)
	}
	return res.Body, nil
}

// decodeText converts text in the charset reported by the sniffer to UTF-8.
// Text without a recognisable charset is rejected rather than guessed.
func decodeText(data []byte, mediaType string) (string, error) {
	label := "utf-8"
	if _, params, err := mime.ParseMediaType(mediaType); err == nil && params["charset"] != "" {
		label = params["charset"]
	}

	enc, name := charset.Lookup(label)
	if enc == nil {
		return "", fmt.Errorf("%w: unknown charset %q", errUndetectedFormat, label)
	}

	if name == "utf-8" {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: invalid utf-8 text", errUndetectedFormat)
		}
		return strings.TrimPrefix(string(data), "\ufeff"), nil
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s text: %w", name, err)
	}
	return strings.TrimPrefix(string(decoded), "\ufeff"), nil
}

func baseMediaType(mediaType string) string {
	base, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(strings.Split(mediaType, ";")[0]))
	}
	return base
}
