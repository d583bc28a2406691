package services

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

type DocxParserService interface {
	ExtractText(r io.ReaderAt, size int64) (string, error)
}

type docxParserService struct{}

func NewDocxParserService() DocxParserService {
	return &docxParserService{}
}

// ExtractText returns the paragraphs of the main document part in document
// order, one per line.
func (d *docxParserService) ExtractText(r io.ReaderAt, size int64) (string, error) {
	doc, err := docx.ReadDocxFromMemory(r, size)
	if err != nil {
		return "", fmt.Errorf("failed to open docx: %w", err)
	}
	defer doc.Close()

	paragraphs, err := docxParagraphs(doc.Editable().GetContent())
	if err != nil {
		return "", err
	}

	return strings.Join(paragraphs, "\n"), nil
}

type docxParagraph struct {
	text  strings.Builder
	boxes []string
}

// docxParagraphs walks WordprocessingML and collects the text of every w:p,
// including paragraphs inside tables. Text-box paragraphs are emitted as
// their own lines right after the paragraph anchoring them, and the
// mc:Fallback copy Word keeps of each text box is skipped.
func docxParagraphs(content string) ([]string, error) {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var (
		paragraphs []string
		open       []*docxParagraph
		skipDepth  int
		inText     bool
		inTabStops bool
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse document.xml: %w", err)
		}

		if skipDepth > 0 {
			switch tok.(type) {
			case xml.StartElement:
				skipDepth++
			case xml.EndElement:
				skipDepth--
			}
			continue
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if len(open) == 0 && t.Name.Local != "p" && t.Name.Local != "Fallback" {
				continue
			}
			switch t.Name.Local {
			case "Fallback":
				skipDepth = 1
			case "p":
				open = append(open, &docxParagraph{})
			case "t":
				inText = true
			case "tabs":
				inTabStops = true
			case "tab":
				if !inTabStops {
					open[len(open)-1].text.WriteString("\t")
				}
			case "br", "cr":
				open[len(open)-1].text.WriteString("\n")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if len(open) == 0 {
					continue
				}
				closed := open[len(open)-1]
				open = open[:len(open)-1]
				lines := append([]string{closed.text.String()}, closed.boxes...)
				if len(open) == 0 {
					paragraphs = append(paragraphs, lines...)
				} else {
					parent := open[len(open)-1]
					parent.boxes = append(parent.boxes, lines...)
				}
			case "t":
				inText = false
			case "tabs":
				inTabStops = false
			}
		case xml.CharData:
			if inText && len(open) > 0 {
				open[len(open)-1].text.Write(t)
			}
		}
	}

	return paragraphs, nil
}
