// Package ingestion converts uploaded resume documents into plain text.
package ingestion

import (
	"bytes"
	"fmt"
	"html"
	"mime"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/jonathan/skill-matcher/internal/fetch"
)

// Format is a supported document format.
type Format string

// Supported document formats
const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatHTML Format = "html"
	FormatText Format = "txt"
)

// MIME types accepted for each format
const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEHTML = "text/html"
	MIMEText = "text/plain"
)

// Document is the text content of a converted document.
type Document struct {
	Text      string
	PageCount int
	Format    Format
}

// UnsupportedFormatError is returned when a document format cannot be converted.
type UnsupportedFormatError struct {
	Filename    string
	ContentType string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document format: %s (%s)", e.Filename, e.ContentType)
}

// ConversionError is returned when a document of a supported format cannot be read.
type ConversionError struct {
	Format Format
	Cause  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("failed to convert %s document: %v", e.Format, e.Cause)
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}

// DetectFormat picks a format from the content type, falling back to the file extension.
func DetectFormat(filename, contentType string) (Format, bool) {
	if contentType != "" {
		if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
			switch mediaType {
			case MIMEPDF:
				return FormatPDF, true
			case MIMEDOCX:
				return FormatDOCX, true
			case MIMEHTML:
				return FormatHTML, true
			case MIMEText:
				return FormatText, true
			}
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return FormatPDF, true
	case ".docx":
		return FormatDOCX, true
	case ".html", ".htm":
		return FormatHTML, true
	case ".txt", ".text", ".md":
		return FormatText, true
	}
	return "", false
}

// Convert turns raw document bytes into cleaned plain text.
func Convert(data []byte, filename, contentType string) (*Document, error) {
	format, ok := DetectFormat(filename, contentType)
	if !ok {
		return nil, &UnsupportedFormatError{Filename: filename, ContentType: contentType}
	}

	var (
		text  string
		pages = 1
		err   error
	)
	switch format {
	case FormatPDF:
		text, pages, err = pdfText(data)
	case FormatDOCX:
		text, err = docxText(data)
	case FormatHTML:
		text, err = fetch.ExtractMainText(string(data), fetch.DefaultTextSelectors())
	case FormatText:
		if !utf8.Valid(data) {
			err = fmt.Errorf("text is not valid UTF-8")
		}
		text = string(data)
	}
	if err != nil {
		return nil, &ConversionError{Format: format, Cause: err}
	}

	return &Document{
		Text:      CleanText(text),
		PageCount: pages,
		Format:    format,
	}, nil
}

// Limits on PDF conversion. A conversion still running after pdfTimeout is abandoned.
const maxPDFPages = 200

var pdfTimeout = 10 * time.Second

// pdfExtract is the PDF reader used by Convert.
var pdfExtract = readPDF

type pdfResult struct {
	text  string
	pages int
	err   error
}

func pdfText(data []byte) (string, int, error) {
	done := make(chan pdfResult, 1)
	go func() {
		var res pdfResult
		defer func() {
			if r := recover(); r != nil {
				res = pdfResult{err: fmt.Errorf("malformed pdf: %v", r)}
			}
			done <- res
		}()
		res.text, res.pages, res.err = pdfExtract(data)
	}()

	timer := time.NewTimer(pdfTimeout)
	defer timer.Stop()
	select {
	case res := <-done:
		return res.text, res.pages, res.err
	case <-timer.C:
		return "", 0, fmt.Errorf("pdf conversion did not finish within %s", pdfTimeout)
	}
}

func readPDF(data []byte) (string, int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("failed to read pdf: %w", err)
	}

	numPages := reader.NumPage()
	if numPages > maxPDFPages {
		return "", 0, fmt.Errorf("pdf has %d pages, more than the %d allowed", numPages, maxPDFPages)
	}

	var sb strings.Builder
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", 0, fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), numPages, nil
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
)

func docxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	content := doc.Editable().GetContent()
	content = docxParagraphEnd.ReplaceAllString(content, "\n")
	content = xmlTag.ReplaceAllString(content, "")
	return html.UnescapeString(content), nil
}
