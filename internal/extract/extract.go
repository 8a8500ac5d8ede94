package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"docassist/internal/shared/storage/object"
)

const (
	mimePDF      = "application/pdf"
	mimeDOCX     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeText     = "text/plain"
	mimeMarkdown = "text/markdown"

	extractedSuffix = ".extracted.txt"
)

// ErrUnsupportedType is returned for content types without an extractor.
var ErrUnsupportedType = errors.New("unsupported content type")

// ExtractText pulls text from a stored object and persists a derived .extracted.txt copy.
// It returns the text and the key of the persisted copy.
func ExtractText(ctx context.Context, store object.ObjectStore, key, contentType, fileName string) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	body, err := store.Open(ctx, key)
	if err != nil {
		return "", "", fmt.Errorf("extract text key=%s type=%s: %w", key, contentType, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", "", fmt.Errorf("extract text key=%s type=%s: read: %w", key, contentType, err)
	}

	text, err := ExtractTextFromBytes(ctx, raw, contentType, fileName)
	if err != nil {
		return "", "", fmt.Errorf("extract text key=%s type=%s: %w", key, contentType, err)
	}

	extractedKey := ExtractedKey(key)
	if _, err := store.SaveWithKey(ctx, extractedKey, "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
		return "", "", fmt.Errorf("extract text key=%s type=%s: save: %w", key, contentType, err)
	}
	return text, extractedKey, nil
}

// ExtractedKey is the storage key of the text derived from key.
func ExtractedKey(key string) string {
	return key + extractedSuffix
}

// ExtractTextFromBytes extracts text from an in-memory payload.
func ExtractTextFromBytes(ctx context.Context, data []byte, contentType, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	normalized := normalizeMimeType(contentType, fileName, data)
	switch normalized {
	case mimePDF:
		return extractPDF(data)
	case mimeDOCX:
		return extractDOCX(data)
	case mimeText, mimeMarkdown:
		return extractPlain(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, normalized)
	}
}

// Supported reports whether contentType (after normalization) has an extractor.
func Supported(contentType, fileName string) bool {
	switch normalizeMimeType(contentType, fileName, nil) {
	case mimePDF, mimeDOCX, mimeText, mimeMarkdown:
		return true
	default:
		return false
	}
}

func extractPlain(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: text is not valid UTF-8", ErrUnsupportedType)
	}
	return strings.TrimPrefix(string(data), "\ufeff"), nil
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	readerAt := bytes.NewReader(data)
	zr, err := zip.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return "", err
	}

	var docFile *zip.File
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("document.xml file not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}

	return stripDocxXML(string(raw)), nil
}

func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if last := buf.Len(); last > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

func normalizeMimeType(mimeType string, fileName string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	ext := strings.ToLower(filepath.Ext(fileName))
	switch clean {
	case "application/zip":
	case "", "application/octet-stream", mimeText:
		switch ext {
		case ".md", ".markdown":
			return mimeMarkdown
		case ".txt":
			return mimeText
		case ".pdf":
			return mimePDF
		case ".docx":
			return mimeDOCX
		}
		return clean
	case "text/x-markdown":
		return mimeMarkdown
	default:
		return clean
	}

	if mapped := mapOOXMLFromZip(data); mapped != "" {
		return mapped
	}

	switch ext {
	case ".docx":
		return mimeDOCX
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".pptx":
		return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	default:
		return clean
	}
}

func mapOOXMLFromZip(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	readerAt := bytes.NewReader(data)
	zr, err := zip.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return ""
	}
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		switch name {
		case "word/document.xml":
			return mimeDOCX
		case "xl/workbook.xml":
			return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		case "ppt/presentation.xml":
			return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
		}
	}
	return ""
}
