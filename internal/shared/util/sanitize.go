package util

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// SanitizeFileName removes path separators and rejects traversal patterns.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}

// SanitizeSegment reduces a storage namespace to [a-z0-9-_]; empty input maps to "default".
func SanitizeSegment(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "default"
	}
	return b.String()
}

var extensionTypes = map[string]string{
	".md":       "text/markdown",
	".markdown": "text/markdown",
	".docx":     "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".pdf":      "application/pdf",
}

// DetectContentType sniffs head and refines generic results using the file extension.
func DetectContentType(head []byte, fileName string) string {
	sniffed := mimetype.Detect(head).String()
	generic := strings.HasPrefix(sniffed, "text/plain") ||
		strings.HasPrefix(sniffed, "application/octet-stream") ||
		strings.HasPrefix(sniffed, "application/zip")
	if !generic {
		return sniffed
	}
	if mapped, ok := extensionTypes[strings.ToLower(filepath.Ext(fileName))]; ok {
		return mapped
	}
	return sniffed
}
