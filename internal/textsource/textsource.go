// Package textsource reads documents for the summarizer and reduces them to
// plain text.
package textsource

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ReadFile returns the plain text of the document at path. HTML files are
// reduced to their visible text; anything else is returned verbatim.
func ReadFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open document: %w", err)
	}
	defer f.Close()
	if IsHTML(path) {
		return ExtractHTML(f)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return string(data), nil
}

// IsHTML reports whether path names an HTML document.
func IsHTML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return true
	}
	return false
}
