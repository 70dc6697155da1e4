// Package resume validates, parses and scores uploaded resumes.
package resume

import (
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	TypePDF  = "application/pdf"
	TypeDOC  = "application/msword"
	TypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	TypeTXT  = "text/plain"

	DefaultMaxBytes int64 = 10 * 1024 * 1024
)

var AllowedTypes = []string{TypePDF, TypeDOC, TypeDOCX, TypeTXT}

var allowedExtensions = []string{".pdf", ".doc", ".docx", ".txt"}

var (
	ErrUnsupportedType = errors.New("Please upload a PDF, DOC, DOCX, or TXT file")
	ErrFileTooLarge    = errors.New("file too large")
	ErrNoFile          = errors.New("No file selected")
)

// LimitError reports an upload over the size limit. It matches ErrFileTooLarge.
type LimitError struct {
	MaxBytes int64
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("File size must be less than %dMB", e.MaxBytes/(1024*1024))
}

func (e *LimitError) Is(target error) bool {
	return target == ErrFileTooLarge
}

// Upload describes a file as received, before it is accepted.
type Upload struct {
	Filename     string
	DeclaredType string
	Size         int64
	// Head holds the leading bytes of the file for type sniffing.
	Head []byte
}

type Validator struct {
	MaxBytes int64
}

func NewValidator(maxBytes int64) Validator {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return Validator{MaxBytes: maxBytes}
}

// Validate checks type before size and returns the accepted media type.
// The declared type wins; the content is only sniffed when the client did
// not say what it is sending, and a sniffed type also needs a document
// extension on the filename.
func (v Validator) Validate(u Upload) (string, error) {
	ct := baseType(u.DeclaredType)
	if ct == "" || ct == "application/octet-stream" {
		ct = sniff(u)
	}
	if !slices.Contains(AllowedTypes, ct) {
		return "", ErrUnsupportedType
	}
	if u.Size > v.MaxBytes {
		return "", &LimitError{MaxBytes: v.MaxBytes}
	}
	return ct, nil
}

// sniff returns "" for anything it cannot vouch for. An empty head would
// detect as text/plain.
func sniff(u Upload) string {
	if len(u.Head) == 0 {
		return ""
	}
	if !slices.Contains(allowedExtensions, strings.ToLower(filepath.Ext(u.Filename))) {
		return ""
	}
	return baseType(mimetype.Detect(u.Head).String())
}

func baseType(contentType string) string {
	contentType = strings.TrimSpace(contentType)
	if contentType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt, _, _ = strings.Cut(contentType, ";")
	}
	return strings.ToLower(strings.TrimSpace(mt))
}
