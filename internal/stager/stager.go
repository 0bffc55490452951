package stager

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Kind groups the accepted extensions by how a reader would approach them.
type Kind string

const (
	KindDocument    Kind = "document"
	KindSpreadsheet Kind = "spreadsheet"
	KindText        Kind = "text"
)

var allowedExtensions = map[string]Kind{
	"pdf":  KindDocument,
	"docx": KindDocument,
	"doc":  KindDocument,
	"xlsx": KindSpreadsheet,
	"xls":  KindSpreadsheet,
	"txt":  KindText,
	"csv":  KindSpreadsheet,
}

// AllowedExtensions lists the accepted extensions in display order.
var AllowedExtensions = []string{"pdf", "docx", "doc", "xlsx", "xls", "txt", "csv"}

// ErrUnsupportedType is matched by every *ValidationError.
var ErrUnsupportedType = errors.New("unsupported file type")

// ValidationError reports a file rejected before any network activity.
type ValidationError struct {
	Name      string
	Extension string
}

func (e *ValidationError) Error() string {
	if e.Extension == "" {
		return fmt.Sprintf("%s: %s has no extension", ErrUnsupportedType, e.Name)
	}
	return fmt.Sprintf("%s: .%s (%s)", ErrUnsupportedType, e.Extension, e.Name)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// StagedFile is the single document held for the current session.
type StagedFile struct {
	Name      string
	Extension string
	Kind      Kind
	Content   []byte
	Size      int64
	Pages     int
}

// Extension returns the lower-cased substring after the final period, or ""
// when the name has none.
func Extension(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	idx := strings.LastIndex(base, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(base[idx+1:])
}

// Validate accepts a file name iff its extension is on the allow-list.
func Validate(name string) (string, Kind, error) {
	ext := Extension(name)
	kind, ok := allowedExtensions[ext]
	if !ok {
		return ext, "", &ValidationError{Name: filepath.Base(name), Extension: ext}
	}
	return ext, kind, nil
}

// Stager holds at most one validated document. It is not safe for concurrent
// use; the session serializes access.
type Stager struct {
	current *StagedFile
}

// New returns an empty Stager.
func New() *Stager {
	return &Stager{}
}

// Stage validates name and replaces the current file. A rejected file leaves
// the previously staged one in place.
func (s *Stager) Stage(name string, content []byte) (StagedFile, error) {
	ext, kind, err := Validate(name)
	if err != nil {
		return StagedFile{}, err
	}
	file := StagedFile{
		Name:      filepath.Base(name),
		Extension: ext,
		Kind:      kind,
		Content:   content,
		Size:      int64(len(content)),
	}
	if ext == "pdf" {
		file.Pages = countPages(content)
	}
	s.current = &file
	return file, nil
}

// StagePath reads and stages a file from disk. The name is validated before
// the file is opened.
func (s *Stager) StagePath(path string) (StagedFile, error) {
	if _, _, err := Validate(path); err != nil {
		return StagedFile{}, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return StagedFile{}, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return s.Stage(path, content)
}

// Unstage drops the current file. Calling it with nothing staged is a no-op.
func (s *Stager) Unstage() {
	s.current = nil
}

// Current reports the staged file, if any.
func (s *Stager) Current() (StagedFile, bool) {
	if s.current == nil {
		return StagedFile{}, false
	}
	return *s.current, true
}

var extraneousWhitespace = regexp.MustCompile(`\s+`)

// Preview returns up to limit runes of plain text for pdf, txt and csv files.
// Binary office formats yield an empty preview.
func Preview(file StagedFile, limit int) (string, error) {
	var text string
	switch file.Extension {
	case "pdf":
		extracted, err := pdfText(file.Content)
		if err != nil {
			return "", err
		}
		text = extracted
	case "txt", "csv":
		text = string(file.Content)
	default:
		return "", nil
	}
	text = strings.TrimSpace(extraneousWhitespace.ReplaceAllString(text, " "))
	runes := []rune(text)
	if limit > 0 && len(runes) > limit {
		return strings.TrimSpace(string(runes[:limit])) + "…", nil
	}
	return text, nil
}

func countPages(content []byte) (pages int) {
	defer func() {
		if recover() != nil {
			pages = 0
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return 0
	}
	return reader.NumPage()
}

func pdfText(content []byte) (text string, err error) {
	// ledongthuc/pdf panics on some malformed xref tables.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("failed to read pdf: %v", r)
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}
	var builder strings.Builder
	if _, err := io.Copy(&builder, plain); err != nil {
		return "", err
	}
	return builder.String(), nil
}
