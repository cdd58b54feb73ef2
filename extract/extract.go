package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/lexaid/counsel/fault"
)

// Runner executes an external command and returns its stdout. Injectable so
// tests can avoid a real pdftotext binary.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

type Extractor struct {
	runner Runner
}

func New() *Extractor {
	return &Extractor{runner: execRunner{}}
}

func NewWithRunner(runner Runner) *Extractor {
	return &Extractor{runner: runner}
}

// Text extracts plain text from an uploaded document. Plain-text formats
// pass through; PDFs go through the pdftotext binary.
func (e *Extractor) Text(ctx context.Context, filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md", ".text":
		return string(data), nil
	case ".pdf":
		return e.pdfText(ctx, data)
	default:
		return "", fmt.Errorf("%w: unsupported file type %q", fault.ErrValidation, filepath.Ext(filename))
	}
}

func (e *Extractor) pdfText(ctx context.Context, data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "counsel-*.pdf")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	// pdftotext <file> - writes extracted text to stdout
	out, err := e.runner.Run(ctx, "pdftotext", tmp.Name(), "-")
	if err != nil {
		return "", fmt.Errorf("%w: pdftotext: %v", fault.ErrValidation, err)
	}

	return string(out), nil
}
