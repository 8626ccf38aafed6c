// Package document loads and validates uploaded source documents. Page
// rendering is an external collaborator; this package only decodes enough
// structure to know the page count and page dimensions.
package document

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ledong "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PageDim is the native size of one page in points.
type PageDim struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Info is what decoding discovers about an uploaded document.
type Info struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	Pages     int       `json:"pages"`
	PageDims  []PageDim `json:"page_dims"`
	Encrypted bool      `json:"encrypted"`
}

// Loader validates uploads and probes their structure.
type Loader struct {
	maxFileSize int64
	conf        *model.Configuration
}

// NewLoader creates a loader enforcing the given upload size limit.
func NewLoader(maxFileSize int64) *Loader {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Loader{
		maxFileSize: maxFileSize,
		conf:        conf,
	}
}

// LoadFile reads and validates a PDF from disk, returning its raw bytes.
func (l *Loader) LoadFile(path string) (string, []byte, error) {
	if path == "" {
		return "", nil, fmt.Errorf("path cannot be empty")
	}
	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return "", nil, fmt.Errorf("cannot access file: %w", err)
	}
	if fileInfo.IsDir() {
		return "", nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return "", nil, fmt.Errorf("file is not a PDF: %s", path)
	}
	if fileInfo.Size() == 0 {
		return "", nil, fmt.Errorf("file is empty: %s", path)
	}
	if fileInfo.Size() > l.maxFileSize {
		return "", nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), l.maxFileSize)
	}

	// open with the PDF reader to confirm the file actually parses
	f, _, err := ledong.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("invalid PDF file: %w", err)
	}
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}
	if err := l.ValidateBytes(data); err != nil {
		return "", nil, err
	}
	return filepath.Base(path), data, nil
}

// ValidateBytes performs the cheap synchronous checks on an upload. The
// deep structural decode happens asynchronously in Probe; a document that
// fails it leaves the viewer in a "no preview" state instead of erroring
// the upload.
func (l *Loader) ValidateBytes(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("document is empty")
	}
	if int64(len(data)) > l.maxFileSize {
		return fmt.Errorf("document too large: %d bytes (max: %d bytes)", len(data), l.maxFileSize)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return fmt.Errorf("document is not a PDF")
	}
	return nil
}

// Probe decodes the document structure and reports page count and page
// dimensions. Callers run this asynchronously; the session stays usable
// with an unknown page count until the result arrives.
func (l *Loader) Probe(name string, data []byte) (*Info, error) {
	ctx, err := api.ReadContext(bytes.NewReader(data), l.conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("failed to ensure page count: %w", err)
	}

	info := &Info{
		Name:      name,
		Size:      int64(len(data)),
		Pages:     ctx.PageCount,
		Encrypted: ctx.Encrypt != nil,
	}
	dims, err := ctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("failed to read page dimensions: %w", err)
	}
	for _, d := range dims {
		info.PageDims = append(info.PageDims, PageDim{Width: d.Width, Height: d.Height})
	}
	return info, nil
}
