package loaders

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/medassist-labs/medassist-core/internal/core/domain"
	"github.com/medassist-labs/medassist-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DocumentLoader = (*PDFLoader)(nil)

// PDFLoader extracts page texts from PDF bytes.
type PDFLoader struct{}

// NewPDFLoader creates a new PDF loader.
func NewPDFLoader() *PDFLoader {
	return &PDFLoader{}
}

// Load extracts one text per physical page, in page order.
// Pages without extractable text come back as empty strings so page
// numbering stays aligned with the source document.
func (l *PDFLoader) Load(ctx context.Context, data []byte) (pages []string, err error) {
	// The parser panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("%w: %v", domain.ErrParse, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrParse, err)
	}

	total := reader.NumPage()
	pages = make([]string, 0, total)
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", domain.ErrParse, i, err)
		}
		pages = append(pages, text)
	}

	return pages, nil
}

// SupportedTypes returns MIME types this loader handles.
func (l *PDFLoader) SupportedTypes() []string {
	return []string{"application/pdf"}
}

// Priority returns the loader priority.
func (l *PDFLoader) Priority() int {
	return 50
}

// DefaultRegistry creates a registry with the production loaders.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewPDFLoader())
	return r
}
