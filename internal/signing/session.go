package signing

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DocType identifies the source document format. Only paginated PDF
// documents are supported.
type DocType string

// DocTypePDF is the only supported document type.
const DocTypePDF DocType = "pdf"

// Session is the root that fields, values and recipients are scoped under.
// It holds the currently loaded source document and is recreated wholesale
// on each new upload; no two sessions coexist.
type Session struct {
	ID         string
	Name       string
	SourcePath string
	Source     []byte
	Type       DocType
	CreatedAt  time.Time

	Fields     *FieldStore
	Recipients *RecipientList

	mu        sync.RWMutex
	pageCount int // 0 until document decoding resolves
}

// NewSession creates a session for an uploaded document. The page count is
// discovered asynchronously after the document is decoded; until then the
// session optimistically accepts any positive page index.
func NewSession(name, sourcePath string, source []byte) *Session {
	return &Session{
		ID:         uuid.NewString(),
		Name:       name,
		SourcePath: sourcePath,
		Source:     source,
		Type:       DocTypePDF,
		CreatedAt:  time.Now(),
		Fields:     NewFieldStore(),
		Recipients: NewRecipientList(),
	}
}

// SetPageCount records the page count once document decoding resolves.
func (s *Session) SetPageCount(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n > 0 {
		s.pageCount = n
	}
}

// PageCount returns the discovered page count, or 0 while decoding is
// still pending.
func (s *Session) PageCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pageCount
}

// ValidatePage checks a 1-based page index against the discovered page
// count. While the count is unknown any positive index is accepted.
func (s *Session) ValidatePage(page int) error {
	if page < 1 {
		return fmt.Errorf("page must be 1-based, got %d", page)
	}
	if n := s.PageCount(); n > 0 && page > n {
		return fmt.Errorf("page %d out of range (document has %d pages)", page, n)
	}
	return nil
}
