package signing

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Anuj12Pokharel/BriefcaseProject-sub000/internal/geometry"
)

var (
	// ErrFieldNotFound is returned when a field id is unknown to the store.
	ErrFieldNotFound = errors.New("field not found")
	// ErrDuplicateField is returned when adding a field whose id already exists.
	ErrDuplicateField = errors.New("duplicate field id")
)

// FieldStore is the ordered collection of placed fields plus the value map
// keyed by field id. Insertion order is z-order for display. All mutations
// are last-write-wins; removal of a field and its value is atomic from the
// caller's point of view.
type FieldStore struct {
	mu     sync.RWMutex
	fields []Field
	values map[string]Value
}

// NewFieldStore creates an empty field store.
func NewFieldStore() *FieldStore {
	return &FieldStore{
		values: make(map[string]Value),
	}
}

// Add appends a field to the store. The field's id must be unique and its
// type valid; neither can change afterwards.
func (s *FieldStore) Add(f Field) error {
	if f.ID == "" {
		return fmt.Errorf("field id cannot be empty")
	}
	if !f.Type.Valid() {
		return fmt.Errorf("invalid field type: %q", f.Type)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexLocked(f.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateField, f.ID)
	}
	f.X = geometry.ClampPercent(f.X)
	f.Y = geometry.ClampPercent(f.Y)
	s.fields = append(s.fields, f)
	return nil
}

// Get returns a copy of the field with the given id.
func (s *FieldStore) Get(id string) (Field, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.fields[i], true
	}
	return Field{}, false
}

// List returns the fields in insertion order. The slice is a copy.
func (s *FieldStore) List() []Field {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Len returns the number of placed fields.
func (s *FieldStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.fields)
}

// FieldPatch is a partial update to a field's mutable attributes. Id and
// type are not patchable.
type FieldPatch struct {
	X         *float64
	Y         *float64
	Page      *int
	Recipient *string
}

// Update applies a partial patch to a field. Coordinates are clamped to
// [0,100].
func (s *FieldStore) Update(id string, patch FieldPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, id)
	}
	f := &s.fields[i]
	if patch.X != nil {
		f.X = geometry.ClampPercent(*patch.X)
	}
	if patch.Y != nil {
		f.Y = geometry.ClampPercent(*patch.Y)
	}
	if patch.Page != nil && *patch.Page >= 1 {
		f.Page = *patch.Page
	}
	if patch.Recipient != nil {
		f.Recipient = *patch.Recipient
	}
	return nil
}

// Move updates a field's position to a clamped percentage coordinate.
func (s *FieldStore) Move(id string, pos geometry.Percent) error {
	return s.Update(id, FieldPatch{X: &pos.X, Y: &pos.Y})
}

// Remove deletes a field together with its bound value. The two deletions
// happen under one lock so no intermediate state is observable.
func (s *FieldStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, id)
	}
	s.fields = append(s.fields[:i], s.fields[i+1:]...)
	delete(s.values, id)
	return nil
}

// Bind stores a value for the field and flips its completed flag in one
// step. Re-binding overwrites the previous value; there is no separate
// unbind operation.
func (s *FieldStore) Bind(id string, v Value) error {
	if err := v.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrFieldNotFound, id)
	}
	if !v.Matches(s.fields[i].Type) {
		return fmt.Errorf("value kind %q does not match field type %q", v.Kind, s.fields[i].Type)
	}
	s.values[id] = v
	s.fields[i].Completed = true
	return nil
}

// Value returns the bound value for a field id, if any.
func (s *FieldStore) Value(id string) (Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[id]
	return v, ok
}

// Values returns a copy of the whole value map.
func (s *FieldStore) Values() map[string]Value {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Value, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

func (s *FieldStore) indexLocked(id string) int {
	for i := range s.fields {
		if s.fields[i].ID == id {
			return i
		}
	}
	return -1
}
