package signing

import (
	"fmt"
	"time"
)

// DefaultDateFormat is the layout used when the binder auto-fills date
// fields after a signature is adopted.
const DefaultDateFormat = "01/02/2006"

// Binder accepts values produced by external capture surfaces and binds
// them to fields, flipping completion state and running the signature to
// date auto-fill cascade.
type Binder struct {
	store      *FieldStore
	dateFormat string
	now        func() time.Time
}

// NewBinder creates a binder over the given store. An empty dateFormat
// falls back to DefaultDateFormat.
func NewBinder(store *FieldStore, dateFormat string) *Binder {
	if dateFormat == "" {
		dateFormat = DefaultDateFormat
	}
	return &Binder{
		store:      store,
		dateFormat: dateFormat,
		now:        time.Now,
	}
}

// BindResult reports what a bind attempt did. Applied is false for
// permission violations, which are silent no-ops rather than errors.
type BindResult struct {
	Applied    bool     `json:"applied"`
	FieldID    string   `json:"field_id"`
	AutoFilled []string `json:"auto_filled,omitempty"`
}

// Bind stores the value for the field and marks it completed. When the
// bound value is a signature, every other uncompleted date field assigned
// to the same signer identity is filled with the current local date. The
// cascade never overwrites an existing date value and never runs for a
// date binding.
func (b *Binder) Bind(viewer Viewer, fieldID string, v Value) (*BindResult, error) {
	f, ok := b.store.Get(fieldID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFieldNotFound, fieldID)
	}
	if !viewer.CanBind(f) {
		return &BindResult{Applied: false, FieldID: fieldID}, nil
	}
	if err := b.store.Bind(fieldID, v); err != nil {
		return nil, err
	}

	res := &BindResult{Applied: true, FieldID: fieldID}
	if v.Kind == KindSignature {
		res.AutoFilled = b.cascadeDates(viewer, f)
	}
	return res, nil
}

// cascadeDates fills uncompleted date fields belonging to the signer who
// just adopted a signature. Best effort: individual failures are skipped.
func (b *Binder) cascadeDates(viewer Viewer, signed Field) []string {
	identity := signed.Recipient
	if identity == "" || EmailsEqual(identity, RecipientAny) {
		identity = viewer.Email
	}
	today := b.now().Format(b.dateFormat)

	var filled []string
	for _, f := range b.store.List() {
		if f.Type != FieldDate || f.Completed {
			continue
		}
		if !EmailsEqual(f.Recipient, identity) {
			continue
		}
		if err := b.store.Bind(f.ID, DateValue(today)); err != nil {
			continue
		}
		filled = append(filled, f.ID)
	}
	return filled
}
