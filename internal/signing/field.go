// Package signing holds the document session at the heart of the
// e-signature workflow: placed fields, their bound values, and the
// recipients they are assigned to.
package signing

import (
	"fmt"

	"github.com/google/uuid"
)

// FieldType identifies the kind of interactive element a field is.
// Fixed at creation, never changes for the field's lifetime.
type FieldType string

const (
	FieldSignature FieldType = "signature"
	FieldInitial   FieldType = "initial"
	FieldDate      FieldType = "date"
	FieldText      FieldType = "text"
	FieldCheckbox  FieldType = "checkbox"
)

// Valid reports whether t is one of the closed set of field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldSignature, FieldInitial, FieldDate, FieldText, FieldCheckbox:
		return true
	}
	return false
}

// RecipientAny is the sentinel recipient meaning "any signer". A field
// assigned to it is visible to every viewer.
const RecipientAny = "anyone"

// Field is a placed interactive element. X and Y are percentages (0-100)
// of the page width/height, anchored at the top-left corner, so positions
// survive zoom and viewport changes. Page is 1-based.
type Field struct {
	ID        string    `json:"id"`
	Type      FieldType `json:"type"`
	Page      int       `json:"page"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Completed bool      `json:"completed"`
	Recipient string    `json:"recipient,omitempty"`
}

// NewField creates a field with a fresh unique id.
func NewField(t FieldType, page int, x, y float64, recipient string) Field {
	return Field{
		ID:        uuid.NewString(),
		Type:      t,
		Page:      page,
		X:         x,
		Y:         y,
		Recipient: recipient,
	}
}

// Modality records how a signature or initial payload was produced.
type Modality string

const (
	ModalityDraw   Modality = "draw"
	ModalityType   Modality = "type"
	ModalityUpload Modality = "upload"
)

// Valid reports whether m is a known capture modality.
func (m Modality) Valid() bool {
	switch m {
	case ModalityDraw, ModalityType, ModalityUpload:
		return true
	}
	return false
}

// ValueKind tags which variant of a Value is populated.
type ValueKind string

const (
	KindSignature ValueKind = "signature"
	KindText      ValueKind = "text"
	KindDate      ValueKind = "date"
	KindCheckbox  ValueKind = "checkbox"
)

// Value is the bound payload for a field. It is a tagged variant: the
// signature kind carries a payload plus modality and, for typed
// signatures, a font; text and date carry a string; checkbox carries a
// boolean. The whole value is set and deleted as a unit.
type Value struct {
	Kind     ValueKind `json:"kind"`
	Payload  string    `json:"payload,omitempty"`
	Modality Modality  `json:"modality,omitempty"`
	Font     string    `json:"font,omitempty"`
	Text     string    `json:"text,omitempty"`
	Date     string    `json:"date,omitempty"`
	Checked  bool      `json:"checked,omitempty"`
}

// SignatureValue builds a signature/initial value from a capture surface
// payload. Font is only meaningful for the typed modality.
func SignatureValue(payload string, modality Modality, font string) Value {
	return Value{Kind: KindSignature, Payload: payload, Modality: modality, Font: font}
}

// TextValue builds a freeform text value.
func TextValue(text string) Value {
	return Value{Kind: KindText, Text: text}
}

// DateValue builds a date value. The string keeps whatever format it was
// bound with; it is never re-formatted at render time.
func DateValue(date string) Value {
	return Value{Kind: KindDate, Date: date}
}

// CheckboxValue builds a checkbox toggle value.
func CheckboxValue(checked bool) Value {
	return Value{Kind: KindCheckbox, Checked: checked}
}

// Empty reports whether the value carries no usable payload.
func (v Value) Empty() bool {
	switch v.Kind {
	case KindSignature:
		return v.Payload == ""
	case KindText:
		return v.Text == ""
	case KindDate:
		return v.Date == ""
	case KindCheckbox:
		return false
	}
	return true
}

// Matches reports whether the value kind is bindable to a field of type t.
func (v Value) Matches(t FieldType) bool {
	switch t {
	case FieldSignature, FieldInitial:
		return v.Kind == KindSignature
	case FieldText:
		return v.Kind == KindText
	case FieldDate:
		return v.Kind == KindDate
	case FieldCheckbox:
		return v.Kind == KindCheckbox
	}
	return false
}

// Validate checks internal consistency of the value.
func (v Value) Validate() error {
	switch v.Kind {
	case KindSignature:
		if v.Payload == "" {
			return fmt.Errorf("signature value requires a payload")
		}
		if !v.Modality.Valid() {
			return fmt.Errorf("invalid capture modality: %q", v.Modality)
		}
		if v.Modality == ModalityType && v.Font == "" {
			return fmt.Errorf("typed signature requires a font")
		}
	case KindText:
		if v.Text == "" {
			return fmt.Errorf("text value cannot be empty")
		}
	case KindDate:
		if v.Date == "" {
			return fmt.Errorf("date value cannot be empty")
		}
	case KindCheckbox:
		// both states are valid
	default:
		return fmt.Errorf("unknown value kind: %q", v.Kind)
	}
	return nil
}
