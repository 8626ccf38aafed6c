// Package render projects the field store into draw instructions for a
// viewing surface. Projection is a pure function of the store contents,
// the current page, and the viewer context; it never mutates state.
package render

import (
	"github.com/Anuj12Pokharel/BriefcaseProject-sub000/internal/geometry"
	"github.com/Anuj12Pokharel/BriefcaseProject-sub000/internal/signing"
)

// DrawKind describes how a projected field is drawn.
type DrawKind string

const (
	// DrawPlaceholder is an unfilled affordance ("sign here", icon).
	DrawPlaceholder DrawKind = "placeholder"
	// DrawImage is an embedded signature image (drawn/uploaded modality).
	DrawImage DrawKind = "image"
	// DrawText is literal text, including typed signatures and dates.
	DrawText DrawKind = "text"
	// DrawCheckbox is a checkbox state.
	DrawCheckbox DrawKind = "checkbox"
)

// PlaceholderLabels maps field types to their empty-state affordance.
var PlaceholderLabels = map[signing.FieldType]string{
	signing.FieldSignature: "sign here",
	signing.FieldInitial:   "initials",
	signing.FieldDate:      "date",
	signing.FieldText:      "text",
}

// Instruction tells a surface how to draw one field.
type Instruction struct {
	FieldID   string            `json:"field_id"`
	Type      signing.FieldType `json:"type"`
	Page      int               `json:"page"`
	Percent   geometry.Percent  `json:"percent"`
	Pixel     geometry.Point    `json:"pixel"`
	Kind      DrawKind          `json:"kind"`
	Label     string            `json:"label,omitempty"`
	Payload   string            `json:"payload,omitempty"`
	Font      string            `json:"font,omitempty"`
	Checked   bool              `json:"checked"`
	Completed bool              `json:"completed"`
	ReadOnly  bool              `json:"read_only"`
	Dragging  bool              `json:"dragging"`
	ZIndex    int               `json:"z_index"`
}

// View is everything a projection depends on.
type View struct {
	Viewer signing.Viewer
	Page   int
	Box    geometry.Rect

	// Zoom is the magnification the box was measured at. Box dimensions
	// already reflect it, so projection never rescales; the value is
	// echoed back to the client unchanged.
	Zoom float64

	// DraggingID marks the field currently mid-drag, with its uncommitted
	// position. Presentation only; stored coordinates are not consulted
	// for that field until the drag commits.
	DraggingID  string
	DragPending geometry.Percent
}

// Project returns draw instructions for every field visible to the viewer
// on the view's page, in z-order.
func Project(store *signing.FieldStore, view View) []Instruction {
	var out []Instruction
	for i, f := range store.List() {
		if f.Page != view.Page {
			continue
		}
		if !view.Viewer.CanSee(f) {
			continue
		}

		pct := geometry.Percent{X: f.X, Y: f.Y}
		dragging := view.DraggingID == f.ID
		if dragging {
			pct = view.DragPending
		}

		ins := Instruction{
			FieldID:   f.ID,
			Type:      f.Type,
			Page:      f.Page,
			Percent:   pct,
			Pixel:     geometry.ToAbsolute(pct, view.Box),
			Completed: f.Completed,
			ReadOnly:  !view.Viewer.CanBind(f),
			Dragging:  dragging,
			ZIndex:    i,
		}
		if dragging {
			// elevate mid-drag fields above their neighbors
			ins.ZIndex = store.Len()
		}

		value, hasValue := store.Value(f.ID)
		fillInstruction(&ins, f, value, hasValue && f.Completed)
		out = append(out, ins)
	}
	return out
}

// fillInstruction applies the per-type draw policy.
func fillInstruction(ins *Instruction, f signing.Field, v signing.Value, filled bool) {
	if f.Type == signing.FieldCheckbox {
		// checkboxes always render as a checkbox state
		ins.Kind = DrawCheckbox
		ins.Checked = filled && v.Checked
		return
	}

	if !filled {
		ins.Kind = DrawPlaceholder
		ins.Label = PlaceholderLabels[f.Type]
		return
	}

	switch v.Kind {
	case signing.KindSignature:
		if v.Modality == signing.ModalityType {
			// typed signatures render as styled text in the recorded font
			ins.Kind = DrawText
			ins.Payload = v.Payload
			ins.Font = v.Font
		} else {
			ins.Kind = DrawImage
			ins.Payload = v.Payload
		}
	case signing.KindDate:
		// the literal bound string; format was fixed at binding time
		ins.Kind = DrawText
		ins.Payload = v.Date
	case signing.KindText:
		ins.Kind = DrawText
		ins.Payload = v.Text
	default:
		ins.Kind = DrawPlaceholder
		ins.Label = PlaceholderLabels[f.Type]
	}
}
