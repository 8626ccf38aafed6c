// Package placement translates authoring gestures into field mutations:
// tool selection plus click, the place-at-bottom shortcut, and
// drag-to-move. Authorization is enforced here, not in the UI; an
// unauthorized gesture is a silent no-op.
package placement

import (
	"sync"

	"github.com/Anuj12Pokharel/BriefcaseProject-sub000/internal/geometry"
	"github.com/Anuj12Pokharel/BriefcaseProject-sub000/internal/signing"
)

// DragThreshold is the pointer travel, in device pixels, beyond which a
// pointer-down commits to a drag and the trailing click is suppressed.
const DragThreshold = 3.0

// QuickPlacePosition is the fixed anchor used by the place-at-bottom
// shortcut.
var QuickPlacePosition = geometry.Percent{X: 50, Y: 95}

// Controller interprets gestures against a session's field store.
type Controller struct {
	session *signing.Session

	mu            sync.Mutex
	tool          signing.FieldType
	toolSelected  bool
	drag          *DragSession
	suppressClick bool
}

// NewController creates a placement controller for the session.
func NewController(session *signing.Session) *Controller {
	return &Controller{session: session}
}

// SelectTool arms the given field type for the next click. Only the admin
// may select a tool; anyone else leaves the controller idle.
func (c *Controller) SelectTool(viewer signing.Viewer, t signing.FieldType) bool {
	if !viewer.CanPlace(t) {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tool = t
	c.toolSelected = true
	return true
}

// ClearTool returns the controller to the idle state.
func (c *Controller) ClearTool() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.toolSelected = false
	c.tool = ""
}

// ConsumeSuppressedClick drops a pending click suppression left behind by
// a committed drag. A pointer sequence replayed in a single request has no
// trailing click event to swallow, so such callers drain the suppression
// once the gesture ends.
func (c *Controller) ConsumeSuppressedClick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.suppressClick = false
}

// SelectedTool returns the armed tool, if any.
func (c *Controller) SelectedTool() (signing.FieldType, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tool, c.toolSelected
}

// Click places a field of the armed tool type at the clicked position on
// the given page. A click with no tool armed, by an unauthorized viewer,
// or immediately following a drag is ignored. Placement consumes the tool
// selection.
func (c *Controller) Click(
	viewer signing.Viewer, p geometry.Point, box geometry.Rect, page int, recipient string,
) (*signing.Field, bool) {
	c.mu.Lock()
	if c.suppressClick {
		// a drag just ended on this pointer; swallow the click event
		c.suppressClick = false
		c.mu.Unlock()
		return nil, false
	}
	if !c.toolSelected {
		c.mu.Unlock()
		return nil, false
	}
	tool := c.tool
	c.mu.Unlock()

	if !viewer.CanPlace(tool) {
		return nil, false
	}
	if err := c.session.ValidatePage(page); err != nil {
		return nil, false
	}

	pct := geometry.ToPercent(p, box)
	f := signing.NewField(tool, page, pct.X, pct.Y, recipient)
	if err := c.session.Fields.Add(f); err != nil {
		return nil, false
	}
	c.ClearTool()
	return &f, true
}

// PlaceAtBottom is the one-step shortcut that drops a field at the fixed
// bottom-center anchor of the given page.
func (c *Controller) PlaceAtBottom(
	viewer signing.Viewer, t signing.FieldType, page int, recipient string,
) (*signing.Field, bool) {
	if !viewer.CanPlace(t) {
		return nil, false
	}
	if err := c.session.ValidatePage(page); err != nil {
		return nil, false
	}
	f := signing.NewField(t, page, QuickPlacePosition.X, QuickPlacePosition.Y, recipient)
	if err := c.session.Fields.Add(f); err != nil {
		return nil, false
	}
	return &f, true
}

// Remove deletes a field and its bound value if the viewer is authorized.
func (c *Controller) Remove(viewer signing.Viewer, fieldID string) bool {
	f, ok := c.session.Fields.Get(fieldID)
	if !ok || !viewer.CanRemove(f) {
		return false
	}
	return c.session.Fields.Remove(fieldID) == nil
}

// PointerDown starts a drag on an existing field. An unauthorized viewer
// or unknown field performs no capture and the controller stays idle.
func (c *Controller) PointerDown(
	viewer signing.Viewer, fieldID string, p geometry.Point, box geometry.Rect,
) (*DragSession, bool) {
	f, ok := c.session.Fields.Get(fieldID)
	if !ok || !viewer.CanMove(f) {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.drag != nil && c.drag.active {
		return nil, false
	}
	d := &DragSession{
		controller: c,
		fieldID:    fieldID,
		start:      p,
		box:        box,
		pending:    geometry.Percent{X: f.X, Y: f.Y},
		active:     true,
	}
	c.drag = d
	return d, true
}

// ActiveDrag returns the drag in flight, if any.
func (c *Controller) ActiveDrag() (*DragSession, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.drag != nil && c.drag.active {
		return c.drag, true
	}
	return nil, false
}

// DragSession owns a single drag from pointer-down to pointer-up. It holds
// its listeners' lifetime: creating it is the capture, Release is the
// guaranteed detach. Stored coordinates are untouched until pointer-up
// commits them; until then the pending position is presentation state.
type DragSession struct {
	controller *Controller
	fieldID    string
	start      geometry.Point
	box        geometry.Rect

	mu       sync.Mutex
	dragging bool
	pending  geometry.Percent
	active   bool
}

// FieldID returns the id of the field being dragged.
func (d *DragSession) FieldID() string { return d.fieldID }

// Dragging reports whether pointer travel has exceeded the threshold.
func (d *DragSession) Dragging() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dragging
}

// Pending returns the clamped position the field would take if the drag
// committed now.
func (d *DragSession) Pending() geometry.Percent {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// PointerMove updates the pending position. Movement within the threshold
// keeps the gesture a candidate click; beyond it the session commits to
// dragging. Positions are clamped to the page bounds as the pointer moves,
// not just on write.
func (d *DragSession) PointerMove(p geometry.Point) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.active {
		return
	}
	if !d.dragging {
		dx := p.X - d.start.X
		dy := p.Y - d.start.Y
		if dx*dx+dy*dy <= DragThreshold*DragThreshold {
			return
		}
		d.dragging = true
	}
	d.pending = geometry.ToPercent(p, d.box)
}

// PointerUp ends the drag. If the threshold was crossed the pending
// position is committed to the store and the next click is suppressed.
// Either way the session is released.
func (d *DragSession) PointerUp() (committed bool) {
	d.mu.Lock()
	if !d.active {
		d.mu.Unlock()
		return false
	}
	d.active = false
	wasDragging := d.dragging
	pending := d.pending
	d.mu.Unlock()

	c := d.controller
	c.mu.Lock()
	if c.drag == d {
		c.drag = nil
	}
	c.suppressClick = wasDragging
	c.mu.Unlock()

	if !wasDragging {
		return false
	}
	return c.session.Fields.Move(d.fieldID, pending) == nil
}

// Release abandons the drag without committing, detaching it from the
// controller. Safe to call on teardown after PointerUp already ran.
func (d *DragSession) Release() {
	d.mu.Lock()
	d.active = false
	d.mu.Unlock()

	c := d.controller
	c.mu.Lock()
	if c.drag == d {
		c.drag = nil
	}
	c.mu.Unlock()
}
