package placement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anuj12Pokharel/BriefcaseProject-sub000/internal/geometry"
	"github.com/Anuj12Pokharel/BriefcaseProject-sub000/internal/signing"
)

var (
	admin  = signing.Viewer{Email: "prep@x.com", Role: signing.RoleAdmin}
	signer = signing.Viewer{Email: "alice@x.com", Role: signing.RoleSigner}
)

func newTestController() (*Controller, *signing.Session) {
	session := signing.NewSession("contract.pdf", "", nil)
	session.SetPageCount(3)
	return NewController(session), session
}

func TestSelectToolAndClickPlacesField(t *testing.T) {
	c, session := newTestController()

	require.True(t, c.SelectTool(admin, signing.FieldDate))

	box := geometry.Rect{Left: 0, Top: 0, Width: 800, Height: 1000}
	f, ok := c.Click(admin, geometry.Point{X: 100, Y: 50}, box, 1, "alice@x.com")
	require.True(t, ok)

	assert.Equal(t, signing.FieldDate, f.Type)
	assert.Equal(t, 12.5, f.X)
	assert.Equal(t, 5.0, f.Y)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, "alice@x.com", f.Recipient)
	assert.False(t, f.Completed)
	assert.Equal(t, 1, session.Fields.Len())

	// placement consumes the tool selection
	_, armed := c.SelectedTool()
	assert.False(t, armed)
}

func TestClickWithoutToolIsIgnored(t *testing.T) {
	c, session := newTestController()

	_, ok := c.Click(admin, geometry.Point{X: 10, Y: 10}, geometry.Rect{Width: 100, Height: 100}, 1, "")
	assert.False(t, ok)
	assert.Equal(t, 0, session.Fields.Len())
}

func TestSignerCannotArmToolOrPlace(t *testing.T) {
	c, session := newTestController()

	assert.False(t, c.SelectTool(signer, signing.FieldSignature))

	_, ok := c.PlaceAtBottom(signer, signing.FieldSignature, 1, "")
	assert.False(t, ok)
	assert.Equal(t, 0, session.Fields.Len())
}

func TestClickOutOfRangePageIsIgnored(t *testing.T) {
	c, session := newTestController()
	require.True(t, c.SelectTool(admin, signing.FieldText))

	_, ok := c.Click(admin, geometry.Point{X: 10, Y: 10}, geometry.Rect{Width: 100, Height: 100}, 9, "")
	assert.False(t, ok)
	assert.Equal(t, 0, session.Fields.Len())
}

func TestPlaceAtBottomShortcut(t *testing.T) {
	c, _ := newTestController()

	f, ok := c.PlaceAtBottom(admin, signing.FieldSignature, 2, "alice@x.com")
	require.True(t, ok)
	assert.Equal(t, 50.0, f.X)
	assert.Equal(t, 95.0, f.Y)
	assert.Equal(t, 2, f.Page)
}

func TestDragCommitsClampedPosition(t *testing.T) {
	c, session := newTestController()
	f, ok := c.PlaceAtBottom(admin, signing.FieldSignature, 1, "")
	require.True(t, ok)

	box := geometry.Rect{Left: 0, Top: 0, Width: 800, Height: 1000}
	d, ok := c.PointerDown(admin, f.ID, geometry.Point{X: 400, Y: 950}, box)
	require.True(t, ok)

	// overshoot the right page edge; the pending position must clamp
	d.PointerMove(geometry.Point{X: 900, Y: 500})
	assert.True(t, d.Dragging())
	assert.Equal(t, geometry.Percent{X: 100, Y: 50}, d.Pending())

	require.True(t, d.PointerUp())

	got, _ := session.Fields.Get(f.ID)
	assert.Equal(t, 100.0, got.X)
	assert.Equal(t, 50.0, got.Y)
}

func TestDragBelowThresholdIsAClick(t *testing.T) {
	c, session := newTestController()
	f, ok := c.PlaceAtBottom(admin, signing.FieldDate, 1, "")
	require.True(t, ok)

	box := geometry.Rect{Width: 800, Height: 1000}
	d, ok := c.PointerDown(admin, f.ID, geometry.Point{X: 400, Y: 950}, box)
	require.True(t, ok)

	d.PointerMove(geometry.Point{X: 402, Y: 951})
	assert.False(t, d.Dragging())
	assert.False(t, d.PointerUp())

	got, _ := session.Fields.Get(f.ID)
	assert.Equal(t, 50.0, got.X, "position unchanged for a sub-threshold move")
	assert.Equal(t, 95.0, got.Y)
}

func TestDragSuppressesFollowingClick(t *testing.T) {
	c, session := newTestController()
	f, ok := c.PlaceAtBottom(admin, signing.FieldSignature, 1, "")
	require.True(t, ok)

	box := geometry.Rect{Width: 800, Height: 1000}
	d, _ := c.PointerDown(admin, f.ID, geometry.Point{X: 400, Y: 950}, box)
	d.PointerMove(geometry.Point{X: 200, Y: 200})
	d.PointerUp()

	// the browser fires a click right after pointer-up; it must not place
	require.True(t, c.SelectTool(admin, signing.FieldText))
	_, placed := c.Click(admin, geometry.Point{X: 200, Y: 200}, box, 1, "")
	assert.False(t, placed)
	assert.Equal(t, 1, session.Fields.Len())

	// the suppression is consumed; the next click places normally
	_, placed = c.Click(admin, geometry.Point{X: 200, Y: 200}, box, 1, "")
	assert.True(t, placed)
}

func TestConsumeSuppressedClick(t *testing.T) {
	c, _ := newTestController()
	f, ok := c.PlaceAtBottom(admin, signing.FieldSignature, 1, "")
	require.True(t, ok)

	box := geometry.Rect{Width: 800, Height: 1000}
	d, _ := c.PointerDown(admin, f.ID, geometry.Point{X: 400, Y: 950}, box)
	d.PointerMove(geometry.Point{X: 200, Y: 200})
	require.True(t, d.PointerUp())

	// a caller that replayed the whole gesture drains the suppression,
	// so an unrelated click is not swallowed
	c.ConsumeSuppressedClick()
	require.True(t, c.SelectTool(admin, signing.FieldText))
	_, placed := c.Click(admin, geometry.Point{X: 300, Y: 300}, box, 1, "")
	assert.True(t, placed)
}

func TestSignerPointerDownNeverCaptures(t *testing.T) {
	c, session := newTestController()
	f, ok := c.PlaceAtBottom(admin, signing.FieldSignature, 1, "alice@x.com")
	require.True(t, ok)

	box := geometry.Rect{Width: 800, Height: 1000}
	d, captured := c.PointerDown(signer, f.ID, geometry.Point{X: 400, Y: 950}, box)
	assert.False(t, captured)
	assert.Nil(t, d)

	got, _ := session.Fields.Get(f.ID)
	assert.Equal(t, 50.0, got.X, "field position unchanged after unauthorized pointer-down")
	assert.Equal(t, 95.0, got.Y)
}

func TestDragReleaseAbandonsWithoutCommit(t *testing.T) {
	c, session := newTestController()
	f, _ := c.PlaceAtBottom(admin, signing.FieldSignature, 1, "")

	box := geometry.Rect{Width: 800, Height: 1000}
	d, _ := c.PointerDown(admin, f.ID, geometry.Point{X: 400, Y: 950}, box)
	d.PointerMove(geometry.Point{X: 100, Y: 100})
	d.Release()

	got, _ := session.Fields.Get(f.ID)
	assert.Equal(t, 50.0, got.X)
	_, active := c.ActiveDrag()
	assert.False(t, active, "release must detach the drag session")
}

func TestRemove(t *testing.T) {
	c, session := newTestController()
	f, _ := c.PlaceAtBottom(admin, signing.FieldSignature, 1, "alice@x.com")

	assert.False(t, c.Remove(signer, f.ID), "signer cannot remove")
	assert.True(t, c.Remove(admin, f.ID))
	assert.Equal(t, 0, session.Fields.Len())
	assert.False(t, c.Remove(admin, f.ID), "already gone")
}
