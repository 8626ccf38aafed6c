package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anuj12Pokharel/BriefcaseProject-sub000/internal/geometry"
	"github.com/Anuj12Pokharel/BriefcaseProject-sub000/internal/signing"
)

var (
	admin = signing.Viewer{Email: "prep@x.com", Role: signing.RoleAdmin}
	box   = geometry.Rect{Left: 0, Top: 0, Width: 800, Height: 1000}
)

func view(v signing.Viewer, page int) View {
	return View{Viewer: v, Page: page, Box: box, Zoom: 1.0}
}

func TestProjectVisibilityFilter(t *testing.T) {
	store := signing.NewFieldStore()
	mine := signing.NewField(signing.FieldSignature, 1, 10, 10, "alice@x.com")
	theirs := signing.NewField(signing.FieldSignature, 1, 30, 10, "bob@x.com")
	generic := signing.NewField(signing.FieldText, 1, 50, 10, signing.RecipientAny)
	otherPage := signing.NewField(signing.FieldDate, 2, 70, 10, "alice@x.com")
	for _, f := range []signing.Field{mine, theirs, generic, otherPage} {
		require.NoError(t, store.Add(f))
	}

	t.Run("admin sees every field on the page", func(t *testing.T) {
		out := Project(store, view(admin, 1))
		assert.Len(t, out, 3)
	})

	t.Run("signer match is case-insensitive", func(t *testing.T) {
		alice := signing.Viewer{Email: "ALICE@X.com", Role: signing.RoleSigner}
		out := Project(store, view(alice, 1))
		require.Len(t, out, 2)
		assert.Equal(t, mine.ID, out[0].FieldID)
		assert.Equal(t, generic.ID, out[1].FieldID)
	})

	t.Run("non-matching signer sees only generic fields", func(t *testing.T) {
		carol := signing.Viewer{Email: "carol@x.com", Role: signing.RoleSigner}
		out := Project(store, view(carol, 1))
		require.Len(t, out, 1)
		assert.Equal(t, generic.ID, out[0].FieldID)
	})

	t.Run("other pages are excluded", func(t *testing.T) {
		out := Project(store, view(admin, 2))
		require.Len(t, out, 1)
		assert.Equal(t, otherPage.ID, out[0].FieldID)
	})
}

func TestProjectDrawPolicy(t *testing.T) {
	store := signing.NewFieldStore()
	sig := signing.NewField(signing.FieldSignature, 1, 10, 10, "")
	typed := signing.NewField(signing.FieldSignature, 1, 20, 10, "")
	date := signing.NewField(signing.FieldDate, 1, 30, 10, "")
	text := signing.NewField(signing.FieldText, 1, 40, 10, "")
	check := signing.NewField(signing.FieldCheckbox, 1, 50, 10, "")
	for _, f := range []signing.Field{sig, typed, date, text, check} {
		require.NoError(t, store.Add(f))
	}
	require.NoError(t, store.Bind(typed.ID, signing.SignatureValue("Jane Doe", signing.ModalityType, "Great Vibes")))
	require.NoError(t, store.Bind(date.ID, signing.DateValue("09/01/2026")))
	require.NoError(t, store.Bind(check.ID, signing.CheckboxValue(true)))

	out := Project(store, view(admin, 1))
	require.Len(t, out, 5)
	byID := map[string]Instruction{}
	for _, ins := range out {
		byID[ins.FieldID] = ins
	}

	assert.Equal(t, DrawPlaceholder, byID[sig.ID].Kind)
	assert.Equal(t, "sign here", byID[sig.ID].Label)

	assert.Equal(t, DrawText, byID[typed.ID].Kind)
	assert.Equal(t, "Jane Doe", byID[typed.ID].Payload)
	assert.Equal(t, "Great Vibes", byID[typed.ID].Font)

	assert.Equal(t, DrawText, byID[date.ID].Kind)
	assert.Equal(t, "09/01/2026", byID[date.ID].Payload, "literal string, no re-formatting")

	assert.Equal(t, DrawPlaceholder, byID[text.ID].Kind)

	assert.Equal(t, DrawCheckbox, byID[check.ID].Kind)
	assert.True(t, byID[check.ID].Checked)
}

func TestProjectDrawnSignatureRendersAsImage(t *testing.T) {
	store := signing.NewFieldStore()
	sig := signing.NewField(signing.FieldSignature, 1, 10, 10, "")
	require.NoError(t, store.Add(sig))
	require.NoError(t, store.Bind(sig.ID, signing.SignatureValue("data:image/png;base64,AAAA", signing.ModalityDraw, "")))

	out := Project(store, view(admin, 1))
	require.Len(t, out, 1)
	assert.Equal(t, DrawImage, out[0].Kind)
	assert.Equal(t, "data:image/png;base64,AAAA", out[0].Payload)
}

func TestProjectPixelPositions(t *testing.T) {
	store := signing.NewFieldStore()
	f := signing.NewField(signing.FieldDate, 1, 12.5, 5, "")
	require.NoError(t, store.Add(f))

	out := Project(store, view(admin, 1))
	require.Len(t, out, 1)
	assert.Equal(t, geometry.Point{X: 100, Y: 50}, out[0].Pixel)
}

func TestProjectDraggingPresentation(t *testing.T) {
	store := signing.NewFieldStore()
	a := signing.NewField(signing.FieldSignature, 1, 10, 10, "")
	b := signing.NewField(signing.FieldText, 1, 30, 30, "")
	require.NoError(t, store.Add(a))
	require.NoError(t, store.Add(b))

	v := view(admin, 1)
	v.DraggingID = a.ID
	v.DragPending = geometry.Percent{X: 60, Y: 70}

	out := Project(store, v)
	require.Len(t, out, 2)

	assert.True(t, out[0].Dragging)
	assert.Equal(t, geometry.Percent{X: 60, Y: 70}, out[0].Percent, "mid-drag projection uses the pending position")
	assert.Greater(t, out[0].ZIndex, out[1].ZIndex, "dragged field is elevated")

	// stored coordinates were not touched
	got, _ := store.Get(a.ID)
	assert.Equal(t, 10.0, got.X)
	assert.Equal(t, 10.0, got.Y)
}

func TestProjectReadOnlyForNonAssignee(t *testing.T) {
	store := signing.NewFieldStore()
	f := signing.NewField(signing.FieldCheckbox, 1, 10, 10, signing.RecipientAny)
	require.NoError(t, store.Add(f))

	bob := signing.Viewer{Email: "bob@x.com", Role: signing.RoleSigner}
	out := Project(store, view(bob, 1))
	require.Len(t, out, 1)
	assert.False(t, out[0].ReadOnly, "generic fields are bindable by any signer")
}
