package signing

import "testing"

func TestViewerCanSee(t *testing.T) {
	assigned := Field{Type: FieldSignature, Recipient: "alice@x.com"}
	generic := Field{Type: FieldSignature, Recipient: RecipientAny}
	unset := Field{Type: FieldText}

	tests := []struct {
		name   string
		viewer Viewer
		field  Field
		want   bool
	}{
		{"admin sees assigned field", Viewer{Email: "prep@x.com", Role: RoleAdmin}, assigned, true},
		{"matching signer sees own field", Viewer{Email: "alice@x.com", Role: RoleSigner}, assigned, true},
		{"match is case-insensitive", Viewer{Email: "ALICE@X.com", Role: RoleSigner}, assigned, true},
		{"other signer does not see it", Viewer{Email: "bob@x.com", Role: RoleSigner}, assigned, false},
		{"any signer sees generic field", Viewer{Email: "bob@x.com", Role: RoleSigner}, generic, true},
		{"any signer sees unassigned field", Viewer{Email: "bob@x.com", Role: RoleSigner}, unset, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.viewer.CanSee(tt.field); got != tt.want {
				t.Errorf("CanSee() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestViewerPlacementAndDragRights(t *testing.T) {
	admin := Viewer{Email: "prep@x.com", Role: RoleAdmin}
	signer := Viewer{Email: "alice@x.com", Role: RoleSigner}
	field := Field{Type: FieldSignature, Recipient: "alice@x.com"}

	if !admin.CanPlace(FieldSignature) || !admin.CanPlace(FieldDate) || !admin.CanPlace(FieldText) {
		t.Error("admin should be able to place signature, date and text fields")
	}
	if admin.CanPlace("stamp") {
		t.Error("unknown field type should not be placeable")
	}
	if signer.CanPlace(FieldSignature) {
		t.Error("signer should not place fields")
	}
	if !admin.CanMove(field) {
		t.Error("admin should be able to drag fields")
	}
	if signer.CanMove(field) {
		t.Error("signer should never drag fields, even their own")
	}
	if !signer.CanBind(field) {
		t.Error("signer should bind values to their own fields")
	}
	if signer.CanRemove(field) {
		t.Error("signer should not remove fields")
	}
}

func TestEmailsEqual(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"alice@x.com", "ALICE@X.com", true},
		{" alice@x.com ", "alice@x.com", true},
		{"alice@x.com", "bob@x.com", false},
		{"", "", true},
	}
	for _, tt := range tests {
		if got := EmailsEqual(tt.a, tt.b); got != tt.want {
			t.Errorf("EmailsEqual(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
