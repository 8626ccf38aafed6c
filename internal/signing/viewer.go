package signing

import "strings"

// Role is the authorization tier of the current viewer.
type Role string

const (
	// RoleAdmin is the privileged document preparer.
	RoleAdmin Role = "admin"
	// RoleSigner is a non-privileged recipient completing assigned fields.
	RoleSigner Role = "signer"
)

// Viewer is the identity/authorization context threaded into the placement
// controller and render projector. Authorization decisions live here so
// call sites never branch on role themselves.
type Viewer struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// IsAdmin reports whether the viewer is the privileged preparer.
func (v Viewer) IsAdmin() bool {
	return v.Role == RoleAdmin
}

// CanSee reports whether the viewer may see the field. Admin sees every
// field; a signer sees fields that are unassigned, assigned to the generic
// sentinel, or assigned to their own email (case-insensitive).
func (v Viewer) CanSee(f Field) bool {
	if v.IsAdmin() {
		return true
	}
	if f.Recipient == "" || EmailsEqual(f.Recipient, RecipientAny) {
		return true
	}
	return EmailsEqual(f.Recipient, v.Email)
}

// CanPlace reports whether the viewer may place a new field of type t via
// the prepare surface. Only the admin prepares documents.
func (v Viewer) CanPlace(t FieldType) bool {
	return v.IsAdmin() && t.Valid()
}

// CanMove reports whether the viewer may drag the field. Signers never
// move fields.
func (v Viewer) CanMove(f Field) bool {
	return v.IsAdmin()
}

// CanBind reports whether the viewer may bind a value to the field: the
// admin always, a signer only for fields they can see.
func (v Viewer) CanBind(f Field) bool {
	return v.CanSee(f)
}

// CanRemove reports whether the viewer may delete the field.
func (v Viewer) CanRemove(f Field) bool {
	return v.IsAdmin()
}

// EmailsEqual compares two email addresses case-insensitively, ignoring
// surrounding whitespace.
func EmailsEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
