package engine

import (
	"github.com/Anuj12Pokharel/BriefcaseProject-sub000/internal/geometry"
	"github.com/Anuj12Pokharel/BriefcaseProject-sub000/internal/library"
	"github.com/Anuj12Pokharel/BriefcaseProject-sub000/internal/render"
	"github.com/Anuj12Pokharel/BriefcaseProject-sub000/internal/signing"
)

// Request Types

// LoginRequest carries the mocked credential check input.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionCreateRequest starts a new document session from a file path or
// raw uploaded bytes. A new session replaces any existing one wholesale.
type SessionCreateRequest struct {
	Path string `json:"path,omitempty"`
	Name string `json:"name,omitempty"`
	Data []byte `json:"data,omitempty"`
}

// SessionInfoRequest asks about the active session.
type SessionInfoRequest struct{}

// RecipientAddRequest adds a recipient to the session.
type RecipientAddRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Designation string `json:"designation,omitempty"`
}

// RecipientRemoveRequest removes a recipient by id. Fields referencing
// the recipient's email are left untouched.
type RecipientRemoveRequest struct {
	ID string `json:"id"`
}

// ToolSelectRequest arms a field type for the next placement click.
type ToolSelectRequest struct {
	Tool string `json:"tool"`
}

// FieldPlaceRequest places the armed tool at a clicked position. Pointer
// coordinates are device pixels relative to the viewport; Box is the
// rendered page element's on-screen rectangle.
type FieldPlaceRequest struct {
	Point     geometry.Point `json:"point"`
	Box       geometry.Rect  `json:"box"`
	Page      int            `json:"page"`
	Recipient string         `json:"recipient,omitempty"`
}

// FieldPlaceQuickRequest is the one-step place-at-bottom shortcut.
type FieldPlaceQuickRequest struct {
	Tool      string `json:"tool"`
	Page      int    `json:"page"`
	Recipient string `json:"recipient,omitempty"`
}

// FieldDragRequest replays a drag gesture: pointer-down on a field,
// a sequence of moves, then pointer-up.
type FieldDragRequest struct {
	FieldID string           `json:"field_id"`
	Start   geometry.Point   `json:"start"`
	Moves   []geometry.Point `json:"moves"`
	Box     geometry.Rect    `json:"box"`
}

// FieldRemoveRequest deletes a field and its bound value.
type FieldRemoveRequest struct {
	FieldID string `json:"field_id"`
}

// FieldListRequest lists the fields visible to the current viewer.
type FieldListRequest struct{}

// FieldBindRequest binds a captured value to a field. Kind selects the
// variant; the matching payload fields must be set.
type FieldBindRequest struct {
	FieldID  string `json:"field_id"`
	Kind     string `json:"kind"`
	Payload  string `json:"payload,omitempty"`
	Modality string `json:"modality,omitempty"`
	Font     string `json:"font,omitempty"`
	Text     string `json:"text,omitempty"`
	Date     string `json:"date,omitempty"`
	Checked  bool   `json:"checked,omitempty"`
}

// RenderPageRequest asks for draw instructions for one page.
type RenderPageRequest struct {
	Page int           `json:"page"`
	Box  geometry.Rect `json:"box"`
	Zoom float64       `json:"zoom"`
}

// DocumentExportRequest flattens the session into a new document.
type DocumentExportRequest struct {
	OutputPath string `json:"output_path"`
}

// DocumentSendRequest routes the prepared document to its recipients.
// Delivery is simulated; no real transport happens.
type DocumentSendRequest struct {
	Message string `json:"message,omitempty"`
}

// TemplateSaveRequest saves or updates a reusable template.
type TemplateSaveRequest struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// TemplateDeleteRequest deletes a template by id.
type TemplateDeleteRequest struct {
	ID string `json:"id"`
}

// ContactSaveRequest saves or updates a contact.
type ContactSaveRequest struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Designation string `json:"designation,omitempty"`
}

// ContactDeleteRequest deletes a contact by id.
type ContactDeleteRequest struct {
	ID string `json:"id"`
}

// Response Types

// LoginResult is the viewer context established by a login.
type LoginResult struct {
	Viewer signing.Viewer `json:"viewer"`
}

// SessionCreateResult describes the freshly created session. Pages is 0
// until asynchronous decoding resolves.
type SessionCreateResult struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
	Pages     int    `json:"pages"`
	Size      int64  `json:"size"`
}

// SessionInfoResult is a snapshot of the active session.
type SessionInfoResult struct {
	SessionID  string `json:"session_id"`
	Name       string `json:"name"`
	Pages      int    `json:"pages"`
	Decoded    bool   `json:"decoded"`
	Fields     int    `json:"fields"`
	Recipients int    `json:"recipients"`
}

// RecipientAddResult is the stored recipient.
type RecipientAddResult struct {
	Recipient signing.Recipient `json:"recipient"`
}

// RecipientListResult is the ordered recipients of the session.
type RecipientListResult struct {
	Recipients []signing.Recipient `json:"recipients"`
	TotalCount int                 `json:"total_count"`
}

// ToolSelectResult reports whether the tool was armed.
type ToolSelectResult struct {
	Armed bool   `json:"armed"`
	Tool  string `json:"tool,omitempty"`
}

// FieldPlaceResult is the outcome of a placement gesture. Placed is false
// for ignored gestures (no tool armed, unauthorized viewer, bad page).
type FieldPlaceResult struct {
	Placed bool           `json:"placed"`
	Field  *signing.Field `json:"field,omitempty"`
}

// FieldDragResult is the outcome of a drag gesture.
type FieldDragResult struct {
	Committed bool             `json:"committed"`
	Position  geometry.Percent `json:"position"`
}

// FieldRemoveResult reports whether the field was removed.
type FieldRemoveResult struct {
	Removed bool `json:"removed"`
}

// FieldListResult is the fields visible to the current viewer.
type FieldListResult struct {
	Fields     []signing.Field `json:"fields"`
	TotalCount int             `json:"total_count"`
}

// FieldBindResult is the outcome of a bind, including any date fields the
// signature cascade auto-filled.
type FieldBindResult struct {
	Applied    bool     `json:"applied"`
	AutoFilled []string `json:"auto_filled,omitempty"`
}

// RenderPageResult carries the draw instructions for one page.
type RenderPageResult struct {
	Page         int                  `json:"page"`
	Pages        int                  `json:"pages"`
	Zoom         float64              `json:"zoom"`
	Instructions []render.Instruction `json:"instructions"`
}

// DocumentExportResult describes the flattened output document.
type DocumentExportResult struct {
	OutputPath string   `json:"output_path"`
	Size       int64    `json:"size"`
	Flattened  []string `json:"flattened"`
	Skipped    []string `json:"skipped,omitempty"`
}

// DocumentSendResult reports the simulated delivery.
type DocumentSendResult struct {
	Delivered  bool `json:"delivered"`
	Recipients int  `json:"recipients"`
}

// TemplateListResult is the persisted template list.
type TemplateListResult struct {
	Templates  []library.Template `json:"templates"`
	TotalCount int                `json:"total_count"`
}

// ContactListResult is the persisted contact list.
type ContactListResult struct {
	Contacts   []library.Contact `json:"contacts"`
	TotalCount int               `json:"total_count"`
}

// TemplateSaveResult is the persisted template.
type TemplateSaveResult struct {
	Template library.Template `json:"template"`
}

// ContactSaveResult is the persisted contact.
type ContactSaveResult struct {
	Contact library.Contact `json:"contact"`
}
