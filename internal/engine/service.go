package engine

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Anuj12Pokharel/BriefcaseProject-sub000/internal/auth"
	"github.com/Anuj12Pokharel/BriefcaseProject-sub000/internal/document"
	"github.com/Anuj12Pokharel/BriefcaseProject-sub000/internal/flatten"
	"github.com/Anuj12Pokharel/BriefcaseProject-sub000/internal/geometry"
	"github.com/Anuj12Pokharel/BriefcaseProject-sub000/internal/library"
	"github.com/Anuj12Pokharel/BriefcaseProject-sub000/internal/placement"
	"github.com/Anuj12Pokharel/BriefcaseProject-sub000/internal/render"
	"github.com/Anuj12Pokharel/BriefcaseProject-sub000/internal/signing"
)

var (
	// ErrNoSession is returned by operations that need an active document.
	ErrNoSession = errors.New("no active session")
	// ErrNotFound is returned for unknown template or contact ids.
	ErrNotFound = errors.New("not found")
)

// Service orchestrates the signing workflow by wiring the document loader,
// the field machinery, and the persisted library behind one operation
// surface. A service holds at most one active session at a time.
type Service struct {
	loader    *document.Loader
	flattener *flatten.Flattener
	auth      *auth.Authenticator
	store     *library.Store

	mu         sync.RWMutex
	viewer     signing.Viewer
	session    *signing.Session
	controller *placement.Controller
	binder     *signing.Binder
	info       *document.Info

	dateFormat string
	sendDelay  time.Duration
}

// NewService creates a fully wired service. The library store persists
// under dataDir; pass an empty dataDir to run without persistence.
func NewService(maxFileSize int64, dataDir string) (*Service, error) {
	var store *library.Store
	if dataDir != "" {
		var err error
		store, err = library.NewStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open library store: %w", err)
		}
	}

	return &Service{
		loader:    document.NewLoader(maxFileSize),
		flattener: flatten.NewFlattener(),
		auth:      auth.NewAuthenticator(),
		store:     store,
		viewer: signing.Viewer{
			Email: auth.DefaultAdminEmail,
			Role:  signing.RoleAdmin,
		},
		dateFormat: signing.DefaultDateFormat,
		sendDelay:  2 * time.Second,
	}, nil
}

// Close releases the library store.
func (s *Service) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}

// SetSendDelay overrides the simulated delivery delay.
func (s *Service) SetSendDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sendDelay = d
}

// Viewer returns the current viewer context.
func (s *Service) Viewer() signing.Viewer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewer
}

// Login authenticates and switches the service to the resulting viewer
// context. The default admin account is always available.
func (s *Service) Login(req LoginRequest) (*LoginResult, error) {
	v, err := s.auth.Login(req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.viewer = v
	s.mu.Unlock()
	return &LoginResult{Viewer: v}, nil
}

// SessionCreate opens a document and replaces any active session. Page
// count discovery runs in the background; until it resolves the session
// accepts placements on any positive page number.
func (s *Service) SessionCreate(req SessionCreateRequest) (*SessionCreateResult, error) {
	var (
		name string
		data []byte
		err  error
	)
	switch {
	case req.Path != "":
		name, data, err = s.loader.LoadFile(req.Path)
		if err != nil {
			return nil, err
		}
	case len(req.Data) > 0:
		if err := s.loader.ValidateBytes(req.Data); err != nil {
			return nil, err
		}
		name = req.Name
		if name == "" {
			name = "document.pdf"
		}
		data = req.Data
	default:
		return nil, errors.New("either path or data is required")
	}

	sess := signing.NewSession(name, req.Path, data)

	s.mu.Lock()
	s.session = sess
	s.controller = placement.NewController(sess)
	s.binder = signing.NewBinder(sess.Fields, s.dateFormat)
	s.info = nil
	s.mu.Unlock()

	go s.probe(sess, name, data)

	return &SessionCreateResult{
		SessionID: sess.ID,
		Name:      sess.Name,
		Pages:     sess.PageCount(),
		Size:      int64(len(data)),
	}, nil
}

// probe decodes the document structure off the request path. A failed
// decode leaves the session optimistic about page numbers.
func (s *Service) probe(sess *signing.Session, name string, data []byte) {
	info, err := s.loader.Probe(name, data)
	if err != nil {
		log.Printf("document probe failed for %s: %v", name, err)
		return
	}
	sess.SetPageCount(info.Pages)

	s.mu.Lock()
	if s.session == sess {
		s.info = info
	}
	s.mu.Unlock()
}

// SessionInfo reports the state of the active session.
func (s *Service) SessionInfo(req SessionInfoRequest) (*SessionInfoResult, error) {
	sess, err := s.activeSession()
	if err != nil {
		return nil, err
	}
	pages := sess.PageCount()
	return &SessionInfoResult{
		SessionID:  sess.ID,
		Name:       sess.Name,
		Pages:      pages,
		Decoded:    pages > 0,
		Fields:     sess.Fields.Len(),
		Recipients: sess.Recipients.Len(),
	}, nil
}

// RecipientAdd adds a recipient to the active session.
func (s *Service) RecipientAdd(req RecipientAddRequest) (*RecipientAddResult, error) {
	sess, err := s.activeSession()
	if err != nil {
		return nil, err
	}
	r, err := sess.Recipients.Add(req.Name, req.Email, req.Designation)
	if err != nil {
		return nil, err
	}
	return &RecipientAddResult{Recipient: r}, nil
}

// RecipientRemove removes a recipient. Fields already assigned to the
// recipient's email keep their assignment.
func (s *Service) RecipientRemove(req RecipientRemoveRequest) error {
	sess, err := s.activeSession()
	if err != nil {
		return err
	}
	return sess.Recipients.Remove(req.ID)
}

// RecipientList lists recipients of the active session.
func (s *Service) RecipientList() (*RecipientListResult, error) {
	sess, err := s.activeSession()
	if err != nil {
		return nil, err
	}
	list := sess.Recipients.List()
	return &RecipientListResult{Recipients: list, TotalCount: len(list)}, nil
}

// ToolSelect arms a field type for the next placement click.
func (s *Service) ToolSelect(req ToolSelectRequest) (*ToolSelectResult, error) {
	ctrl, viewer, err := s.activeController()
	if err != nil {
		return nil, err
	}
	t := signing.FieldType(req.Tool)
	if !t.Valid() {
		return nil, fmt.Errorf("unknown tool: %s", req.Tool)
	}
	armed := ctrl.SelectTool(viewer, t)
	res := &ToolSelectResult{Armed: armed}
	if armed {
		res.Tool = req.Tool
	}
	return res, nil
}

// FieldPlace places the armed tool at the clicked position.
func (s *Service) FieldPlace(req FieldPlaceRequest) (*FieldPlaceResult, error) {
	ctrl, viewer, err := s.activeController()
	if err != nil {
		return nil, err
	}
	f, ok := ctrl.Click(viewer, req.Point, req.Box, req.Page, req.Recipient)
	return &FieldPlaceResult{Placed: ok, Field: f}, nil
}

// FieldPlaceQuick places a field at the bottom-center anchor in one step.
func (s *Service) FieldPlaceQuick(req FieldPlaceQuickRequest) (*FieldPlaceResult, error) {
	ctrl, viewer, err := s.activeController()
	if err != nil {
		return nil, err
	}
	t := signing.FieldType(req.Tool)
	if !t.Valid() {
		return nil, fmt.Errorf("unknown tool: %s", req.Tool)
	}
	f, ok := ctrl.PlaceAtBottom(viewer, t, req.Page, req.Recipient)
	return &FieldPlaceResult{Placed: ok, Field: f}, nil
}

// FieldDrag replays a full drag gesture against the active session. The
// gesture commits only when the pointer travelled past the drag threshold.
func (s *Service) FieldDrag(req FieldDragRequest) (*FieldDragResult, error) {
	ctrl, viewer, err := s.activeController()
	if err != nil {
		return nil, err
	}
	d, ok := ctrl.PointerDown(viewer, req.FieldID, req.Start, req.Box)
	if !ok {
		return &FieldDragResult{}, nil
	}
	defer d.Release()

	for _, p := range req.Moves {
		d.PointerMove(p)
	}
	committed := d.PointerUp()
	// the whole pointer sequence was replayed here, so no click follows
	// that the suppression could apply to
	ctrl.ConsumeSuppressedClick()
	return &FieldDragResult{Committed: committed, Position: d.Pending()}, nil
}

// FieldRemove deletes a field and any value bound to it.
func (s *Service) FieldRemove(req FieldRemoveRequest) (*FieldRemoveResult, error) {
	ctrl, viewer, err := s.activeController()
	if err != nil {
		return nil, err
	}
	return &FieldRemoveResult{Removed: ctrl.Remove(viewer, req.FieldID)}, nil
}

// FieldList lists the fields the current viewer is allowed to see.
func (s *Service) FieldList(req FieldListRequest) (*FieldListResult, error) {
	sess, err := s.activeSession()
	if err != nil {
		return nil, err
	}
	viewer := s.Viewer()

	var visible []signing.Field
	for _, f := range sess.Fields.List() {
		if viewer.CanSee(f) {
			visible = append(visible, f)
		}
	}
	return &FieldListResult{Fields: visible, TotalCount: len(visible)}, nil
}

// FieldBind binds a captured value to a field. A signature binding also
// auto-fills the signer's open date fields.
func (s *Service) FieldBind(req FieldBindRequest) (*FieldBindResult, error) {
	s.mu.RLock()
	binder := s.binder
	viewer := s.viewer
	s.mu.RUnlock()
	if binder == nil {
		return nil, ErrNoSession
	}

	v, err := valueFromRequest(req)
	if err != nil {
		return nil, err
	}
	res, err := binder.Bind(viewer, req.FieldID, v)
	if err != nil {
		return nil, err
	}
	return &FieldBindResult{Applied: res.Applied, AutoFilled: res.AutoFilled}, nil
}

func valueFromRequest(req FieldBindRequest) (signing.Value, error) {
	switch signing.ValueKind(req.Kind) {
	case signing.KindSignature:
		m := signing.Modality(req.Modality)
		if req.Modality == "" {
			m = signing.ModalityDraw
		}
		return signing.SignatureValue(req.Payload, m, req.Font), nil
	case signing.KindText:
		return signing.TextValue(req.Text), nil
	case signing.KindDate:
		return signing.DateValue(req.Date), nil
	case signing.KindCheckbox:
		return signing.CheckboxValue(req.Checked), nil
	default:
		return signing.Value{}, fmt.Errorf("unknown value kind: %s", req.Kind)
	}
}

// RenderPage projects one page into draw instructions for the current
// viewer. An in-flight drag shows at its pending position.
func (s *Service) RenderPage(req RenderPageRequest) (*RenderPageResult, error) {
	sess, err := s.activeSession()
	if err != nil {
		return nil, err
	}
	if err := sess.ValidatePage(req.Page); err != nil {
		return nil, err
	}

	s.mu.RLock()
	ctrl := s.controller
	viewer := s.viewer
	s.mu.RUnlock()

	zoom := req.Zoom
	if zoom == 0 {
		zoom = 1
	}
	view := render.View{
		Viewer: viewer,
		Page:   req.Page,
		Box:    req.Box,
		Zoom:   geometry.ClampZoom(zoom),
	}
	if d, ok := ctrl.ActiveDrag(); ok {
		view.DraggingID = d.FieldID()
		view.DragPending = d.Pending()
	}
	return &RenderPageResult{
		Page:         req.Page,
		Pages:        sess.PageCount(),
		Zoom:         view.Zoom,
		Instructions: render.Project(sess.Fields, view),
	}, nil
}

// DocumentExport flattens every completed field into the document and
// writes the result to the requested path.
func (s *Service) DocumentExport(req DocumentExportRequest) (*DocumentExportResult, error) {
	sess, err := s.activeSession()
	if err != nil {
		return nil, err
	}
	if req.OutputPath == "" {
		return nil, errors.New("output_path is required")
	}
	if !strings.EqualFold(filepath.Ext(req.OutputPath), ".pdf") {
		return nil, fmt.Errorf("output must be a .pdf file: %s", req.OutputPath)
	}

	out, report, err := s.flattener.Flatten(sess.Source, sess.Fields.List(), sess.Fields.Values())
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(req.OutputPath, out, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}
	return &DocumentExportResult{
		OutputPath: req.OutputPath,
		Size:       int64(len(out)),
		Flattened:  report.Flattened,
		Skipped:    report.Skipped,
	}, nil
}

// DocumentSend simulates routing the document to its recipients. It
// requires at least one validly addressed recipient and blocks for the
// configured delivery delay.
func (s *Service) DocumentSend(req DocumentSendRequest) (*DocumentSendResult, error) {
	sess, err := s.activeSession()
	if err != nil {
		return nil, err
	}
	recipients := sess.Recipients.List()
	valid := 0
	for _, r := range recipients {
		if strings.Contains(r.Email, "@") {
			valid++
		}
	}
	if valid == 0 {
		return nil, errors.New("at least one recipient with a valid email is required")
	}

	s.mu.RLock()
	delay := s.sendDelay
	s.mu.RUnlock()
	time.Sleep(delay)

	if req.Message != "" {
		log.Printf("document %s routed to %d recipient(s): %s", sess.Name, valid, req.Message)
	} else {
		log.Printf("document %s routed to %d recipient(s)", sess.Name, valid)
	}
	return &DocumentSendResult{Delivered: true, Recipients: valid}, nil
}

// TemplateSave creates or updates a template.
func (s *Service) TemplateSave(req TemplateSaveRequest) (*TemplateSaveResult, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, errors.New("template title is required")
	}

	templates, err := s.store.Templates()
	if err != nil {
		return nil, err
	}
	t := library.Template{
		ID:        req.ID,
		Title:     req.Title,
		Body:      req.Body,
		UpdatedAt: time.Now(),
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
		templates = append(templates, t)
	} else {
		idx := -1
		for i := range templates {
			if templates[i].ID == t.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("%w: template %s", ErrNotFound, t.ID)
		}
		templates[idx] = t
	}
	if err := s.store.SaveTemplates(templates); err != nil {
		return nil, err
	}
	return &TemplateSaveResult{Template: t}, nil
}

// TemplateList lists the persisted templates.
func (s *Service) TemplateList() (*TemplateListResult, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}
	templates, err := s.store.Templates()
	if err != nil {
		return nil, err
	}
	return &TemplateListResult{Templates: templates, TotalCount: len(templates)}, nil
}

// TemplateDelete deletes a template by id.
func (s *Service) TemplateDelete(req TemplateDeleteRequest) error {
	if err := s.requireStore(); err != nil {
		return err
	}
	templates, err := s.store.Templates()
	if err != nil {
		return err
	}
	kept := templates[:0]
	for _, t := range templates {
		if t.ID != req.ID {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(templates) {
		return fmt.Errorf("%w: template %s", ErrNotFound, req.ID)
	}
	return s.store.SaveTemplates(kept)
}

// ContactSave creates or updates a contact.
func (s *Service) ContactSave(req ContactSaveRequest) (*ContactSaveResult, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, errors.New("contact name is required")
	}
	if !strings.Contains(req.Email, "@") {
		return nil, fmt.Errorf("invalid contact email: %s", req.Email)
	}

	contacts, err := s.store.Contacts()
	if err != nil {
		return nil, err
	}
	c := library.Contact{
		ID:          req.ID,
		Name:        req.Name,
		Email:       req.Email,
		Designation: req.Designation,
		UpdatedAt:   time.Now(),
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
		contacts = append(contacts, c)
	} else {
		idx := -1
		for i := range contacts {
			if contacts[i].ID == c.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("%w: contact %s", ErrNotFound, c.ID)
		}
		contacts[idx] = c
	}
	if err := s.store.SaveContacts(contacts); err != nil {
		return nil, err
	}
	return &ContactSaveResult{Contact: c}, nil
}

// ContactList lists the persisted contacts.
func (s *Service) ContactList() (*ContactListResult, error) {
	if err := s.requireStore(); err != nil {
		return nil, err
	}
	contacts, err := s.store.Contacts()
	if err != nil {
		return nil, err
	}
	return &ContactListResult{Contacts: contacts, TotalCount: len(contacts)}, nil
}

// ContactDelete deletes a contact by id.
func (s *Service) ContactDelete(req ContactDeleteRequest) error {
	if err := s.requireStore(); err != nil {
		return err
	}
	contacts, err := s.store.Contacts()
	if err != nil {
		return err
	}
	kept := contacts[:0]
	for _, c := range contacts {
		if c.ID != req.ID {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(contacts) {
		return fmt.Errorf("%w: contact %s", ErrNotFound, req.ID)
	}
	return s.store.SaveContacts(kept)
}

func (s *Service) activeSession() (*signing.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil, ErrNoSession
	}
	return s.session, nil
}

func (s *Service) activeController() (*placement.Controller, signing.Viewer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.controller == nil {
		return nil, signing.Viewer{}, ErrNoSession
	}
	return s.controller, s.viewer, nil
}

func (s *Service) requireStore() error {
	if s.store == nil {
		return errors.New("library store is not configured")
	}
	return nil
}
