package mcp

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Anuj12Pokharel/BriefcaseProject-sub000/internal/config"
	"github.com/Anuj12Pokharel/BriefcaseProject-sub000/internal/descriptions"
	"github.com/Anuj12Pokharel/BriefcaseProject-sub000/internal/engine"
	"github.com/Anuj12Pokharel/BriefcaseProject-sub000/internal/geometry"
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	service   *engine.Service
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, service *engine.Service) (*Server, error) {
	if service == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:    cfg,
		service:   service,
		mcpServer: mcpServer,
	}

	// Register tools
	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool(
		"login",
		mcp.WithDescription(descriptions.LoginDescription),
		mcp.WithString("email", mcp.Required(), mcp.Description("Account email address")),
		mcp.WithString("password", mcp.Required(), mcp.Description("Account password")),
	), s.handleLogin)

	s.mcpServer.AddTool(mcp.NewTool(
		"session_create",
		mcp.WithDescription(descriptions.SessionCreateDescription),
		mcp.WithString("path", mcp.Description("Full path to the PDF document")),
		mcp.WithString("name", mcp.Description("Display name for an uploaded document")),
		mcp.WithString("data_base64", mcp.Description("Uploaded document bytes, base64-encoded")),
	), s.handleSessionCreate)

	s.mcpServer.AddTool(mcp.NewTool(
		"session_info",
		mcp.WithDescription(descriptions.SessionInfoDescription),
	), s.handleSessionInfo)

	s.mcpServer.AddTool(mcp.NewTool(
		"recipient_add",
		mcp.WithDescription(descriptions.RecipientAddDescription),
		mcp.WithString("name", mcp.Required(), mcp.Description("Recipient full name")),
		mcp.WithString("email", mcp.Required(), mcp.Description("Recipient email address")),
		mcp.WithString("designation", mcp.Description("Role or title, free-form")),
	), s.handleRecipientAdd)

	s.mcpServer.AddTool(mcp.NewTool(
		"recipient_remove",
		mcp.WithDescription(descriptions.RecipientRemoveDescription),
		mcp.WithString("id", mcp.Required(), mcp.Description("Recipient id")),
	), s.handleRecipientRemove)

	s.mcpServer.AddTool(mcp.NewTool(
		"recipient_list",
		mcp.WithDescription(descriptions.RecipientListDescription),
	), s.handleRecipientList)

	s.mcpServer.AddTool(mcp.NewTool(
		"tool_select",
		mcp.WithDescription(descriptions.ToolSelectDescription),
		mcp.WithString("tool", mcp.Required(),
			mcp.Description("Field type: signature, initial, date, text, or checkbox")),
	), s.handleToolSelect)

	s.mcpServer.AddTool(mcp.NewTool(
		"field_place",
		mcp.WithDescription(descriptions.FieldPlaceDescription),
		mcp.WithNumber("x", mcp.Required(), mcp.Description("Pointer x in device pixels")),
		mcp.WithNumber("y", mcp.Required(), mcp.Description("Pointer y in device pixels")),
		mcp.WithNumber("box_left", mcp.Required(), mcp.Description("Page rectangle left edge")),
		mcp.WithNumber("box_top", mcp.Required(), mcp.Description("Page rectangle top edge")),
		mcp.WithNumber("box_width", mcp.Required(), mcp.Description("Page rectangle width")),
		mcp.WithNumber("box_height", mcp.Required(), mcp.Description("Page rectangle height")),
		mcp.WithNumber("page", mcp.Required(), mcp.Description("1-based page number")),
		mcp.WithString("recipient", mcp.Description("Assigned signer email, or 'anyone'")),
	), s.handleFieldPlace)

	s.mcpServer.AddTool(mcp.NewTool(
		"field_place_quick",
		mcp.WithDescription(descriptions.FieldPlaceQuickDescription),
		mcp.WithString("tool", mcp.Required(),
			mcp.Description("Field type: signature, initial, date, text, or checkbox")),
		mcp.WithNumber("page", mcp.Required(), mcp.Description("1-based page number")),
		mcp.WithString("recipient", mcp.Description("Assigned signer email, or 'anyone'")),
	), s.handleFieldPlaceQuick)

	s.mcpServer.AddTool(mcp.NewTool(
		"field_drag",
		mcp.WithDescription(descriptions.FieldDragDescription),
		mcp.WithString("field_id", mcp.Required(), mcp.Description("Field to move")),
		mcp.WithNumber("start_x", mcp.Required(), mcp.Description("Pointer-down x in device pixels")),
		mcp.WithNumber("start_y", mcp.Required(), mcp.Description("Pointer-down y in device pixels")),
		mcp.WithNumber("end_x", mcp.Required(), mcp.Description("Pointer-up x in device pixels")),
		mcp.WithNumber("end_y", mcp.Required(), mcp.Description("Pointer-up y in device pixels")),
		mcp.WithNumber("box_left", mcp.Required(), mcp.Description("Page rectangle left edge")),
		mcp.WithNumber("box_top", mcp.Required(), mcp.Description("Page rectangle top edge")),
		mcp.WithNumber("box_width", mcp.Required(), mcp.Description("Page rectangle width")),
		mcp.WithNumber("box_height", mcp.Required(), mcp.Description("Page rectangle height")),
	), s.handleFieldDrag)

	s.mcpServer.AddTool(mcp.NewTool(
		"field_remove",
		mcp.WithDescription(descriptions.FieldRemoveDescription),
		mcp.WithString("field_id", mcp.Required(), mcp.Description("Field to delete")),
	), s.handleFieldRemove)

	s.mcpServer.AddTool(mcp.NewTool(
		"field_list",
		mcp.WithDescription(descriptions.FieldListDescription),
	), s.handleFieldList)

	s.mcpServer.AddTool(mcp.NewTool(
		"field_bind",
		mcp.WithDescription(descriptions.FieldBindDescription),
		mcp.WithString("field_id", mcp.Required(), mcp.Description("Field to fill")),
		mcp.WithString("kind", mcp.Required(),
			mcp.Description("Value kind: signature, text, date, or checkbox")),
		mcp.WithString("payload", mcp.Description("Signature image as a data URL")),
		mcp.WithString("modality", mcp.Description("Signature capture: draw, type, or upload")),
		mcp.WithString("font", mcp.Description("Font family for typed signatures")),
		mcp.WithString("text", mcp.Description("Text value")),
		mcp.WithString("date", mcp.Description("Date value, MM/DD/YYYY")),
		mcp.WithBoolean("checked", mcp.Description("Checkbox state")),
	), s.handleFieldBind)

	s.mcpServer.AddTool(mcp.NewTool(
		"render_page",
		mcp.WithDescription(descriptions.RenderPageDescription),
		mcp.WithNumber("page", mcp.Required(), mcp.Description("1-based page number")),
		mcp.WithNumber("box_width", mcp.Required(), mcp.Description("Page rectangle width")),
		mcp.WithNumber("box_height", mcp.Required(), mcp.Description("Page rectangle height")),
		mcp.WithNumber("zoom", mcp.Description("Zoom factor, defaults to 1.0")),
	), s.handleRenderPage)

	s.mcpServer.AddTool(mcp.NewTool(
		"document_export",
		mcp.WithDescription(descriptions.DocumentExportDescription),
		mcp.WithString("output_path", mcp.Required(), mcp.Description("Destination .pdf path")),
	), s.handleDocumentExport)

	s.mcpServer.AddTool(mcp.NewTool(
		"document_send",
		mcp.WithDescription(descriptions.DocumentSendDescription),
		mcp.WithString("message", mcp.Description("Optional note for the recipients")),
	), s.handleDocumentSend)

	s.mcpServer.AddTool(mcp.NewTool(
		"template_save",
		mcp.WithDescription(descriptions.TemplateSaveDescription),
		mcp.WithString("id", mcp.Description("Template id to update; omit to create")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Template title")),
		mcp.WithString("body", mcp.Description("Template body text")),
	), s.handleTemplateSave)

	s.mcpServer.AddTool(mcp.NewTool(
		"template_list",
		mcp.WithDescription(descriptions.TemplateListDescription),
	), s.handleTemplateList)

	s.mcpServer.AddTool(mcp.NewTool(
		"template_delete",
		mcp.WithDescription(descriptions.TemplateDeleteDescription),
		mcp.WithString("id", mcp.Required(), mcp.Description("Template id")),
	), s.handleTemplateDelete)

	s.mcpServer.AddTool(mcp.NewTool(
		"contact_save",
		mcp.WithDescription(descriptions.ContactSaveDescription),
		mcp.WithString("id", mcp.Description("Contact id to update; omit to create")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Contact full name")),
		mcp.WithString("email", mcp.Required(), mcp.Description("Contact email address")),
		mcp.WithString("designation", mcp.Description("Role or title, free-form")),
	), s.handleContactSave)

	s.mcpServer.AddTool(mcp.NewTool(
		"contact_list",
		mcp.WithDescription(descriptions.ContactListDescription),
	), s.handleContactList)

	s.mcpServer.AddTool(mcp.NewTool(
		"contact_delete",
		mcp.WithDescription(descriptions.ContactDeleteDescription),
		mcp.WithString("id", mcp.Required(), mcp.Description("Contact id")),
	), s.handleContactDelete)
}

// Handler functions
func (s *Server) handleLogin(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	email, err := request.RequireString("email")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	password, err := request.RequireString("password")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.service.Login(engine.LoginRequest{Email: email, Password: password})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Logged in as %s (%s)", result.Viewer.Email, result.Viewer.Role)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleSessionCreate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	req := engine.SessionCreateRequest{}
	if path, ok := args["path"].(string); ok {
		req.Path = path
	}
	if name, ok := args["name"].(string); ok {
		req.Name = name
	}
	if encoded, ok := args["data_base64"].(string); ok && encoded != "" {
		data, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid base64 data: %v", err)), nil
		}
		req.Data = data
	}

	result, err := s.service.SessionCreate(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Session started: %s\n", result.Name)
	responseText += fmt.Sprintf("Session ID: %s\n", result.SessionID)
	responseText += fmt.Sprintf("Size: %d bytes\n", result.Size)
	if result.Pages > 0 {
		responseText += fmt.Sprintf("Pages: %d\n", result.Pages)
	} else {
		responseText += "Pages: decoding in background, check session_info\n"
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleSessionInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.service.SessionInfo(engine.SessionInfoRequest{})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Session: %s\n", result.Name)
	responseText += fmt.Sprintf("Session ID: %s\n", result.SessionID)
	if result.Decoded {
		responseText += fmt.Sprintf("Pages: %d\n", result.Pages)
	} else {
		responseText += "Pages: still decoding\n"
	}
	responseText += fmt.Sprintf("Fields: %d\n", result.Fields)
	responseText += fmt.Sprintf("Recipients: %d\n", result.Recipients)

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleRecipientAdd(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	email, err := request.RequireString("email")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	designation := request.GetString("designation", "")

	result, err := s.service.RecipientAdd(engine.RecipientAddRequest{
		Name:        name,
		Email:       email,
		Designation: designation,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	r := result.Recipient
	responseText := fmt.Sprintf("Added recipient %s <%s>", r.Name, r.Email)
	if r.Designation != "" {
		responseText += fmt.Sprintf(" (%s)", r.Designation)
	}
	responseText += fmt.Sprintf("\nRecipient ID: %s", r.ID)

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleRecipientRemove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.service.RecipientRemove(engine.RecipientRemoveRequest{ID: id}); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Removed recipient %s", id)), nil
}

func (s *Server) handleRecipientList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.service.RecipientList()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if result.TotalCount == 0 {
		return mcp.NewToolResultText("No recipients added yet"), nil
	}

	responseText := fmt.Sprintf("Recipients (%d):\n", result.TotalCount)
	for i, r := range result.Recipients {
		responseText += fmt.Sprintf("%d. %s <%s>", i+1, r.Name, r.Email)
		if r.Designation != "" {
			responseText += fmt.Sprintf(" - %s", r.Designation)
		}
		responseText += fmt.Sprintf("\n   ID: %s\n", r.ID)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleToolSelect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tool, err := request.RequireString("tool")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.service.ToolSelect(engine.ToolSelectRequest{Tool: tool})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !result.Armed {
		return mcp.NewToolResultText("Tool not armed: only the admin can place fields"), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Armed %s for the next placement click", result.Tool)), nil
}

func (s *Server) handleFieldPlace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	point, err := requirePoint(request, "x", "y")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	box, err := requireBox(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	page, err := request.RequireInt("page")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.service.FieldPlace(engine.FieldPlaceRequest{
		Point:     point,
		Box:       box,
		Page:      page,
		Recipient: request.GetString("recipient", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPlaceResult(result)), nil
}

func (s *Server) handleFieldPlaceQuick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tool, err := request.RequireString("tool")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	page, err := request.RequireInt("page")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.service.FieldPlaceQuick(engine.FieldPlaceQuickRequest{
		Tool:      tool,
		Page:      page,
		Recipient: request.GetString("recipient", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPlaceResult(result)), nil
}

func (s *Server) handleFieldDrag(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fieldID, err := request.RequireString("field_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	start, err := requirePoint(request, "start_x", "start_y")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	end, err := requirePoint(request, "end_x", "end_y")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	box, err := requireBox(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.service.FieldDrag(engine.FieldDragRequest{
		FieldID: fieldID,
		Start:   start,
		Moves:   []geometry.Point{end},
		Box:     box,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !result.Committed {
		return mcp.NewToolResultText("Drag ignored: below the movement threshold or not authorized"), nil
	}
	responseText := fmt.Sprintf("Moved field %s to %.2f%%, %.2f%%",
		fieldID, result.Position.X, result.Position.Y)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleFieldRemove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fieldID, err := request.RequireString("field_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.service.FieldRemove(engine.FieldRemoveRequest{FieldID: fieldID})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !result.Removed {
		return mcp.NewToolResultText(fmt.Sprintf("Field %s was not removed: unknown id or not authorized", fieldID)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Removed field %s and its bound value", fieldID)), nil
}

func (s *Server) handleFieldList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.service.FieldList(engine.FieldListRequest{})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if result.TotalCount == 0 {
		return mcp.NewToolResultText("No fields visible to the current viewer"), nil
	}

	responseText := fmt.Sprintf("Fields visible (%d):\n", result.TotalCount)
	for i, f := range result.Fields {
		responseText += fmt.Sprintf("%d. %s on page %d at %.2f%%, %.2f%%\n", i+1, f.Type, f.Page, f.X, f.Y)
		responseText += fmt.Sprintf("   ID: %s\n", f.ID)
		if f.Recipient != "" {
			responseText += fmt.Sprintf("   Assigned to: %s\n", f.Recipient)
		}
		responseText += fmt.Sprintf("   Completed: %t\n", f.Completed)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleFieldBind(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fieldID, err := request.RequireString("field_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	kind, err := request.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.service.FieldBind(engine.FieldBindRequest{
		FieldID:  fieldID,
		Kind:     kind,
		Payload:  request.GetString("payload", ""),
		Modality: request.GetString("modality", ""),
		Font:     request.GetString("font", ""),
		Text:     request.GetString("text", ""),
		Date:     request.GetString("date", ""),
		Checked:  request.GetBool("checked", false),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !result.Applied {
		return mcp.NewToolResultText("Value not applied: the current viewer cannot fill this field"), nil
	}

	responseText := fmt.Sprintf("Bound %s value to field %s", kind, fieldID)
	if len(result.AutoFilled) > 0 {
		responseText += fmt.Sprintf("\nAuto-filled %d date field(s) with today's date:\n", len(result.AutoFilled))
		for _, id := range result.AutoFilled {
			responseText += fmt.Sprintf("  - %s\n", id)
		}
	}
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleRenderPage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page, err := request.RequireInt("page")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	width, err := request.RequireFloat("box_width")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	height, err := request.RequireFloat("box_height")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.service.RenderPage(engine.RenderPageRequest{
		Page: page,
		Box:  geometry.Rect{Width: width, Height: height},
		Zoom: request.GetFloat("zoom", 1.0),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRenderResult(result)), nil
}

func (s *Server) handleDocumentExport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	outputPath, err := request.RequireString("output_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.service.DocumentExport(engine.DocumentExportRequest{OutputPath: outputPath})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Exported flattened document: %s\n", result.OutputPath)
	responseText += fmt.Sprintf("Size: %d bytes\n", result.Size)
	responseText += fmt.Sprintf("Fields flattened: %d\n", len(result.Flattened))
	if len(result.Skipped) > 0 {
		responseText += fmt.Sprintf("Fields skipped: %d\n", len(result.Skipped))
		for _, id := range result.Skipped {
			responseText += fmt.Sprintf("  - %s\n", id)
		}
	}
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleDocumentSend(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.service.DocumentSend(engine.DocumentSendRequest{
		Message: request.GetString("message", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Document routed to %d recipient(s)", result.Recipients)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleTemplateSave(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.service.TemplateSave(engine.TemplateSaveRequest{
		ID:    request.GetString("id", ""),
		Title: title,
		Body:  request.GetString("body", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Saved template %q\nTemplate ID: %s", result.Template.Title, result.Template.ID)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleTemplateList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.service.TemplateList()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if result.TotalCount == 0 {
		return mcp.NewToolResultText("No templates saved yet"), nil
	}

	responseText := fmt.Sprintf("Templates (%d):\n", result.TotalCount)
	for i, t := range result.Templates {
		responseText += fmt.Sprintf("%d. %s\n   ID: %s\n", i+1, t.Title, t.ID)
	}
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleTemplateDelete(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.service.TemplateDelete(engine.TemplateDeleteRequest{ID: id}); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted template %s", id)), nil
}

func (s *Server) handleContactSave(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	email, err := request.RequireString("email")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.service.ContactSave(engine.ContactSaveRequest{
		ID:          request.GetString("id", ""),
		Name:        name,
		Email:       email,
		Designation: request.GetString("designation", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Saved contact %s <%s>\nContact ID: %s",
		result.Contact.Name, result.Contact.Email, result.Contact.ID)
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleContactList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.service.ContactList()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if result.TotalCount == 0 {
		return mcp.NewToolResultText("No contacts saved yet"), nil
	}

	responseText := fmt.Sprintf("Contacts (%d):\n", result.TotalCount)
	for i, c := range result.Contacts {
		responseText += fmt.Sprintf("%d. %s <%s>", i+1, c.Name, c.Email)
		if c.Designation != "" {
			responseText += fmt.Sprintf(" - %s", c.Designation)
		}
		responseText += fmt.Sprintf("\n   ID: %s\n", c.ID)
	}
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleContactDelete(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.service.ContactDelete(engine.ContactDeleteRequest{ID: id}); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Deleted contact %s", id)), nil
}

// Argument helpers

func requirePoint(request mcp.CallToolRequest, xKey, yKey string) (geometry.Point, error) {
	x, err := request.RequireFloat(xKey)
	if err != nil {
		return geometry.Point{}, err
	}
	y, err := request.RequireFloat(yKey)
	if err != nil {
		return geometry.Point{}, err
	}
	return geometry.Point{X: x, Y: y}, nil
}

func requireBox(request mcp.CallToolRequest) (geometry.Rect, error) {
	left, err := request.RequireFloat("box_left")
	if err != nil {
		return geometry.Rect{}, err
	}
	top, err := request.RequireFloat("box_top")
	if err != nil {
		return geometry.Rect{}, err
	}
	width, err := request.RequireFloat("box_width")
	if err != nil {
		return geometry.Rect{}, err
	}
	height, err := request.RequireFloat("box_height")
	if err != nil {
		return geometry.Rect{}, err
	}
	return geometry.Rect{Left: left, Top: top, Width: width, Height: height}, nil
}

// Formatting methods

func formatPlaceResult(result *engine.FieldPlaceResult) string {
	if !result.Placed {
		return "Placement ignored: no tool armed, invalid page, or not authorized"
	}
	f := result.Field
	text := fmt.Sprintf("Placed %s field on page %d at %.2f%%, %.2f%%\n", f.Type, f.Page, f.X, f.Y)
	text += fmt.Sprintf("Field ID: %s\n", f.ID)
	if f.Recipient != "" {
		text += fmt.Sprintf("Assigned to: %s\n", f.Recipient)
	}
	return text
}

func formatRenderResult(result *engine.RenderPageResult) string {
	text := fmt.Sprintf("Page %d", result.Page)
	if result.Pages > 0 {
		text += fmt.Sprintf(" of %d", result.Pages)
	}
	text += fmt.Sprintf("\nInstructions: %d\n", len(result.Instructions))

	for i, ins := range result.Instructions {
		text += fmt.Sprintf("%d. %s field %s: draw %s at %.0f, %.0f px",
			i+1, ins.Type, ins.FieldID, ins.Kind, ins.Pixel.X, ins.Pixel.Y)
		if ins.Label != "" {
			text += fmt.Sprintf(" (%q)", ins.Label)
		}
		if ins.Dragging {
			text += " [dragging]"
		}
		if ins.ReadOnly {
			text += " [read-only]"
		}
		text += "\n"
	}
	return text
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting signing server in stdio mode")
		log.Printf("Document directory: %s", s.config.DocumentDirectory)
	}

	// Use the mark3labs/mcp-go server.ServeStdio function
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server in HTTP server mode
func (s *Server) runServerMode(ctx context.Context) error {
	// For now, we'll just use stdio mode since the mark3labs library
	// handles the transport differently
	log.Printf("Server mode not yet implemented with mark3labs/mcp-go")
	log.Printf("Falling back to stdio mode")
	return s.runStdioMode(ctx)
}
