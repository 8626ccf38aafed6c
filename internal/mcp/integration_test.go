package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/Anuj12Pokharel/BriefcaseProject-sub000/internal/engine"
)

// TestServerIntegration exercises a whole admin session through the
// handlers: open a document, add a recipient, place and bind a field,
// then check the signer's view.
func TestServerIntegration(t *testing.T) {
	server := newTestServer(t)
	startSession(t, server)

	ctx := context.Background()

	// Add the signer
	result, err := server.handleRecipientAdd(ctx, callRequest(map[string]interface{}{
		"name":  "Alice",
		"email": "alice@example.com",
	}))
	if err != nil || result.IsError {
		t.Fatalf("recipient_add failed: %v / %s", err, extractTextFromResult(result))
	}

	// Quick-place a signature assigned to the signer
	result, err = server.handleFieldPlaceQuick(ctx, callRequest(map[string]interface{}{
		"tool":      "signature",
		"page":      float64(1),
		"recipient": "alice@example.com",
	}))
	if err != nil || result.IsError {
		t.Fatalf("field_place_quick failed: %v / %s", err, extractTextFromResult(result))
	}

	// And a date field for the cascade
	result, err = server.handleFieldPlaceQuick(ctx, callRequest(map[string]interface{}{
		"tool":      "date",
		"page":      float64(1),
		"recipient": "alice@example.com",
	}))
	if err != nil || result.IsError {
		t.Fatalf("field_place_quick failed: %v / %s", err, extractTextFromResult(result))
	}

	// Switch to the signer
	result, err = server.handleLogin(ctx, callRequest(map[string]interface{}{
		"email":    "alice@example.com",
		"password": "pw",
	}))
	if err != nil || result.IsError {
		t.Fatalf("login failed: %v / %s", err, extractTextFromResult(result))
	}

	// The signer sees both assigned fields
	result, err = server.handleFieldList(ctx, callRequest(nil))
	if err != nil {
		t.Fatalf("field_list failed: %v", err)
	}
	listText := extractTextFromResult(result)
	if !strings.Contains(listText, "Fields visible (2):") {
		t.Fatalf("expected 2 visible fields, got: %s", listText)
	}

	// Sign the signature field; the date field fills itself
	sigID := firstFieldID(t, server)
	result, err = server.handleFieldBind(ctx, callRequest(map[string]interface{}{
		"field_id": sigID,
		"kind":     "signature",
		"payload":  "data:image/png;base64,aGVsbG8=",
	}))
	if err != nil || result.IsError {
		t.Fatalf("field_bind failed: %v / %s", err, extractTextFromResult(result))
	}
	bindText := extractTextFromResult(result)
	if !strings.Contains(bindText, "Auto-filled 1 date field(s)") {
		t.Errorf("expected date auto-fill, got: %s", bindText)
	}
}

// firstFieldID finds the signer's signature field id via the service.
func firstFieldID(t *testing.T, server *Server) string {
	t.Helper()
	list, err := server.service.FieldList(engine.FieldListRequest{})
	if err != nil {
		t.Fatalf("field list failed: %v", err)
	}
	for _, f := range list.Fields {
		if f.Type == "signature" {
			return f.ID
		}
	}
	t.Fatal("no signature field found")
	return ""
}

func TestServerToolsRegistration(t *testing.T) {
	server := newTestServer(t)

	// Test that tools are properly registered by checking the MCP server
	if server.mcpServer == nil {
		t.Fatal("MCP server should be initialized")
	}

	// The mark3labs library doesn't expose registered tools directly,
	// but we can verify the server was created successfully
	// which means tools were registered without errors
}
