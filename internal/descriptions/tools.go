package descriptions

// Tool descriptions with practical examples and use cases

const (
	// Session & Account Tools
	LoginDescription = `Authenticate and switch the active viewer context.

**When to use:** Before acting on behalf of a specific person. The built-in admin account prepares documents; any other address signs in as a signer.

**Why it's useful:** Every field operation is authorized against the current viewer, so switching context is how you preview what a given signer will see and do.

**Examples:**
• Prepare a document: "Login as admin@briefcase.local to place fields"
• Preview as signer: "Login as alice@example.com to check which fields she must complete"`

	SessionCreateDescription = `Open a PDF document and start a signing session.

**When to use:** At the start of any workflow. Opening a document replaces the previous session wholesale, including its fields and recipients.

**Why it's useful:** Validates the upload (extension, size, header) up front and decodes the page structure in the background so the editor is usable immediately.

**Examples:**
• From disk: "Open /contracts/nda.pdf and start placing fields"
• From upload: "Start a session from these uploaded bytes named offer-letter.pdf"

**Best practices:** Check session_info afterwards; pages stays 0 until background decoding resolves.`

	SessionInfoDescription = `Report the state of the active session.

**When to use:** To confirm a document opened correctly, see whether page decoding finished, or count placed fields and recipients before exporting.`

	// Recipient Tools
	RecipientAddDescription = `Add a recipient to the active session.

**When to use:** Before assigning fields to specific signers. A recipient needs a name and a valid email; the designation is free-form.

**Examples:**
• "Add Jane Cooper, jane@acme.com, as CEO"
• "Add every contact from the saved list as recipients"`

	RecipientRemoveDescription = `Remove a recipient from the session.

**When to use:** When a signer drops out. Fields already assigned to the removed recipient keep their assignment and must be reassigned or removed explicitly.`

	RecipientListDescription = `List the recipients of the active session in order added.`

	// Field Tools
	ToolSelectDescription = `Arm a field type for the next placement click.

**When to use:** First step of two-step placement. Supported tools: signature, initial, date, text, checkbox. Only the admin viewer can arm a tool.

**Why it's useful:** Placement is click-driven; arming a tool tells the next field_place call what to drop. The selection is consumed by one placement.`

	FieldPlaceDescription = `Place the armed field at a clicked position on a page.

**When to use:** Second step of two-step placement, after tool_select. Pass the pointer position in device pixels and the on-screen rectangle of the rendered page; the field lands at the equivalent percentage position.

**Why it's useful:** Percentage coordinates keep fields anchored to the same spot on the page regardless of zoom or window size.

**Examples:**
• "Place a signature where I clicked at (412, 630) on page 2"
• "Drop a date field at the top right of page 1, assigned to bob@acme.com"

**Best practices:** A click with no armed tool, on an invalid page, or without admin rights is ignored rather than rejected.`

	FieldPlaceQuickDescription = `Place a field at the bottom-center anchor of a page in one step.

**When to use:** Fast path when exact position does not matter yet. The field lands at 50% across, 95% down, and can be dragged afterwards.`

	FieldDragDescription = `Move an existing field by replaying a drag gesture.

**When to use:** To reposition a placed field. Supply the pointer-down position, the intermediate moves, and the page rectangle; the gesture commits only when the pointer travelled more than a few pixels, so accidental jitter never moves a field.

**Best practices:** Only the admin viewer can move fields. Positions are clamped to the page bounds.`

	FieldRemoveDescription = `Delete a field and any value bound to it.

**When to use:** When a field was misplaced or is no longer needed. Removal also discards the bound value so no orphaned data survives.`

	FieldListDescription = `List the fields visible to the current viewer.

**When to use:** To audit a prepared document or to see a signer's worklist. The admin sees every field; a signer sees only fields assigned to their email, to "anyone", or left unassigned.`

	FieldBindDescription = `Bind a captured value to a field and mark it completed.

**When to use:** When a signer fills a field. Kind selects the payload: signature (drawn, typed, or uploaded), text, date, or checkbox.

**Why it's useful:** Binding a signature also auto-fills the signer's open date fields with today's date, so a signer who signs once never forgets the date next to it.

**Examples:**
• "Bind this drawn signature (data URL) to field abc-123"
• "Type the signature in an italic font instead of drawing it"

**Best practices:** An existing date value is never overwritten by the cascade. Binding by an unauthorized viewer is a quiet no-op.`

	// Rendering & Export Tools
	RenderPageDescription = `Project one page into draw instructions for the current viewer.

**When to use:** Whenever a surface needs to paint the overlay: placeholders for empty fields, images or styled text for completed ones. Instructions come back in z-order with pixel positions resolved for the given page rectangle and zoom.

**Best practices:** A field mid-drag renders at its uncommitted position with an elevated z-index.`

	DocumentExportDescription = `Flatten every completed field into the PDF and write the result.

**When to use:** When signing is finished. Signatures and images are stamped at their anchored positions, typed values are drawn in their font, checked boxes get a mark. Fields that fail to stamp are skipped and reported rather than failing the whole export.

**Examples:**
• "Export the signed agreement to /out/agreement-signed.pdf"

**Best practices:** The output path must end in .pdf. Uncompleted fields are left out of the flattened document.`

	DocumentSendDescription = `Route the prepared document to its recipients.

**When to use:** After fields are placed and assigned. Requires at least one recipient with a valid email address. Delivery is simulated; no mail leaves the machine.`

	// Library Tools
	TemplateSaveDescription = `Save or update a reusable document template.

**When to use:** To keep boilerplate bodies (NDAs, offer letters) at hand. Pass an id to update an existing template; omit it to create one.`

	TemplateListDescription = `List the saved templates.`

	TemplateDeleteDescription = `Delete a saved template by id.`

	ContactSaveDescription = `Save or update a contact for quick recipient entry.

**When to use:** To avoid retyping frequent signers. A contact needs a name and a valid email; pass an id to update in place.`

	ContactListDescription = `List the saved contacts.`

	ContactDeleteDescription = `Delete a saved contact by id.`
)
