package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

const docBase = "https://github.com/vango-dev/markup/blob/main/docs/errors.md#"

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Render (E001-E009)
	"E001": {
		Category: CategoryRender,
		Message:  "Render failed",
		Detail:   "The output could not be written while rendering the document. Part of the document may already have been written.",
		DocURL:   docBase + "e001",
	},
	"E002": {
		Category: CategoryRender,
		Message:  "Content source unreadable",
		Detail:   "A head or body source file could not be read.",
		DocURL:   docBase + "e002",
	},

	// Serve (E010-E019)
	"E010": {
		Category: CategoryServe,
		Message:  "HTTP render failed",
		Detail:   "The document could not be written to the HTTP response.",
		DocURL:   docBase + "e010",
	},
	"E011": {
		Category: CategoryServe,
		Message:  "Preview connection failed",
		Detail:   "The live preview WebSocket could not be established.",
		DocURL:   docBase + "e011",
	},
	"E012": {
		Category: CategoryServe,
		Message:  "Server stopped unexpectedly",
		Detail:   "The HTTP server returned an error while serving.",
		DocURL:   docBase + "e012",
	},

	// Publish (E020-E029)
	"E020": {
		Category: CategoryPublish,
		Message:  "Publish upload failed",
		Detail:   "The rendered document could not be uploaded to the object store.",
		DocURL:   docBase + "e020",
	},
	"E021": {
		Category: CategoryPublish,
		Message:  "Publish target missing",
		Detail:   "No bucket was configured for publishing.",
		DocURL:   docBase + "e021",
	},

	// Config (E120-E129)
	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "The configuration file could not be parsed or contains invalid values.",
		DocURL:   docBase + "e120",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No markup.yaml or markup.json was found.",
		DocURL:   docBase + "e121",
	},

	// CLI (E130-E139)
	"E130": {
		Category: CategoryCLI,
		Message:  "Invalid command usage",
		Detail:   "The command was called with missing or conflicting flags.",
		DocURL:   docBase + "e130",
	},
}

// Lookup returns the template registered for code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
