package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Render Errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryRender,
		Message:  "Unknown virtual node kind",
		Detail:   "The materializer encountered a virtual node that is neither an element nor a text leaf.",
		DocURL:   "https://loom-ui.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryRender,
		Message:  "Missing mount container",
		Detail:   "A render was requested against a nil container node.",
		DocURL:   "https://loom-ui.dev/docs/errors/E002",
	},

	// ============================================
	// Patch Errors (E020-E039)
	// ============================================

	"E020": {
		Category: CategoryPatch,
		Message:  "Child index out of range",
		Detail:   "A child patch referenced an index beyond the host node's children. The host tree was probably mutated outside the engine.",
		DocURL:   "https://loom-ui.dev/docs/errors/E020",
	},
	"E021": {
		Category: CategoryPatch,
		Message:  "Unknown patch operation",
		Detail:   "The patcher received an operation kind it does not recognize.",
		DocURL:   "https://loom-ui.dev/docs/errors/E021",
	},

	// ============================================
	// Event Errors (E040-E059)
	// ============================================

	"E040": {
		Category: CategoryEvents,
		Message:  "Missing delegation container",
		Detail:   "A delegated handler was registered against a nil container. The registration was skipped.",
		DocURL:   "https://loom-ui.dev/docs/errors/E040",
	},
	"E041": {
		Category: CategoryEvents,
		Message:  "Subscriber panicked",
		Detail:   "An event bus subscriber panicked. The failure was contained and remaining subscribers ran normally.",
		DocURL:   "https://loom-ui.dev/docs/errors/E041",
	},

	// ============================================
	// State Errors (E060-E079)
	// ============================================

	"E060": {
		Category: CategoryState,
		Message:  "Write to unmounted component",
		Detail:   "A state write targeted a component that is no longer mounted. The value was committed but no render ran.",
		DocURL:   "https://loom-ui.dev/docs/errors/E060",
	},

	// ============================================
	// Routing Errors (E100-E119)
	// ============================================

	"E100": {
		Category: CategoryRouting,
		Message:  "Route not found",
		Detail:   "No registered route pattern matches the requested path.",
		DocURL:   "https://loom-ui.dev/docs/errors/E100",
	},
	"E101": {
		Category: CategoryRouting,
		Message:  "Missing route parameter",
		Detail:   "A required route parameter was not present in the matched path.",
		DocURL:   "https://loom-ui.dev/docs/errors/E101",
	},
	"E102": {
		Category: CategoryRouting,
		Message:  "Duplicate route",
		Detail:   "Two registered patterns resolve to the same path shape.",
		DocURL:   "https://loom-ui.dev/docs/errors/E102",
	},

	// ============================================
	// Configuration Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid loom.json",
		Detail:   "The loom.json configuration file is malformed.",
		DocURL:   "https://loom-ui.dev/docs/errors/E120",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Missing required configuration",
		Detail:   "A required configuration value is not set.",
		DocURL:   "https://loom-ui.dev/docs/errors/E121",
	},
	"E122": {
		Category: CategoryConfig,
		Message:  "Invalid port number",
		Detail:   "The configured port number is invalid or already in use.",
		DocURL:   "https://loom-ui.dev/docs/errors/E122",
	},

	// ============================================
	// Storage Errors (E140-E159)
	// ============================================

	"E140": {
		Category: CategoryStorage,
		Message:  "Store open failed",
		Detail:   "The state store file could not be opened. Another process may hold the lock.",
		DocURL:   "https://loom-ui.dev/docs/errors/E140",
	},
	"E141": {
		Category: CategoryStorage,
		Message:  "Snapshot not found",
		Detail:   "No persisted snapshot exists under the requested name.",
		DocURL:   "https://loom-ui.dev/docs/errors/E141",
	},
	"E142": {
		Category: CategoryStorage,
		Message:  "Snapshot decode failed",
		Detail:   "The persisted snapshot could not be decoded. The store file may be corrupt or from an incompatible version.",
		DocURL:   "https://loom-ui.dev/docs/errors/E142",
	},

	// ============================================
	// CLI Errors (E160-E179)
	// ============================================

	"E160": {
		Category: CategoryCLI,
		Message:  "Not a Loom project",
		Detail:   "The current directory is not a Loom project. Run this command from a directory with loom.json.",
		DocURL:   "https://loom-ui.dev/docs/errors/E160",
	},
	"E161": {
		Category: CategoryCLI,
		Message:  "Project file already exists",
		Detail:   "A loom.json already exists in this directory.",
		DocURL:   "https://loom-ui.dev/docs/errors/E161",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
