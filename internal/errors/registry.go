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
	// Routing Errors (E001-E099)
	// ============================================

	"E001": {
		Category: CategoryRouting,
		Message:  "Routable component has no path template",
		Detail:   "A component that is neither a fallback nor activation-disabled must declare at least one path template, or it can never match a location.",
		DocURL:   "https://routify.dev/docs/errors/E001",
	},
	"E002": {
		Category: CategoryRouting,
		Message:  "Component registered twice",
		Detail:   "The same component instance was registered a second time. Registration is not deduplicated; the instance now appears twice in its group's member list.",
		DocURL:   "https://routify.dev/docs/errors/E002",
	},
	"E003": {
		Category: CategoryRouting,
		Message:  "Unknown routing group",
		Detail:   "The named routing group has never been referenced by a registered component.",
		DocURL:   "https://routify.dev/docs/errors/E003",
	},
	"E004": {
		Category: CategoryRouting,
		Message:  "Activation hook failed",
		Detail:   "A pre-activation or activation hook returned an error. The remainder of the reconciliation pass was abandoned.",
		DocURL:   "https://routify.dev/docs/errors/E004",
	},

	// ============================================
	// Pattern Errors (E101-E199)
	// ============================================

	"E101": {
		Category: CategoryPattern,
		Message:  "Invalid hash constraint in path template",
		Detail:   "A path template may carry at most one '#' hash constraint, at the end of the template.",
		DocURL:   "https://routify.dev/docs/errors/E101",
	},

	// ============================================
	// Protocol Errors (E201-E299)
	// ============================================

	"E201": {
		Category: CategoryProtocol,
		Message:  "Frame payload too large",
		Detail:   "The frame payload exceeds the protocol's maximum payload size.",
		DocURL:   "https://routify.dev/docs/errors/E201",
	},
	"E202": {
		Category: CategoryProtocol,
		Message:  "Truncated frame",
		Detail:   "The frame ended before its declared payload length was read.",
		DocURL:   "https://routify.dev/docs/errors/E202",
	},
	"E203": {
		Category: CategoryProtocol,
		Message:  "Unknown frame type",
		Detail:   "The frame type byte does not correspond to a known frame type.",
		DocURL:   "https://routify.dev/docs/errors/E203",
	},

	// ============================================
	// Bridge Errors (E301-E399)
	// ============================================

	"E301": {
		Category: CategoryBridge,
		Message:  "Handshake required",
		Detail:   "The client sent a navigation event before the hello frame. The session cannot resolve locations without the handshake origin.",
		DocURL:   "https://routify.dev/docs/errors/E301",
	},
	"E302": {
		Category: CategoryBridge,
		Message:  "Origin mismatch",
		Detail:   "The origin the client announced in its handshake is not accepted by the bridge configuration.",
		DocURL:   "https://routify.dev/docs/errors/E302",
	},
}

// Register adds a custom error template to the registry.
// Intended for host applications layering their own coded errors on top.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
