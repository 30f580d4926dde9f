package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Runtime Errors (E001-E019)
	// ============================================

	"E001": {
		Category: CategoryRuntime,
		Message:  "Memoization not allowed: the argument must be a function",
		Detail:   "Memoize was called with a nil function.",
	},

	// ============================================
	// DOM Errors (E020-E039)
	// ============================================

	"E020": {
		Category: CategoryDOM,
		Message:  "Invalid selector",
		Detail:   "The CSS selector could not be compiled.",
	},
	"E021": {
		Category: CategoryDOM,
		Message:  "Markup parse failed",
		Detail:   "The HTML input could not be parsed into a document.",
	},

	// ============================================
	// Share Errors (E040-E059)
	// ============================================

	"E040": {
		Category: CategoryShare,
		Message:  "Unknown share target",
		Detail:   "No share link generator is registered for this target.",
	},
	"E041": {
		Category: CategoryShare,
		Message:  "Missing base URL",
		Detail:   "Custom share links require a baseUrl value.",
	},

	// ============================================
	// Config Errors (E100-E119)
	// ============================================

	"E101": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "Neither toolbox.json nor toolbox.yaml exists in the project directory.",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file could not be decoded.",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration field holds a value outside its allowed range.",
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Configuration write failed",
		Detail:   "The configuration file could not be written.",
	},

	// ============================================
	// CLI Errors (E120-E139)
	// ============================================

	"E120": {
		Category: CategoryCLI,
		Message:  "Input not readable",
		Detail:   "The input file or stream could not be read.",
	},
	"E121": {
		Category: CategoryCLI,
		Message:  "Server failed",
		Detail:   "The HTTP service stopped with an error.",
	},
}

// GetAllCodes returns all registered error codes, sorted.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
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
