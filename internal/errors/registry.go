package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Route table (E100-E119)
	"E100": {Category: CategoryRoute, Message: "Duplicate route path"},
	"E101": {Category: CategoryRoute, Message: "Duplicate route name"},
	"E102": {Category: CategoryRoute, Message: "Invalid route path"},
	"E103": {Category: CategoryRoute, Message: "Route has no handler"},
	"E104": {Category: CategoryRoute, Message: "Link target is not a route"},
	"E105": {Category: CategoryRoute, Message: "Failed to render page content"},
	"E110": {Category: CategoryRoute, Message: "Route not found"},
	"E111": {Category: CategoryRoute, Message: "Invalid request path"},

	// Config (E120-E129)
	"E120": {Category: CategoryConfig, Message: "Failed to read config"},
	"E121": {Category: CategoryConfig, Message: "Config file not found"},
	"E122": {Category: CategoryConfig, Message: "Invalid config value"},
	"E123": {Category: CategoryConfig, Message: "Failed to watch content directory"},

	// Demos (E130-E139)
	"E130": {Category: CategoryDemo, Message: "Unknown demo"},
	"E131": {Category: CategoryDemo, Message: "Demo is unmounted"},
	"E132": {Category: CategoryDemo, Message: "Invalid demo bounds"},
	"E133": {Category: CategoryDemo, Message: "Demo session limit reached"},

	// Assets (E140-E149)
	"E140": {Category: CategoryAsset, Message: "Asset not found"},
	"E141": {Category: CategoryAsset, Message: "Invalid asset name"},
	"E142": {Category: CategoryAsset, Message: "Asset store unavailable"},

	// CLI (E150-E159)
	"E150": {Category: CategoryCLI, Message: "Route check failed"},
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
