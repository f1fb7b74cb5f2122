package dto

// ToolInvocationRequest invokes a registered tool by name over HTTP.
type ToolInvocationRequest struct {
	Tool       string         `json:"tool"`
	Parameters map[string]any `json:"parameters"`
}

type ToolInvocationResponse struct {
	Tool   string         `json:"tool"`
	Result map[string]any `json:"result"`
}

// ToolInfo describes one registered tool for discovery.
type ToolInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Parameters  []string `json:"parameters"`
}
