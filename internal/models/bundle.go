package models

// Rule is the raw text of one RAG rule file.
type Rule struct {
	Source  string `yaml:"source" json:"source"`
	Content string `yaml:"content" json:"content"`
}

// Endpoint is one operation declared by a service descriptor.
type Endpoint struct {
	Method      string `yaml:"method" json:"method"`
	Path        string `yaml:"path" json:"path"`
	Description string `yaml:"description" json:"description"`
}

// String renders the endpoint as "<METHOD> <PATH> - <DESCRIPTION>".
func (e Endpoint) String() string {
	return e.Method + " " + e.Path + " - " + e.Description
}

// ServiceDescriptor is the parsed body returned by an MCP descriptor endpoint.
type ServiceDescriptor struct {
	URL         string     `yaml:"url" json:"url"`
	ServiceName string     `yaml:"service_name" json:"serviceName"`
	Endpoints   []Endpoint `yaml:"endpoints" json:"endpoints"`
}

// UnnamedService is displayed for descriptors without a service name.
const UnnamedService = "(unnamed)"

// DisplayName returns the service name, or UnnamedService when it is empty.
func (d *ServiceDescriptor) DisplayName() string {
	if d == nil || d.ServiceName == "" {
		return UnnamedService
	}
	return d.ServiceName
}

// Bundle is everything a single run aggregated.
type Bundle struct {
	Rules    []Rule              `yaml:"rules"`
	Services []ServiceDescriptor `yaml:"services"`
	Tasklist string              `yaml:"tasklist,omitempty"`
}

// HasTasklist reports whether any task content was collected.
func (b *Bundle) HasTasklist() bool {
	return b != nil && b.Tasklist != ""
}
