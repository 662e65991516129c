package models

type EndpointFieldUpdate struct {
	Method         string `yaml:"method"`
	NewDescription string `yaml:"new_description"`
}

type EndpointDescription struct {
	Path    string                `yaml:"path"`
	Updates []EndpointFieldUpdate `yaml:"updates"`
}

type EndpointSelection struct {
	Path    string   `yaml:"path"`
	Methods []string `yaml:"methods"`
}

// ServiceAdjustments narrows and rewrites the endpoints of one service. An
// empty Service applies to every descriptor.
type ServiceAdjustments struct {
	Service      string                `yaml:"service,omitempty"`
	Descriptions []EndpointDescription `yaml:"descriptions,omitempty"`
	Endpoints    []EndpointSelection   `yaml:"endpoints,omitempty"`
}

type DescriptorAdjustments struct {
	Services []ServiceAdjustments `yaml:"services"`
}
