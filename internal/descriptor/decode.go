package descriptor

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/brizzai/mcp-agent/internal/models"
	"github.com/go-playground/validator/v10"
)

// newValidator returns a validator that reports fields by their JSON name
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decode parses a descriptor body. Bodies carrying an "openapi" or "swagger"
// version field are read as OpenAPI documents.
func decode(data []byte, validate *validator.Validate) (*models.ServiceDescriptor, []MalformedEndpoint, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}
	if top == nil {
		return nil, nil, fmt.Errorf("%w: body is not a JSON object", ErrInvalidDescriptor)
	}

	_, hasSwagger := top["swagger"]
	_, hasOpenAPI := top["openapi"]
	if hasSwagger || hasOpenAPI {
		desc, err := decodeOpenAPI(data)
		return desc, nil, err
	}

	var wire wireDescriptor
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}

	desc := &models.ServiceDescriptor{Endpoints: make([]models.Endpoint, 0, len(wire.Endpoints))}
	desc.ServiceName = formatServiceName(wire.ServiceName)

	var malformed []MalformedEndpoint
	for i, raw := range wire.Endpoints {
		ep, err := decodeEndpoint(raw, validate)
		if err != nil {
			malformed = append(malformed, MalformedEndpoint{Index: i, Err: err})
			continue
		}
		desc.Endpoints = append(desc.Endpoints, ep)
	}

	return desc, malformed, nil
}

// formatServiceName returns a string name as is and any other JSON value as
// its compact text. Absent and null names are empty.
func formatServiceName(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return name
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return string(raw)
	}
	return compact.String()
}

func decodeEndpoint(raw json.RawMessage, validate *validator.Validate) (models.Endpoint, error) {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return models.Endpoint{}, fmt.Errorf("%w: entry is null", ErrMalformedEndpoint)
	}

	var wire wireEndpoint
	if err := json.Unmarshal(raw, &wire); err != nil {
		return models.Endpoint{}, fmt.Errorf("%w: %v", ErrMalformedEndpoint, err)
	}

	if err := validate.Struct(wire); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			missing := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				missing = append(missing, fe.Field())
			}
			return models.Endpoint{}, fmt.Errorf("%w: missing %s", ErrMalformedEndpoint, strings.Join(missing, ", "))
		}
		return models.Endpoint{}, fmt.Errorf("%w: %v", ErrMalformedEndpoint, err)
	}

	return models.Endpoint{
		Method:      *wire.Method,
		Path:        *wire.Path,
		Description: *wire.Description,
	}, nil
}
