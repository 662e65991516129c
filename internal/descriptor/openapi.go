package descriptor

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/brizzai/mcp-agent/internal/logger"
	"github.com/brizzai/mcp-agent/internal/models"
	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"go.uber.org/zap"
)

// decodeOpenAPI reads an OpenAPI 2.0 or 3.x document as a service descriptor:
// the service name is info.title and every operation becomes an endpoint.
func decodeOpenAPI(data []byte) (*models.ServiceDescriptor, error) {
	doc, err := parseOpenAPI(data)
	if err != nil {
		return nil, err
	}

	desc := &models.ServiceDescriptor{Endpoints: make([]models.Endpoint, 0)}
	if doc.Info != nil {
		desc.ServiceName = doc.Info.Title
	}
	if doc.Paths == nil {
		return desc, nil
	}

	pathItems := doc.Paths.Map()
	paths := make([]string, 0, len(pathItems))
	for path := range pathItems {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		pathItem := pathItems[path]
		httpMethods := []struct {
			Method    string
			Operation *openapi3.Operation
		}{
			{http.MethodGet, pathItem.Get},
			{http.MethodPost, pathItem.Post},
			{http.MethodPut, pathItem.Put},
			{http.MethodDelete, pathItem.Delete},
			{http.MethodPatch, pathItem.Patch},
		}

		for _, httpMethod := range httpMethods {
			if httpMethod.Operation == nil {
				continue
			}
			desc.Endpoints = append(desc.Endpoints, models.Endpoint{
				Method:      httpMethod.Method,
				Path:        path,
				Description: operationDescription(httpMethod.Operation),
			})
		}
	}

	return desc, nil
}

// operationDescription falls back to the summary when no description is set
func operationDescription(op *openapi3.Operation) string {
	if op.Description != "" {
		return op.Description
	}
	return op.Summary
}

// parseOpenAPI attempts to parse data as either OpenAPI 2.0 or 3.0
func parseOpenAPI(data []byte) (*openapi3.T, error) {
	var versions struct {
		Swagger any `json:"swagger"`
		OpenAPI any `json:"openapi"`
	}
	if err := json.Unmarshal(data, &versions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}

	if versions.Swagger != nil {
		return convertOpenAPI2to3(data, versions.Swagger)
	}

	if ver, ok := versions.OpenAPI.(string); !ok || !strings.HasPrefix(ver, "3.") {
		return nil, fmt.Errorf("%w: unsupported OpenAPI version: %v", ErrInvalidDescriptor, versions.OpenAPI)
	}

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse OpenAPI spec: %v", ErrInvalidDescriptor, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: OpenAPI document is empty", ErrInvalidDescriptor)
	}

	logger.Debug("Parsed OpenAPI 3 descriptor")
	return doc, nil
}

// convertOpenAPI2to3 converts an OpenAPI 2.0 specification to OpenAPI 3.0
func convertOpenAPI2to3(data []byte, swaggerVersion any) (*openapi3.T, error) {
	var swagger2Doc openapi2.T
	if err := json.Unmarshal(data, &swagger2Doc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse OpenAPI 2.0 spec: %v", ErrInvalidDescriptor, err)
	}

	if swagger2Doc.Swagger != "2.0" {
		return nil, fmt.Errorf("%w: unsupported Swagger version: %v", ErrInvalidDescriptor, swaggerVersion)
	}

	convertedDoc, err := openapi2conv.ToV3(&swagger2Doc)
	if err != nil {
		logger.Warn("Failed to convert OpenAPI 2.0 to 3.0", zap.Error(err))
		return nil, fmt.Errorf("%w: failed to convert OpenAPI 2.0 to 3.0: %v", ErrInvalidDescriptor, err)
	}

	logger.Debug("Converted OpenAPI 2.0 descriptor to 3.0")
	return convertedDoc, nil
}
