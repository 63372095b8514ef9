// # internal/server/openapi.go
package server

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// LoadContract loads and validates the served API contract.
func LoadContract(path string) (*openapi3.T, error) {
	source := strings.TrimSpace(path)
	if source == "" {
		return nil, fmt.Errorf("openapi contract path is required")
	}

	if _, err := os.Stat(source); err != nil {
		return nil, fmt.Errorf("openapi contract path %q: %w", source, err)
	}

	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true

	doc, err := loader.LoadFromFile(source)
	if err != nil {
		return nil, fmt.Errorf("load openapi contract from %q: %w", source, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("openapi contract %q resolved to nil document", source)
	}

	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("validate openapi contract %q: %w", source, err)
	}
	return doc, nil
}
