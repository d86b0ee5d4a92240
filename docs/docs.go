// Package docs holds the OpenAPI description of the ParcelMyBox API and
// registers it with swag so echo-swagger can serve it.
package docs

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openapiYAML []byte

var (
	loadOnce sync.Once
	loaded   *openapi3.T
	loadErr  error
)

// GetSwagger returns the parsed and validated OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loadOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(openapiYAML)
		if err != nil {
			loadErr = fmt.Errorf("error loading openapi document: %w", err)
			return
		}
		if err = doc.Validate(loader.Context,
			openapi3.DisableSchemaFormatValidation(),
			openapi3.DisableExamplesValidation(),
		); err != nil {
			loadErr = fmt.Errorf("error validating openapi document: %w", err)
			return
		}
		loaded = doc
	})
	return loaded, loadErr
}

// JSON renders the document as served at /openapi.json.
func JSON() ([]byte, error) {
	doc, err := GetSwagger()
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

type spec struct{}

func (spec) ReadDoc() string {
	b, err := JSON()
	if err != nil {
		return "{}"
	}
	return string(b)
}

func init() {
	swag.Register(swag.Name, spec{})
}
