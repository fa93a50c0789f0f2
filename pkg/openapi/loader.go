// Package openapi loads an OpenAPI/Swagger document from a file path or URL
// and detects which dialect it is written in. Deserialization itself is an
// external-collaborator concern; this package's job
// stops at handing a typed document to the right dialect parser.
package openapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	oasyaml "github.com/oasdiff/yaml"
)

// Dialect is the detected OpenAPI generation.
type Dialect string

const (
	DialectSwagger2 Dialect = "swagger2"
	DialectOpenAPI3 Dialect = "openapi3" // covers both 3.0.x and 3.1.x
)

// Document is the loaded spec handed to a dialect parser: the raw Swagger
// 2.0 document when present (so the 2.0 dialect parser can inspect
// 2.0-specific shapes losslessly) and the normalized v3 document every
// parser actually walks.
//
// Swagger 2.0 is converted to the v3 shape via openapi2conv so the 2.0 and
// 3.0/3.1 dialects share one event-emission walker (internal/dialect/v3);
// only the loading/detection step differs.
type Document struct {
	Dialect Dialect
	Raw2    *openapi2.T // non-nil only when Dialect == DialectSwagger2
	V3      *openapi3.T
}

// Load loads and normalizes a spec document from a local file path or an
// http(s) URL, detecting its dialect from the top-level `swagger`/`openapi`
// key.
func Load(input string) (*Document, error) {
	loader := &openapi3.Loader{IsExternalRefsAllowed: true}
	return LoadWithLoader(loader, input)
}

// LoadWithLoader loads a document using a caller-supplied *openapi3.Loader
// (useful for tests that pre-seed the loader's cache, and for a host that
// wants to set IsExternalRefsAllowed=false).
func LoadWithLoader(loader *openapi3.Loader, input string) (*Document, error) {
	raw, err := readBytes(input)
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", input, err)
	}
	jsonBytes, err := oasyaml.YAMLToJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: decode %s: %w", input, err)
	}

	if isSwagger2(jsonBytes) {
		var raw2 openapi2.T
		if err := json.Unmarshal(jsonBytes, &raw2); err != nil {
			return nil, fmt.Errorf("openapi: parse swagger 2.0 document: %w", err)
		}
		v3, err := openapi2conv.ToV3(&raw2)
		if err != nil {
			return nil, fmt.Errorf("openapi: convert swagger 2.0 to v3 shape: %w", err)
		}
		return &Document{Dialect: DialectSwagger2, Raw2: &raw2, V3: v3}, nil
	}

	v3, err := loader.LoadFromData(jsonBytes)
	if err != nil {
		return nil, fmt.Errorf("openapi: parse document: %w", err)
	}
	return &Document{Dialect: DialectOpenAPI3, V3: v3}, nil
}

// Validate validates the loaded v3-shaped document (both dialects validate
// through the same openapi3.T.Validate, since Swagger 2.0 was already
// converted).
func Validate(loader *openapi3.Loader, doc *Document) error {
	return doc.V3.Validate(loader.Context)
}

func isSwagger2(jsonBytes []byte) bool {
	var probe struct {
		Swagger string `json:"swagger"`
	}
	if err := json.Unmarshal(jsonBytes, &probe); err != nil {
		return false
	}
	return probe.Swagger != ""
}

func readBytes(input string) ([]byte, error) {
	if u, err := url.Parse(input); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		client := &http.Client{Timeout: 30 * time.Second}
		resp, err := client.Get(input)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("fetch %s: status %s", input, resp.Status)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(input)
}
