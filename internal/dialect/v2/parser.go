// Package v2 handles Swagger 2.0 documents. Conversion to the v3 shape
// happens once, in pkg/openapi.Load (via openapi2conv.ToV3), so this package
// is a thin entry point that just confirms the dialect and delegates to the
// shared walker.
package v2

import (
	"fmt"

	"github.com/oasforge/oasgen/internal/dialect/v3"
	"github.com/oasforge/oasgen/pkg/ir"
	"github.com/oasforge/oasgen/pkg/openapi"
)

// Parse walks a Swagger 2.0 document, already normalized to v3 shape by the
// loader, and populates a fresh ir.Model.
func Parse(doc *openapi.Document, opts v3.Options) (*ir.Model, error) {
	if doc.Dialect != openapi.DialectSwagger2 {
		return nil, fmt.Errorf("v2: document is not swagger 2.0 (dialect=%s)", doc.Dialect)
	}
	return v3.Parse(doc.V3, opts)
}
