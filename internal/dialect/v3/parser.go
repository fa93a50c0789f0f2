// Package v3 implements the OpenAPI 3.0.x / 3.1.x dialect parser. Swagger 2.0 documents are converted to this same v3 shape
// by pkg/openapi.Load and handed here through internal/dialect/v2, so 2.0
// and 3.0/3.1 share one walker; only the document-shape detection differs.
package v3

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/oasforge/oasgen/internal/eventbus"
	"github.com/oasforge/oasgen/internal/filter"
	"github.com/oasforge/oasgen/pkg/ir"
)

// Options configures one parse run.
type Options struct {
	Filters *filter.Set
	Bus     *eventbus.Bus
}

// State tracks synthesized-name deduplication across the parse, e.g.
// operation-id collisions.
type State struct {
	operationIDs map[string]int
}

// Parse walks doc and populates a fresh ir.Model, broadcasting events for
// every accepted component and operation.
func Parse(doc *openapi3.T, opts Options) (*ir.Model, error) {
	model := ir.NewModel()
	state := &State{operationIDs: map[string]int{}}

	if err := parseSecuritySchemes(doc, model, opts); err != nil {
		return nil, err
	}
	if err := parseParameterComponents(doc, model, opts); err != nil {
		return nil, err
	}
	if err := parseRequestBodyComponents(doc, model, opts); err != nil {
		return nil, err
	}
	if err := parseSchemaComponents(doc, model, opts); err != nil {
		return nil, err
	}
	if err := parsePaths(doc, model, opts, state); err != nil {
		return nil, err
	}
	if err := parseServers(doc, model, opts); err != nil {
		return nil, err
	}
	return model, nil
}

// sortedKeys returns m's keys in sorted order. kin-openapi deserializes
// component maps as plain Go maps, which lose the document's original key
// order; sorting is the same deterministic fallback
// pkg/generator/ir_builder.go's buildStructuredModels uses.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func parseSecuritySchemes(doc *openapi3.T, model *ir.Model, opts Options) error {
	if doc.Components == nil {
		return nil
	}
	for _, name := range sortedKeys(doc.Components.SecuritySchemes) {
		ref := "#/components/securitySchemes/" + name
		if !opts.Filters.Accepts(ref) {
			continue
		}
		sr := doc.Components.SecuritySchemes[name]
		if sr == nil || sr.Value == nil {
			continue
		}
		s := sr.Value
		scheme := &ir.SecurityScheme{Key: name, Type: s.Type}
		switch s.Type {
		case "http":
			scheme.Scheme = s.Scheme
			scheme.BearerFormat = s.BearerFormat
		case "apiKey":
			scheme.In = string(s.In)
			scheme.Name = s.Name
		}
		model.AddSecurityScheme(name, scheme)
		if opts.Bus != nil {
			if err := opts.Bus.Broadcast(eventbus.Schema, scheme); err != nil {
				return err
			}
		}
	}
	return nil
}

func parseParameterComponents(doc *openapi3.T, model *ir.Model, opts Options) error {
	if doc.Components == nil {
		return nil
	}
	for _, name := range sortedKeys(doc.Components.Parameters) {
		ref := "#/components/parameters/" + name
		if !opts.Filters.Accepts(ref) {
			continue
		}
		pr := doc.Components.Parameters[name]
		if pr == nil || pr.Value == nil {
			continue
		}
		param := parameterToIR(doc, pr.Value)
		model.AddParameter(ref, param)
		if opts.Bus != nil {
			if err := opts.Bus.Broadcast(eventbus.Parameter, param); err != nil {
				return err
			}
		}
	}
	return nil
}

func parseRequestBodyComponents(doc *openapi3.T, model *ir.Model, opts Options) error {
	if doc.Components == nil {
		return nil
	}
	for _, name := range sortedKeys(doc.Components.RequestBodies) {
		ref := "#/components/requestBodies/" + name
		if !opts.Filters.Accepts(ref) {
			continue
		}
		rbr := doc.Components.RequestBodies[name]
		if rbr == nil || rbr.Value == nil {
			continue
		}
		rb := requestBodyToIR(doc, rbr.Value)
		model.AddRequestBody(ref, rb)
		if opts.Bus != nil {
			if err := opts.Bus.Broadcast(eventbus.RequestBody, rb); err != nil {
				return err
			}
		}
	}
	return nil
}

func parseSchemaComponents(doc *openapi3.T, model *ir.Model, opts Options) error {
	if doc.Components == nil {
		return nil
	}
	for _, name := range sortedKeys(doc.Components.Schemas) {
		ref := "#/components/schemas/" + name
		if !opts.Filters.Accepts(ref) {
			continue
		}
		sr := doc.Components.Schemas[name]
		schema := schemaRefToIR(doc, sr)
		model.AddComponent(ref, schema)
		if opts.Bus != nil {
			if err := opts.Bus.Broadcast(eventbus.Schema, schema); err != nil {
				return err
			}
		}
	}
	return nil
}

var methodOrder = []struct {
	name string
	get  func(*openapi3.PathItem) *openapi3.Operation
}{
	{"GET", func(p *openapi3.PathItem) *openapi3.Operation { return p.Get }},
	{"PUT", func(p *openapi3.PathItem) *openapi3.Operation { return p.Put }},
	{"POST", func(p *openapi3.PathItem) *openapi3.Operation { return p.Post }},
	{"DELETE", func(p *openapi3.PathItem) *openapi3.Operation { return p.Delete }},
	{"OPTIONS", func(p *openapi3.PathItem) *openapi3.Operation { return p.Options }},
	{"HEAD", func(p *openapi3.PathItem) *openapi3.Operation { return p.Head }},
	{"PATCH", func(p *openapi3.PathItem) *openapi3.Operation { return p.Patch }},
	{"TRACE", func(p *openapi3.PathItem) *openapi3.Operation { return p.Trace }},
}

func parsePaths(doc *openapi3.T, model *ir.Model, opts Options, state *State) error {
	if doc.Paths == nil {
		return nil
	}
	paths := sortedKeys(doc.Paths.Map())
	for _, path := range paths {
		item := doc.Paths.Value(path)
		if item == nil {
			continue
		}
		pathParams := parameterGroupsFromList(doc, item.Parameters)

		for _, m := range methodOrder {
			op := m.get(item)
			if op == nil {
				continue
			}
			ref := fmt.Sprintf("#/paths/%s/%s", path, strings.ToLower(m.name))
			if !opts.Filters.Accepts(ref) {
				continue
			}

			methodParams := parameterGroupsFromList(doc, op.Parameters)
			merged := mergeParamGroups(pathParams, methodParams)

			irOp := &ir.OperationObject{
				ID:          synthesizeOperationID(op.OperationID, m.name, path, state),
				Method:      m.name,
				Path:        path,
				Description: op.Description,
				Summary:     op.Summary,
				Deprecated:  op.Deprecated,
				Parameters:  merged,
				Tags:        op.Tags,
				Body:        requestBodyFromRef(doc, op.RequestBody),
				Responses:   map[string]*ir.ResponseObject{},
			}
			if op.Security != nil {
				for _, req := range *op.Security {
					for scheme, scopes := range req {
						irOp.Security = append(irOp.Security, ir.SecurityRequirement{SchemeKey: scheme, Scopes: scopes})
					}
				}
			}
			if op.Responses != nil {
				codes := sortedKeys(op.Responses.Map())
				for _, code := range codes {
					rr := op.Responses.Value(code)
					if rr == nil || rr.Value == nil {
						continue
					}
					irOp.Responses[code] = responseToIR(doc, rr.Value)
					irOp.ResponseOrder = append(irOp.ResponseOrder, code)
				}
			}

			pathItem := model.Path(path)
			pathItem.AddOperation(m.name, irOp)

			if opts.Bus != nil {
				if err := opts.Bus.Broadcast(eventbus.Operation, irOp); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func parseServers(doc *openapi3.T, model *ir.Model, opts Options) error {
	for _, s := range doc.Servers {
		if s == nil {
			continue
		}
		srv := ir.ServerObject{URL: s.URL, Description: s.Description}
		model.Servers = append(model.Servers, srv)
		if opts.Bus != nil {
			if err := opts.Bus.Broadcast(eventbus.Server, srv); err != nil {
				return err
			}
		}
	}
	return nil
}

// synthesizeOperationID uses operationId when present and unseen, else
// derives method_pathSegments and deduplicates with a counter.
func synthesizeOperationID(operationID, method, path string, state *State) string {
	if operationID != "" {
		if state.operationIDs[operationID] == 0 {
			state.operationIDs[operationID]++
			return operationID
		}
		state.operationIDs[operationID]++
		return fmt.Sprintf("%s_%d", operationID, state.operationIDs[operationID])
	}
	base := strings.ToLower(method) + "_" + pathToIdentifierSegments(path)
	if state.operationIDs[base] == 0 {
		state.operationIDs[base]++
		return base
	}
	state.operationIDs[base]++
	return fmt.Sprintf("%s_%d", base, state.operationIDs[base])
}

func pathToIdentifierSegments(path string) string {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segs {
		s = strings.TrimPrefix(s, "{")
		s = strings.TrimSuffix(s, "}")
		segs[i] = s
	}
	return strings.Join(segs, "_")
}

func parameterGroupsFromList(doc *openapi3.T, params openapi3.Parameters) map[ir.ParamLocation]*ir.ParameterGroup {
	out := map[ir.ParamLocation]*ir.ParameterGroup{}
	for _, pr := range params {
		if pr == nil || pr.Value == nil {
			continue
		}
		p := parameterToIR(doc, pr.Value)
		loc := ir.ParamLocation(p.In)
		if out[loc] == nil {
			out[loc] = ir.NewParameterGroup()
		}
		out[loc].Set(p)
	}
	return out
}

// mergeParamGroups combines path-item-level groups with method-level
// groups, per location, with method winning on name collision.
func mergeParamGroups(pathLevel, methodLevel map[ir.ParamLocation]*ir.ParameterGroup) map[ir.ParamLocation]*ir.ParameterGroup {
	out := map[ir.ParamLocation]*ir.ParameterGroup{}
	locations := []ir.ParamLocation{ir.ParamHeader, ir.ParamPath, ir.ParamQuery, ir.ParamCookie}
	for _, loc := range locations {
		merged := pathLevel[loc].Merge(methodLevel[loc])
		if len(merged.Names) > 0 {
			out[loc] = merged
		}
	}
	return out
}

func parameterToIR(doc *openapi3.T, p *openapi3.Parameter) *ir.ParameterObject {
	return &ir.ParameterObject{
		Name:        p.Name,
		In:          ir.ParamLocation(p.In),
		Required:    p.Required,
		Description: p.Description,
		Schema:      schemaRefToIR(doc, p.Schema),
	}
}

func requestBodyFromRef(doc *openapi3.T, rbr *openapi3.RequestBodyRef) *ir.RequestBodyObject {
	if rbr == nil || rbr.Value == nil {
		return nil
	}
	return requestBodyToIR(doc, rbr.Value)
}

func requestBodyToIR(doc *openapi3.T, rb *openapi3.RequestBody) *ir.RequestBodyObject {
	desc := rb.Description
	for _, ct := range []string{"application/json", "application/x-www-form-urlencoded"} {
		if media, ok := rb.Content[ct]; ok {
			return &ir.RequestBodyObject{ContentType: ct, Required: rb.Required, Schema: schemaRefToIR(doc, media.Schema), Description: desc}
		}
	}
	if _, ok := rb.Content["multipart/form-data"]; ok {
		return &ir.RequestBodyObject{ContentType: "multipart/form-data", Required: rb.Required, Schema: &ir.SchemaObject{Kind: ir.KindUnknown}, Description: desc}
	}
	for ct, media := range rb.Content {
		return &ir.RequestBodyObject{ContentType: ct, Required: rb.Required, Schema: schemaRefToIR(doc, media.Schema), Description: desc}
	}
	return nil
}

func responseToIR(doc *openapi3.T, r *openapi3.Response) *ir.ResponseObject {
	desc := ""
	if r.Description != nil {
		desc = *r.Description
	}
	for ct, media := range r.Content {
		return &ir.ResponseObject{ContentType: ct, Schema: schemaRefToIR(doc, media.Schema), Description: desc}
	}
	return &ir.ResponseObject{Description: desc, Schema: &ir.SchemaObject{Kind: ir.KindVoid}}
}
