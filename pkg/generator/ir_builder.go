package generator

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/oasforge/oasgen/internal/refresolver"
	"github.com/oasforge/oasgen/pkg/config"
	lir "github.com/oasforge/oasgen/pkg/generator/legacyir"
	"github.com/oasforge/oasgen/pkg/ir"
)

// buildIR flattens a parsed, transformed Model into the legacyir.IR shape
// the template generators render from. Unlike the raw-document walk this
// replaced, every schema here has already passed through whatever
// transform.Run applied (enum lift, read/write bifurcation), so a client
// emitted through this path sees the same normalized shapes the validators
// plugin does.
func (s *Service) buildIR(model *ir.Model) (lir.IR, error) {
	result := buildIRFromModel(model)
	result.SecuritySchemes = collectSecuritySchemes(model)
	result.ModelDefs = buildStructuredModels(model)
	return result, nil
}

// filterIR filters the IR based on client configuration
func (s *Service) filterIR(fullIR lir.IR, client config.Client) (lir.IR, error) {
	include, exclude, err := compileTagFilters(client.IncludeTags, client.ExcludeTags)
	if err != nil {
		return lir.IR{}, err
	}

	// Filter services and operations based on their original tags
	filteredServices := make([]lir.IRService, 0)
	for _, service := range fullIR.Services {
		filteredOps := make([]lir.IROperation, 0)
		for _, op := range service.Operations {
			if shouldIncludeOperation(op.OriginalTags, include, exclude) {
				filteredOps = append(filteredOps, op)
			}
		}
		// Only include the service if it has at least one operation after filtering
		if len(filteredOps) > 0 {
			filteredService := service
			filteredService.Operations = filteredOps
			filteredServices = append(filteredServices, filteredService)
		}
	}

	filteredIR := lir.IR{
		Services:        filteredServices,
		Models:          fullIR.Models,
		SecuritySchemes: fullIR.SecuritySchemes,
		ModelDefs:       fullIR.ModelDefs,
	}
	filteredIR.ModelDefs = filterUnusedModelDefs(filteredIR, fullIR.ModelDefs)

	return filteredIR, nil
}

// compileTagFilters compiles regex patterns for tag filtering
func compileTagFilters(include, exclude []string) ([]*regexp.Regexp, []*regexp.Regexp, error) {
	inc := make([]*regexp.Regexp, 0, len(include))
	for _, p := range include {
		r, err := regexp.Compile(p)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid includeTags pattern %q: %w", p, err)
		}
		inc = append(inc, r)
	}
	exc := make([]*regexp.Regexp, 0, len(exclude))
	for _, p := range exclude {
		r, err := regexp.Compile(p)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid excludeTags pattern %q: %w", p, err)
		}
		exc = append(exc, r)
	}
	return inc, exc, nil
}

// shouldIncludeOperation determines if an operation should be included based on its original tags
func shouldIncludeOperation(originalTags []string, include, exclude []*regexp.Regexp) bool {
	included := len(include) == 0

	if len(include) > 0 {
		for _, tag := range originalTags {
			for _, r := range include {
				if r.MatchString(tag) {
					included = true
					break
				}
			}
			if included {
				break
			}
		}
	}

	if !included {
		return false
	}

	if len(exclude) > 0 {
		for _, tag := range originalTags {
			for _, r := range exclude {
				if r.MatchString(tag) {
					return false
				}
			}
		}
	}

	return true
}

// buildIRFromModel groups the Model's operations by their first tag (falling
// back to "misc"), preserving each operation's full original tag set for
// client-side filtering.
func buildIRFromModel(model *ir.Model) lir.IR {
	servicesMap := map[string]*lir.IRService{"misc": {Tag: "misc"}}

	for _, path := range model.PathOrder {
		pathItem := model.Paths[path]
		for _, method := range pathItem.OperationOrder {
			op := pathItem.Operations[method]

			tag := "misc"
			originalTags := append([]string{}, op.Tags...)
			if len(originalTags) > 0 {
				tag = originalTags[0]
			} else {
				originalTags = []string{"misc"}
			}
			if _, ok := servicesMap[tag]; !ok {
				servicesMap[tag] = &lir.IRService{Tag: tag}
			}

			servicesMap[tag].Operations = append(servicesMap[tag].Operations, lir.IROperation{
				OperationID:  op.ID,
				Method:       op.Method,
				Path:         op.Path,
				Tag:          tag,
				OriginalTags: originalTags,
				Summary:      op.Summary,
				Description:  op.Description,
				Deprecated:   op.Deprecated,
				PathParams:   paramGroupToIR(op.Parameters[ir.ParamPath]),
				QueryParams:  paramGroupToIR(op.Parameters[ir.ParamQuery]),
				RequestBody:  requestBodyToIR(op.Body),
				Response:     responseToIR(op),
			})
		}
	}

	services := make([]lir.IRService, 0, len(servicesMap))
	for _, svc := range servicesMap {
		sort.Slice(svc.Operations, func(i, j int) bool {
			if svc.Operations[i].Path == svc.Operations[j].Path {
				return svc.Operations[i].Method < svc.Operations[j].Method
			}
			return svc.Operations[i].Path < svc.Operations[j].Path
		})
		services = append(services, *svc)
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Tag < services[j].Tag })
	return lir.IR{Services: services}
}

// collectSecuritySchemes copies the Model's already-simplified security
// schemes, in declaration order.
func collectSecuritySchemes(model *ir.Model) []lir.IRSecurityScheme {
	out := make([]lir.IRSecurityScheme, 0, len(model.SecuritySchemeOrder))
	for _, key := range model.SecuritySchemeOrder {
		sc := model.SecuritySchemes[key]
		out = append(out, lir.IRSecurityScheme{
			Key:          sc.Key,
			Type:         sc.Type,
			Scheme:       sc.Scheme,
			In:           sc.In,
			Name:         sc.Name,
			BearerFormat: sc.BearerFormat,
		})
	}
	return out
}

func paramGroupToIR(g *ir.ParameterGroup) []lir.IRParam {
	if g == nil {
		return nil
	}
	out := make([]lir.IRParam, 0, len(g.Names))
	for _, name := range g.Names {
		p := g.ByName[name]
		out = append(out, lir.IRParam{
			Name:        p.Name,
			Required:    p.Required,
			Schema:      schemaToIR(p.Schema),
			Description: p.Description,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func requestBodyToIR(rb *ir.RequestBodyObject) *lir.IRRequestBody {
	if rb == nil {
		return nil
	}
	return &lir.IRRequestBody{
		ContentType: rb.ContentType,
		Schema:      schemaToIR(rb.Schema),
		Required:    rb.Required,
	}
}

// responseToIR picks the operation's primary response: prefer 200/201, then
// the first other 2xx (a 204 or schemaless response becomes "void"), falling
// back to "unknown" when the operation declares no success response at all.
func responseToIR(op *ir.OperationObject) lir.IRResponse {
	pick := func(code string) (*ir.ResponseObject, bool) {
		r, ok := op.Responses[code]
		return r, ok
	}
	toResponse := func(code string, r *ir.ResponseObject) lir.IRResponse {
		if code == "204" || r.Schema == nil {
			return lir.IRResponse{TypeTS: "void", Description: r.Description}
		}
		return lir.IRResponse{Schema: schemaToIR(r.Schema), Description: r.Description}
	}

	for _, code := range []string{"200", "201"} {
		if r, ok := pick(code); ok && r != nil {
			return toResponse(code, r)
		}
	}
	for _, code := range op.ResponseOrder {
		if len(code) == 3 && code[0] == '2' {
			if r := op.Responses[code]; r != nil {
				return toResponse(code, r)
			}
		}
	}
	return lir.IRResponse{TypeTS: "unknown"}
}

// buildStructuredModels converts every named component into a
// language-agnostic model def, synthesizing named defs for any inline
// object nested inside (enums are already lifted to named components by
// transform.LiftEnums before this runs, when that transform is enabled).
func buildStructuredModels(model *ir.Model) []lir.IRModelDef {
	out := []lir.IRModelDef{}
	seen := map[string]struct{}{}
	for _, ref := range model.ComponentOrder {
		seen[refresolver.LastSegment(ref)] = struct{}{}
	}
	for _, ref := range model.ComponentOrder {
		name := refresolver.LastSegment(ref)
		schema := schemaToIRNamed(model.Components[ref], name, "", false, &out, seen)
		out = append(out, lir.IRModelDef{
			Name:        name,
			Schema:      schema,
			Annotations: annotationsOf(model.Components[ref]),
		})
	}
	return out
}

// filterUnusedModelDefs removes ModelDefs that are not referenced by any operations
func filterUnusedModelDefs(filteredIR lir.IR, allModelDefs []lir.IRModelDef) []lir.IRModelDef {
	modelDefMap := make(map[string]lir.IRModelDef)
	for _, md := range allModelDefs {
		modelDefMap[md.Name] = md
	}

	referenced := make(map[string]bool)
	visited := make(map[string]bool)

	var collectRefs func(schema lir.IRSchema)
	collectRefs = func(schema lir.IRSchema) {
		if schema.Kind == lir.IRKindRef && schema.Ref != "" {
			refName := schema.Ref
			referenced[refName] = true
			if !visited[refName] {
				visited[refName] = true
				if md, ok := modelDefMap[refName]; ok {
					collectRefs(md.Schema)
				}
			}
		}
		if schema.Items != nil {
			collectRefs(*schema.Items)
		}
		if schema.AdditionalProperties != nil {
			collectRefs(*schema.AdditionalProperties)
		}
		for _, sub := range schema.OneOf {
			if sub != nil {
				collectRefs(*sub)
			}
		}
		for _, sub := range schema.AnyOf {
			if sub != nil {
				collectRefs(*sub)
			}
		}
		for _, sub := range schema.AllOf {
			if sub != nil {
				collectRefs(*sub)
			}
		}
		if schema.Not != nil {
			collectRefs(*schema.Not)
		}
		for _, field := range schema.Properties {
			if field.Type != nil {
				collectRefs(*field.Type)
			}
		}
	}

	for _, service := range filteredIR.Services {
		for _, op := range service.Operations {
			for _, param := range op.PathParams {
				collectRefs(param.Schema)
			}
			for _, param := range op.QueryParams {
				collectRefs(param.Schema)
			}
			if op.RequestBody != nil {
				collectRefs(op.RequestBody.Schema)
			}
			collectRefs(op.Response.Schema)
		}
	}

	filtered := make([]lir.IRModelDef, 0)
	for _, md := range allModelDefs {
		if referenced[md.Name] {
			filtered = append(filtered, md)
		}
	}

	return filtered
}
