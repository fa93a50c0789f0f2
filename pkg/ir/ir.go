// Package ir defines the version-independent intermediate representation
// that every dialect parser populates and every plugin consumes.
//
// Model is mutable during parse and transform, then treated as read-only by
// plugins.
package ir

// AccessScope marks whether a schema or field participates in request bodies,
// response bodies, or both.
type AccessScope string

const (
	AccessUndefined AccessScope = ""
	AccessRead      AccessScope = "read"
	AccessWrite     AccessScope = "write"
)

// LogicalOperator names the combination rule for a composite schema's items.
type LogicalOperator string

const (
	LogicalNone LogicalOperator = ""
	LogicalAnd  LogicalOperator = "and"
	LogicalOr   LogicalOperator = "or"
)

// Kind discriminates the SchemaObject variant set.
type Kind string

const (
	KindString    Kind = "string"
	KindInteger   Kind = "integer"
	KindNumber    Kind = "number"
	KindBoolean   Kind = "boolean"
	KindNull      Kind = "null"
	KindUndefined Kind = "undefined"
	KindUnknown   Kind = "unknown"
	KindNever     Kind = "never"
	KindVoid      Kind = "void"
	KindArray     Kind = "array"
	KindTuple     Kind = "tuple"
	KindEnum      Kind = "enum"
	KindObject    Kind = "object"
	KindComposite Kind = "composite" // no `type`; Items + LogicalOperator
	KindRef       Kind = "ref"
)

// Model is the mutable root of the normalized IR.
type Model struct {
	// Components maps a fully qualified $ref (e.g. "#/components/schemas/Pet")
	// to the object it designates.
	Components     map[string]*SchemaObject
	ComponentOrder []string // preserves spec insertion order

	Parameters       map[string]*ParameterObject
	ParameterOrder   []string
	RequestBodies    map[string]*RequestBodyObject
	RequestBodyOrder []string

	SecuritySchemes     map[string]*SecurityScheme
	SecuritySchemeOrder []string

	// Paths maps a path string to its ordered operations.
	Paths     map[string]*PathItem
	PathOrder []string

	Servers []ServerObject
}

// SecurityScheme is a simplified view of an OpenAPI security scheme,
// sufficient for client plugins to wire authentication.
type SecurityScheme struct {
	Key          string
	Type         string // http, apiKey, oauth2, openIdConnect
	Scheme       string // when Type == http (basic, bearer, ...)
	In           string // when Type == apiKey (header, query, cookie)
	Name         string // when Type == apiKey
	BearerFormat string
}

// NewModel returns an empty Model with its maps initialized.
func NewModel() *Model {
	return &Model{
		Components:      map[string]*SchemaObject{},
		Parameters:      map[string]*ParameterObject{},
		RequestBodies:   map[string]*RequestBodyObject{},
		SecuritySchemes: map[string]*SecurityScheme{},
		Paths:           map[string]*PathItem{},
	}
}

// AddSecurityScheme registers a named security scheme.
func (m *Model) AddSecurityScheme(key string, s *SecurityScheme) {
	if _, exists := m.SecuritySchemes[key]; !exists {
		m.SecuritySchemeOrder = append(m.SecuritySchemeOrder, key)
	}
	m.SecuritySchemes[key] = s
}

// AddComponent registers a named component schema, recording insertion order
// only on first sight so re-registration (e.g. by a transform) doesn't move
// it in iteration order.
func (m *Model) AddComponent(ref string, s *SchemaObject) {
	if _, exists := m.Components[ref]; !exists {
		m.ComponentOrder = append(m.ComponentOrder, ref)
	}
	m.Components[ref] = s
}

// AddParameter registers a named parameter component.
func (m *Model) AddParameter(ref string, p *ParameterObject) {
	if _, exists := m.Parameters[ref]; !exists {
		m.ParameterOrder = append(m.ParameterOrder, ref)
	}
	m.Parameters[ref] = p
}

// AddRequestBody registers a named request body component.
func (m *Model) AddRequestBody(ref string, rb *RequestBodyObject) {
	if _, exists := m.RequestBodies[ref]; !exists {
		m.RequestBodyOrder = append(m.RequestBodyOrder, ref)
	}
	m.RequestBodies[ref] = rb
}

// Path returns (creating if absent) the PathItem for path, recording order.
func (m *Model) Path(path string) *PathItem {
	if pi, ok := m.Paths[path]; ok {
		return pi
	}
	pi := &PathItem{Path: path, Operations: map[string]*OperationObject{}}
	m.Paths[path] = pi
	m.PathOrder = append(m.PathOrder, path)
	return pi
}

// PathItem holds the operations declared for one path, keyed by HTTP method,
// in the order methods were first added.
type PathItem struct {
	Path           string
	Operations     map[string]*OperationObject
	OperationOrder []string
}

// AddOperation registers an operation under its method, recording order on
// first insertion.
func (p *PathItem) AddOperation(method string, op *OperationObject) {
	if p.Operations == nil {
		p.Operations = map[string]*OperationObject{}
	}
	if _, exists := p.Operations[method]; !exists {
		p.OperationOrder = append(p.OperationOrder, method)
	}
	p.Operations[method] = op
}

// ParamLocation is where a parameter is carried on the wire.
type ParamLocation string

const (
	ParamHeader ParamLocation = "header"
	ParamPath   ParamLocation = "path"
	ParamQuery  ParamLocation = "query"
	ParamCookie ParamLocation = "cookie"
)

// ParameterObject is a single named parameter.
type ParameterObject struct {
	Name        string
	In          ParamLocation
	Required    bool
	Description string
	Schema      *SchemaObject
}

// ParameterGroup is a name-ordered mapping of parameters sharing one location.
type ParameterGroup struct {
	Names  []string
	ByName map[string]*ParameterObject
}

// NewParameterGroup returns an empty, ready-to-use group.
func NewParameterGroup() *ParameterGroup {
	return &ParameterGroup{ByName: map[string]*ParameterObject{}}
}

// Set inserts or replaces a parameter by name, recording first-seen order.
func (g *ParameterGroup) Set(p *ParameterObject) {
	if g.ByName == nil {
		g.ByName = map[string]*ParameterObject{}
	}
	if _, exists := g.ByName[p.Name]; !exists {
		g.Names = append(g.Names, p.Name)
	}
	g.ByName[p.Name] = p
}

// Merge overlays other's parameters on top of g, with other winning on name
// collisions: the path-item parameters are the base, the method parameters
// are other.
func (g *ParameterGroup) Merge(other *ParameterGroup) *ParameterGroup {
	out := NewParameterGroup()
	if g != nil {
		for _, n := range g.Names {
			out.Set(g.ByName[n])
		}
	}
	if other != nil {
		for _, n := range other.Names {
			out.Set(other.ByName[n])
		}
	}
	return out
}

// List returns the parameters in insertion order.
func (g *ParameterGroup) List() []*ParameterObject {
	if g == nil {
		return nil
	}
	out := make([]*ParameterObject, 0, len(g.Names))
	for _, n := range g.Names {
		out = append(out, g.ByName[n])
	}
	return out
}

// Required reports whether any member of the group is required, used by the
// schema emitter to decide whether the containing bundle property itself is
// required.
func (g *ParameterGroup) Required() bool {
	if g == nil {
		return false
	}
	for _, n := range g.Names {
		if g.ByName[n].Required {
			return true
		}
	}
	return false
}

// RequestBodyObject is a request body keyed to one content type.
type RequestBodyObject struct {
	ContentType string
	Required    bool
	Schema      *SchemaObject
	Description string
}

// ResponseObject is one status-keyed response.
type ResponseObject struct {
	ContentType string
	Schema      *SchemaObject
	Description string
}

// OperationObject is one HTTP method applied to one path.
type OperationObject struct {
	ID          string
	Method      string
	Path        string
	Description string
	Summary     string
	Deprecated  bool

	// Parameters is grouped by location; each group already reflects the
	// path-item/method merge precedence (method wins).
	Parameters map[ParamLocation]*ParameterGroup

	Body *RequestBodyObject

	// Responses maps an HTTP status code (or "default") to its response.
	Responses     map[string]*ResponseObject
	ResponseOrder []string

	Security []SecurityRequirement
	Servers  []ServerObject
	Tags     []string
}

// ParamGroup returns the operation's parameter group for loc, never nil.
func (op *OperationObject) ParamGroup(loc ParamLocation) *ParameterGroup {
	if op.Parameters == nil {
		op.Parameters = map[ParamLocation]*ParameterGroup{}
	}
	g, ok := op.Parameters[loc]
	if !ok {
		g = NewParameterGroup()
		op.Parameters[loc] = g
	}
	return g
}

// SecurityRequirement names a security scheme and its scopes (for oauth2).
type SecurityRequirement struct {
	SchemeKey string
	Scopes    []string
}

// ServerObject is one entry of Model.Servers / OperationObject.Servers.
type ServerObject struct {
	URL         string
	Description string
}

// Discriminator carries oneOf/anyOf polymorphism hints.
type Discriminator struct {
	PropertyName string
	Mapping      map[string]string
}

// SchemaObject is the IR's sum-type schema node.
//
// Only the fields relevant to Kind are populated; the rest are zero.
// Extensions preserves `x-*` vendor keys verbatim.
type SchemaObject struct {
	Kind Kind

	// Common optional metadata, valid on any variant.
	Description string
	Default     any
	AccessScope AccessScope
	Extensions  map[string]any

	// string
	Format    string
	MinLength *int
	MaxLength *int
	Pattern   string
	Const     any

	// integer / number
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum bool
	ExclusiveMaximum bool

	// array: Items holds one element for a uniform array, more than one for
	// a multi-schema item union.
	Items           []*SchemaObject
	MinItems        *int
	MaxItems        *int
	LogicalOperator LogicalOperator

	// tuple
	TupleConst []any

	// enum: each member a primitive-const schema; Nullable toggled by a null member
	EnumMembers []*SchemaObject
	Nullable    bool

	// object
	Properties           []Field // ordered
	Required             map[string]bool
	AdditionalProperties *SchemaObject // nil: closed object; non-nil: typed/open map

	// composite (Kind == KindComposite): Items + LogicalOperator represent
	// union (or) / intersection (and)
	Discriminator *Discriminator

	// $ref
	Ref string
}

// Field is a named property of an object schema.
type Field struct {
	Name     string
	Schema   *SchemaObject
	Required bool
}

// RequiredNames returns the required property names in Properties order,
// which is the determinism the parser promises.
func (s *SchemaObject) RequiredNames() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.Properties))
	for _, f := range s.Properties {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

// IsRef reports whether this node terminates recursion through a $ref.
func (s *SchemaObject) IsRef() bool { return s != nil && s.Kind == KindRef }
