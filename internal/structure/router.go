package structure

// Route maps one source schema to its destination schema.
type Route struct {
	Src string `mapstructure:"src"`
	Dst string `mapstructure:"dst"`
}

// Router maps source schema names to destination schema names.
// Schemas without a route keep their name.
type Router struct {
	normalize func(string) string
	dst       map[string]string
	src       map[string]string
}

// NewRouter builds a router. normalize is applied to both sides of every
// route and to every lookup, usually Dialect.GetSchemaName; nil keeps names
// as they are.
func NewRouter(routes []Route, normalize func(string) string) *Router {
	if normalize == nil {
		normalize = func(s string) string { return s }
	}
	r := &Router{normalize: normalize, dst: make(map[string]string), src: make(map[string]string)}
	for _, rt := range routes {
		s, d := normalize(rt.Src), normalize(rt.Dst)
		r.dst[s] = d
		r.src[d] = s
	}
	return r
}

// DstSchema returns the destination schema for a source schema.
func (r *Router) DstSchema(src string) string {
	if r == nil {
		return src
	}
	if d, ok := r.dst[r.normalize(src)]; ok {
		return d
	}
	return src
}

// SrcSchema returns the source schema a destination schema is mapped from.
func (r *Router) SrcSchema(dst string) string {
	if r == nil {
		return dst
	}
	if s, ok := r.src[r.normalize(dst)]; ok {
		return s
	}
	return dst
}

// RenameToSource rewrites the schema of destination tables to the source
// name, so keys and rendered DDL compare against the source side.
func (r *Router) RenameToSource(tables []*Table) {
	for _, t := range tables {
		t.Schema = r.SrcSchema(t.Schema)
	}
}
