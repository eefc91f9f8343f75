package validate

import (
	"bwqlint/internal/ast"
	"bwqlint/internal/source"
)

// Context is read-only query-level information shared by all rules
// during one pass.
type Context struct {
	// Root is the whole query tree.
	Root ast.Expr
	// Fields resolves field metadata.
	Fields *ast.FieldRegistry
	// Source is the query text; nil when linting a tree built in memory.
	Source *source.File
}

// NewContext builds a context for root with the default field registry.
func NewContext(root ast.Expr, src *source.File) *Context {
	return &Context{Root: root, Fields: ast.DefaultFields(), Source: src}
}

// Text returns the source text addressed by sp, or "" without a source.
func (c *Context) Text(sp source.Span) string {
	if c == nil || c.Source == nil {
		return ""
	}
	return c.Source.Slice(sp)
}

// FieldSpec resolves ft through the context registry.
func (c *Context) FieldSpec(ft ast.FieldType) (ast.FieldSpec, bool) {
	if c == nil || c.Fields == nil {
		return ast.DefaultFields().Info(ft)
	}
	return c.Fields.Info(ft)
}
