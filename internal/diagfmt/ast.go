package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"bwqlint/internal/ast"
	"bwqlint/internal/source"
)

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Span     SpanJSON        `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
	Fields   map[string]any  `json:"fields,omitempty"`
}

// nodeLabel renders the node without its children, e.g.
// `Term Wildcard "app*"` or `Proximity NEAR/5f`.
func nodeLabel(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.TermExpr:
		return fmt.Sprintf("Term %s %q", n.Term.Kind, n.Term.Value)
	case *ast.AndExpr:
		if n.Implicit {
			return "And (implicit)"
		}
		return "And"
	case *ast.FieldExpr:
		return "Field " + n.Field.String()
	case *ast.RangeExpr:
		open, closeBr := "{", "}"
		if n.Inclusive {
			open, closeBr = "[", "]"
		}
		return fmt.Sprintf("Range %s %s%s TO %s%s", n.Field, open, n.Start, n.End, closeBr)
	case *ast.ProximityExpr:
		switch {
		case !n.Infix:
			return fmt.Sprintf("Proximity ~%d", n.Distance)
		case n.Forward:
			return fmt.Sprintf("Proximity NEAR/%df", n.Distance)
		default:
			return fmt.Sprintf("Proximity NEAR/%d", n.Distance)
		}
	default:
		return ast.NodeName(e)
	}
}

func spanLabel(sp source.Span) string {
	return fmt.Sprintf("%s-%s", sp.Start, sp.End)
}

// FormatASTPretty prints root as an indented tree.
func FormatASTPretty(w io.Writer, root ast.Expr) error {
	if root == nil {
		return fmt.Errorf("empty tree")
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (span: %s)\n", nodeLabel(root), spanLabel(root.Span()))
	writeChildren(&sb, root, "")
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeChildren(sb *strings.Builder, e ast.Expr, prefix string) {
	kids := e.Children()
	for i, child := range kids {
		branch, next := "├─ ", "│  "
		if i == len(kids)-1 {
			branch, next = "└─ ", "   "
		}
		fmt.Fprintf(sb, "%s%s%s (span: %s)\n", prefix, branch, nodeLabel(child), spanLabel(child.Span()))
		writeChildren(sb, child, prefix+next)
	}
}

func buildTreeNode(e ast.Expr) *treeNode {
	node := &treeNode{label: nodeLabel(e)}
	for _, child := range e.Children() {
		node.children = append(node.children, buildTreeNode(child))
	}
	return node
}

// FormatASTTree draws root top-down with / | \ connectors.
func FormatASTTree(w io.Writer, root ast.Expr) error {
	if root == nil {
		return fmt.Errorf("empty tree")
	}
	block := renderTree(buildTreeNode(root))
	for _, line := range block.lines {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// BuildASTOutput converts root to its JSON form.
func BuildASTOutput(e ast.Expr) ASTNodeOutput {
	out := ASTNodeOutput{Type: ast.NodeName(e), Span: makeSpan(e.Span())}
	switch n := e.(type) {
	case *ast.TermExpr:
		out.Kind = n.Term.Kind.String()
		out.Text = n.Term.Value
	case *ast.AndExpr:
		out.Fields = map[string]any{"implicit": n.Implicit}
	case *ast.FieldExpr:
		out.Fields = map[string]any{"field": n.Field.String(), "name": n.Name}
	case *ast.RangeExpr:
		out.Fields = map[string]any{
			"field":     n.Field.String(),
			"start":     n.Start,
			"end":       n.End,
			"inclusive": n.Inclusive,
		}
	case *ast.ProximityExpr:
		out.Fields = map[string]any{"distance": n.Distance, "forward": n.Forward, "infix": n.Infix}
	}
	for _, child := range e.Children() {
		out.Children = append(out.Children, BuildASTOutput(child))
	}
	return out
}

// FormatASTJSON writes root as indented JSON.
func FormatASTJSON(w io.Writer, root ast.Expr) error {
	if root == nil {
		return fmt.Errorf("empty tree")
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildASTOutput(root))
}
