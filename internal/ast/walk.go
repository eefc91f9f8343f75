package ast

// Walk visits e and its descendants depth-first, node before children.
// Returning false from fn skips the children of that node.
func Walk(e Expr, fn func(Expr) bool) {
	if e == nil {
		return
	}
	if !fn(e) {
		return
	}
	for _, c := range e.Children() {
		Walk(c, fn)
	}
}

// Count returns the number of nodes in the tree rooted at e.
func Count(e Expr) int {
	n := 0
	Walk(e, func(Expr) bool {
		n++
		return true
	})
	return n
}

// Depth returns the height of the tree rooted at e (a leaf has depth 1).
func Depth(e Expr) int {
	if e == nil {
		return 0
	}
	best := 0
	for _, c := range e.Children() {
		best = max(best, Depth(c))
	}
	return best + 1
}
