// Package diagfmt renders lint diagnostics, token streams and query trees
// for terminals and machines: pretty and short text, JSON and SARIF.
package diagfmt
