// Package ast holds the syntax tree of a boolean search query.
//
// The tree is strict: every node owns its children through pointers, there
// are no back references and nothing is shared between nodes. Nodes are
// built once by the parser and never mutated afterwards. Term values are
// kept verbatim; interpreting them (wildcards, numbers, languages) is the
// job of validation rules.
package ast
