// Package driver wires the lexer, parser and rule engine into lint runs
// over inline queries, files and directory trees.
package driver
