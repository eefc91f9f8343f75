// Package validate runs validation rules over a parsed query.
//
// The engine walks the tree depth-first, node before children. At every
// node it offers the node to each rule in registration order; rules whose
// CanValidate accepts the node are run and their errors, then warnings, are
// appended to the output. Rules never see each other's findings and
// nothing is deduplicated, so the output order is fully determined by the
// tree and the rule order.
package validate
