// Package eval binds expressions into documents as deferred values.
//
// Strings of the form ".[ expr ]" are placeholders: Bind replaces them
// with pending nodes whose expressions evaluate on first await, against
// an Env of named values and functions. Everything else in the tree
// passes through.
//
//	node, _ := eval.Bind(doc, eval.Env{"a": 1, "b": 2})
//
// Expressions use github.com/expr-lang/expr syntax.
//
// # Related Packages
//
//   - github.com/awaitjson/go-awaitjson/ir - pending node representation
//   - github.com/awaitjson/go-awaitjson/encode - renders bound documents
package eval
