// Package symbols describes the read-only symbol model the locale rules run on.
//
// A host (the tree-sitter C# adapter, a snapshot exported by a compiler) resolves
// every call expression to one concrete MethodSignature, aligns the arguments to
// its parameters and answers two more questions on demand: which methods share
// the overload family of a signature, and which well-known library member an
// expression folds to. Everything downstream consumes only this contract.
package symbols
