// Package csharp implements the symbol model over C# sources parsed with
// tree-sitter.
//
// Resolution is deliberately conservative: declarations come from the parsed
// files plus the embedded framework catalog, receivers are typed from
// literals, parameters, locals, fields and catalog properties, and overload
// choice only filters by arity and argument compatibility. Whenever two
// candidates remain equally good the call is reported as unresolved and the
// rules skip it.
package csharp
