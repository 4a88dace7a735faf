// Package rules decides, one call site at a time, whether a locale diagnostic
// applies and which message shape it takes.
//
// Evaluation order:
//  1. an explicit unsafe culture or comparison value was supplied;
//  2. an omitted optional context parameter defaults to an unsafe value;
//  3. no context parameter was passed but a unique explicit overload exists.
//
// Anything unresolved, ambiguous or unclassifiable is skipped silently.
package rules
