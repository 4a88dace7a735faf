// Package diag defines the diagnostic model shared by the engine host, the
// driver and the renderers.
//
// Diagnostic is the central record: severity, a compact numeric Code with a
// stable string form (locale rule codes also carry their public rule id), a
// rendered message, the primary span and optional notes. Notes carry the
// suggested replacement or point at the declaration a default value comes from.
//
// Producers emit through a Reporter; BagReporter collects into a Bag, which
// sorts, deduplicates and caps its contents. Formatting lives in
// internal/diagfmt, orchestration in internal/driver.
package diag
