// Package diag defines the core diagnostic model shared by all pipeline phases.
//
// Diagnostic is the central record: a Severity, a compact numeric Code with a
// stable string form, a human-oriented Message, the primary source.Span, and
// optional Notes adding secondary spans (candidate signatures, earlier
// declarations). Producers emit through the Reporter interface; Bag is the
// standard bounded collector behind it.
//
// Package diag performs no formatting or IO. Rendering lives in
// internal/diagfmt; only the stable golden line format used by tests and the
// CLI short output is produced here.
package diag
