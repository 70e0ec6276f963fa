// Package errs defines the closed error taxonomy shared by every stage of
// the arbor pipeline.
//
// # Purpose
//
//   - Give each failure the tool can surface (reading input, detecting a
//     language, parsing, compiling or fetching a grammar, running query
//     files, writing output, verifying idempotence) exactly one variant,
//     so callers branch on structure instead of message text.
//   - Preserve the causal chain: a variant that wraps a lower-level
//     failure owns it and exposes it through Unwrap, one level at a time.
//   - Render the user-visible message for each variant. The strings
//     produced by Error() are contracts; tests pin them verbatim.
//
// # Data model
//
// Error is the sealed interface. Concrete variants: Formatting,
// Idempotence, Internal, Parsing, Query, LanguageDetection, Reading,
// Writing, Git, ParserLoading, ParserCompilation. Three categories carry
// a nested sub-taxonomy where the same user-facing failure has several
// distinct low-level causes: ReadError (io, utf8), WriteError (fmt,
// flush, io, utf8) and CompileError (io, cc).
//
// There is deliberately no catch-all variant. A new failure source must
// pick an existing variant or add a new one here.
//
// A new sub-variant is only warranted when callers need to branch on it
// or the rendered wording differs; otherwise the differing cause rides
// along as payload (Internal takes a message plus an optional wrapped
// cause rather than splitting per cause type).
//
// # Conversions
//
// Foreign failures cross into the taxonomy through the lift helpers in
// convert.go, called at the boundary where a lower-level operation's
// result enters the pipeline. Lift maps a bare I/O failure to the
// writing category; read failures must use ReadFailed with a context
// string describing what was being read. Conversions are total and never
// discard the original cause.
//
// Values are immutable once constructed and safe to render from any
// goroutine.
package errs
