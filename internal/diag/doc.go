// Package diag defines the diagnostic model shared by the scanner, the layout
// engine and the driver.
//
// A Diagnostic carries a Severity, a stable Code (rendered as LEX1002,
// LAY2001 and so on), a short Message, a primary source.Span and optional
// Notes. Producers emit through a Reporter so that storage (Bag) and
// rendering (internal/diagfmt) stay decoupled from the phases.
//
// Code ranges:
//
//   - 1000-1999 LEX: scanner errors.
//   - 2000-2999 LAY: structural layout errors and round-trip checks.
//   - 3000-3999 REN: document rendering and token building.
//   - 4000-4999 IO: reading and writing files.
//   - 5000-5999 CFG: configuration loading.
//   - 6000-6999 OBS: timings and other observability output.
//
// Package diag performs no IO and no formatting beyond the single-line short
// form used by tests and the CLI's short output mode.
package diag
