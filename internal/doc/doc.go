// Package doc implements the document model used by the pretty-printing
// layout strategy.
//
// A document is a tree of Node values. Group is the only place a wrap
// decision is made: on entry the Generator measures the group as if nothing
// inside it were wrapped and wraps it when the measured width does not fit
// in the space left on the current line. The decision is recorded in a memo
// keyed by group id and never revisited.
//
// Group ids come from a Builder owned by the caller, so independent format
// runs never share counters. A duplicate id inside one tree is reported as
// ErrDuplicateGroupID at render time.
package doc
