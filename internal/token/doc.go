// Package token defines the lexical token kinds produced by the scanner and
// consumed by both layout strategies.
// Invariants:
//   - Token.Text of Literal, String, Operator and Keyword tokens is a slice of
//     the original source and is never empty.
//   - Token.Span matches Text exactly for scanned tokens; whitespace tokens
//     synthesized by layout carry an empty span.
//   - The scanner never emits whitespace kinds (NewLine, Space, Tab); those are
//     owned by the layout engine.
package token
