// Package format runs the scan, layout and render pipeline for one file.
//
// Format and FormatFile are the entry points; Build maps a laid-out token
// sequence to text; CheckRoundTrip verifies that a second pass changes
// nothing and that no significant token was altered.
package format
