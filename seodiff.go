// Package seodiff compares the content of a web page as seen without
// JavaScript execution against the content visible after scripts have run,
// surfacing text, headings, and internal links that exist in only one
// rendering mode.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package seodiff
