// Package newsgenie provides the backend of a news reader: headline
// proxying, article text extraction, and bullet-point summaries of
// article bodies produced by a language model.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, readability/, gemini/).
package newsgenie
