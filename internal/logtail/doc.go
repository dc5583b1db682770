// Package logtail reads the tail of the storefront session log.
//
// # Reading
//
// Read returns the last maxLines lines of a file using a ring buffer of
// maxLines entries, so memory stays bounded however large the log grows:
//
//	1. Allocate ring buffer of size maxLines
//	2. For each line: store at the current index, advance (wrapping)
//	3. Return the buffer starting from the oldest retained line
//
// A missing file reads as empty (nil, nil). Other I/O errors are wrapped.
//
// # Parsing
//
// The application logs with slog's text handler, which writes one record per
// line as key=value pairs:
//
//	time=2026-03-04T05:06:07.000Z level=INFO msg="order placed" order_id=5f1c total=$33.49
//
// ParseLine turns such a line into an Entry (time, level, message and the
// remaining attributes in order). Quoted values are unquoted. Lines that do
// not follow the format are kept verbatim as the message, so a stray panic
// trace still shows up in the activity view.
package logtail
