// Package media resolves HTTP content types for stored blobs and serves them.
package media

import "strings"

// ResolveContentType determines the HTTP content type for a downloaded blob.
// Stored metadata wins when present; otherwise the filename is inspected with
// deliberately permissive heuristics to accommodate loosely-set client
// metadata. Unrecognized files fall back to application/octet-stream.
func ResolveContentType(stored, filename string) string {
	if stored != "" {
		return stored
	}

	switch {
	case strings.HasSuffix(filename, ".mp4") || strings.Contains(filename, "mp4"):
		return "video/mp4"
	case strings.HasSuffix(filename, ".mov") || strings.Contains(filename, "quicktime"):
		return "video/quicktime"
	case strings.HasSuffix(filename, ".jpg") || strings.HasSuffix(filename, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(filename, ".png"):
		return "image/png"
	default:
		return "application/octet-stream"
	}
}
