// Copyright © 2025 The javals authors

package workspace

import "strings"

// PathOf converts a file:// URI to a filesystem path. Other strings
// pass through unchanged, so callers may use paths and URIs
// interchangeably.
func PathOf(uri string) string {
	if path, ok := strings.CutPrefix(uri, "file://"); ok {
		return path
	}
	return uri
}

// URIOf converts a filesystem path to a file:// URI.
func URIOf(path string) string {
	if strings.HasPrefix(path, "/") {
		return "file://" + path
	}
	return path
}
