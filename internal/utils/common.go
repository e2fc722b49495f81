// Package utils provides shared utility functions used across multiple packages.
package utils

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// JSONPointerToPath converts a JSON Pointer (RFC 6901) to a dot-notation path.
// For example, "#/0/номер поезда" becomes "[0].номер поезда". Percent-encoded
// segments, as produced by URI fragment pointers, are decoded.
// This is useful for converting JSON Schema validation error locations to
// human-readable paths.
func JSONPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	parts := strings.Split(ptr, "/")
	path := ""
	for _, part := range parts {
		// ~1 represents /, ~0 represents ~
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if decoded, err := url.PathUnescape(part); err == nil {
			part = decoded
		}
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}

	return path
}

// BoolFromString parses common truthy spellings. Anything else is false.
func BoolFromString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on", "y":
		return true
	default:
		return false
	}
}
