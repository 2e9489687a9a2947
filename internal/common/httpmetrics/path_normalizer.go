package httpmetrics

import (
	"strings"

	"github.com/google/uuid"
)

const paramSegment = "{param}"

// NormalizePath replaces numeric and uuid path segments with {param} so
// metric labels stay bounded: /api/users/42/verify becomes
// /api/users/{param}/verify.
func NormalizePath(path string) string {
	if path == "" || path == "/" {
		return "/"
	}

	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		if isNumeric(seg) || isUUID(seg) {
			segments[i] = paramSegment
		}
	}
	return strings.Join(segments, "/")
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func isUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
