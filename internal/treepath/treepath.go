// Package treepath implements the materialized-path encoding used by the
// category tree. A path is a dot-separated sequence of zero-padded 8-digit
// node ids from the root down to the node itself.
package treepath

import (
	"fmt"
	"strconv"
	"strings"
)

// SegmentLen is the fixed width of one encoded node id.
const SegmentLen = 8

// Separator joins path segments.
const Separator = "."

// Encode returns the zero-padded path segment for a node id.
func Encode(id uint) string {
	return fmt.Sprintf("%0*d", SegmentLen, id)
}

// Child returns the path of a node with the given id under parentPath.
// An empty parentPath produces a root path.
func Child(parentPath string, id uint) string {
	if parentPath == "" {
		return Encode(id)
	}
	return parentPath + Separator + Encode(id)
}

// Split parses a path back into its node ids, root first.
// Malformed segments are skipped; an empty path yields nil.
func Split(path string) []uint {
	if path == "" {
		return nil
	}
	segments := strings.Split(path, Separator)
	ids := make([]uint, 0, len(segments))
	for _, seg := range segments {
		id, err := strconv.ParseUint(seg, 10, 32)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}

// ContainsNode reports whether the path contains the given id as one of
// its segments. The comparison is segment-aligned, so id 3 does not match
// inside the segment for id 30000003.
func ContainsNode(path string, id uint) bool {
	if path == "" {
		return false
	}
	token := Encode(id)
	for _, seg := range strings.Split(path, Separator) {
		if seg == token {
			return true
		}
	}
	return false
}

// IsPrefix reports whether ancestor's path is a prefix of path on a
// segment boundary. A path is considered a prefix of itself.
func IsPrefix(ancestorPath, path string) bool {
	if ancestorPath == "" || len(ancestorPath) > len(path) {
		return false
	}
	if !strings.HasPrefix(path, ancestorPath) {
		return false
	}
	return len(path) == len(ancestorPath) || path[len(ancestorPath)] == '.'
}
