package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// CoverFile is the result of parsing a synced image filename.
type CoverFile struct {
	Handle   string
	Internal int // 0 = primary cover, 1..n = internals position
}

var coverFileRE = regexp.MustCompile(`^([a-z0-9][a-z0-9-]*?)(?:_(\d+))?\.(png|jpg|jpeg)$`)

// ParseCoverFilename parses a cover image filename following the pattern
// HANDLE.EXT for the primary cover or HANDLE_N.EXT for the Nth internal image.
// Examples: "the-sea-wall.jpg", "the-sea-wall_2.png".
func ParseCoverFilename(filename string) (*CoverFile, error) {
	m := coverFileRE.FindStringSubmatch(strings.ToLower(strings.TrimSpace(filename)))
	if m == nil {
		return nil, fmt.Errorf("invalid cover filename: expected HANDLE.EXT or HANDLE_N.EXT, got %s", filename)
	}

	cf := &CoverFile{Handle: m[1]}
	if m[2] != "" {
		n, err := strconv.Atoi(m[2])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid internal image index in filename %s", filename)
		}
		cf.Internal = n
	}
	return cf, nil
}
