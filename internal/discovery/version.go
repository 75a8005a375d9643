package discovery

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a dotted numeric version as it appears as a configuration-store
// key name, e.g. "11.0" or "15.0.4153.1". The original spelling is retained
// so that selected versions can be passed back to the native API verbatim.
type Version struct {
	segments []uint64
	raw      string
}

// ParseVersion parses a dotted numeric version string. Any non-numeric or
// overflowing segment makes the whole string invalid.
func ParseVersion(s string) (Version, error) {
	if s == "" {
		return Version{}, fmt.Errorf("empty version string")
	}
	parts := strings.Split(s, ".")
	segments := make([]uint64, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return Version{}, fmt.Errorf("version %q: segment %q: %w", s, p, err)
		}
		segments[i] = n
	}
	return Version{segments: segments, raw: s}, nil
}

// Compare returns -1, 0 or 1 ordering v against o. Missing trailing segments
// compare as zero, so "11.0" equals "11.0.0".
func (v Version) Compare(o Version) int {
	n := len(v.segments)
	if len(o.segments) > n {
		n = len(o.segments)
	}
	for i := 0; i < n; i++ {
		a, b := v.segment(i), o.segment(i)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
	}
	return 0
}

func (v Version) segment(i int) uint64 {
	if i < len(v.segments) {
		return v.segments[i]
	}
	return 0
}

// IsZero reports whether v is the zero Version (never produced by a
// successful ParseVersion).
func (v Version) IsZero() bool { return v.segments == nil }

func (v Version) String() string { return v.raw }
