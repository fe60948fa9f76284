package version

import (
	"strconv"
	"strings"
)

// Compare orders two free-form version strings.
//
// Both sides are split on "." and compared component by component. Components that both
// parse as integers are compared numerically, anything else is compared as a string. The
// shorter side is padded with "0" components, so "1.2" equals "1.2.0".
//
// This is not SemVer precedence. Pre-release suffixes such as "1.3.0-rc1" end up in a
// string comparison against the matching component ("0-rc1" vs "0") and may sort after
// the release they precede.
func Compare(a, b string) int {
	as := strings.Split(strings.TrimSpace(a), ".")
	bs := strings.Split(strings.TrimSpace(b), ".")

	n := len(as)
	if len(bs) > n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		if c := compareComponent(component(as, i), component(bs, i)); c != 0 {
			return c
		}
	}
	return 0
}

func component(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return "0"
}

func compareComponent(a, b string) int {
	ai, aErr := strconv.ParseUint(a, 10, 64)
	bi, bErr := strconv.ParseUint(b, 10, 64)
	if aErr == nil && bErr == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}
