package version

import (
	"fmt"
	"strings"
)

// Range is one affected-version specification attached to a vulnerability.
// An empty field is absent. ExactVersion is mutually exclusive with the bounds.
type Range struct {
	ExactVersion   string `json:"exactVersion,omitempty"`
	StartIncluding string `json:"startIncluding,omitempty"`
	StartExcluding string `json:"startExcluding,omitempty"`
	EndIncluding   string `json:"endIncluding,omitempty"`
	EndExcluding   string `json:"endExcluding,omitempty"`
}

// IsEmpty reports whether no exact version and no bound is set.
func (r Range) IsEmpty() bool {
	return r.ExactVersion == "" && !r.hasBounds()
}

func (r Range) hasBounds() bool {
	return r.StartIncluding != "" || r.StartExcluding != "" || r.EndIncluding != "" || r.EndExcluding != ""
}

func (r Range) String() string {
	if r.ExactVersion != "" {
		return "= " + r.ExactVersion
	}
	var constraints []string
	for _, c := range []struct {
		op, v string
	}{
		{">=", r.StartIncluding},
		{">", r.StartExcluding},
		{"<=", r.EndIncluding},
		{"<", r.EndExcluding},
	} {
		if c.v != "" {
			constraints = append(constraints, fmt.Sprintf("%s %s", c.op, c.v))
		}
	}
	if len(constraints) == 0 {
		return "<none>"
	}
	return strings.Join(constraints, ", ")
}

// Matches reports whether ver falls inside r. Surrounding whitespace in ver is ignored.
// A range with neither an exact version nor a bound matches nothing.
func Matches(ver string, r Range) bool {
	ver = strings.TrimSpace(ver)
	if r.ExactVersion != "" {
		return ver == strings.TrimSpace(r.ExactVersion)
	}
	if !r.hasBounds() {
		return false
	}

	if r.StartIncluding != "" && Compare(ver, r.StartIncluding) < 0 {
		return false
	}
	if r.StartExcluding != "" && Compare(ver, r.StartExcluding) <= 0 {
		return false
	}
	if r.EndIncluding != "" && Compare(ver, r.EndIncluding) > 0 {
		return false
	}
	if r.EndExcluding != "" && Compare(ver, r.EndExcluding) >= 0 {
		return false
	}
	return true
}

// MatchesAny reports whether ver falls inside at least one of ranges.
func MatchesAny(ver string, ranges []Range) bool {
	for _, r := range ranges {
		if Matches(ver, r) {
			return true
		}
	}
	return false
}
