package cpe

import (
	"strings"

	"golang.org/x/xerrors"
)

const prefix = "cpe:2.3:"

// Name holds the components of a CPE 2.3 formatted string that matter for version matching.
type Name struct {
	Part    string
	Vendor  string
	Product string
	Version string
	Update  string
}

// Parse splits a formatted string binding such as
// "cpe:2.3:a:jfrog:artifactory:*:*:*:*:enterprise\+:*:*:*".
// Escaped colons ("\:") stay inside their component and escapes are removed from the result.
func Parse(uri string) (Name, error) {
	if !strings.HasPrefix(uri, prefix) {
		return Name{}, xerrors.Errorf("invalid CPE 2.3 prefix: %s", uri)
	}

	parts := split(strings.TrimPrefix(uri, prefix))
	if len(parts) < 4 {
		return Name{}, xerrors.Errorf("too few CPE components: %s", uri)
	}

	n := Name{
		Part:    parts[0],
		Vendor:  unescape(parts[1]),
		Product: unescape(parts[2]),
		Version: unescape(parts[3]),
	}
	if len(parts) > 4 {
		n.Update = unescape(parts[4])
	}
	return n, nil
}

// HasVersion reports whether the version component is a concrete value rather than ANY ("*") or NA ("-").
func (n Name) HasVersion() bool {
	return n.Version != "" && n.Version != "*" && n.Version != "-"
}

func split(s string) []string {
	var (
		parts   []string
		current strings.Builder
		escaped bool
	)
	for _, r := range s {
		switch {
		case escaped:
			current.WriteRune('\\')
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == ':':
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if escaped {
		current.WriteRune('\\')
	}
	return append(parts, current.String())
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	var escaped bool
	for _, r := range s {
		if r == '\\' && !escaped {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}
