package nvd

import (
	"encoding/json"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/xerrors"

	"github.com/aquasecurity/cve-tracker/cpe"
	"github.com/aquasecurity/cve-tracker/version"
)

type affected struct {
	cpe cpe.Name
	r   version.Range
}

// Ranges returns the affected-version ranges of every vulnerable CPE match in the record's
// configuration tree. A match with no bound and a wildcard version yields no range.
func Ranges(raw json.RawMessage) ([]version.Range, error) {
	entries, err := affectedEntries(raw)
	if err != nil {
		return nil, err
	}
	return toRanges(entries), nil
}

// RangesForProduct is like Ranges, but when any vulnerable CPE names product only those CPEs are used.
// Products are compared case-insensitively with "-" and "_" treated as equal.
func RangesForProduct(raw json.RawMessage, product string) ([]version.Range, error) {
	entries, err := affectedEntries(raw)
	if err != nil {
		return nil, err
	}

	want := normalizeProduct(product)
	scoped := lo.Filter(entries, func(e affected, _ int) bool {
		return normalizeProduct(e.cpe.Product) == want
	})
	if len(scoped) > 0 {
		entries = scoped
	}
	return toRanges(entries), nil
}

func toRanges(entries []affected) []version.Range {
	ranges := make([]version.Range, 0, len(entries))
	for _, e := range entries {
		ranges = append(ranges, e.r)
	}
	return ranges
}

func normalizeProduct(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
}

func affectedEntries(raw json.RawMessage) ([]affected, error) {
	s, err := detect(raw)
	if err != nil {
		return nil, err
	}

	var matches []cpeMatch
	switch s {
	case shapeCurrent:
		var item currentItem
		if err = json.Unmarshal(raw, &item); err != nil {
			return nil, xerrors.Errorf("unable to decode API 2.0 record (%s): %w", err, ErrShapeMismatch)
		}
		for _, conf := range item.Cve.Configurations {
			for _, node := range conf.Nodes {
				if node.Negate {
					continue
				}
				matches = append(matches, node.CPEMatch...)
			}
		}
	case shapeLegacy:
		var item legacyItem
		if err = json.Unmarshal(raw, &item); err != nil {
			return nil, xerrors.Errorf("unable to decode legacy record (%s): %w", err, ErrShapeMismatch)
		}
		matches = walkLegacy(item.Configurations.Nodes)
	}

	var entries []affected
	for _, m := range matches {
		if !m.Vulnerable {
			continue
		}
		e, ok := toAffected(m)
		if !ok {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func walkLegacy(nodes []legacyNode) []cpeMatch {
	var matches []cpeMatch
	for _, node := range nodes {
		if node.Negate {
			continue
		}
		matches = append(matches, node.CPEMatch...)
		matches = append(matches, walkLegacy(node.Children)...)
	}
	return matches
}

func toAffected(m cpeMatch) (affected, bool) {
	// An unparsable CPE still carries usable bounds, it only loses the exact-match fallback.
	name, _ := cpe.Parse(m.uri())

	r := version.Range{
		StartIncluding: strings.TrimSpace(m.VersionStartIncluding),
		StartExcluding: strings.TrimSpace(m.VersionStartExcluding),
		EndIncluding:   strings.TrimSpace(m.VersionEndIncluding),
		EndExcluding:   strings.TrimSpace(m.VersionEndExcluding),
	}
	if r.IsEmpty() && name.HasVersion() {
		r.ExactVersion = name.Version
	}
	if r.IsEmpty() {
		return affected{}, false
	}
	return affected{cpe: name, r: r}, true
}
