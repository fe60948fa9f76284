package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aquasecurity/cve-tracker/version"
)

func TestMatches(t *testing.T) {
	artifactory := version.Range{
		StartIncluding: "7.11.0",
		EndExcluding:   "7.11.8",
	}

	tests := []struct {
		name    string
		version string
		r       version.Range
		want    bool
	}{
		{
			name:    "inside start/end range",
			version: "7.11.3",
			r:       artifactory,
			want:    true,
		},
		{
			name:    "leading space",
			version: " 7.11.3",
			r:       artifactory,
			want:    true,
		},
		{
			name:    "trailing space and newline",
			version: "7.11.3 \n",
			r:       artifactory,
			want:    true,
		},
		{
			name:    "before start",
			version: "7.10.0",
			r:       artifactory,
			want:    false,
		},
		{
			name:    "equal to inclusive start",
			version: "7.11.0",
			r:       artifactory,
			want:    true,
		},
		{
			name:    "equal to exclusive end",
			version: "7.11.8",
			r:       artifactory,
			want:    false,
		},
		{
			name:    "end excluding only, below",
			version: "2.9.99",
			r:       version.Range{EndExcluding: "3.0"},
			want:    true,
		},
		{
			name:    "end excluding only, equal",
			version: "3.0",
			r:       version.Range{EndExcluding: "3.0"},
			want:    false,
		},
		{
			name:    "end including, equal",
			version: "1.3.0",
			r:       version.Range{EndIncluding: "1.3.0"},
			want:    true,
		},
		{
			name:    "end including, above",
			version: "1.3.1",
			r:       version.Range{EndIncluding: "1.3.0"},
			want:    false,
		},
		{
			name:    "start excluding, equal",
			version: "2.0",
			r:       version.Range{StartExcluding: "2.0"},
			want:    false,
		},
		{
			name:    "start excluding, above",
			version: "2.0.1",
			r:       version.Range{StartExcluding: "2.0"},
			want:    true,
		},
		{
			name:    "exact match",
			version: " 14.9.2",
			r:       version.Range{ExactVersion: "14.9.2"},
			want:    true,
		},
		{
			name:    "exact match is not a range",
			version: "14.9.2.0",
			r:       version.Range{ExactVersion: "14.9.2"},
			want:    false,
		},
		{
			name:    "no bounds fails closed",
			version: "1.0.0",
			r:       version.Range{},
			want:    false,
		},
		{
			name:    "empty version",
			version: "",
			r:       version.Range{EndExcluding: "1.0"},
			want:    true,
		},
		{
			name:    "malformed version does not panic",
			version: "not.a.version",
			r:       artifactory,
			want:    false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := version.Matches(tt.version, tt.r)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchesAny(t *testing.T) {
	ranges := []version.Range{
		{StartIncluding: "1.0", EndExcluding: "1.5"},
		{ExactVersion: "2.0.0"},
	}
	assert.True(t, version.MatchesAny("1.4.9", ranges))
	assert.True(t, version.MatchesAny("2.0.0", ranges))
	assert.False(t, version.MatchesAny("1.5", ranges))
	assert.False(t, version.MatchesAny("1.0", nil))
}

func TestRange_String(t *testing.T) {
	tests := []struct {
		name string
		r    version.Range
		want string
	}{
		{
			name: "bounds",
			r:    version.Range{StartIncluding: "7.11.0", EndExcluding: "7.11.8"},
			want: ">= 7.11.0, < 7.11.8",
		},
		{
			name: "exact",
			r:    version.Range{ExactVersion: "1.2.3"},
			want: "= 1.2.3",
		},
		{
			name: "empty",
			want: "<none>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.r.String())
			assert.Equal(t, tt.want == "<none>", tt.r.IsEmpty())
		})
	}
}
