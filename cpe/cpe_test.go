package cpe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquasecurity/cve-tracker/cpe"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		uri         string
		want        cpe.Name
		wantVersion bool
		wantErr     string
	}{
		{
			name: "wildcard version",
			uri:  `cpe:2.3:a:jfrog:artifactory:*:*:*:*:enterprise\+:*:*:*`,
			want: cpe.Name{
				Part:    "a",
				Vendor:  "jfrog",
				Product: "artifactory",
				Version: "*",
				Update:  "*",
			},
		},
		{
			name: "concrete version",
			uri:  "cpe:2.3:a:gitlab:gitlab:14.9.2:*:*:*:community:*:*:*",
			want: cpe.Name{
				Part:    "a",
				Vendor:  "gitlab",
				Product: "gitlab",
				Version: "14.9.2",
				Update:  "*",
			},
			wantVersion: true,
		},
		{
			name: "escaped characters",
			uri:  `cpe:2.3:a:vendor:foo\:bar:1\.0:rc1:*:*:*:*:*:*`,
			want: cpe.Name{
				Part:    "a",
				Vendor:  "vendor",
				Product: "foo:bar",
				Version: "1.0",
				Update:  "rc1",
			},
			wantVersion: true,
		},
		{
			name: "not applicable version",
			uri:  "cpe:2.3:o:linux:linux_kernel:-:*:*:*:*:*:*:*",
			want: cpe.Name{
				Part:    "o",
				Vendor:  "linux",
				Product: "linux_kernel",
				Version: "-",
				Update:  "*",
			},
		},
		{
			name:    "legacy 2.2 URI",
			uri:     "cpe:/a:usc:cereal:1.3.0",
			wantErr: "invalid CPE 2.3 prefix",
		},
		{
			name:    "too short",
			uri:     "cpe:2.3:a:usc",
			wantErr: "too few CPE components",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cpe.Parse(tt.uri)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantVersion, got.HasVersion())
		})
	}
}
