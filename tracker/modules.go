package tracker

import (
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"
)

// ModuleList is the input of a run: where the modules were discovered and what they are.
//
//	source: bazel
//	modules:
//	  - name: cereal
//	    version: 1.3.0
type ModuleList struct {
	Source  string   `yaml:"source"`
	Modules []Module `yaml:"modules"`
}

func LoadModules(fs afero.Fs, filePath string) (ModuleList, error) {
	b, err := afero.ReadFile(fs, filePath)
	if err != nil {
		return ModuleList{}, xerrors.Errorf("unable to read %s: %w", filePath, err)
	}

	var list ModuleList
	if err = yaml.UnmarshalStrict(b, &list); err != nil {
		return ModuleList{}, xerrors.Errorf("unable to parse %s: %w", filePath, err)
	}

	for i, m := range list.Modules {
		if strings.TrimSpace(m.Name) == "" {
			return ModuleList{}, xerrors.Errorf("module #%d in %s has no name", i+1, filePath)
		}
		list.Modules[i].Name = strings.TrimSpace(m.Name)
	}
	return list, nil
}
