package utils

import (
	"encoding/json"

	"golang.org/x/xerrors"

	"github.com/spf13/afero"
)

// Fs writes reports through afero so tests can run against an in-memory filesystem.
type Fs struct {
	AppFs afero.Fs
}

func NewFs(appFs afero.Fs) Fs {
	return Fs{AppFs: appFs}
}

// WriteJSON writes data as indented JSON followed by a newline, replacing filePath.
func (fs Fs) WriteJSON(filePath string, data interface{}) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return xerrors.Errorf("failed to marshal JSON: %w", err)
	}

	f, err := fs.AppFs.Create(filePath)
	if err != nil {
		return xerrors.Errorf("unable to open a file: %w", err)
	}
	defer f.Close()

	if _, err = f.Write(append(b, '\n')); err != nil {
		return xerrors.Errorf("failed to save a file: %w", err)
	}
	return nil
}
