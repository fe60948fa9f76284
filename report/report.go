package report

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"golang.org/x/xerrors"

	"github.com/aquasecurity/cve-tracker/nvd"
	"github.com/aquasecurity/cve-tracker/utils"
)

const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

type Writer struct {
	fs utils.Fs
}

func NewWriter(appFs afero.Fs) Writer {
	return Writer{fs: utils.NewFs(appFs)}
}

// Write saves records to filePath in the given format.
func (w Writer) Write(filePath, format string, records []nvd.Record) error {
	switch format {
	case FormatJSON, "":
		return w.WriteJSON(filePath, records)
	case FormatCSV:
		return w.WriteCSV(filePath, records)
	}
	return xerrors.Errorf("unknown report format: %s", format)
}

// WriteJSON saves records as an array of objects keyed like nvd.Keys. No records is written as [].
func (w Writer) WriteJSON(filePath string, records []nvd.Record) error {
	if err := w.mkdir(filePath); err != nil {
		return err
	}
	if records == nil {
		records = []nvd.Record{}
	}
	if err := w.fs.WriteJSON(filePath, records); err != nil {
		return xerrors.Errorf("unable to write JSON report: %w", err)
	}
	return nil
}

// WriteCSV saves records with a header row of nvd.Keys.
func (w Writer) WriteCSV(filePath string, records []nvd.Record) error {
	if err := w.mkdir(filePath); err != nil {
		return err
	}

	f, err := w.fs.AppFs.Create(filePath)
	if err != nil {
		return xerrors.Errorf("unable to open a file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err = cw.Write(nvd.Keys); err != nil {
		return xerrors.Errorf("unable to write CSV header: %w", err)
	}
	for _, r := range records {
		if err = cw.Write(r.Values()); err != nil {
			return xerrors.Errorf("unable to write CSV row for %s: %w", r.ID, err)
		}
	}
	cw.Flush()
	if err = cw.Error(); err != nil {
		return xerrors.Errorf("unable to flush CSV report: %w", err)
	}
	return nil
}

func (w Writer) mkdir(filePath string) error {
	dir := filepath.Dir(filePath)
	if err := w.fs.AppFs.MkdirAll(dir, os.ModePerm); err != nil {
		return xerrors.Errorf("unable to create %s: %w", dir, err)
	}
	return nil
}
