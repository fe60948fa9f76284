package main

import (
	"flag"
	"log"
	"net/url"

	"github.com/spf13/afero"
	"golang.org/x/xerrors"

	"github.com/aquasecurity/cve-tracker/nvd"
	"github.com/aquasecurity/cve-tracker/report"
	"github.com/aquasecurity/cve-tracker/tracker"
	"github.com/aquasecurity/cve-tracker/utils"
)

var (
	modulesFile = flag.String("modules", "modules.yaml", "YAML file listing the source label and the modules to check")
	source      = flag.String("source", "", "label of where the modules were discovered (overrides the modules file)")
	output      = flag.String("output", "cve-report.json", "report path")
	format      = flag.String("format", report.FormatJSON, "report format (json, csv)")
	concurrency = flag.Int("concurrency", 5, "number of modules queried in parallel")
	baseURL     = flag.String("base-url", "", "NVD CVE API endpoint (default: NVD API 2.0)")
	progress    = flag.Bool("progress", false, "show a progress bar")
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	flag.Parse()
	fs := afero.NewOsFs()

	list, err := tracker.LoadModules(fs, *modulesFile)
	if err != nil {
		return xerrors.Errorf("unable to load modules: %w", err)
	}
	if *source != "" {
		list.Source = *source
	}
	if list.Source == "" {
		return xerrors.New("source must be specified")
	}

	var opts []nvd.Option
	if *baseURL != "" {
		u, err := url.Parse(*baseURL)
		if err != nil {
			return xerrors.Errorf("invalid base URL: %w", err)
		}
		opts = append(opts, nvd.WithBaseURL(u))
	}
	client := nvd.NewClient(opts...)

	t := tracker.New(client,
		tracker.WithConcurrency(*concurrency),
		tracker.WithAPIKey(utils.LookupEnv("NVD_API_KEY", "")),
		tracker.WithProgressBar(*progress),
	)

	log.Printf("Checking %d modules from %s...", len(list.Modules), list.Source)
	records, err := t.CheckAll(list.Source, list.Modules)
	if err != nil {
		return xerrors.Errorf("error in CVE lookup: %w", err)
	}
	log.Printf("%d vulnerabilities found", len(records))

	if err = report.NewWriter(fs).Write(*output, *format, records); err != nil {
		return xerrors.Errorf("unable to save report: %w", err)
	}
	log.Printf("report saved to %s", *output)

	return nil
}
