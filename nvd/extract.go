package nvd

import (
	"encoding/json"
	"fmt"

	"github.com/goark/go-cvss/v3/metric"
	"github.com/samber/lo"
	"golang.org/x/xerrors"
)

// ErrShapeMismatch is returned when a raw record carries no identifier under either schema generation.
var ErrShapeMismatch = xerrors.New("record matches no known NVD schema")

type shape int

const (
	shapeUnknown shape = iota
	shapeLegacy
	shapeCurrent
)

const primaryType = "Primary"

// detect probes the current schema first and falls back to the legacy one.
func detect(raw json.RawMessage) (shape, error) {
	var probe shapeProbe
	if err := json.Unmarshal(raw, &probe); err != nil {
		return shapeUnknown, xerrors.Errorf("unable to decode record (%s): %w", err, ErrShapeMismatch)
	}
	switch {
	case probe.Cve.ID != "":
		return shapeCurrent, nil
	case probe.Cve.Meta != nil && probe.Cve.Meta.ID != "":
		return shapeLegacy, nil
	}
	return shapeUnknown, ErrShapeMismatch
}

// Extract normalizes a single raw NVD record. It does not check whether ver is affected.
func Extract(source, moduleName, ver string, raw json.RawMessage) (Record, error) {
	s, err := detect(raw)
	if err != nil {
		return Record{}, err
	}

	record := Record{
		ModuleSource: source,
		ModuleName:   moduleName,
		Version:      ver,
	}

	switch s {
	case shapeCurrent:
		var item currentItem
		if err = json.Unmarshal(raw, &item); err != nil {
			return Record{}, xerrors.Errorf("unable to decode API 2.0 record (%s): %w", err, ErrShapeMismatch)
		}
		item.fill(&record)
	case shapeLegacy:
		var item legacyItem
		if err = json.Unmarshal(raw, &item); err != nil {
			return Record{}, xerrors.Errorf("unable to decode legacy record (%s): %w", err, ErrShapeMismatch)
		}
		item.fill(&record)
	}
	return record, nil
}

func (item currentItem) fill(r *Record) {
	cve := item.Cve
	r.ID = cve.ID
	r.Description = englishOrFirst(cve.Descriptions)
	if len(cve.References) > 0 {
		r.URL = cve.References[0].URL
	}

	// Highest CVSS version wins, then the Primary entry inside that version.
	for _, metrics := range [][]cvssMetric{
		cve.Metrics.CvssMetricV40,
		cve.Metrics.CvssMetricV31,
		cve.Metrics.CvssMetricV30,
		cve.Metrics.CvssMetricV2,
	} {
		if len(metrics) == 0 {
			continue
		}
		m, ok := lo.Find(metrics, func(m cvssMetric) bool { return m.Type == primaryType })
		if !ok {
			m = metrics[0]
		}
		r.BaseScore, r.CVSSVector = scoreAndVector(m.CvssData)
		break
	}

	weaknesses := cve.Weaknesses
	if w, ok := lo.Find(weaknesses, func(w weakness) bool { return w.Type == primaryType }); ok {
		r.CWE = englishOrFirst(w.Description)
	} else if len(weaknesses) > 0 {
		r.CWE = englishOrFirst(weaknesses[0].Description)
	}
}

func (item legacyItem) fill(r *Record) {
	cve := item.Cve
	r.ID = cve.Meta.ID
	r.Description = englishOrFirst(cve.Description.Data)
	if len(cve.References.Data) > 0 {
		r.URL = cve.References.Data[0].URL
	}

	v3 := item.Impact.BaseMetricV3.CvssV3
	if v3.VectorString != "" || v3.BaseScore != nil {
		r.BaseScore, r.CVSSVector = scoreAndVector(v3)
	} else {
		r.BaseScore, r.CVSSVector = scoreAndVector(item.Impact.BaseMetricV2.CvssV2)
	}

	if len(cve.ProblemType.Data) > 0 {
		r.CWE = englishOrFirst(cve.ProblemType.Data[0].Description)
	}
}

// scoreAndVector formats the base score with one decimal. A CVSS v3 vector without a score
// is scored locally.
func scoreAndVector(d cvssData) (string, string) {
	if d.BaseScore != nil {
		return fmt.Sprintf("%.1f", *d.BaseScore), d.VectorString
	}
	if d.VectorString == "" {
		return "", ""
	}
	bm, err := metric.NewBase().Decode(d.VectorString)
	if err != nil {
		return "", d.VectorString
	}
	return fmt.Sprintf("%.1f", bm.Score()), d.VectorString
}

func englishOrFirst(values []langValue) string {
	if v, ok := lo.Find(values, func(v langValue) bool { return v.Lang == "en" }); ok {
		return v.Value
	}
	if len(values) > 0 {
		return values[0].Value
	}
	return ""
}
