package nvd

import "encoding/json"

// shapeProbe finds out which generation of the NVD schema a raw record belongs to.
type shapeProbe struct {
	Cve struct {
		ID   string `json:"id"`
		Meta *struct {
			ID string `json:"ID"`
		} `json:"CVE_data_meta"`
	} `json:"cve"`
}

type langValue struct {
	Lang  string `json:"lang"`
	Value string `json:"value"`
}

type reference struct {
	URL string `json:"url"`
}

type cvssData struct {
	Version      string   `json:"version"`
	VectorString string   `json:"vectorString"`
	BaseScore    *float64 `json:"baseScore"`
}

// cpeMatch covers both generations: legacy feeds name the CPE "cpe23Uri", API 2.0 names it "criteria".
type cpeMatch struct {
	Vulnerable            bool   `json:"vulnerable"`
	Cpe23URI              string `json:"cpe23Uri"`
	Criteria              string `json:"criteria"`
	VersionStartIncluding string `json:"versionStartIncluding"`
	VersionStartExcluding string `json:"versionStartExcluding"`
	VersionEndIncluding   string `json:"versionEndIncluding"`
	VersionEndExcluding   string `json:"versionEndExcluding"`
}

func (m cpeMatch) uri() string {
	if m.Criteria != "" {
		return m.Criteria
	}
	return m.Cpe23URI
}

// legacyItem is an element of "CVE_Items" in the JSON 1.1 feeds and the 1.0 REST API.
type legacyItem struct {
	Cve struct {
		Meta struct {
			ID string `json:"ID"`
		} `json:"CVE_data_meta"`
		ProblemType struct {
			Data []struct {
				Description []langValue `json:"description"`
			} `json:"problemtype_data"`
		} `json:"problemtype"`
		References struct {
			Data []reference `json:"reference_data"`
		} `json:"references"`
		Description struct {
			Data []langValue `json:"description_data"`
		} `json:"description"`
	} `json:"cve"`
	Configurations struct {
		Nodes []legacyNode `json:"nodes"`
	} `json:"configurations"`
	Impact struct {
		BaseMetricV3 struct {
			CvssV3 cvssData `json:"cvssV3"`
		} `json:"baseMetricV3"`
		BaseMetricV2 struct {
			CvssV2 cvssData `json:"cvssV2"`
		} `json:"baseMetricV2"`
	} `json:"impact"`
}

// A negated node lists CPEs that are excluded from the configuration.
type legacyNode struct {
	Operator string       `json:"operator"`
	Negate   bool         `json:"negate"`
	Children []legacyNode `json:"children"`
	CPEMatch []cpeMatch   `json:"cpe_match"`
}

// currentItem is an element of "vulnerabilities" in the 2.0 REST API.
type currentItem struct {
	Cve struct {
		ID           string      `json:"id"`
		Descriptions []langValue `json:"descriptions"`
		References   []reference `json:"references"`
		Weaknesses   []weakness  `json:"weaknesses"`
		Metrics      struct {
			CvssMetricV40 []cvssMetric `json:"cvssMetricV40"`
			CvssMetricV31 []cvssMetric `json:"cvssMetricV31"`
			CvssMetricV30 []cvssMetric `json:"cvssMetricV30"`
			CvssMetricV2  []cvssMetric `json:"cvssMetricV2"`
		} `json:"metrics"`
		Configurations []struct {
			Nodes []currentNode `json:"nodes"`
		} `json:"configurations"`
	} `json:"cve"`
}

type weakness struct {
	Source      string      `json:"source"`
	Type        string      `json:"type"`
	Description []langValue `json:"description"`
}

type cvssMetric struct {
	Source   string   `json:"source"`
	Type     string   `json:"type"`
	CvssData cvssData `json:"cvssData"`
}

type currentNode struct {
	Operator string     `json:"operator"`
	Negate   bool       `json:"negate"`
	CPEMatch []cpeMatch `json:"cpeMatch"`
}

// response is one page returned by the REST API. Version 2.0 lists records under
// "vulnerabilities", version 1.0 under "result.CVE_Items".
type response struct {
	ResultsPerPage  int               `json:"resultsPerPage"`
	StartIndex      int               `json:"startIndex"`
	TotalResults    int               `json:"totalResults"`
	Vulnerabilities []json.RawMessage `json:"vulnerabilities"`
	Result          struct {
		CVEItems []json.RawMessage `json:"CVE_Items"`
	} `json:"result"`
}

func (r response) items() []json.RawMessage {
	if len(r.Vulnerabilities) > 0 {
		return r.Vulnerabilities
	}
	return r.Result.CVEItems
}
