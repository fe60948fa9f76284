package nvd

// Keys lists the fields of a Record in report order.
var Keys = []string{
	"MODULE_SOURCE",
	"ID",
	"ModuleName",
	"Version",
	"BaseScore",
	"CVSSVector",
	"Description",
	"URL",
	"CWE",
}

// Record is a vulnerability normalized across NVD schema generations.
// Every field is a string and a missing upstream value is kept as "".
type Record struct {
	ModuleSource string `json:"MODULE_SOURCE"`
	ID           string `json:"ID"`
	ModuleName   string `json:"ModuleName"`
	Version      string `json:"Version"`
	BaseScore    string `json:"BaseScore"`
	CVSSVector   string `json:"CVSSVector"`
	Description  string `json:"Description"`
	URL          string `json:"URL"`
	CWE          string `json:"CWE"`
}

// Map returns the record keyed by Keys.
func (r Record) Map() map[string]string {
	return map[string]string{
		"MODULE_SOURCE": r.ModuleSource,
		"ID":            r.ID,
		"ModuleName":    r.ModuleName,
		"Version":       r.Version,
		"BaseScore":     r.BaseScore,
		"CVSSVector":    r.CVSSVector,
		"Description":   r.Description,
		"URL":           r.URL,
		"CWE":           r.CWE,
	}
}

// Values returns the record fields in the order of Keys.
func (r Record) Values() []string {
	m := r.Map()
	values := make([]string, 0, len(Keys))
	for _, k := range Keys {
		values = append(values, m[k])
	}
	return values
}
