package nvd

import (
	"encoding/json"
	"log"
	"net/url"
	"strconv"

	"github.com/samber/lo"
	"golang.org/x/xerrors"

	"github.com/aquasecurity/cve-tracker/utils"
)

const (
	url20          = "https://services.nvd.nist.gov/rest/json/cves/2.0/"
	apiKeyEnvName  = "NVD_API_KEY"
	apiKeyHeader   = "apiKey"
	retry          = 3
	resultsPerPage = 2000 // max page size of the 2.0 API
)

type options struct {
	baseURL        *url.URL
	apiKey         string
	retry          int
	resultsPerPage int
}

type Option func(*options)

func WithBaseURL(u *url.URL) Option {
	return func(opts *options) { opts.baseURL = u }
}

// WithAPIKey sets the key used when QueryModuleCVEs is called without one.
func WithAPIKey(apiKey string) Option {
	return func(opts *options) { opts.apiKey = apiKey }
}

func WithRetry(retry int) Option {
	return func(opts *options) { opts.retry = retry }
}

func WithResultsPerPage(n int) Option {
	return func(opts *options) { opts.resultsPerPage = n }
}

// Client queries the NVD CVE API for records mentioning a module.
type Client struct {
	*options
}

func NewClient(opts ...Option) Client {
	o := &options{
		baseURL:        lo.Must(url.Parse(url20)),
		apiKey:         utils.LookupEnv(apiKeyEnvName, ""),
		retry:          retry,
		resultsPerPage: resultsPerPage,
	}
	for _, opt := range opts {
		opt(o)
	}
	return Client{
		options: o,
	}
}

// QueryModuleCVEs returns the raw records the API lists for moduleName, in API order.
// Any failure is logged and reported as no records; the result is never nil.
func (c Client) QueryModuleCVEs(moduleName, apiKey string) []json.RawMessage {
	items, err := c.query(moduleName, apiKey)
	if err != nil {
		log.Printf("NVD query for %q failed: %s", moduleName, err)
		return []json.RawMessage{}
	}
	return items
}

func (c Client) query(moduleName, apiKey string) ([]json.RawMessage, error) {
	if apiKey == "" {
		apiKey = c.apiKey
	}
	var headers map[string]string
	if apiKey != "" {
		headers = map[string]string{apiKeyHeader: apiKey}
	}

	items := []json.RawMessage{}
	for startIndex := 0; ; {
		pageURL := c.urlWithParams(moduleName, startIndex)
		b, err := utils.FetchURL(pageURL, headers, c.retry)
		if err != nil {
			return nil, xerrors.Errorf("unable to fetch %q: %w", pageURL, err)
		}

		var page response
		if err = json.Unmarshal(b, &page); err != nil {
			return nil, xerrors.Errorf("unable to decode response for %q: %w", pageURL, err)
		}

		pageItems := page.items()
		items = append(items, pageItems...)
		startIndex += len(pageItems)
		if len(pageItems) == 0 || startIndex >= page.TotalResults {
			break
		}
	}
	return items, nil
}

func (c Client) urlWithParams(moduleName string, startIndex int) string {
	u := *c.baseURL
	q := u.Query()
	q.Set("keywordSearch", moduleName)
	q.Set("startIndex", strconv.Itoa(startIndex))
	q.Set("resultsPerPage", strconv.Itoa(c.resultsPerPage))
	u.RawQuery = q.Encode()
	return u.String()
}
