package trend

import (
	"net/url"
	"strconv"
	"strings"
)

// Endpoint is the backend path serving trend envelopes.
const Endpoint = "/api/ui/trends"

// Query carries the request options for a trend listing. The normalizer
// never looks at it; it only shapes what the backend returns.
type Query struct {
	Keywords string
	Force    bool // bypass the backend cache
	Limit    int  // 0 means backend default
	Flatten  bool
}

// Values encodes the query parameters.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Flatten {
		v.Set("flatten", "1")
	}
	if q.Force {
		v.Set("force", "1")
	}
	if kw := strings.TrimSpace(q.Keywords); kw != "" {
		v.Set("keywords", kw)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// Path returns Endpoint with the encoded query string.
func (q Query) Path() string {
	if enc := q.Values().Encode(); enc != "" {
		return Endpoint + "?" + enc
	}
	return Endpoint
}
