package http

import "net/http"

// apiKeyTransport appends the service API key as a query parameter, the way
// the generative-language endpoint expects it. The key never appears in
// request logs because the logging transport sits above it in the chain.
type apiKeyTransport struct {
	param     string
	key       string
	transport http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.key == "" {
		return t.transport.RoundTrip(req)
	}

	reqCopy := req.Clone(req.Context())
	q := reqCopy.URL.Query()
	q.Set(t.param, t.key)
	reqCopy.URL.RawQuery = q.Encode()

	return t.transport.RoundTrip(reqCopy)
}

func WithAPIKey(param, key string) HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &apiKeyTransport{
			param:     param,
			key:       key,
			transport: rt,
		}
	})
}
