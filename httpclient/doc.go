// Package httpclient is the pooled HTTP client used for every call to the
// speech platform. One Client is built at startup and shared; it applies a
// default auth header, a bounded timeout and retry on 429/5xx.
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://westeurope.api.cognitive.microsoft.com/speechtotext/v3.1",
//	    Auth:    httpclient.APIKeyAuthHeader(key, "Ocp-Apim-Subscription-Key"),
//	    Retry:   httpclient.DefaultRetryConfig(),
//	})
//	jobs, err := httpclient.Get[listPage](client, ctx, "/transcriptions")
//
// The sse subpackage reads text/event-stream bodies returned by DoStream.
package httpclient
