// Package httpapi talks to a v1.1-style statuses API over HTTP.
//
// Requests go through github.com/hashicorp/go-retryablehttp, which retries
// connection errors, 429 and 5xx responses with backoff, and through a token
// bucket that keeps the client under the configured request rate. Status JSON
// is decoded with github.com/tidwall/gjson so that 64-bit ids are read from
// their string form (or raw digits) and never pass through float64.
//
// Client implements timeline.Actions; Client.Source returns a
// timeline.Paginator for one column.
package httpapi
