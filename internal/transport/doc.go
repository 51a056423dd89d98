// Package transport is the HTTP client the repositories talk through.
//
// It knows nothing about records: it sends JSON, reads the whole body and
// reports failure in one shape (apperrors transport errors with the HTTP
// status attached). Retry and backoff are deliberately absent; the timeout is
// the http.Client timeout configured with WithTimeout.
package transport
