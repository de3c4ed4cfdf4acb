// Package client talks to the SnipKeeper HTTP API.
//
// HTTPClient implements the Client contract over JSON requests, attaching
// the bearer token when one is set. Server error bodies are decoded into
// *APIError; transport failures wrap ErrUnavailable and 401/403 answers wrap
// ErrUnauthorized, so callers can match both with errors.Is.
package client
