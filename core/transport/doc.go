// Package transport is the HTTP client shared by the media server providers.
//
// Every request is rate limited, carries the provider's auth headers and
// asks for JSON. Non-2xx answers surface as *StatusError so callers can
// tell an authentication failure from a network error with errors.As.
package transport
