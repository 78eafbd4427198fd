// Package common contains header names and small helpers shared by the
// FileDrive client packages.
package common

const (
	// AuthorizationHeader carries the bearer credential on API requests.
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "

	// RequestIDHeader correlates a request with client log lines.
	RequestIDHeader = "X-Request-Id"

	ContentTypeHeader  = "Content-Type"
	DefaultContentType = "application/octet-stream"
)
