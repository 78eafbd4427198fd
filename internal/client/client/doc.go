// Package client talks to the FileDrive backend API.
//
// # Overview
//
//  1. Client is the transport-agnostic contract: list files, request upload
//     and download tickets, delete, list activity, share, profile.
//  2. HTTPClient implements it over HTTP+JSON. Each request carries
//     "Authorization: Bearer <credential>" and an X-Request-Id.
//
// # Error Handling
//
// Failures are reported with sentinel errors matched through errors.Is:
//
//   - ErrSessionExpired: HTTP 401, the caller must log the user out;
//   - ErrNetwork: transport failure, safe to retry by hand;
//   - ErrFetch, ErrUpload, ErrDownload, ErrDelete, ErrUpdate: the operation
//     failed; a wrapped *StatusError carries the backend's message, and
//     malformed payloads wrap models.ErrInvalidRecord.
//
// Nothing in this package retries.
package client
