// Package services orchestrates the user-facing file operations: listing,
// upload, download, deletion, sharing, activity and profile.
//
// Each operation takes the current state.State and returns the next one
// with Status set to the message for the user. Errors are returned as well
// so the caller can tell fatal ones (client.IsFatal) from the rest; a
// non-fatal error never leaves the state half-updated.
//
// Operations run through an ops.Tracker, so starting one while the same
// kind is still pending fails with ops.ErrBusy.
package services
