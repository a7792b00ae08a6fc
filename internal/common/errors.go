// Package common defines sentinel errors shared by the store, the share-link
// codec, and the client and server surfaces. Callers should use errors.Is to
// match these values; producers wrap them with context via fmt.Errorf("%w").
package common

import "errors"

var (
	// Input errors. Surfaced inline to the user.
	ErrorValidation = errors.New("validation error")

	// Store-level errors.
	ErrorNotFound = errors.New("not found")

	// Share-link errors.
	ErrorMalformedShareLink = errors.New("malformed share link")

	// ErrorPersistence marks a failed durable-store read or write. It is a
	// warning: in-memory state stays usable for the rest of the session.
	ErrorPersistence = errors.New("persistence failure")

	// Session errors (missing, invalid or expired principal).
	ErrorUnauthorized = errors.New("unauthorized")
)
