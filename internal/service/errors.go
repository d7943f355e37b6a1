// Package service owns the in-memory conversation collection and the full
// command surface over it: ingest, open, remove, clear, backup, restore,
// relink. The presentation layer is strictly a caller of this interface.
package service

import "errors"

// Sentinel errors for session operations.
// Use errors.Is() to check for these errors in calling code.
var (
	// ErrBadBackupFormat indicates a restore payload without the
	// expected envelope shape (an object whose "chats" field is an
	// array). The in-memory collection is left untouched.
	ErrBadBackupFormat = errors.New("invalid backup file format")

	// ErrConversationNotFound indicates an operation on an identity the
	// collection does not hold.
	ErrConversationNotFound = errors.New("conversation not found")
)
