package repository

import "errors"

// ErrNotFound is returned when a requested record is not found in the repository.
// This abstracts away the underlying storage implementation from the service layer.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint
// (same email, same access code, or a second vote in one election).
var ErrDuplicate = errors.New("duplicate record")

// ErrStateChanged is returned when a conditional lifecycle update matched no row
// because the election moved on between the read and the write.
var ErrStateChanged = errors.New("election state changed")
