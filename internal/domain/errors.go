package domain

import (
	"errors"
	"fmt"
)

// ValidationError rejects malformed input; it is always reported to the caller.
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	switch {
	case e.Field != "" && e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Field != "":
		return fmt.Sprintf("invalid %s", e.Field)
	default:
		return "validation error"
	}
}

// NotFoundError reports a missing destination, package or booking.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// LocalPersistenceError means the durable booking cache could not be written
// or read; the booking list was not changed.
type LocalPersistenceError struct {
	Op  string
	Err error
}

func (e LocalPersistenceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("local persistence %s failed", e.Op)
	}
	return fmt.Sprintf("local persistence %s failed: %v", e.Op, e.Err)
}

func (e LocalPersistenceError) Unwrap() error { return e.Err }

// RemoteMirrorError is produced by the asynchronous mirror write. It never
// reaches the booking creator.
type RemoteMirrorError struct {
	BookingID string
	Err       error
}

func (e RemoteMirrorError) Error() string {
	return fmt.Sprintf("mirror booking %s: %v", e.BookingID, e.Err)
}

func (e RemoteMirrorError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsLocalPersistence(err error) bool {
	var target LocalPersistenceError
	return errors.As(err, &target)
}

func IsRemoteMirror(err error) bool {
	var target RemoteMirrorError
	return errors.As(err, &target)
}
