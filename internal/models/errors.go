package models

import (
	"errors"
	"fmt"
)

var (
	ErrNoRows                 = errors.New("no rows")
	ErrUNIQUEConstraintFailed = errors.New("unique constraint failed")
	ErrInternal               = errors.New("internal server error")
	ErrMethodNotAllowed       = errors.New("method not allowed")
	ErrForbidden              = errors.New("access denied")
	ErrUnauthorized           = errors.New("authentication required")
	ErrInvalidParams          = errors.New("invalid params")
	ErrUserNotFound           = errors.New("user not found")
	ErrUserExists             = errors.New("user already exists")
	ErrClientNotFound         = errors.New("client not found")
	ErrDocumentNotFound       = errors.New("document not found")
	ErrSessionNotFound        = errors.New("sessions not found")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrLinkExpired            = errors.New("link has expired")
	ErrAlreadySigned          = errors.New("document already signed")
	ErrUpstream               = errors.New("upstream storage failure")
	ErrCorruptDocument        = errors.New("corrupt pdf document")
	ErrInvalidPage            = errors.New("page index out of range")
	ErrBadSignatureImage      = errors.New("signature image is not a valid png")
)

type UniqueConstraintError struct {
	Constraint string
	Err        error
}

func (e *UniqueConstraintError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Constraint)
}

func (e *UniqueConstraintError) Unwrap() error {
	return e.Err
}
