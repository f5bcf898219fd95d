package deflog

import "errors"

var (
	ErrTooShort        = errors.New("frame too short")
	ErrTooLong         = errors.New("frame too long")
	ErrInvalidSeverity = errors.New("invalid severity")
	ErrInvalidTag      = errors.New("invalid format tag")
	ErrTruncated       = errors.New("frame truncated")
	ErrCorruptFrame    = errors.New("corrupt frame")
	ErrBadMagic        = errors.New("not a deflog stream")
)
