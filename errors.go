package cuuid

import "errors"

var (
	// ErrInvalidFormat indicates that a requested format length is not
	// one of the supported lengths (or is zero/negative)
	ErrInvalidFormat = errors.New("cuuid: invalid format length")

	// ErrLengthMismatch indicates that the string length does not match
	// the expected format length supplied by the caller
	ErrLengthMismatch = errors.New("cuuid: string length does not match expected format")

	// ErrUnsupportedLength indicates that the string length matches none
	// of the supported formats
	ErrUnsupportedLength = errors.New("cuuid: string length matches no supported format")

	// ErrParse indicates that the string contains characters outside the
	// format's alphabet or malformed canonical hyphens
	ErrParse = errors.New("cuuid: malformed UUID string")

	// ErrInvalidLength indicates that a UUID byte slice has incorrect length
	ErrInvalidLength = errors.New("cuuid: invalid UUID length (expected 16 bytes)")
)
