package codec

import "errors"

var (
	// ErrBufferTooShort account data ends before the layout does
	ErrBufferTooShort = errors.New("account data too short")

	// ErrSizeMismatch account data is not the expected fixed size
	ErrSizeMismatch = errors.New("account size mismatch")

	// ErrMalformedString a length-prefixed string overruns the buffer or its cap
	ErrMalformedString = errors.New("malformed length-prefixed string")

	// ErrUnknownStatus status ordinal outside the known enum range
	ErrUnknownStatus = errors.New("unknown status ordinal")

	// ErrMalformedOption option tag is neither 0 nor 1
	ErrMalformedOption = errors.New("malformed option tag")

	// ErrStringTooLong encode input exceeds the on-chain field cap
	ErrStringTooLong = errors.New("string exceeds field cap")
)
