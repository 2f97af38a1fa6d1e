package protocol

import "fmt"

// MissingFieldError reports a required wire field absent from a decoded
// message.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// UnknownCodeError reports a protocol-coded field carrying a value outside
// its closed set.
type UnknownCodeError struct {
	Field string
	Code  string
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("unknown code %q for field %q", e.Code, e.Field)
}

// BadValueError reports a numeric wire field that failed to parse.
type BadValueError struct {
	Field string
	Value string
	err   error
}

func (e *BadValueError) Error() string {
	return fmt.Sprintf("bad value %q for field %q: %v", e.Value, e.Field, e.err)
}

func (e *BadValueError) Unwrap() error { return e.err }

// BadTimestampError reports a timestamp field that is not ISO-8601 with an
// offset.
type BadTimestampError struct {
	Field string
	Value string
	err   error
}

func (e *BadTimestampError) Error() string {
	return fmt.Sprintf("bad timestamp %q for field %q: %v", e.Value, e.Field, e.err)
}

func (e *BadTimestampError) Unwrap() error { return e.err }

// ValidationError reports a builder field left unset that the order's entry
// type requires. This is a caller error: the order must be completed before
// resubmission, nothing is defaulted on the caller's behalf.
type ValidationError struct {
	Field string
	Entry OrderEntryType
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %q is required for a %s order", e.Field, e.Entry)
}
