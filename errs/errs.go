// Package errs defines the typed error taxonomy used across kdbv1.
//
// Simple, parameterless failures are sentinel values that can be compared
// with errors.Is. Failures that carry context (a field id, an offset, a
// reason string) are struct types implementing error and Unwrap/Is so
// callers can still match them with errors.Is/errors.As.
package errs

import (
	"errors"
	"fmt"
)

// ErrBadSignature is returned when a header's two signature words don't
// match the expected constants.
var ErrBadSignature = errors.New("kdbv1: bad header signature")

// ErrExhausted is returned when GenGroupID can't find a free group id.
var ErrExhausted = errors.New("kdbv1: no free group id remains")

// ErrInvalidHeaderSize is returned when a header buffer isn't exactly 124 bytes.
var ErrInvalidHeaderSize = errors.New("kdbv1: header must be exactly 124 bytes")

// ErrGroupNotFound is returned when a path passed to a group operation does
// not name a group.
var ErrGroupNotFound = errors.New("kdbv1: groupid does not reference an existing group")

// ErrEntryNotFound is returned when an update operation matches no entry.
var ErrEntryNotFound = errors.New("kdbv1: no matching entry")

// ErrGroupDuplicateID is returned when a newly added group reuses an existing groupid.
var ErrGroupDuplicateID = errors.New("kdbv1: duplicate group id")

// ErrPathNotFound is returned by hierarchy.PathLookup when no node or
// entry matches the requested path.
var ErrPathNotFound = errors.New("kdbv1: path not found")

// UnsupportedCipherError is returned when the header flags select a cipher
// other than Rijndael/AES.
type UnsupportedCipherError struct {
	Name string
}

func (e *UnsupportedCipherError) Error() string {
	return fmt.Sprintf("kdbv1: unsupported cipher: %s", e.Name)
}

// DecryptFailureError is returned when the decrypted payload fails a
// post-decryption sanity check (length bounds, content hash mismatch, bad padding).
type DecryptFailureError struct {
	Reason string
}

func (e *DecryptFailureError) Error() string {
	return fmt.Sprintf("kdbv1: decrypt failed: %s", e.Reason)
}

// Is reports whether target is also a *DecryptFailureError, regardless of Reason,
// so callers can do errors.Is(err, &DecryptFailureError{}) to test the kind alone.
func (e *DecryptFailureError) Is(target error) bool {
	_, ok := target.(*DecryptFailureError)
	return ok
}

// FieldDecodeError is returned when a TLV field's payload cannot be parsed
// by the codec registered for its field id.
type FieldDecodeError struct {
	FieldID uint16
	Size    uint32
	Detail  string
	// Sample holds up to the first 16 bytes of the offending payload.
	Sample []byte
}

func (e *FieldDecodeError) Error() string {
	n := len(e.Sample)
	if n > 16 {
		n = 16
	}

	return fmt.Sprintf("kdbv1: field 0x%04x (size %d): %s (sample=% x)", e.FieldID, e.Size, e.Detail, e.Sample[:n])
}

// Is reports whether target is also a *FieldDecodeError, regardless of its fields.
func (e *FieldDecodeError) Is(target error) bool {
	_, ok := target.(*FieldDecodeError)
	return ok
}

// NewFieldDecodeError builds a FieldDecodeError, capping the retained sample to 16 bytes.
func NewFieldDecodeError(fieldID uint16, size uint32, detail string, buf []byte) *FieldDecodeError {
	n := len(buf)
	if n > 16 {
		n = 16
	}

	sample := make([]byte, n)
	copy(sample, buf[:n])

	return &FieldDecodeError{FieldID: fieldID, Size: size, Detail: detail, Sample: sample}
}

// TruncatedError is returned when the input buffer ends before a record or
// the header is fully read.
type TruncatedError struct {
	At int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("kdbv1: input truncated at offset %d", e.At)
}

// Is reports whether target is also a *TruncatedError, regardless of offset.
func (e *TruncatedError) Is(target error) bool {
	_, ok := target.(*TruncatedError)
	return ok
}

// IOError wraps a transport-level I/O error without altering its identity;
// errors.Is/errors.As against the wrapped error still works via Unwrap.
type IOError struct {
	Err error
}

func (e *IOError) Error() string { return fmt.Sprintf("kdbv1: io: %v", e.Err) }
func (e *IOError) Unwrap() error { return e.Err }
