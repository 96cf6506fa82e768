package domain

import "fmt"

// ClassificationError indicates no content signature matched the dump.
// Recoverable: the operator can retry with explicit type/OS flags.
type ClassificationError struct {
	File string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("cannot classify dump file %s: no content signature matched", e.File)
}

// ValidationError indicates a required piece of context is missing or
// contradicts what the dump itself reports. Nothing is merged when one
// is returned.
type ValidationError struct {
	Reason   string
	Expected string
	Found    string
}

func (e *ValidationError) Error() string {
	if e.Expected != "" || e.Found != "" {
		return fmt.Sprintf("%s (expected %q, found %q)", e.Reason, e.Expected, e.Found)
	}
	return e.Reason
}

// UnsupportedFormatError indicates a resolved (type, OS) pair has no
// registered extractor
type UnsupportedFormatError struct {
	Descriptor Descriptor
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("no extractor registered for %s", e.Descriptor)
}

// PersistenceError wraps a load/save failure at the storage boundary
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
