package dinos

import (
	"fmt"

	"github.com/pkg/errors"
)

// Failure kinds, as reported by KindOf and written to logs.
const (
	KindFileRead   = "file_read"
	KindParse      = "parse"
	KindDataFormat = "data_format"
	KindNotFound   = "not_found"
	KindUnknown    = "unknown"
)

// DataFormatError reasons.
const (
	ReasonNotArray       = "not an array"
	ReasonInvalidElement = "invalid element shape"
)

// FileReadError reports that the source could not be read.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("dinos: read %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }
func (e *FileReadError) Kind() string  { return KindFileRead }

// ParseError reports malformed JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("dinos: parse: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
func (e *ParseError) Kind() string  { return KindParse }

// DataFormatError reports well-formed JSON of the wrong shape.
// Index is the offending element, or -1 when the top level is at fault.
type DataFormatError struct {
	Reason string
	Index  int
}

func (e *DataFormatError) Error() string {
	if e.Index < 0 {
		return "dinos: data format: " + e.Reason
	}
	return fmt.Sprintf("dinos: data format: %s at index %d", e.Reason, e.Index)
}

func (e *DataFormatError) Kind() string { return KindDataFormat }

// NotFoundError reports a lookup miss.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("dinos: dinosaur %q not found", e.Name)
}

func (e *NotFoundError) Kind() string { return KindNotFound }

type kinded interface {
	Kind() string
}

// KindOf returns the failure kind of err, looking through wrapping.
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}

// IsNotFound reports whether err is a lookup miss.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
