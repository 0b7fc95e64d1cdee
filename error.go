package enumparam

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/alecthomas/participle/v2/lexer"
	"strings"
)

// ErrorKind classifies the failures reported by the registry and the codec.
type ErrorKind int

const (
	// InvalidArgument is malformed or out-of-range input to Parse.
	InvalidArgument ErrorKind = iota + 1
	// InvalidType means a type argument is not an enumeration wrapper.
	InvalidType
	// MissingMetadata means a type lacks its identity attributes. This is an
	// authoring defect, never a runtime condition.
	MissingMetadata
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case InvalidType:
		return "invalid type"
	case MissingMetadata:
		return "missing metadata"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Sentinels for errors.Is. Every *Error matches the sentinel of its Kind.
var (
	ErrInvalidArgument = errors.New("enumparam: invalid argument")
	ErrInvalidType     = errors.New("enumparam: invalid type")
	ErrMissingMetadata = errors.New("enumparam: missing metadata")
)

// Error is the error returned by every operation in this package. It carries
// enough context to turn it into a user-facing diagnostic.
//
// Fields:
// - Kind: the failure class.
// - Message: the main error message.
// - Type: the name of the Go type involved, if any.
// - Input: the offending input rendered as text, if any.
// - Locations: where in a qualified reference the error occurred.
// - InnerError: the underlying cause. It is not serialized to JSON.
type Error struct {
	Kind       ErrorKind  `json:"-"`
	Message    string     `json:"message"`
	Type       string     `json:"type,omitempty"`
	Input      string     `json:"input,omitempty"`
	Locations  []Location `json:"locations,omitempty"`
	InnerError error      `json:"-"`
}

// Location is a line and column in a qualified value reference.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (e *Error) Error() string {
	s := strings.Builder{}
	s.WriteString(e.Message)
	if e.Type != "" {
		s.WriteString(" (type: ")
		s.WriteString(e.Type)
		s.WriteString(")")
	}
	if len(e.Locations) > 0 {
		s.WriteString(" [")
		for i, l := range e.Locations {
			if i > 0 {
				s.WriteString(", ")
			}
			s.WriteString(l.String())
		}
		s.WriteString("]")
	}
	if e.InnerError != nil {
		s.WriteString(": ")
		s.WriteString(e.InnerError.Error())
	}
	return s.String()
}

func (e *Error) Unwrap() error {
	return e.InnerError
}

// Is lets errors.Is match an *Error against the sentinel of its kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidArgument:
		return e.Kind == InvalidArgument
	case ErrInvalidType:
		return e.Kind == InvalidType
	case ErrMissingMetadata:
		return e.Kind == MissingMetadata
	}
	return false
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// MarshalJSON folds the inner error into the message, the same shape the
// host uses for its runtime messages.
func (e *Error) MarshalJSON() ([]byte, error) {
	type errorNoInner struct {
		Kind      string     `json:"kind"`
		Message   string     `json:"message"`
		Type      string     `json:"type,omitempty"`
		Input     string     `json:"input,omitempty"`
		Locations []Location `json:"locations,omitempty"`
	}

	out := errorNoInner{
		Kind:      e.Kind.String(),
		Message:   e.Message,
		Type:      e.Type,
		Input:     e.Input,
		Locations: e.Locations,
	}
	if e.InnerError != nil {
		out.Message = fmt.Sprintf("%s: %s", out.Message, e.InnerError.Error())
	}
	return json.Marshal(out)
}

func invalidArgument(t *Type, input any, format string, args ...any) *Error {
	err := &Error{
		Kind:    InvalidArgument,
		Message: fmt.Sprintf(format, args...),
	}
	if t != nil {
		err.Type = t.String()
	}
	if input != nil {
		err.Input = fmt.Sprint(input)
	}
	return err
}

func invalidType(typeName string, format string, args ...any) *Error {
	return &Error{
		Kind:    InvalidType,
		Message: fmt.Sprintf(format, args...),
		Type:    typeName,
	}
}

func missingMetadata(typeName string, inner error, format string, args ...any) *Error {
	return &Error{
		Kind:       MissingMetadata,
		Message:    fmt.Sprintf(format, args...),
		Type:       typeName,
		InnerError: inner,
	}
}

// withPosition attaches a lexer position to err, creating an *Error of kind
// InvalidArgument when err is not one already. Existing locations are kept.
func withPosition(err error, pos lexer.Position) error {
	var eErr *Error
	if !errors.As(err, &eErr) {
		eErr = &Error{
			Kind:       InvalidArgument,
			Message:    "malformed value reference",
			InnerError: err,
		}
	}
	if pos.Line > 0 && len(eErr.Locations) == 0 {
		eErr.Locations = append(eErr.Locations, Location{Line: pos.Line, Column: pos.Column})
	}
	return eErr
}
