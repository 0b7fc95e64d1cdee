package enumparam

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "Message Only",
			err:      &Error{Kind: InvalidArgument, Message: "bad input"},
			expected: "bad input",
		},
		{
			name:     "With Type",
			err:      &Error{Kind: InvalidType, Message: "not a wrapper", Type: "int"},
			expected: "not a wrapper (type: int)",
		},
		{
			name: "With Locations And Inner Error",
			err: &Error{
				Kind:       InvalidArgument,
				Message:    "malformed value reference",
				Locations:  []Location{{Line: 1, Column: 3}, {Line: 2, Column: 1}},
				InnerError: errors.New("unexpected token"),
			},
			expected: "malformed value reference [1:3, 2:1]: unexpected token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestError_Is(t *testing.T) {
	err := fmt.Errorf("loading: %w", &Error{Kind: MissingMetadata, Message: "no id"})

	assert.True(t, errors.Is(err, ErrMissingMetadata))
	assert.False(t, errors.Is(err, ErrInvalidType))
	assert.False(t, errors.Is(err, ErrInvalidArgument))
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	err := &Error{Kind: MissingMetadata, Message: "no id", InnerError: inner}
	assert.ErrorIs(t, err, inner)
}

func TestError_MarshalJSON(t *testing.T) {
	err := &Error{
		Kind:       InvalidArgument,
		Message:    "\"Z\" is not one of the named constants defined for enumparam.Letter",
		Type:       "enumparam.Letter",
		Input:      "Letter: Z",
		Locations:  []Location{{Line: 1, Column: 9}},
		InnerError: errors.New("cause"),
	}

	b, jErr := json.Marshal(err)
	assert.NoError(t, jErr)
	assert.JSONEq(t, `{
		"kind": "invalid argument",
		"message": "\"Z\" is not one of the named constants defined for enumparam.Letter: cause",
		"type": "enumparam.Letter",
		"input": "Letter: Z",
		"locations": [{"line": 1, "column": 9}]
	}`, string(b))
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "invalid argument", InvalidArgument.String())
	assert.Equal(t, "invalid type", InvalidType.String())
	assert.Equal(t, "missing metadata", MissingMetadata.String())
	assert.Equal(t, "ErrorKind(0)", ErrorKind(0).String())
}

func Test_withPosition(t *testing.T) {
	pos := lexer.Position{Line: 1, Column: 4}

	err := withPosition(errors.New("plain"), pos)
	var eErr *Error
	assert.True(t, errors.As(err, &eErr))
	assert.Equal(t, InvalidArgument, eErr.Kind)
	assert.Equal(t, []Location{{Line: 1, Column: 4}}, eErr.Locations)

	located := &Error{Kind: InvalidType, Locations: []Location{{Line: 1, Column: 1}}}
	err = withPosition(located, pos)
	assert.Same(t, located, err)
	assert.Equal(t, []Location{{Line: 1, Column: 1}}, located.Locations, "existing locations are kept")

	unlocated := &Error{Kind: InvalidType}
	_ = withPosition(unlocated, lexer.Position{})
	assert.Empty(t, unlocated.Locations, "a zero position adds nothing")
}
