package enumparam

import (
	"errors"
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"strings"
)

// QualifiedValue is a value reference in the form Describe produces:
// "<TypeName>: <text>". The text is a display name, "#<native name>", one of
// the markers or nothing (an empty value). Only the first colon separates the
// type name; display names may contain colons themselves.
type QualifiedValue struct {
	Pos      lexer.Position
	TypeName []string   `parser:"@Word+ ':'"`
	Value    *ValueText `parser:"@@?"`
}

// ValueText is the part of a QualifiedValue after the colon.
type ValueText struct {
	Pos    lexer.Position
	Marker string   `parser:"  @Marker"`
	Raw    string   `parser:"| Hash @Word"`
	Words  []string `parser:"| @(Word | Colon)+"`
}

var (
	qualifiedLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Marker", Pattern: `<[a-z]+>`},
		{Name: "Hash", Pattern: `#`},
		{Name: "Colon", Pattern: `:`},
		{Name: "Word", Pattern: `[^\s:#<>][^\s:<>]*`},
		{Name: "Whitespace", Pattern: `[ \t\n\r]+`},
	})
	qualifiedParser = participle.MustBuild[QualifiedValue](
		participle.Lexer(qualifiedLexer),
		participle.Elide("Whitespace"),
	)
)

// ParseQualifiedValue parses the syntax of a value reference without
// resolving it.
func ParseQualifiedValue(input string) (*QualifiedValue, error) {
	ref, err := qualifiedParser.ParseString("", input)
	if err != nil {
		pErr := &Error{
			Kind:       InvalidArgument,
			Message:    "malformed value reference",
			Input:      input,
			InnerError: err,
		}
		var perr participle.Error
		if errors.As(err, &perr) {
			return nil, withPosition(pErr, perr.Position())
		}
		return nil, pErr
	}
	return ref, nil
}

// Name is the type name with its words joined by single spaces.
func (q *QualifiedValue) Name() string {
	return strings.Join(q.TypeName, " ")
}

// Text is the value text in the encoding Parse accepts. input is the string
// the reference was parsed from; display names are cut from it verbatim so
// that their spacing survives.
func (v *ValueText) Text(input string) string {
	switch {
	case v == nil:
		return ""
	case v.Marker != "":
		return v.Marker
	case v.Raw != "":
		return rawPrefix + v.Raw
	}
	if off := v.Pos.Offset; off > 0 && off < len(input) {
		return strings.TrimSpace(input[off:])
	}
	return strings.Join(v.Words, " ")
}

// ParseQualified resolves a value reference such as "Wall Function:
// Exterior" against the loaded wrapper types. "<empty>" and an absent value
// parse as the empty value, "<null>" yields nil and "<invalid>" is rejected.
// Errors carry the location of the offending part.
func (r *Registry) ParseQualified(input string) (Enumerate, error) {
	ref, err := ParseQualifiedValue(input)
	if err != nil {
		return nil, err
	}

	t, ok := r.TypeByName(ref.Name())
	if !ok {
		return nil, withPosition(invalidType(ref.Name(), "%q is not a known enumeration type", ref.Name()), ref.Pos)
	}

	text := ref.Value.Text(input)
	switch text {
	case NullText:
		return nil, nil
	case EmptyText:
		text = ""
	case InvalidText:
		return nil, withPosition(invalidArgument(t, input, "an invalid value cannot be parsed"), ref.Value.Pos)
	}

	v, err := Parse(t, text)
	if err != nil {
		pos := ref.Pos
		if ref.Value != nil {
			pos = ref.Value.Pos
		}
		return nil, withPosition(err, pos)
	}
	return v, nil
}
