package enumparam

import (
	"math"
	"reflect"
	"strconv"
	"strings"
)

const (
	// NullText is what Format returns for a missing value. It is distinct
	// from the empty string, which encodes an empty value.
	NullText = "<null>"
	// InvalidText marks a value that is not a declared constant. It is for
	// display only and never parses.
	InvalidText = "<invalid>"
	// EmptyText is the display form of an empty value.
	EmptyText = "<empty>"

	rawPrefix = "#"
)

// Format renders v as text in the encoding Parse understands:
//   - nil renders as NullText
//   - an empty value renders as ""
//   - a valid value renders as its display name, or "#<integer>" when the
//     display table has no entry for it
//   - an invalid value renders as InvalidText
//
// Format never fails.
func Format(t *Type, v Enumerate) string {
	if isNil(v) {
		return NullText
	}
	if v.IsEmpty() {
		return ""
	}
	if v.IsValid() {
		if name, ok := t.NamedValues().Name(v.Int()); ok {
			return name
		}
		return rawPrefix + strconv.Itoa(v.Int())
	}
	return InvalidText
}

// FormatValue is the typed form of Format.
func FormatValue[W any, PW Wrapper[W]](v *W) string {
	return Format(TypeOf[W, PW](), PW(v))
}

// Text is the display text of v. Unlike Format it spells out empty values.
func Text(v Enumerate) string {
	if isNil(v) {
		return NullText
	}
	if !v.IsValid() {
		return InvalidText
	}
	if v.IsEmpty() {
		return EmptyText
	}
	t, err := TypeFor(reflect.TypeOf(v))
	if err != nil {
		return InvalidText
	}
	return Format(t, v)
}

// Describe renders v as "<TypeName>: <Text>".
func Describe(v Enumerate) string {
	if isNil(v) {
		return NullText
	}
	t, err := TypeFor(reflect.TypeOf(v))
	if err != nil {
		return InvalidText
	}
	return t.Name() + ": " + Text(v)
}

// Parse converts input into a value of the enumeration wrapper t. Accepted
// inputs are nil, a string, a Go integer, a float, a value of the native
// enumeration or another wrapper over the same native enumeration.
//
// Strings follow the encoding produced by Format:
//   - "" is the default instance, accepted only when that instance is empty
//   - "#Name" names a native constant; "#<integer>" is accepted when the
//     integer is declared
//   - anything else must be a display name in the NamedValues table
//
// Floats are rounded half to even. NaN is accepted only when the default
// instance is empty. Every failure is an *Error of kind InvalidArgument; a
// nil input yields a nil value and no error.
//
// Parameters:
//   - t: The enumeration type to parse into.
//   - input: A string, any integer or float kind, a value of the native
//     enumeration, or nil.
//
// Returns:
//   - A new value of t, or nil for a nil input.
//   - An *Error of kind InvalidType when t is nil, InvalidArgument otherwise.
func Parse(t *Type, input any) (Enumerate, error) {
	if t == nil {
		return nil, invalidType("<nil>", "enumeration type is required")
	}

	switch in := input.(type) {
	case nil:
		return nil, nil
	case string:
		return t.parseText(in)
	case float64:
		return t.parseFloat(in)
	case float32:
		return t.parseFloat(float64(in))
	case Enumerate:
		if isNil(in) {
			return nil, nil
		}
		if in.UnderlyingType() != t.native {
			return nil, invalidArgument(t, Describe(in), "cannot convert %s to %s", reflect.TypeOf(in).Elem(), t)
		}
		return t.parseInt(int64(in.Int()), input)
	}

	rv := reflect.ValueOf(input)
	if rv.Type().PkgPath() == "" || rv.Type() == t.native {
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return t.parseInt(rv.Int(), input)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			u := rv.Uint()
			if u > math.MaxInt32 {
				return nil, invalidArgument(t, input, "%d is out of range for %s", u, t)
			}
			return t.parseInt(int64(u), input)
		}
	}

	return nil, invalidArgument(t, input, "cannot parse %T as %s", input, t)
}

// ParseAs is the typed form of Parse.
func ParseAs[W any, PW Wrapper[W]](input any) (*W, error) {
	v, err := Parse(TypeOf[W, PW](), input)
	if err != nil || v == nil {
		return nil, err
	}
	return (*W)(v.(PW)), nil
}

// TryParse parses name as a W, reporting success instead of an error.
func TryParse[W any, PW Wrapper[W]](name string) (*W, bool) {
	v, err := ParseAs[W, PW](name)
	if err != nil {
		return nil, false
	}
	return v, true
}

func (t *Type) parseText(s string) (Enumerate, error) {
	if s == "" {
		v := t.New()
		if !v.IsEmpty() {
			return nil, invalidArgument(t, s, "empty text is not a value of %s", t)
		}
		return v, nil
	}

	if strings.HasPrefix(s, rawPrefix) {
		raw := s[len(rawPrefix):]
		n, ok := t.natives.valueOf(raw)
		if !ok {
			if i, err := strconv.Atoi(raw); err == nil && t.natives.isDefined(i) {
				n, ok = i, true
			}
		}
		if !ok {
			return nil, invalidArgument(t, s, "%q is not a constant of %s", raw, t.native)
		}
		v := t.New()
		v.SetInt(n)
		return v, nil
	}

	n, ok := t.NamedValues().Value(s)
	if !ok {
		return nil, invalidArgument(t, s, "%q is not one of the named constants defined for %s", s, t)
	}
	v := t.New()
	v.SetInt(n)
	if !v.IsValid() {
		return nil, invalidArgument(t, s, "%q names %d, which is not a constant of %s", s, n, t.native)
	}
	return v, nil
}

func (t *Type) parseInt(n int64, input any) (Enumerate, error) {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return nil, invalidArgument(t, input, "%d is out of range for %s", n, t)
	}
	v := t.New()
	v.SetInt(int(n))
	// Narrow native types truncate in SetInt.
	if int64(v.Int()) != n || !v.IsValid() {
		return nil, invalidArgument(t, input, "%d is not a valid %s", n, t)
	}
	return v, nil
}

func (t *Type) parseFloat(f float64) (Enumerate, error) {
	if math.IsNaN(f) {
		v := t.New()
		if !v.IsEmpty() {
			return nil, invalidArgument(t, f, "NaN is not a value of %s", t)
		}
		return v, nil
	}

	r := math.RoundToEven(f)
	if r < math.MinInt32 || r > math.MaxInt32 {
		return nil, invalidArgument(t, f, "%g overflows %s", f, t)
	}
	return t.parseInt(int64(r), f)
}

func isNil(v Enumerate) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
