package enumparam

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math"
	"testing"
)

func TestFormat(t *testing.T) {
	letterType := TypeOf[Letter, *Letter]()
	levelType := TypeOf[Level, *Level]()
	colorType := TypeOf[Color, *Color]()

	tests := []struct {
		name     string
		typ      *Type
		value    Enumerate
		expected string
	}{
		{"nil interface", letterType, nil, NullText},
		{"nil pointer", letterType, (*Letter)(nil), NullText},
		{"named", letterType, letterOf(letterA), "A"},
		{"alias uses first name", letterType, letterOf(letterB2), "B"},
		{"sparse value", letterType, letterOf(letterC), "C"},
		{"undeclared value", letterType, letterOf(3), InvalidText},
		{"empty sentinel", levelType, &Level{EnumOf(levelUndefined)}, ""},
		{"non-empty with sentinel type", levelType, &Level{EnumOf(levelHigh)}, "High"},
		{"renamed", colorType, &Color{EnumOf(colorGreen)}, "Vert"},
		{"hidden falls back to raw index", colorType, &Color{EnumOf(colorBlue)}, "#2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.typ, tt.value))
		})
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "C", FormatValue(letterOf(letterC)))
	assert.Equal(t, NullText, FormatValue[Letter]((*Letter)(nil)))
}

func TestParse_Text(t *testing.T) {
	letterType := TypeOf[Letter, *Letter]()

	tests := []struct {
		name     string
		input    string
		expected int
		wantErr  bool
	}{
		{"display name", "A", 0, false},
		{"sparse display name", "C", 5, false},
		{"alias is not a display name", "B2", 0, true},
		{"names are case sensitive", "a", 0, true},
		{"raw native name", "#B", 1, false},
		{"raw native alias", "#B2", 1, false},
		{"raw integer", "#5", 5, false},
		{"raw undeclared integer", "#3", 0, true},
		{"raw unknown name", "#Z", 0, true},
		{"bare prefix", "#", 0, true},
		{"empty without sentinel", "", 0, true},
		{"invalid marker", InvalidText, 0, true},
		{"null marker is only for display", NullText, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(letterType, tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidArgument))
				assert.Nil(t, v)
				return
			}
			require.NoError(t, err)
			require.IsType(t, &Letter{}, v)
			assert.Equal(t, tt.expected, v.Int())
		})
	}
}

func TestParse_Numbers(t *testing.T) {
	letterType := TypeOf[Letter, *Letter]()

	tests := []struct {
		name     string
		input    any
		expected int
		wantErr  bool
	}{
		{"int", 5, 5, false},
		{"int64", int64(1), 1, false},
		{"uint8", uint8(5), 5, false},
		{"native", letterC, 5, false},
		{"undeclared int", 3, 0, true},
		{"negative", -1, 0, true},
		{"beyond int32", int64(1) << 40, 0, true},
		{"huge uint", uint64(math.MaxUint32), 0, true},
		{"float rounds down", 5.4, 5, false},
		{"half rounds to even", 0.5, 0, false},
		{"half rounds to even upward", 1.5, 0, true},
		{"float32", float32(1), 1, false},
		{"NaN without sentinel", math.NaN(), 0, true},
		{"infinity", math.Inf(1), 0, true},
		{"other native", levelLow, 0, true},
		{"bool", true, 0, true},
		{"struct", notAnEnum{}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(letterType, tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidArgument))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v.Int())
		})
	}
}

func TestParse_Nil(t *testing.T) {
	v, err := Parse(TypeOf[Letter, *Letter](), nil)
	assert.NoError(t, err)
	assert.Nil(t, v)

	v, err = Parse(TypeOf[Letter, *Letter](), (*AltLetter)(nil))
	assert.NoError(t, err)
	assert.Nil(t, v)
}

func TestParse_NilType(t *testing.T) {
	_, err := Parse(nil, "A")
	assert.True(t, errors.Is(err, ErrInvalidType))
}

func TestParse_Wrapper(t *testing.T) {
	letterType := TypeOf[Letter, *Letter]()

	v, err := Parse(letterType, &AltLetter{EnumOf(letterC)})
	require.NoError(t, err)
	assert.IsType(t, &Letter{}, v)
	assert.Equal(t, 5, v.Int())

	_, err = Parse(letterType, &Level{EnumOf(levelLow)})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestParse_EmptySentinel(t *testing.T) {
	levelType := TypeOf[Level, *Level]()

	v, err := Parse(levelType, "")
	require.NoError(t, err)
	assert.True(t, v.IsEmpty())
	assert.Equal(t, int(levelUndefined), v.Int())

	v, err = Parse(levelType, math.NaN())
	require.NoError(t, err)
	assert.True(t, v.IsEmpty())
}

func TestParse_Defaulter(t *testing.T) {
	modeType := TypeOf[Mode, *Mode]()

	_, err := Parse(modeType, "")
	assert.Error(t, err, "the default instance of Mode is not empty")

	v, err := Parse(modeType, "#On")
	require.NoError(t, err)
	assert.Equal(t, int(modeOn), v.Int())
}

func TestParse_NarrowNative(t *testing.T) {
	tinyType := TypeOf[Tiny, *Tiny]()

	v, err := Parse(tinyType, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, v.Int())

	// 300 truncates to 44 in an int8.
	_, err = Parse(tinyType, 300)
	assert.Error(t, err)
}

func TestParse_TableNameWithUndeclaredValue(t *testing.T) {
	_, err := Parse(TypeOf[Color, *Color](), "Phantom")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestParse_ErrorDetails(t *testing.T) {
	_, err := Parse(TypeOf[Letter, *Letter](), "B2")

	var eErr *Error
	require.True(t, errors.As(err, &eErr))
	assert.Equal(t, InvalidArgument, eErr.Kind)
	assert.Equal(t, "enumparam.Letter", eErr.Type)
	assert.Equal(t, "B2", eErr.Input)
}

func TestFormatParse_RoundTrip(t *testing.T) {
	types := []*Type{
		TypeOf[Letter, *Letter](),
		TypeOf[Level, *Level](),
		TypeOf[Color, *Color](),
		TypeOf[Mode, *Mode](),
		TypeOf[Tiny, *Tiny](),
	}
	for _, typ := range types {
		for _, c := range typ.natives.constants {
			v := typ.New()
			v.SetInt(c.Value)

			text := Format(typ, v)
			parsed, err := Parse(typ, text)
			require.NoError(t, err, "%s %s formatted as %q", typ, c.Name, text)
			assert.Equal(t, v.Int(), parsed.Int(), "%s %s formatted as %q", typ, c.Name, text)
		}
	}
}

func TestParseAs(t *testing.T) {
	v, err := ParseAs[Letter]("C")
	require.NoError(t, err)
	assert.Equal(t, letterC, v.Value())

	v, err = ParseAs[Letter](nil)
	assert.NoError(t, err)
	assert.Nil(t, v)

	_, err = ParseAs[Letter]("Z")
	assert.Error(t, err)
}

func TestTryParse(t *testing.T) {
	v, ok := TryParse[Letter]("A")
	assert.True(t, ok)
	assert.Equal(t, letterA, v.Value())

	_, ok = TryParse[Letter]("B2")
	assert.False(t, ok)
}

func TestText(t *testing.T) {
	assert.Equal(t, NullText, Text(nil))
	assert.Equal(t, NullText, Text((*Letter)(nil)))
	assert.Equal(t, InvalidText, Text(letterOf(3)))
	assert.Equal(t, EmptyText, Text(&Level{}))
	assert.Equal(t, "C", Text(letterOf(letterC)))
	assert.Equal(t, "#2", Text(&Color{EnumOf(colorBlue)}))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Letter: C", Describe(letterOf(letterC)))
	assert.Equal(t, "Detail Level: <empty>", Describe(&Level{}))
	assert.Equal(t, "tiny: Small", Describe(&Tiny{}))
	assert.Equal(t, NullText, Describe(nil))
}

func TestType_Description(t *testing.T) {
	assert.Equal(t, "A letter.", TypeOf[Letter, *Letter]().Description())
	assert.Equal(t, "go-enumparam tiny", TypeOf[Tiny, *Tiny]().Description())
}

func TestType_New(t *testing.T) {
	assert.Equal(t, int(modeAuto), TypeOf[Mode, *Mode]().New().Int())
	assert.Equal(t, 0, TypeOf[Letter, *Letter]().New().Int())
}
