package enumparam

import (
	"github.com/google/uuid"
)

// letter is the native enumeration {A=0, B=1, B2=1, C=5}.
type letter int32

const (
	letterA  letter = 0
	letterB  letter = 1
	letterB2 letter = 1
	letterC  letter = 5
)

func (letter) Constants() []Constant[letter] {
	return []Constant[letter]{
		{"A", letterA},
		{"B", letterB},
		{"B2", letterB2},
		{"C", letterC},
	}
}

type Letter struct {
	Enum[letter]
}

func (Letter) Metadata() Metadata {
	return Metadata{
		ID:          "0E6B8D56-9F7A-4C59-8A0B-0D9F4B6A1C01",
		Name:        "Letter",
		Description: "A letter.",
		Category:    "Test",
	}
}

// AltLetter wraps the same native enumeration as Letter.
type AltLetter struct {
	Enum[letter]
}

func (AltLetter) Metadata() Metadata {
	return Metadata{ID: "0E6B8D56-9F7A-4C59-8A0B-0D9F4B6A1C02", Name: "Alt Letter"}
}

var letterParamID = uuid.MustParse("0E6B8D56-9F7A-4C59-8A0B-0D9F4B6A1C03")

type LetterParam struct {
	Param[Letter, *Letter]
}

func (p *LetterParam) ComponentID() (uuid.UUID, error) {
	return letterParamID, nil
}

// level has an empty sentinel.
type level int16

const (
	levelUndefined level = iota
	levelLow
	levelHigh
)

func (level) Constants() []Constant[level] {
	return []Constant[level]{
		{"Undefined", levelUndefined},
		{"Low", levelLow},
		{"High", levelHigh},
	}
}

type Level struct {
	Enum[level]
}

func (Level) Metadata() Metadata {
	return Metadata{ID: "0E6B8D56-9F7A-4C59-8A0B-0D9F4B6A1C04", Name: "Detail Level"}
}

func (l Level) IsEmpty() bool {
	return l.Value() == levelUndefined
}

// color renames and hides constants through NamedValues.
type color int32

const (
	colorRed color = iota
	colorGreen
	colorBlue
	colorCrimson = colorRed
)

func (color) Constants() []Constant[color] {
	return []Constant[color]{
		{"Red", colorRed},
		{"Green", colorGreen},
		{"Blue", colorBlue},
		{"Crimson", colorCrimson},
	}
}

type Color struct {
	Enum[color]
}

func (Color) NamedValues() []NamedValue {
	return []NamedValue{
		{Value: int(colorGreen), Name: "Vert"},
		{Value: int(colorRed), Name: "Rouge"},
		{Value: int(colorRed), Name: "Carmin"},
		{Value: 42, Name: "Phantom"},
	}
}

// mode defaults to Auto.
type mode uint8

const (
	modeOff mode = iota
	modeOn
	modeAuto
)

func (mode) Constants() []Constant[mode] {
	return []Constant[mode]{
		{"Off", modeOff},
		{"On", modeOn},
		{"Auto", modeAuto},
	}
}

type Mode struct {
	Enum[mode]
}

func (Mode) Metadata() Metadata {
	return Metadata{ID: "not-a-guid", Name: "Mode"}
}

func (m *Mode) SetDefault() {
	m.SetValue(modeAuto)
}

// tiny is narrower than the integer domain.
type tiny int8

const (
	tinySmall tiny = 0
	tinyBig   tiny = 100
)

func (tiny) Constants() []Constant[tiny] {
	return []Constant[tiny]{
		{"Small", tinySmall},
		{"Big", tinyBig},
	}
}

type Tiny struct {
	Enum[tiny]
}

// weekday has exactly InlineChoiceLimit constants.
type weekday int

func (weekday) Constants() []Constant[weekday] {
	return []Constant[weekday]{
		{"Sunday", 0},
		{"Monday", 1},
		{"Tuesday", 2},
		{"Wednesday", 3},
		{"Thursday", 4},
		{"Friday", 5},
		{"Saturday", 6},
	}
}

type Weekday struct {
	Enum[weekday]
}

// notAnEnum has the shape of a wrapper without embedding Enum.
type notAnEnum struct {
	value int
}

func letterOf(v letter) *Letter {
	return &Letter{EnumOf(v)}
}

func testModule() *Module {
	m := NewModule("test")
	DeclareEnum[Letter](m)
	DeclareEnum[Level](m)
	DeclareEnum[Color](m)
	DeclareEnum[Tiny](m)
	DeclareParam[LetterParam](m)
	return m
}
