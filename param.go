package enumparam

import (
	"github.com/google/uuid"
	"reflect"
	"strconv"
)

var parameterType = reflect.TypeOf((*Parameter)(nil)).Elem()

// InlineChoiceLimit is the number of named values below which a picker lists
// its choices inline instead of in a scrolling list.
const InlineChoiceLimit = 7

// Parameter is the host-facing adapter that lets a user pick or enter a
// value of one enumeration wrapper type.
type Parameter interface {
	// TargetType is the enumeration wrapper type presented by the parameter.
	TargetType() reflect.Type
	// ComponentID is the stable catalog identity.
	ComponentID() (uuid.UUID, error)
	// Info is the display metadata shown in the host's object browser.
	Info() Metadata
}

// Param is the parameter template, instantiated once per wrapper type. Its
// zero value is ready to use. Custom parameter types embed it:
//
//	type WallFunctionParam struct {
//	    enumparam.Param[WallFunction, *WallFunction]
//	}
type Param[W any, PW Wrapper[W]] struct {
	persistent []W
}

// NewParam returns an empty parameter for W.
func NewParam[W any, PW Wrapper[W]]() *Param[W, PW] {
	return &Param[W, PW]{}
}

func (p *Param[W, PW]) TargetType() reflect.Type {
	return reflect.TypeOf((*W)(nil)).Elem()
}

// ComponentID is the wrapper's declared GUID. A wrapper without one is an
// authoring defect reported as MissingMetadata.
func (p *Param[W, PW]) ComponentID() (uuid.UUID, error) {
	t := TypeOf[W, PW]()
	id, err := t.Metadata().ComponentID()
	if err != nil {
		return uuid.Nil, missingMetadata(t.String(), err, "%s has no usable component id", t)
	}
	return id, nil
}

// Info is the wrapper's metadata with the name and nickname defaulting to the
// wrapper's Go type name.
func (p *Param[W, PW]) Info() Metadata {
	t := TypeOf[W, PW]()
	meta := t.Metadata()
	if meta.Name == "" {
		meta.Name = t.goType.Name()
	}
	if meta.NickName == "" {
		meta.NickName = t.goType.Name()
	}
	return meta
}

// TypeName is the display name of the wrapper type.
func (p *Param[W, PW]) TypeName() string {
	return TypeOf[W, PW]().Name()
}

// PersistentData returns a copy of the values set on the parameter.
func (p *Param[W, PW]) PersistentData() []W {
	out := make([]W, len(p.persistent))
	copy(out, p.persistent)
	return out
}

// SetPersistent replaces the persistent data with a copy of v.
func (p *Param[W, PW]) SetPersistent(v W) {
	p.persistent = append(p.persistent[:0], v)
}

// ClearPersistent removes all persistent data.
func (p *Param[W, PW]) ClearPersistent() {
	p.persistent = p.persistent[:0]
}

// Current is the single persistent value, or the default instance when the
// parameter holds zero or several values.
func (p *Param[W, PW]) Current() W {
	if len(p.persistent) == 1 {
		return p.persistent[0]
	}
	return *TypeOf[W, PW]().New().(PW)
}

// Choice is one entry of a picker.
type Choice struct {
	Value    int
	Text     string
	Selected bool
}

// Picker is the data behind a parameter's value picker. Inline is set when
// there are few enough choices to show them directly.
type Picker struct {
	Inline  bool
	Choices []Choice
}

// Choices lists the named values of W with the current one selected.
func (p *Param[W, PW]) Choices() Picker {
	t := TypeOf[W, PW]()
	current := p.Current()
	selected := PW(&current).Int()

	entries := t.NamedValues().Entries()
	picker := Picker{
		Inline:  len(entries) < InlineChoiceLimit,
		Choices: make([]Choice, 0, len(entries)),
	}
	for _, e := range entries {
		tag := t.New()
		tag.SetInt(e.Value)
		picker.Choices = append(picker.Choices, Choice{
			Value:    e.Value,
			Text:     Text(tag),
			Selected: e.Value == selected,
		})
	}
	return picker
}

// Select sets the persistent data to the named value v.
func (p *Param[W, PW]) Select(v int) error {
	t := TypeOf[W, PW]()
	if _, ok := t.NamedValues().Name(v); !ok {
		return invalidArgument(t, v, "%d is not one of the named values of %s", v, t)
	}
	value := t.New().(PW)
	value.SetInt(v)
	p.SetPersistent(*value)
	return nil
}

// ValueList is a standalone picker holding every named value of a type.
type ValueList struct {
	Name        string
	NickName    string
	Description string
	Items       []ValueListItem
}

// ValueListItem is one picker entry. Expression is the integer value as text.
type ValueListItem struct {
	Name       string
	Expression string
}

// ExposePicker builds a value list for W.
func (p *Param[W, PW]) ExposePicker() ValueList {
	t := TypeOf[W, PW]()
	list := ValueList{
		Name:        t.Metadata().Name,
		Description: "A " + t.Name() + " picker",
	}
	if list.Name == "" {
		list.Name = t.goType.Name()
	}
	for _, e := range t.NamedValues().Entries() {
		list.Items = append(list.Items, ValueListItem{
			Name:       e.Name,
			Expression: strconv.Itoa(e.Value),
		})
	}
	return list
}
