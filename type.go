package enumparam

import (
	"path"
	"reflect"
	"sync"
)

// Type describes one enumeration wrapper type: its Go type, its native
// enumeration and its lazily built display table. Descriptors are cached for
// the life of the process; use TypeFor or TypeOf to obtain one.
type Type struct {
	goType  reflect.Type
	native  reflect.Type
	natives *nativeTable

	namedOnce sync.Once
	named     *NamedValues
}

// typeCache holds one *Type per wrapper type. Write once, read many.
var typeCache sync.Map

// TypeFor returns the descriptor of the wrapper type t. A pointer to a
// wrapper is accepted as well. It fails with InvalidType when t is not an
// enumeration wrapper, including interface types.
func TypeFor(t reflect.Type) (*Type, error) {
	if t == nil {
		return nil, invalidType("<nil>", "enumeration type is required")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if cached, ok := typeCache.Load(t); ok {
		return cached.(*Type), nil
	}

	if t.Kind() == reflect.Interface || !reflect.PointerTo(t).Implements(enumerateType) {
		return nil, invalidType(t.String(), "%s must embed enumparam.Enum", t.String())
	}

	proto := reflect.New(t).Interface().(Enumerate)
	typ := &Type{
		goType:  t,
		native:  proto.UnderlyingType(),
		natives: proto.natives(),
	}
	actual, _ := typeCache.LoadOrStore(t, typ)
	return actual.(*Type), nil
}

// TypeOf returns the descriptor of the wrapper type W.
func TypeOf[W any, PW Wrapper[W]]() *Type {
	typ, err := TypeFor(reflect.TypeOf((*W)(nil)).Elem())
	if err != nil {
		// Unreachable: the constraint guarantees W is a wrapper.
		panic(err)
	}
	return typ
}

// GoType returns the wrapper's Go type.
func (t *Type) GoType() reflect.Type {
	return t.goType
}

// Native returns the native enumeration type.
func (t *Type) Native() reflect.Type {
	return t.native
}

func (t *Type) String() string {
	return t.goType.String()
}

// New constructs the default instance: the zero wrapper, adjusted by
// SetDefault when the wrapper implements Defaulter.
func (t *Type) New() Enumerate {
	v := reflect.New(t.goType).Interface()
	if d, ok := v.(Defaulter); ok {
		d.SetDefault()
	}
	return v.(Enumerate)
}

// Metadata returns the wrapper's declared metadata, or the zero Metadata.
func (t *Type) Metadata() Metadata {
	if d, ok := reflect.New(t.goType).Interface().(Describer); ok {
		return d.Metadata()
	}
	return Metadata{}
}

// Name is the display name of the type: the declared metadata name, or the
// native type name.
func (t *Type) Name() string {
	if name := t.Metadata().Name; name != "" {
		return name
	}
	return t.native.Name()
}

// Description is the declared description, or "<package> <Name>".
func (t *Type) Description() string {
	if desc := t.Metadata().Description; desc != "" {
		return desc
	}
	return path.Base(t.native.PkgPath()) + " " + t.Name()
}

// IsDefined reports whether v is a declared constant of the native
// enumeration.
func (t *Type) IsDefined(v int) bool {
	return t.natives.isDefined(v)
}

// NamedValues returns the display table, built on first call and cached for
// the life of the process. Entries whose value is not a declared constant are
// left out.
func (t *Type) NamedValues() *NamedValues {
	t.namedOnce.Do(func() {
		declared := t.declaredNamedValues()
		pairs := make([]NamedValue, 0, len(declared))
		for _, p := range declared {
			if t.IsDefined(p.Value) {
				pairs = append(pairs, p)
			}
		}
		t.named = newNamedValues(pairs)
	})
	return t.named
}

func (t *Type) declaredNamedValues() []NamedValue {
	if reflect.PointerTo(t.goType).Implements(namedValuesProviderType) {
		return t.New().(NamedValuesProvider).NamedValues()
	}
	return t.natives.constants
}
