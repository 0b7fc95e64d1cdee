package enumparam

import (
	"reflect"
)

// Module is the explicit, ordered list of enumeration-related types exported
// by one code module. Each module builds its list at start-up and hands it to
// Registry.Load; this replaces scanning the module's types at run time.
//
//	m := enumparam.NewModule("revit")
//	enumparam.DeclareEnum[WallFunction](m)
//	enumparam.DeclareParam[WallFunctionParam](m)
type Module struct {
	name    string
	entries []*moduleEntry
	index   map[reflect.Type]*moduleEntry
}

type moduleEntry struct {
	typ reflect.Type
	// synthesize instantiates the parameter template for a wrapper declared
	// through DeclareEnum.
	synthesize func() Parameter
	// newParam constructs a parameter type declared through DeclareParam or
	// added as a reflect.Type.
	newParam func() Parameter
}

// NewModule returns an empty module.
func NewModule(name string) *Module {
	return &Module{
		name:  name,
		index: map[reflect.Type]*moduleEntry{},
	}
}

func (m *Module) Name() string {
	return m.name
}

// Types returns the module's types in declaration order.
func (m *Module) Types() []reflect.Type {
	out := make([]reflect.Type, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.typ
	}
	return out
}

// AddType adds arbitrary exported types. Wrappers added this way can only be
// associated with a declared parameter type; they have no synthesized one.
// Parameter types are constructed through reflection. Anything else is kept
// and ignored by discovery.
func (m *Module) AddType(types ...reflect.Type) *Module {
	for _, t := range types {
		if t == nil {
			continue
		}
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		e := m.entry(t)
		if e.newParam == nil && t.Kind() == reflect.Struct && reflect.PointerTo(t).Implements(parameterType) {
			typ := t
			e.newParam = func() Parameter {
				return reflect.New(typ).Interface().(Parameter)
			}
		}
	}
	return m
}

// DeclareEnum adds the wrapper type W and captures the parameter template
// instantiated for it.
func DeclareEnum[W any, PW Wrapper[W]](m *Module) *Module {
	e := m.entry(reflect.TypeOf((*W)(nil)).Elem())
	e.synthesize = func() Parameter {
		return NewParam[W, PW]()
	}
	return m
}

// ParameterPtr constrains PP to a pointer to the parameter struct P.
type ParameterPtr[P any] interface {
	*P
	Parameter
}

// DeclareParam adds the custom parameter type P.
func DeclareParam[P any, PP ParameterPtr[P]](m *Module) *Module {
	e := m.entry(reflect.TypeOf((*P)(nil)).Elem())
	e.newParam = func() Parameter {
		return PP(new(P))
	}
	return m
}

func (m *Module) entry(t reflect.Type) *moduleEntry {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if e, ok := m.index[t]; ok {
		return e
	}
	e := &moduleEntry{typ: t}
	m.entries = append(m.entries, e)
	m.index[t] = e
	return e
}
