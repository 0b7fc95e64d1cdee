package enumparam

import (
	"reflect"
)

// ParamType describes a parameter type: its Go type, the wrapper it presents
// and how to construct it.
type ParamType struct {
	goType      reflect.Type
	target      reflect.Type
	synthesized bool
	newParam    func() Parameter
}

func newParamType(newParam func() Parameter, synthesized bool) *ParamType {
	proto := newParam()
	goType := reflect.TypeOf(proto)
	if goType.Kind() == reflect.Pointer {
		goType = goType.Elem()
	}
	return &ParamType{
		goType:      goType,
		target:      proto.TargetType(),
		synthesized: synthesized,
		newParam:    newParam,
	}
}

// GoType is the parameter's Go type.
func (p *ParamType) GoType() reflect.Type {
	return p.goType
}

// Target is the wrapper type the parameter presents.
func (p *ParamType) Target() reflect.Type {
	return p.target
}

// Synthesized reports whether the type is a template instantiation rather
// than a declared parameter type.
func (p *ParamType) Synthesized() bool {
	return p.synthesized
}

// New constructs an instance.
func (p *ParamType) New() Parameter {
	return p.newParam()
}

func (p *ParamType) String() string {
	return p.goType.String()
}

// Synthesize returns the parameter template instantiated for the wrapper
// type. The instantiation happens at compile time in DeclareEnum; a wrapper
// that was not declared that way fails with InvalidType.
func (m *Module) Synthesize(wrapper reflect.Type) (*ParamType, error) {
	if wrapper == nil {
		return nil, invalidType("<nil>", "wrapper type is required")
	}
	if wrapper.Kind() == reflect.Pointer {
		wrapper = wrapper.Elem()
	}
	e, ok := m.index[wrapper]
	if !ok || e.synthesize == nil {
		return nil, invalidType(wrapper.String(), "%s was not declared with DeclareEnum in module %s", wrapper, m.name)
	}
	return newParamType(e.synthesize, true), nil
}
