package enumparam

import "reflect"

var enumerateType = reflect.TypeOf((*Enumerate)(nil)).Elem()
var namedValuesProviderType = reflect.TypeOf((*NamedValuesProvider)(nil)).Elem()

// Constant is one declared member of a native enumeration.
type Constant[T any] struct {
	Name  string
	Value T
}

// Native is the constraint satisfied by a native enumeration: an integer type
// that lists its declared constants in declaration order. Values need not be
// contiguous, and several names may share a value.
//
//	type WallFunction int32
//
//	const (
//	    WallFunctionInterior WallFunction = iota
//	    WallFunctionExterior
//	)
//
//	func (WallFunction) Constants() []enumparam.Constant[WallFunction] {
//	    return []enumparam.Constant[WallFunction]{
//	        {"Interior", WallFunctionInterior},
//	        {"Exterior", WallFunctionExterior},
//	    }
//	}
type Native[T any] interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16
	Constants() []Constant[T]
}

// Enumerate is implemented by a pointer to every enumeration wrapper. The only
// way to satisfy it is to embed Enum[T].
type Enumerate interface {
	// Int returns the boxed integer value.
	Int() int
	// SetInt rebinds the value.
	SetInt(v int)
	// IsValid reports whether the value is a declared constant of the native
	// enumeration.
	IsValid() bool
	// IsEmpty reports whether the value is the wrapper's empty sentinel.
	IsEmpty() bool
	// UnderlyingType returns the native enumeration type.
	UnderlyingType() reflect.Type

	natives() *nativeTable
}

// Wrapper constrains W to an enumeration wrapper struct whose pointer
// implements Enumerate.
type Wrapper[W any] interface {
	*W
	Enumerate
}

// NamedValuesProvider is implemented by wrappers that rename, reorder, or hide
// native constants in their display table.
type NamedValuesProvider interface {
	NamedValues() []NamedValue
}

// Defaulter is implemented by wrappers whose default instance is not the
// native zero value.
type Defaulter interface {
	SetDefault()
}

// Describer is implemented by wrappers to supply their catalog identity and
// display metadata.
type Describer interface {
	Metadata() Metadata
}

// Enum is the embeddable base of every enumeration wrapper. A wrapper is a
// struct embedding Enum[T] and, optionally, overriding IsEmpty and
// implementing NamedValuesProvider, Defaulter and Describer.
//
//	type WallFunction struct {
//	    enumparam.Enum[db.WallFunction]
//	}
type Enum[T Native[T]] struct {
	value T
}

// EnumOf returns the base holding v, for use in wrapper literals.
func EnumOf[T Native[T]](v T) Enum[T] {
	return Enum[T]{value: v}
}

// Value returns the native value.
func (e Enum[T]) Value() T {
	return e.value
}

// SetValue rebinds the native value.
func (e *Enum[T]) SetValue(v T) {
	e.value = v
}

func (e Enum[T]) Int() int {
	return int(e.value)
}

func (e *Enum[T]) SetInt(v int) {
	e.value = T(v)
}

func (e Enum[T]) IsValid() bool {
	return e.natives().isDefined(int(e.value))
}

// IsEmpty is false unless the wrapper declares an empty sentinel.
func (e Enum[T]) IsEmpty() bool {
	return false
}

func (Enum[T]) UnderlyingType() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func (Enum[T]) natives() *nativeTable {
	return nativeTableOf[T]()
}

// NativeName renders the value the way the native enumeration names it: the
// first declared constant with this value, or the decimal integer.
func (e Enum[T]) NativeName() string {
	return e.natives().format(int(e.value))
}
