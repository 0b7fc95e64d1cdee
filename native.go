package enumparam

import (
	"reflect"
	"strconv"
	"sync"
)

// nativeTable is the declared constant list of one native enumeration, in
// declaration order, with lookups by name and by value.
type nativeTable struct {
	typ       reflect.Type
	constants []NamedValue
	byName    map[string]int
	firstName map[int]string
}

// nativeTables caches one table per native type. Entries are written once and
// never invalidated; native enumerations are fixed at compile time.
var nativeTables sync.Map

func nativeTableOf[T Native[T]]() *nativeTable {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if cached, ok := nativeTables.Load(typ); ok {
		return cached.(*nativeTable)
	}

	var zero T
	declared := zero.Constants()
	nt := &nativeTable{
		typ:       typ,
		constants: make([]NamedValue, 0, len(declared)),
		byName:    make(map[string]int, len(declared)),
		firstName: make(map[int]string, len(declared)),
	}
	for _, c := range declared {
		v := int(c.Value)
		nt.constants = append(nt.constants, NamedValue{Value: v, Name: c.Name})
		if _, exists := nt.byName[c.Name]; !exists {
			nt.byName[c.Name] = v
		}
		if _, exists := nt.firstName[v]; !exists {
			nt.firstName[v] = c.Name
		}
	}

	actual, _ := nativeTables.LoadOrStore(typ, nt)
	return actual.(*nativeTable)
}

func (nt *nativeTable) isDefined(v int) bool {
	_, ok := nt.firstName[v]
	return ok
}

// valueOf resolves a native constant name. Names are case sensitive.
func (nt *nativeTable) valueOf(name string) (int, bool) {
	v, ok := nt.byName[name]
	return v, ok
}

func (nt *nativeTable) format(v int) string {
	if name, ok := nt.firstName[v]; ok {
		return name
	}
	return strconv.Itoa(v)
}
