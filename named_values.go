package enumparam

import "reflect"

// NamedValue is one entry of a display table.
type NamedValue struct {
	Value int
	Name  string
}

// NamedValues is the ordered value-to-name table of one enumeration wrapper,
// with its inverse. Values are unique; when several names share a value the
// first one wins and the rest are dropped. Aliases are therefore reachable
// only through their first-declared name.
type NamedValues struct {
	entries []NamedValue
	names   map[int]string
	values  map[string]int
}

func newNamedValues(pairs []NamedValue) *NamedValues {
	nv := &NamedValues{
		entries: make([]NamedValue, 0, len(pairs)),
		names:   make(map[int]string, len(pairs)),
		values:  make(map[string]int, len(pairs)),
	}
	for _, p := range pairs {
		if _, exists := nv.names[p.Value]; exists {
			continue
		}
		nv.entries = append(nv.entries, p)
		nv.names[p.Value] = p.Name
		if _, exists := nv.values[p.Name]; !exists {
			nv.values[p.Name] = p.Value
		}
	}
	return nv
}

// Len returns the number of entries.
func (nv *NamedValues) Len() int {
	return len(nv.entries)
}

// Entries returns a copy of the entries in table order.
func (nv *NamedValues) Entries() []NamedValue {
	out := make([]NamedValue, len(nv.entries))
	copy(out, nv.entries)
	return out
}

// Name returns the display name of v.
func (nv *NamedValues) Name(v int) (string, bool) {
	name, ok := nv.names[v]
	return name, ok
}

// Value returns the value displayed as name.
func (nv *NamedValues) Value(name string) (int, bool) {
	v, ok := nv.values[name]
	return v, ok
}

// AsMap returns a copy of the value-to-name mapping.
func (nv *NamedValues) AsMap() map[int]string {
	out := make(map[int]string, len(nv.names))
	for k, v := range nv.names {
		out[k] = v
	}
	return out
}

// GetNamedValues returns the cached display table of the enumeration wrapper
// type t, building it on first use. It fails with InvalidType when t is not a
// wrapper type.
func GetNamedValues(t reflect.Type) (*NamedValues, error) {
	typ, err := TypeFor(t)
	if err != nil {
		return nil, err
	}
	return typ.NamedValues(), nil
}
