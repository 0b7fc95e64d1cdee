package enumparam

import (
	"fmt"
	"gopkg.in/yaml.v3"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// LabelTable is a display table kept outside the code, typically embedded
// YAML:
//
//	name: Category Type
//	items:
//	  - code: Model
//	    name: Model
//	  - code: AnalyticalModel
//	    name: Analytical
//	  - code: Invalid
//	    hidden: true
type LabelTable struct {
	Name  string      `yaml:"name"`
	Items []LabelItem `yaml:"items"`
}

// LabelItem relabels one native constant. Code is the native constant name.
// Items with an Order are sorted by it; the rest keep file order after them.
type LabelItem struct {
	Code   string `yaml:"code"`
	Name   string `yaml:"name"`
	Order  int    `yaml:"order,omitempty"`
	Hidden bool   `yaml:"hidden,omitempty"`
}

// ParseLabels decodes one label table.
func ParseLabels(data []byte) (LabelTable, error) {
	var table LabelTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return LabelTable{}, fmt.Errorf("label table: %w", err)
	}
	return table, nil
}

// LoadLabels reads every .yaml and .yml file in dir. Tables are keyed by
// their name, or by the file name without extension when they have none.
func LoadLabels(fsys fs.FS, dir string) (map[string]LabelTable, error) {
	files, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	result := make(map[string]LabelTable)
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		ext := path.Ext(file.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, file.Name()))
		if err != nil {
			return nil, err
		}
		table, err := ParseLabels(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file.Name(), err)
		}
		name := table.Name
		if name == "" {
			name = strings.TrimSuffix(file.Name(), ext)
		}
		result[name] = table
	}
	return result, nil
}

// LabelsFor resolves table against the native enumeration T. Hidden items
// are omitted and an item without a name keeps its native name. A code that
// is not a constant of T is an InvalidArgument error.
func LabelsFor[T Native[T]](table LabelTable) ([]NamedValue, error) {
	natives := nativeTableOf[T]()

	items := make([]LabelItem, len(table.Items))
	copy(items, table.Items)
	sort.SliceStable(items, func(i, j int) bool {
		oi, oj := items[i].Order, items[j].Order
		if oi == 0 || oj == 0 {
			return oi != 0 && oj == 0
		}
		return oi < oj
	})

	result := make([]NamedValue, 0, len(items))
	for _, item := range items {
		v, ok := natives.valueOf(item.Code)
		if !ok {
			return nil, invalidArgument(nil, item.Code, "label table %q: %q is not a constant of %s", table.Name, item.Code, natives.typ)
		}
		if item.Hidden {
			continue
		}
		name := item.Name
		if name == "" {
			name = item.Code
		}
		result = append(result, NamedValue{Value: v, Name: name})
	}
	return result, nil
}

// MustLabels reads and resolves one label table, panicking on error. It is
// meant for package-level variables backing NamedValues overrides.
func MustLabels[T Native[T]](fsys fs.FS, file string) []NamedValue {
	data, err := fs.ReadFile(fsys, file)
	if err != nil {
		panic(fmt.Sprintf("enumparam: reading labels %s: %v", file, err))
	}
	table, err := ParseLabels(data)
	if err != nil {
		panic(fmt.Sprintf("enumparam: %s: %v", file, err))
	}
	values, err := LabelsFor[T](table)
	if err != nil {
		panic(fmt.Sprintf("enumparam: %s: %v", file, err))
	}
	return values
}
