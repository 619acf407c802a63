// Package print contributes the 'print' adapter: formatted output to stdout
// for grids of values and single lines.
package print

import (
	"fmt"
	"sort"

	"github.com/vk/adapterhub/internal/registry"
)

// Module implements the registry.Provider interface for this package.
type Module struct{}

// Declare identifies the 'print' adapter. It carries no config tag; nothing
// in a build configuration depends on output formatting.
func (m *Module) Declare() registry.Declaration {
	return registry.Declaration{Name: "print", Version: "1.0.0"}
}

// Methods lists the adapter's dispatchable functions.
func (m *Module) Methods() []registry.Method {
	return []registry.Method{
		{Name: "Table", Fn: Table},
		{Name: "Line", Fn: Line},
	}
}

// Table prints a key/value map with keys sorted for consistent output. It
// returns the number of rows printed.
func Table(values map[string]string) int {
	if values == nil {
		fmt.Println("      (null)")
		return 0
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Printf("      %s = %q\n", k, values[k])
	}
	return len(keys)
}

// Line prints a single line.
func Line(msg string) {
	fmt.Println(msg)
}
