package hook

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/born-ml/syft/internal/registry"
)

// DefaultExclude lists module functions never overloaded. Seeding mutates
// process state and must always run locally.
var DefaultExclude = []string{
	"set_seed",
}

// Attributes is the registry of library modules the module hook sweeps,
// together with the names it must leave alone.
type Attributes struct {
	Modules map[string]*registry.Module
	Exclude map[string]struct{}
}

// NewAttributes collects the modules of lib. exclude names functions the
// sweep must skip.
func NewAttributes(lib *registry.Library, exclude ...string) *Attributes {
	a := &Attributes{
		Modules: lib.Modules(),
		Exclude: make(map[string]struct{}, len(exclude)),
	}
	for _, name := range exclude {
		a.Exclude[name] = struct{}{}
	}
	return a
}

// IsExcluded reports whether name is on the exclusion list.
func (a *Attributes) IsExcluded(name string) bool {
	_, ok := a.Exclude[name]
	return ok
}

// Candidates returns the members of m the sweep overloads, sorted.
//
// Modules mix functions, classes, values and private helpers, so names are
// filtered by shape: excluded, dunder, capitalized (classes), private,
// already overloaded, and non-function members are skipped.
func (a *Attributes) Candidates(m *registry.Module) []string {
	var out []string
	for _, name := range m.Dir() {
		if a.skip(m, name) {
			continue
		}
		out = append(out, name)
	}
	return out
}

func (a *Attributes) skip(m *registry.Module, name string) bool {
	if name == "" || a.IsExcluded(name) {
		return true
	}
	if strings.Contains(name, "__") {
		return true
	}
	first, _ := utf8.DecodeRuneInString(name)
	if unicode.IsUpper(first) || first == '_' {
		return true
	}
	if strings.Contains(name, NativePrefix) || m.Has(NativePrefix+name) {
		return true
	}
	attr, ok := m.Attr(name)
	return !ok || attr.Kind != registry.KindFunction
}
