package domain

import "strings"

// Names of the layers that hold environment variables.
const (
	EnvironmentLayerName = "environment"
	DotenvLayerName      = "dotenv"
)

// Binding is one named value in a scope layer.
type Binding struct {
	Name   string
	Value  string
	Export bool
}

// Layer is an immutable set of bindings with a descriptive name.
type Layer struct {
	name     string
	bindings []Binding
	index    map[string]int
}

// NewLayer builds a layer; a later binding with a repeated name replaces the earlier one.
func NewLayer(name string, bindings ...Binding) *Layer {
	l := &Layer{
		name:  name,
		index: make(map[string]int, len(bindings)),
	}
	for _, b := range bindings {
		if i, ok := l.index[b.Name]; ok {
			l.bindings[i] = b
			continue
		}
		l.index[b.Name] = len(l.bindings)
		l.bindings = append(l.bindings, b)
	}
	return l
}

// EnvironmentLayer builds a layer from KEY=VALUE entries such as os.Environ().
func EnvironmentLayer(environ []string) *Layer {
	bindings := make([]Binding, 0, len(environ))
	for _, entry := range environ {
		if k, v, ok := strings.Cut(entry, "="); ok && k != "" {
			bindings = append(bindings, Binding{Name: k, Value: v})
		}
	}
	return NewLayer(EnvironmentLayerName, bindings...)
}

// Name describes where the layer's bindings come from.
func (l *Layer) Name() string {
	return l.name
}

// Lookup returns the binding called name.
func (l *Layer) Lookup(name string) (Binding, bool) {
	i, ok := l.index[name]
	if !ok {
		return Binding{}, false
	}
	return l.bindings[i], true
}

// Bindings returns the bindings in insertion order.
func (l *Layer) Bindings() []Binding {
	return l.bindings
}

// Scope is an ordered stack of layers, consulted innermost first.
type Scope struct {
	layers []*Layer
}

// NewScope builds a scope from layers listed innermost first.
func NewScope(layers ...*Layer) *Scope {
	return &Scope{layers: layers}
}

// With returns a new scope with l pushed as the innermost layer.
// A nil scope is treated as empty.
func (s *Scope) With(l *Layer) *Scope {
	outer := s.Layers()
	layers := make([]*Layer, 0, len(outer)+1)
	layers = append(layers, l)
	layers = append(layers, outer...)
	return &Scope{layers: layers}
}

// Lookup resolves name against the innermost layer that binds it.
func (s *Scope) Lookup(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	for _, l := range s.layers {
		if b, ok := l.Lookup(name); ok {
			return b.Value, true
		}
	}
	return "", false
}

// Names lists every visible name, innermost layers first.
func (s *Scope) Names() []string {
	if s == nil {
		return nil
	}
	seen := make(map[string]bool)
	var names []string
	for _, l := range s.layers {
		for _, b := range l.bindings {
			if !seen[b.Name] {
				seen[b.Name] = true
				names = append(names, b.Name)
			}
		}
	}
	return names
}

// Exports returns the exported bindings visible from this scope.
// A binding shadowed by an inner unexported binding of the same name is not exported.
func (s *Scope) Exports() map[string]string {
	env := make(map[string]string)
	if s == nil {
		return env
	}
	seen := make(map[string]bool)
	for _, l := range s.layers {
		for _, b := range l.bindings {
			if seen[b.Name] {
				continue
			}
			seen[b.Name] = true
			if b.Export {
				env[b.Name] = b.Value
			}
		}
	}
	return env
}

// Layers returns the layers innermost first.
func (s *Scope) Layers() []*Layer {
	if s == nil {
		return nil
	}
	return s.layers
}
