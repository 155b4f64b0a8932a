// Package state defines the navigation engine's immutable data model: the
// back-stack, its entries, the typed parameter map they carry, and the
// side-tables (pending navigation, modal contexts, guided-flow state) that
// round out a State snapshot.
//
// Grounded on router/route.go's Route — in particular its
// copyStringMap/copyInterfaceMap defensive-copy idiom, generalized from
// map[string]string to an ordered, typed value map.
package state

import "fmt"

// Value is one of the typed values Params may hold: string, int, int64,
// float64, bool, a nested Params (map), or an opaque blob ([]byte). Go has
// no sum type, so this is enforced by convention and the Get* accessors
// rather than the compiler — the same trade-off route.go's
// map[string]interface{} Meta field makes.
type Value = interface{}

// Params is an ordered, immutable map of navigation parameters. Ordering
// matters for deterministic serialization and diagnostics even though
// lookup is by key; insertion order is preserved across Merge.
type Params struct {
	keys   []string
	values map[string]Value
}

// NewParams builds a Params from a plain map, in undefined (map iteration)
// key order — callers that care about order should build incrementally
// with Set instead.
func NewParams(m map[string]Value) Params {
	p := Params{values: make(map[string]Value, len(m))}
	for k, v := range m {
		p.Set(k, v)
	}
	return p
}

// Set records key→value, appending key to the order slice only the first
// time it is written (later writes update the value in place, matching
// "latest writer wins on key collision" from the merge-priority rule in
// spec §4.4).
func (p *Params) Set(key string, value Value) {
	if p.values == nil {
		p.values = make(map[string]Value)
	}
	if _, exists := p.values[key]; !exists {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the value for key and whether it was present.
func (p Params) Get(key string) (Value, bool) {
	v, ok := p.values[key]
	return v, ok
}

// GetString returns key's value as a string, or "" if absent or not a string.
func (p Params) GetString(key string) string {
	v, ok := p.values[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Keys returns the params' keys in insertion order.
func (p Params) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len reports how many keys this Params holds.
func (p Params) Len() int { return len(p.keys) }

// Clone returns a defensive, independent copy of p.
func (p Params) Clone() Params {
	out := Params{
		keys:   make([]string, len(p.keys)),
		values: make(map[string]Value, len(p.values)),
	}
	copy(out.keys, p.keys)
	for k, v := range p.values {
		out.values[k] = v
	}
	return out
}

// Merge combines base and overlay, with overlay's values winning on key
// collision — the "latest writer wins" rule from spec §4.4's parameter
// merge priority. Key order follows base's keys first, then any new keys
// overlay introduces, in overlay's order.
func Merge(base, overlay Params) Params {
	out := base.Clone()
	for _, k := range overlay.keys {
		v, _ := overlay.values[k]
		out.Set(k, v)
	}
	return out
}

// MergeAll folds a sequence of Params left to right, each one's values
// overriding everything before it — used to implement the full priority
// chain from spec §4.4: inherited forward params, then path params, then
// explicit user params.
func MergeAll(layers ...Params) Params {
	out := Params{}
	for _, l := range layers {
		out = Merge(out, l)
	}
	return out
}

func (p Params) String() string {
	return fmt.Sprintf("Params%v", p.values)
}
