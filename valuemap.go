package kagami

import (
	"iter"
	"sort"
	"strings"
)

// ValueMap is an ordered mapping from Value keys to Value payloads. Entries
// are kept sorted under the canonical total order, which is what lets
// arbitrary Values (including NaN floats) act as keys.
type ValueMap struct {
	entries []mapEntry
}

type mapEntry struct {
	key   Value
	value Value
}

// NewValueMap returns an empty map.
func NewValueMap() *ValueMap { return &ValueMap{} }

// Len returns the number of entries.
func (m *ValueMap) Len() int { return len(m.entries) }

// search locates key, returning its slot and whether it is present.
func (m *ValueMap) search(key Value) (int, bool) {
	i := sort.Search(len(m.entries), func(i int) bool {
		return m.entries[i].key.Compare(key) >= 0
	})
	return i, i < len(m.entries) && m.entries[i].key.Equal(key)
}

// Set inserts or replaces the entry for key.
func (m *ValueMap) Set(key, value Value) {
	i, ok := m.search(key)
	if ok {
		m.entries[i].value = value
		return
	}
	m.entries = append(m.entries, mapEntry{})
	copy(m.entries[i+1:], m.entries[i:])
	m.entries[i] = mapEntry{key: key, value: value}
}

// WithEntry is Set as a chainable builder step.
func (m *ValueMap) WithEntry(key, value Value) *ValueMap {
	m.Set(key, value)
	return m
}

// GetValue returns a copy of the payload stored under key.
func (m *ValueMap) GetValue(key Value) (Value, bool) {
	i, ok := m.search(key)
	if !ok {
		return Value{}, false
	}
	return m.entries[i].value, ok
}

// Delete removes the entry for key, reporting whether it was present.
func (m *ValueMap) Delete(key Value) bool {
	i, ok := m.search(key)
	if !ok {
		return false
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	return true
}

// Keys returns the keys in canonical order.
func (m *ValueMap) Keys() []Value {
	out := make([]Value, len(m.entries))
	for i := range m.entries {
		out[i] = m.entries[i].key
	}
	return out
}

// Clone returns a deep copy.
func (m *ValueMap) Clone() *ValueMap {
	out := &ValueMap{entries: make([]mapEntry, len(m.entries))}
	for i := range m.entries {
		out.entries[i] = mapEntry{
			key:   m.entries[i].key.Clone(),
			value: m.entries[i].value.Clone(),
		}
	}
	return out
}

func (m *ValueMap) compare(o *ValueMap) int {
	n := len(m.entries)
	if len(o.entries) < n {
		n = len(o.entries)
	}
	for i := 0; i < n; i++ {
		if c := m.entries[i].key.Compare(o.entries[i].key); c != 0 {
			return c
		}
		if c := m.entries[i].value.Compare(o.entries[i].value); c != 0 {
			return c
		}
	}
	switch {
	case len(m.entries) < len(o.entries):
		return -1
	case len(m.entries) > len(o.entries):
		return 1
	default:
		return 0
	}
}

// ---- Reflect / Map implementation ----

func (m *ValueMap) Shape() Shape { return ShapeMap }

// Get returns a live handle to the payload stored under key, or nil.
func (m *ValueMap) Get(key Value) Reflect {
	i, ok := m.search(key)
	if !ok {
		return nil
	}
	return &m.entries[i].value
}

// Entries iterates entries in canonical key order. The yielded handles are
// live; mutating them mutates the map.
func (m *ValueMap) Entries() iter.Seq2[Value, Reflect] {
	return func(yield func(Value, Reflect) bool) {
		for i := range m.entries {
			if !yield(m.entries[i].key, &m.entries[i].value) {
				return
			}
		}
	}
}

func (m *ValueMap) ToValue() Value { return MapVal(m.Clone()) }

func (m *ValueMap) CloneReflect() Reflect { return m.Clone() }

func (m *ValueMap) DescribeType(g *TypeGraph) NodeID {
	return BuildOpaque(g, "kagami.ValueMap", nil)
}

// Patch updates payloads for keys present in both maps. Keys only present in
// other are ignored.
func (m *ValueMap) Patch(other Reflect) {
	o, ok := AsMap(other)
	if !ok {
		return
	}
	for i := range m.entries {
		if elem := o.Get(m.entries[i].key); elem != nil {
			m.entries[i].value.Patch(elem)
		}
	}
}

// FromReflect rebuilds the map from any reflected map.
func (m *ValueMap) FromReflect(src Reflect) bool {
	o, ok := AsMap(src)
	if !ok {
		return false
	}
	out := NewValueMap()
	for k, v := range o.Entries() {
		out.Set(k.Clone(), v.ToValue())
	}
	*m = *out
	return true
}

func (m *ValueMap) String() string {
	var b strings.Builder
	m.renderInto(&b)
	return b.String()
}

func (m *ValueMap) renderInto(b *strings.Builder) {
	b.WriteByte('{')
	for i := range m.entries {
		if i > 0 {
			b.WriteString(", ")
		}
		m.entries[i].key.render(b)
		b.WriteString(" => ")
		m.entries[i].value.render(b)
	}
	b.WriteByte('}')
}
