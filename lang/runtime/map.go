package runtime

import (
	"fmt"

	"github.com/dolthub/swiss"
)

// Map is a hash map keyed and valued by Value, supplementary to spec.md's
// minimal value-variant list, grounded on the teacher's lang/machine/map.go
// and backed by the same swiss table for open-addressing performance.
type Map struct {
	m *swiss.Map[Value, Value]
}

var typeMap = coreTypes.Intern("map")

var _ Value = (*Map)(nil)

// NewMap returns an empty map with initial capacity for at least size items.
func NewMap(size int) *Map {
	if size < 1 {
		size = 1
	}
	return &Map{m: swiss.NewMap[Value, Value](uint32(size))}
}

func (m *Map) String() string { return fmt.Sprintf("map(%d entries)", m.m.Count()) }
func (m *Map) Type() *Type    { return typeMap }

// Get looks up k, returning (value, true) if present.
func (m *Map) Get(k Value) (Value, bool) { return m.m.Get(k) }

// Put installs v under k, overwriting any existing entry.
func (m *Map) Put(k, v Value) { m.m.Put(k, v) }

// Delete removes k, reporting whether it was present.
func (m *Map) Delete(k Value) bool { return m.m.Delete(k) }

// Len returns the number of entries.
func (m *Map) Len() int { return m.m.Count() }

// Range calls f for every entry, in unspecified order; stops early if f
// returns false. Mirrors swiss.Map's own Iter signature.
func (m *Map) Range(f func(k, v Value) bool) {
	m.m.Iter(func(k, v Value) (stop bool) {
		return !f(k, v)
	})
}
