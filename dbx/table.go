package dbx

import (
	"github.com/quintans/faults"
	"github.com/quintans/toolkit/log"
)

var logger = log.LoggerFor("github.com/quintans/goBind/dbx")

// DefaultSlotLimit is the largest index an unsigned 16 bit column or parameter number can address.
const DefaultSlotLimit = 65535

type tableConfig struct {
	limit int
}

type TableOption func(*tableConfig)

// TableWithLimit caps the number of slots a table may grow to.
// A request above the cap is treated as an allocation failure.
func TableWithLimit(limit int) TableOption {
	return func(c *tableConfig) {
		c.limit = limit
	}
}

// Table is a growable 0-based array of binding records.
// It carries no synchronization; the owning statement serializes access.
type Table[T any] struct {
	name  string
	slots []T
	limit int
	reset func(*T)
}

func NewTable[T any](name string, reset func(*T), options ...TableOption) *Table[T] {
	c := tableConfig{limit: DefaultSlotLimit}
	for _, o := range options {
		o(&c)
	}
	if reset == nil {
		reset = func(t *T) {
			var zero T
			*t = zero
		}
	}
	return &Table[T]{
		name:  name,
		limit: c.limit,
		reset: reset,
	}
}

func (t *Table[T]) Name() string {
	return t.name
}

func (t *Table[T]) Allocated() int {
	return len(t.slots)
}

func (t *Table[T]) Limit() int {
	return t.limit
}

// At returns the slot at i or nil if i is outside [0, Allocated).
// The pointer is valid until the table grows, shrinks or is freed.
func (t *Table[T]) At(i int) *T {
	if i < 0 || i >= len(t.slots) {
		return nil
	}
	return &t.slots[i]
}

// EnsureCapacity grows the table to at least n slots.
// Existing slots are kept in place and the new tail is zero valued.
// When growth fails the table is left empty.
func (t *Table[T]) EnsureCapacity(n int) error {
	allocated := len(t.slots)
	if n <= allocated {
		return nil
	}

	logger.Debugf("%s: growing from %d to %d slots", t.name, allocated, n)

	if n > t.limit {
		logger.Errorf("%s: unable to create %d new slots from %d old slots", t.name, n, allocated)
		t.FreeAll()
		return faults.Errorf("%s: unable to grow to %d slots; limit is %d", t.name, n, t.limit)
	}

	t.slots = append(t.slots, make([]T, n-allocated)...)
	return nil
}

// ResetSlot releases what the table owns at slot i and zeroes the record.
func (t *Table[T]) ResetSlot(i int) {
	if i < 0 || i >= len(t.slots) {
		return
	}
	t.reset(&t.slots[i])
}

// FreeAll resets every slot and releases the storage.
func (t *Table[T]) FreeAll() {
	for i := range t.slots {
		t.reset(&t.slots[i])
	}
	t.slots = nil
}

// Shrinkable is a Table that can also give back slots.
type Shrinkable[T any] struct {
	*Table[T]
}

func NewShrinkable[T any](name string, reset func(*T), options ...TableOption) *Shrinkable[T] {
	return &Shrinkable[T]{Table: NewTable(name, reset, options...)}
}

// ShrinkTo drops the slots [n, Allocated), highest first.
// Shrinking to zero releases the storage.
func (s *Shrinkable[T]) ShrinkTo(n int) {
	if n < 0 {
		n = 0
	}
	allocated := len(s.slots)
	if n >= allocated {
		return
	}

	logger.Debugf("%s: shrinking from %d to %d slots", s.name, allocated, n)

	for i := allocated - 1; i >= n; i-- {
		s.reset(&s.slots[i])
	}
	if n == 0 {
		s.slots = nil
		return
	}
	s.slots = s.slots[:n]
}
