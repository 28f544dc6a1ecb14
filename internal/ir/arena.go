package ir

import "fmt"

// arenaIndex is a generational index into one of the context arenas.
// Handles wrap one of these; two handles name the same entity exactly
// when their indices are equal.
type arenaIndex struct {
	index      int
	generation uint32
}

type arenaSlot[T any] struct {
	content    T
	generation uint32
}

// arena is a contiguous allocator vending generational indices.  Slots
// are never vacated: block-level removals only unlink handles from the
// owning lists, leaving the slot unreachable but intact, so an index
// issued by an arena stays valid for the lifetime of its context.
type arena[T any] struct {
	name  string
	slots []arenaSlot[T]
}

func newArena[T any](name string) arena[T] {
	return arena[T]{name: name}
}

// insert stores content and returns its index.  O(1), and the returned
// index is stable for the lifetime of the arena.
func (a *arena[T]) insert(content T) arenaIndex {
	a.slots = append(a.slots, arenaSlot[T]{content: content})
	return arenaIndex{index: len(a.slots) - 1}
}

// get returns a pointer to the content at idx.  A handle that was not
// issued by this arena is a programming fault and panics.
func (a *arena[T]) get(idx arenaIndex) *T {
	if idx.index < 0 || idx.index >= len(a.slots) {
		panic(fmt.Sprintf("ir: %s handle %d out of range (arena has %d slots)",
			a.name, idx.index, len(a.slots)))
	}
	slot := &a.slots[idx.index]
	if slot.generation != idx.generation {
		panic(fmt.Sprintf("ir: stale %s handle %d (generation %d, arena at %d)",
			a.name, idx.index, idx.generation, slot.generation))
	}
	return &slot.content
}

func (a *arena[T]) len() int {
	return len(a.slots)
}
