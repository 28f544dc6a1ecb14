package ir

// The Context owns all IR entities.  Modules, functions, blocks, values,
// pointers, aggregates and asm blocks live in parallel arenas; every
// other structure refers to them through small copyable handles.  The
// context is strictly single threaded: all reads and writes of any
// entity go through it, and everything it owns is released with it.

// Context is the owner of all state for an IR compilation unit.
type Context struct {
	modules    arena[moduleContent]
	functions  arena[functionContent]
	blocks     arena[blockContent]
	values     arena[valueContent]
	pointers   arena[pointerContent]
	aggregates arena[aggregateContent]
	asmBlocks  arena[asmBlockContent]

	// Interned types.  Append only; a signature maps to exactly one
	// handle for the lifetime of the context.
	types      []typeContent
	typeLookup map[string]Type

	aggregateLookup map[string]Aggregate
}

// NewContext returns an empty context.
func NewContext() *Context {
	return &Context{
		modules:         newArena[moduleContent]("module"),
		functions:       newArena[functionContent]("function"),
		blocks:          newArena[blockContent]("block"),
		values:          newArena[valueContent]("value"),
		pointers:        newArena[pointerContent]("pointer"),
		aggregates:      newArena[aggregateContent]("aggregate"),
		asmBlocks:       newArena[asmBlockContent]("asm block"),
		typeLookup:      make(map[string]Type),
		aggregateLookup: make(map[string]Aggregate),
	}
}

// Modules returns the handles of every module created in this context,
// in creation order.
func (c *Context) Modules() []Module {
	modules := make([]Module, 0, c.modules.len())
	for i := 0; i < c.modules.len(); i++ {
		modules = append(modules, Module{arenaIndex{index: i}})
	}
	return modules
}
