package ir

// Pointer is a handle to a typed pointer descriptor.  Pointers describe
// function-local storage slots: a pointee type, mutability and an
// optional constant initializer.  Unlike types they are not interned;
// every call to NewPointer mints a fresh descriptor.
type Pointer struct {
	idx arenaIndex
}

type pointerContent struct {
	ty          Type
	isMutable   bool
	initializer *Constant
}

// NewPointer creates a pointer descriptor in the context.
func NewPointer(c *Context, ty Type, isMutable bool, initializer *Constant) Pointer {
	return Pointer{idx: c.pointers.insert(pointerContent{
		ty:          ty,
		isMutable:   isMutable,
		initializer: initializer,
	})}
}

// PointeeType returns the type this pointer points at.
func (p Pointer) PointeeType(c *Context) Type {
	return c.pointers.get(p.idx).ty
}

// IsMutable reports whether stores through this pointer are allowed.
func (p Pointer) IsMutable(c *Context) bool {
	return c.pointers.get(p.idx).isMutable
}

// Initializer returns the pointer's constant initializer, if any.
func (p Pointer) Initializer(c *Context) (*Constant, bool) {
	content := c.pointers.get(p.idx)
	return content.initializer, content.initializer != nil
}

// IsAggregatePointer reports whether the pointee is an array or struct.
func (p Pointer) IsAggregatePointer(c *Context) bool {
	ty := p.PointeeType(c)
	return ty.IsArray(c) || ty.IsStruct(c)
}
