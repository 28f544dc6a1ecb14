package ir

// A Value is a handle to a value datum: a block argument, a constant or
// an instruction.  A value is defined exactly once and its handle stays
// valid for the lifetime of the context, no matter how the surrounding
// structure is rewritten.

// ValueKind discriminates the three value datum variants.
type ValueKind int

const (
	ValueArgument ValueKind = iota
	ValueConstant
	ValueInstruction
)

// Value is a handle to a value in a context.
type Value struct {
	idx arenaIndex
}

type valueContent struct {
	kind        ValueKind
	argument    BlockArgument
	constant    Constant
	instruction Instruction
}

// BlockArgument is the datum of a value produced by a block parameter:
// the idx'th argument of a block.  Block arguments replace phi nodes;
// the concrete value flows in along each incoming edge's argument list.
type BlockArgument struct {
	Block Block
	Idx   int
	Ty    Type
}

// ValueComingFrom returns the concrete value passed for this argument
// along the edge from fromBlock, if fromBlock branches here.
func (ba BlockArgument) ValueComingFrom(c *Context, fromBlock Block) (Value, bool) {
	for _, branch := range fromBlock.Successors(c) {
		if branch.Block == ba.Block && ba.Idx < len(branch.Args) {
			return branch.Args[ba.Idx], true
		}
	}
	return Value{}, false
}

// NewArgumentValue creates a block argument value.  The argument's back
// pointer and index are the caller's responsibility; Block.NewArg is the
// usual entry point.
func NewArgumentValue(c *Context, arg BlockArgument) Value {
	return Value{idx: c.values.insert(valueContent{kind: ValueArgument, argument: arg})}
}

// NewConstantValue creates a constant value.  Constants are not shared:
// each call mints a new value with its own identity.
func NewConstantValue(c *Context, con Constant) Value {
	return Value{idx: c.values.insert(valueContent{kind: ValueConstant, constant: con})}
}

// NewInstructionValue creates an instruction value.  InstructionInserter
// is the intended path; it also appends the value to a block.
func NewInstructionValue(c *Context, ins Instruction) Value {
	return Value{idx: c.values.insert(valueContent{kind: ValueInstruction, instruction: ins})}
}

// Kind returns the datum variant of this value.
func (v Value) Kind(c *Context) ValueKind {
	return c.values.get(v.idx).kind
}

// IsArgument reports whether the value is a block argument.
func (v Value) IsArgument(c *Context) bool {
	return v.Kind(c) == ValueArgument
}

// IsConstant reports whether the value is a constant.
func (v Value) IsConstant(c *Context) bool {
	return v.Kind(c) == ValueConstant
}

// IsInstruction reports whether the value is an instruction.
func (v Value) IsInstruction(c *Context) bool {
	return v.Kind(c) == ValueInstruction
}

// Argument returns the block argument datum, if this value is one.
func (v Value) Argument(c *Context) (BlockArgument, bool) {
	content := c.values.get(v.idx)
	if content.kind != ValueArgument {
		return BlockArgument{}, false
	}
	return content.argument, true
}

// Constant returns the constant datum, if this value is one.  The
// returned pointer aliases the arena content.
func (v Value) Constant(c *Context) (*Constant, bool) {
	content := c.values.get(v.idx)
	if content.kind != ValueConstant {
		return nil, false
	}
	return &content.constant, true
}

// Instruction returns the instruction datum, if this value is one.  The
// instruction is shared with the arena, so mutating it through the
// returned interface mutates the IR.
func (v Value) Instruction(c *Context) (Instruction, bool) {
	content := c.values.get(v.idx)
	if content.kind != ValueInstruction {
		return nil, false
	}
	return content.instruction, true
}

// IsTerminator reports whether the value is a terminator instruction.
func (v Value) IsTerminator(c *Context) bool {
	ins, ok := v.Instruction(c)
	return ok && ins.IsTerminator()
}

// Type resolves the value's type through its datum kind.  Terminators
// and instructions without an addressable result have no type.
func (v Value) Type(c *Context) (Type, bool) {
	content := c.values.get(v.idx)
	switch content.kind {
	case ValueArgument:
		return content.argument.Ty, true
	case ValueConstant:
		return content.constant.Ty, true
	case ValueInstruction:
		return content.instruction.Type(c)
	}
	panic("ir: unknown value kind")
}

// ReplaceInstructionValues applies replaceMap to the operand slots of
// the instruction behind this value.  Renames are followed transitively
// until a fixed point.  Values that are not instructions are left alone.
func (v Value) ReplaceInstructionValues(c *Context, replaceMap map[Value]Value) {
	if ins, ok := v.Instruction(c); ok {
		ins.ReplaceValues(replaceMap)
	}
}

// setArgumentBlock rewrites the back pointer of an argument datum.  Used
// when arguments migrate between blocks during a split.
func (v Value) setArgumentBlock(c *Context, b Block) {
	content := c.values.get(v.idx)
	if content.kind != ValueArgument {
		panic("ir: block argument value inconsistent")
	}
	content.argument.Block = b
}
