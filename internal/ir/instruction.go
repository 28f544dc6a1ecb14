package ir

// Instructions for data manipulation and control flow.  The instruction
// set is closed: passes depend on the cross cutting queries below, and a
// new variant must extend every one of them together.
//
// Each variant is a small struct holding value handles in its operand
// slots.  Instruction values share the variant struct through the value
// arena, so in-place operand rewrites are visible everywhere the value
// is referenced.

// Instruction is the interface every instruction variant implements.
type Instruction interface {
	// Type returns the type of the produced value.  Terminators and
	// side-effect-only operations without an addressable result report
	// no type.
	Type(c *Context) (Type, bool)
	// AggregateType returns the aggregate descriptor when the result is
	// a struct or array, or when the operation indexes one.
	AggregateType(c *Context) (Aggregate, bool)
	// Operands returns all operand values in declaration order,
	// including branch argument lists.
	Operands() []Value
	// ReplaceValues rewrites every operand slot in place.  Renames
	// follow chains in replaceMap until a fixed point, and the slots
	// touched are exactly the ones Operands reports.
	ReplaceValues(replaceMap map[Value]Value)
	// MayHaveSideEffect reports whether the operation touches memory,
	// storage or other VM visible state.  See effects.go.
	MayHaveSideEffect() bool
	// IsTerminator reports whether the instruction ends a block.
	IsTerminator() bool
}

// BranchToWithArgs is a CFG edge: a destination block plus the argument
// values flowing to that block's parameters along this edge.
type BranchToWithArgs struct {
	Block Block
	Args  []Value
}

// BinaryOpKind enumerates the binary arithmetic operations.
type BinaryOpKind int

const (
	BinaryOpAdd BinaryOpKind = iota
	BinaryOpSub
	BinaryOpMul
	BinaryOpDiv
)

func (op BinaryOpKind) String() string {
	switch op {
	case BinaryOpAdd:
		return "add"
	case BinaryOpSub:
		return "sub"
	case BinaryOpMul:
		return "mul"
	case BinaryOpDiv:
		return "div"
	}
	return "?"
}

// Predicate enumerates the comparison operators.
type Predicate int

const (
	// PredicateEqual is equivalence.  More will follow.
	PredicateEqual Predicate = iota
)

// replaceValueSlot rewrites a single operand slot, following rename
// chains in replaceMap until no mapping applies.
func replaceValueSlot(slot *Value, replaceMap map[Value]Value) {
	for {
		newVal, found := replaceMap[*slot]
		if !found {
			return
		}
		*slot = newVal
	}
}

func replaceValueSlice(slots []Value, replaceMap map[Value]Value) {
	for i := range slots {
		replaceValueSlot(&slots[i], replaceMap)
	}
}

// aggregateOfType is the shared result-shape check: the descriptor when
// ty is an array or struct.
func aggregateOfType(c *Context, ty Type, ok bool) (Aggregate, bool) {
	if !ok {
		return Aggregate{}, false
	}
	return ty.AggregateOf(c)
}

// AddrOfInstruction takes the address of a non-copy (memory) value.
type AddrOfInstruction struct {
	Val Value
}

func (i *AddrOfInstruction) Type(c *Context) (Type, bool)          { return UintType(c, 64), true }
func (i *AddrOfInstruction) AggregateType(*Context) (Aggregate, bool) { return Aggregate{}, false }
func (i *AddrOfInstruction) Operands() []Value                     { return []Value{i.Val} }
func (i *AddrOfInstruction) ReplaceValues(m map[Value]Value)       { replaceValueSlot(&i.Val, m) }
func (i *AddrOfInstruction) IsTerminator() bool                    { return false }

// AsmBlockInstruction is an opaque list of VM instructions passed
// directly to codegen, with declared arguments and return type.
type AsmBlockInstruction struct {
	Asm  AsmBlock
	Args []AsmArg
}

func (i *AsmBlockInstruction) Type(c *Context) (Type, bool) {
	return i.Asm.ReturnType(c), true
}
func (i *AsmBlockInstruction) AggregateType(*Context) (Aggregate, bool) { return Aggregate{}, false }
func (i *AsmBlockInstruction) Operands() []Value {
	var operands []Value
	for _, arg := range i.Args {
		if arg.Initializer != nil {
			operands = append(operands, *arg.Initializer)
		}
	}
	return operands
}
func (i *AsmBlockInstruction) ReplaceValues(m map[Value]Value) {
	for idx := range i.Args {
		if i.Args[idx].Initializer != nil {
			replaceValueSlot(i.Args[idx].Initializer, m)
		}
	}
}
func (i *AsmBlockInstruction) IsTerminator() bool { return false }

// BinaryOpInstruction is binary arithmetic; the result has the type of
// the first argument.
type BinaryOpInstruction struct {
	Op   BinaryOpKind
	Arg1 Value
	Arg2 Value
}

func (i *BinaryOpInstruction) Type(c *Context) (Type, bool)          { return i.Arg1.Type(c) }
func (i *BinaryOpInstruction) AggregateType(*Context) (Aggregate, bool) { return Aggregate{}, false }
func (i *BinaryOpInstruction) Operands() []Value                     { return []Value{i.Arg1, i.Arg2} }
func (i *BinaryOpInstruction) ReplaceValues(m map[Value]Value) {
	replaceValueSlot(&i.Arg1, m)
	replaceValueSlot(&i.Arg2, m)
}
func (i *BinaryOpInstruction) IsTerminator() bool { return false }

// BitCastInstruction reinterprets a value as another type without
// changing its content.
type BitCastInstruction struct {
	Val Value
	Ty  Type
}

func (i *BitCastInstruction) Type(*Context) (Type, bool)            { return i.Ty, true }
func (i *BitCastInstruction) AggregateType(*Context) (Aggregate, bool) { return Aggregate{}, false }
func (i *BitCastInstruction) Operands() []Value                     { return []Value{i.Val} }
func (i *BitCastInstruction) ReplaceValues(m map[Value]Value)       { replaceValueSlot(&i.Val, m) }
func (i *BitCastInstruction) IsTerminator() bool                    { return false }

// BranchInstruction is an unconditional jump carrying the argument
// values for the destination's block parameters.
type BranchInstruction struct {
	To BranchToWithArgs
}

func (i *BranchInstruction) Type(*Context) (Type, bool)            { return Type{}, false }
func (i *BranchInstruction) AggregateType(*Context) (Aggregate, bool) { return Aggregate{}, false }
func (i *BranchInstruction) Operands() []Value                     { return append([]Value{}, i.To.Args...) }
func (i *BranchInstruction) ReplaceValues(m map[Value]Value)       { replaceValueSlice(i.To.Args, m) }
func (i *BranchInstruction) IsTerminator() bool                    { return true }

// CallInstruction calls a local function with a list of arguments.
type CallInstruction struct {
	Callee Function
	Args   []Value
}

func (i *CallInstruction) Type(c *Context) (Type, bool) {
	return i.Callee.ReturnType(c), true
}
func (i *CallInstruction) AggregateType(c *Context) (Aggregate, bool) {
	return i.Callee.ReturnType(c).AggregateOf(c)
}
func (i *CallInstruction) Operands() []Value               { return append([]Value{}, i.Args...) }
func (i *CallInstruction) ReplaceValues(m map[Value]Value) { replaceValueSlice(i.Args, m) }
func (i *CallInstruction) IsTerminator() bool              { return false }

// CmpInstruction compares two values and produces a boolean.
type CmpInstruction struct {
	Pred Predicate
	Lhs  Value
	Rhs  Value
}

func (i *CmpInstruction) Type(c *Context) (Type, bool)          { return BoolType(c), true }
func (i *CmpInstruction) AggregateType(*Context) (Aggregate, bool) { return Aggregate{}, false }
func (i *CmpInstruction) Operands() []Value                     { return []Value{i.Lhs, i.Rhs} }
func (i *CmpInstruction) ReplaceValues(m map[Value]Value) {
	replaceValueSlot(&i.Lhs, m)
	replaceValueSlot(&i.Rhs, m)
}
func (i *CmpInstruction) IsTerminator() bool { return false }

// ConditionalBranchInstruction evaluates the condition and takes the
// true edge for non-zero, the false edge otherwise.  The edges carry
// independent argument lists and may share a destination.
type ConditionalBranchInstruction struct {
	CondValue  Value
	TrueBlock  BranchToWithArgs
	FalseBlock BranchToWithArgs
}

func (i *ConditionalBranchInstruction) Type(*Context) (Type, bool)            { return Type{}, false }
func (i *ConditionalBranchInstruction) AggregateType(*Context) (Aggregate, bool) { return Aggregate{}, false }
func (i *ConditionalBranchInstruction) Operands() []Value {
	operands := []Value{i.CondValue}
	operands = append(operands, i.TrueBlock.Args...)
	operands = append(operands, i.FalseBlock.Args...)
	return operands
}
func (i *ConditionalBranchInstruction) ReplaceValues(m map[Value]Value) {
	replaceValueSlot(&i.CondValue, m)
	replaceValueSlice(i.TrueBlock.Args, m)
	replaceValueSlice(i.FalseBlock.Args, m)
}
func (i *ConditionalBranchInstruction) IsTerminator() bool { return true }

// ContractCallInstruction calls a method on a deployed contract,
// forwarding coins of an asset and a gas allowance.
type ContractCallInstruction struct {
	ReturnType Type
	Name       string
	Params     Value
	Coins      Value
	AssetID    Value
	Gas        Value
}

func (i *ContractCallInstruction) Type(*Context) (Type, bool) { return i.ReturnType, true }
func (i *ContractCallInstruction) AggregateType(c *Context) (Aggregate, bool) {
	return i.ReturnType.AggregateOf(c)
}
func (i *ContractCallInstruction) Operands() []Value {
	return []Value{i.Params, i.Coins, i.AssetID, i.Gas}
}
func (i *ContractCallInstruction) ReplaceValues(m map[Value]Value) {
	replaceValueSlot(&i.Params, m)
	replaceValueSlot(&i.Coins, m)
	replaceValueSlot(&i.AssetID, m)
	replaceValueSlot(&i.Gas, m)
}
func (i *ContractCallInstruction) IsTerminator() bool { return false }

// ExtractElementInstruction reads one element from an array.
type ExtractElementInstruction struct {
	Array    Value
	Ty       Aggregate
	IndexVal Value
}

func (i *ExtractElementInstruction) Type(c *Context) (Type, bool) {
	return i.Ty.ElemType(c)
}
func (i *ExtractElementInstruction) AggregateType(c *Context) (Aggregate, bool) {
	ty, ok := i.Ty.ElemType(c)
	return aggregateOfType(c, ty, ok)
}
func (i *ExtractElementInstruction) Operands() []Value { return []Value{i.Array, i.IndexVal} }
func (i *ExtractElementInstruction) ReplaceValues(m map[Value]Value) {
	replaceValueSlot(&i.Array, m)
	replaceValueSlot(&i.IndexVal, m)
}
func (i *ExtractElementInstruction) IsTerminator() bool { return false }

// ExtractValueInstruction reads a field from (possibly nested) structs
// via a constant index chain.
type ExtractValueInstruction struct {
	Aggregate Value
	Ty        Aggregate
	Indices   []uint64
}

func (i *ExtractValueInstruction) Type(c *Context) (Type, bool) {
	return i.Ty.FieldType(c, i.Indices)
}
func (i *ExtractValueInstruction) AggregateType(c *Context) (Aggregate, bool) {
	ty, ok := i.Ty.FieldType(c, i.Indices)
	return aggregateOfType(c, ty, ok)
}
func (i *ExtractValueInstruction) Operands() []Value               { return []Value{i.Aggregate} }
func (i *ExtractValueInstruction) ReplaceValues(m map[Value]Value) { replaceValueSlot(&i.Aggregate, m) }
func (i *ExtractValueInstruction) IsTerminator() bool              { return false }

// GetPointerInstruction produces a pointer to a function local as a
// value.  Its result can be recursed into via Load, so it is typed as
// the pointer type.
type GetPointerInstruction struct {
	BasePtr Pointer
	PtrTy   Pointer
	Offset  uint64
}

func (i *GetPointerInstruction) Type(c *Context) (Type, bool) {
	return PointerType(c, i.PtrTy), true
}
func (i *GetPointerInstruction) AggregateType(c *Context) (Aggregate, bool) {
	return i.PtrTy.PointeeType(c).AggregateOf(c)
}
func (i *GetPointerInstruction) Operands() []Value          { return nil }
func (i *GetPointerInstruction) ReplaceValues(map[Value]Value) {}
func (i *GetPointerInstruction) IsTerminator() bool         { return false }

// InsertElementInstruction writes a value into an array element.  Not an
// SSA update: the array is mutated in place, so passes must treat this
// as a store.
type InsertElementInstruction struct {
	Array    Value
	Ty       Aggregate
	Value    Value
	IndexVal Value
}

func (i *InsertElementInstruction) Type(c *Context) (Type, bool) { return i.Array.Type(c) }
func (i *InsertElementInstruction) AggregateType(*Context) (Aggregate, bool) {
	return Aggregate{}, false
}
func (i *InsertElementInstruction) Operands() []Value {
	return []Value{i.Array, i.Value, i.IndexVal}
}
func (i *InsertElementInstruction) ReplaceValues(m map[Value]Value) {
	replaceValueSlot(&i.Array, m)
	replaceValueSlot(&i.Value, m)
	replaceValueSlot(&i.IndexVal, m)
}
func (i *InsertElementInstruction) IsTerminator() bool { return false }

// InsertValueInstruction writes a value into a (possibly nested) struct
// field.  Like InsertElement it mutates the aggregate in place.
type InsertValueInstruction struct {
	Aggregate Value
	Ty        Aggregate
	Value     Value
	Indices   []uint64
}

func (i *InsertValueInstruction) Type(c *Context) (Type, bool) { return i.Aggregate.Type(c) }
func (i *InsertValueInstruction) AggregateType(*Context) (Aggregate, bool) {
	return Aggregate{}, false
}
func (i *InsertValueInstruction) Operands() []Value { return []Value{i.Aggregate, i.Value} }
func (i *InsertValueInstruction) ReplaceValues(m map[Value]Value) {
	replaceValueSlot(&i.Aggregate, m)
	replaceValueSlot(&i.Value, m)
}
func (i *InsertValueInstruction) IsTerminator() bool { return false }

// IntToPtrInstruction reinterprets an integer as a pointer of some type.
type IntToPtrInstruction struct {
	Val Value
	Ty  Type
}

func (i *IntToPtrInstruction) Type(*Context) (Type, bool)            { return i.Ty, true }
func (i *IntToPtrInstruction) AggregateType(*Context) (Aggregate, bool) { return Aggregate{}, false }
func (i *IntToPtrInstruction) Operands() []Value                     { return []Value{i.Val} }
func (i *IntToPtrInstruction) ReplaceValues(m map[Value]Value)       { replaceValueSlot(&i.Val, m) }
func (i *IntToPtrInstruction) IsTerminator() bool                    { return false }

// LoadInstruction reads a value from a memory pointer.  Loads are
// side effect free: memory is abstract enough here that consumers may
// reorder them.
type LoadInstruction struct {
	SrcVal Value
}

func (i *LoadInstruction) Type(c *Context) (Type, bool) {
	ty, ok := i.SrcVal.Type(c)
	if !ok {
		return Type{}, false
	}
	return ty.StripPointer(c), true
}
func (i *LoadInstruction) AggregateType(*Context) (Aggregate, bool) { return Aggregate{}, false }
func (i *LoadInstruction) Operands() []Value                     { return []Value{i.SrcVal} }
func (i *LoadInstruction) ReplaceValues(m map[Value]Value)       { replaceValueSlot(&i.SrcVal, m) }
func (i *LoadInstruction) IsTerminator() bool                    { return false }

// MemCopyInstruction copies a number of bytes between pointers.
type MemCopyInstruction struct {
	DstVal  Value
	SrcVal  Value
	ByteLen uint64
}

func (i *MemCopyInstruction) Type(c *Context) (Type, bool)          { return UnitType(c), true }
func (i *MemCopyInstruction) AggregateType(*Context) (Aggregate, bool) { return Aggregate{}, false }
func (i *MemCopyInstruction) Operands() []Value                     { return []Value{i.DstVal, i.SrcVal} }
func (i *MemCopyInstruction) ReplaceValues(m map[Value]Value) {
	replaceValueSlot(&i.DstVal, m)
	replaceValueSlot(&i.SrcVal, m)
}
func (i *MemCopyInstruction) IsTerminator() bool { return false }

// NopInstruction does nothing; handy as a placeholder.
type NopInstruction struct{}

func (i *NopInstruction) Type(*Context) (Type, bool)            { return Type{}, false }
func (i *NopInstruction) AggregateType(*Context) (Aggregate, bool) { return Aggregate{}, false }
func (i *NopInstruction) Operands() []Value                     { return nil }
func (i *NopInstruction) ReplaceValues(map[Value]Value)         {}
func (i *NopInstruction) IsTerminator() bool                    { return false }

// RetInstruction returns from the function.
type RetInstruction struct {
	Val Value
	Ty  Type
}

func (i *RetInstruction) Type(*Context) (Type, bool)            { return Type{}, false }
func (i *RetInstruction) AggregateType(*Context) (Aggregate, bool) { return Aggregate{}, false }
func (i *RetInstruction) Operands() []Value                     { return []Value{i.Val} }
func (i *RetInstruction) ReplaceValues(m map[Value]Value)       { replaceValueSlot(&i.Val, m) }
func (i *RetInstruction) IsTerminator() bool                    { return true }

// StoreInstruction writes a value to a memory pointer.
type StoreInstruction struct {
	DstVal    Value
	StoredVal Value
}

func (i *StoreInstruction) Type(c *Context) (Type, bool)          { return UnitType(c), true }
func (i *StoreInstruction) AggregateType(*Context) (Aggregate, bool) { return Aggregate{}, false }
func (i *StoreInstruction) Operands() []Value                     { return []Value{i.DstVal, i.StoredVal} }
func (i *StoreInstruction) ReplaceValues(m map[Value]Value) {
	replaceValueSlot(&i.DstVal, m)
	replaceValueSlot(&i.StoredVal, m)
}
func (i *StoreInstruction) IsTerminator() bool { return false }

// InstructionIterator iterates over the instruction values of one block.
// The handle sequence is snapshotted at construction, so structural
// mutation of the block during traversal neither invalidates the
// iterator nor surfaces newly added instructions.  Handles removed from
// the block mid-iteration are still returned; consumers that mutate
// must check validity themselves.
type InstructionIterator struct {
	instructions []Value
	next         int
	nextBack     int
}

// NewInstructionIterator snapshots block's instruction list.
func NewInstructionIterator(c *Context, block Block) *InstructionIterator {
	instructions := append([]Value{}, c.blocks.get(block.idx).instructions...)
	return &InstructionIterator{
		instructions: instructions,
		next:         0,
		nextBack:     len(instructions) - 1,
	}
}

// Next returns the next instruction value, front to back.
func (it *InstructionIterator) Next() (Value, bool) {
	if it.next < len(it.instructions) {
		idx := it.next
		it.next++
		return it.instructions[idx], true
	}
	return Value{}, false
}

// NextBack returns the next instruction value, back to front.
func (it *InstructionIterator) NextBack() (Value, bool) {
	if it.nextBack >= 0 {
		idx := it.nextBack
		it.nextBack--
		return it.instructions[idx], true
	}
	return Value{}, false
}
