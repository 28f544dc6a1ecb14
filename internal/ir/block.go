package ir

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// A basic block: zero or more non-terminating instructions followed by
// at most one terminator, which is always last.  Blocks carry their own
// argument list (the SSA-with-block-parameters substitute for phi nodes)
// and an eagerly mirrored predecessor set, because passes query
// predecessors far more often than they mutate the CFG.

// Block is a handle to a basic block in a context.
type Block struct {
	idx arenaIndex
}

type blockContent struct {
	label        string
	function     Function
	instructions []Value
	args         []Value
	preds        mapset.Set[Block]
}

// NewBlock appends a new empty block to function.  The label is
// uniquified against the function's existing labels; an empty label
// yields a generated one.
func NewBlock(c *Context, function Function, label string) Block {
	block := newDetachedBlock(c, function, label)
	fc := c.functions.get(function.idx)
	fc.blocks = append(fc.blocks, block)
	return block
}

// newDetachedBlock creates block content without linking it into the
// function's block list.  Function splicing helpers place it.
func newDetachedBlock(c *Context, function Function, label string) Block {
	unique := function.UniqueLabel(c, label)
	return Block{idx: c.blocks.insert(blockContent{
		label:    unique,
		function: function,
		// The set is deliberately not thread safe: the context is
		// single threaded by contract.
		preds: mapset.NewThreadUnsafeSet[Block](),
	})}
}

// Function returns the function containing this block.
func (b Block) Function(c *Context) Function {
	return c.blocks.get(b.idx).function
}

// Label returns the block's unique printable label.
func (b Block) Label(c *Context) string {
	return c.blocks.get(b.idx).label
}

// Ins returns an InstructionInserter appending to this block.
func (b Block) Ins(c *Context) *InstructionInserter {
	return NewInstructionInserter(c, b)
}

// NumInstructions returns the number of instructions in the block.
func (b Block) NumInstructions(c *Context) int {
	return len(c.blocks.get(b.idx).instructions)
}

// Instructions returns a copy of the block's instruction value list.
func (b Block) Instructions(c *Context) []Value {
	return append([]Value{}, c.blocks.get(b.idx).instructions...)
}

// InstructionIter returns a snapshot iterator over the block's
// instructions.
func (b Block) InstructionIter(c *Context) *InstructionIterator {
	return NewInstructionIterator(c, b)
}

// Arg returns the block's index'th argument value.
func (b Block) Arg(c *Context, index int) (Value, bool) {
	args := c.blocks.get(b.idx).args
	if index < 0 || index >= len(args) {
		return Value{}, false
	}
	return args[index], true
}

// Args returns a copy of the block's argument value list.
func (b Block) Args(c *Context) []Value {
	return append([]Value{}, c.blocks.get(b.idx).args...)
}

// NumArgs returns the number of block arguments.
func (b Block) NumArgs(c *Context) int {
	return len(c.blocks.get(b.idx).args)
}

// NewArg appends a new block argument of type ty and returns its index.
func (b Block) NewArg(c *Context, ty Type) int {
	content := c.blocks.get(b.idx)
	idx := len(content.args)
	argVal := NewArgumentValue(c, BlockArgument{Block: b, Idx: idx, Ty: ty})
	content.args = append(content.args, argVal)
	return idx
}

// AddArg appends an existing argument value.  The value must be an
// argument whose back pointer is this block and whose index is the next
// free position; anything else is a programming fault.
func (b Block) AddArg(c *Context, arg Value) {
	content := c.blocks.get(b.idx)
	datum, ok := arg.Argument(c)
	if !ok || datum.Block != b || datum.Idx != len(content.args) {
		panic("ir: inconsistent block argument being added")
	}
	content.args = append(content.args, arg)
}

// NumPredecessors returns the number of blocks branching to this one.
func (b Block) NumPredecessors(c *Context) int {
	return c.blocks.get(b.idx).preds.Cardinality()
}

// Predecessors returns the predecessor blocks.  The order is
// unspecified.
func (b Block) Predecessors(c *Context) []Block {
	return c.blocks.get(b.idx).preds.ToSlice()
}

// HasPredecessor reports whether from is a predecessor of this block.
func (b Block) HasPredecessor(c *Context, from Block) bool {
	return c.blocks.get(b.idx).preds.Contains(from)
}

// AddPred inserts from into the predecessor set.  Idempotent.
func (b Block) AddPred(c *Context, from Block) {
	c.blocks.get(b.idx).preds.Add(from)
}

// RemovePred removes from from the predecessor set.  Idempotent.
func (b Block) RemovePred(c *Context, from Block) {
	c.blocks.get(b.idx).preds.Remove(from)
}

// ReplacePred swaps oldSource for newSource in the predecessor set.
func (b Block) ReplacePred(c *Context, oldSource, newSource Block) {
	b.RemovePred(c, oldSource)
	b.AddPred(c, newSource)
}

// Terminator returns the block's terminator: the last instruction iff
// it is one.
func (b Block) Terminator(c *Context) (Instruction, bool) {
	content := c.blocks.get(b.idx)
	if len(content.instructions) == 0 {
		return nil, false
	}
	last := content.instructions[len(content.instructions)-1]
	ins, ok := last.Instruction(c)
	if !ok || !ins.IsTerminator() {
		return nil, false
	}
	return ins, true
}

// Successors decodes the terminator into the outgoing CFG edges, in
// declaration order: the sole destination of a branch, the true then
// false destinations of a conditional branch, nothing otherwise.
func (b Block) Successors(c *Context) []BranchToWithArgs {
	term, ok := b.Terminator(c)
	if !ok {
		return nil
	}
	switch ins := term.(type) {
	case *BranchInstruction:
		return []BranchToWithArgs{ins.To}
	case *ConditionalBranchInstruction:
		return []BranchToWithArgs{ins.TrueBlock, ins.FalseBlock}
	}
	return nil
}

// SuccParams returns the argument list passed to succ on this block's
// outgoing edge, or an empty list when succ is not a successor.
func (b Block) SuccParams(c *Context, succ Block) []Value {
	for _, branch := range b.Successors(c) {
		if branch.Block == succ {
			return append([]Value{}, branch.Args...)
		}
	}
	return []Value{}
}

// ReplaceSuccessor rewrites every terminator destination equal to
// oldSucc to newSucc with the given edge arguments, updating both
// predecessor sets.  When both edges of a conditional branch go to
// oldSucc, both are rewritten, each with its own copy of newParams so
// the two argument lists never alias.
func (b Block) ReplaceSuccessor(c *Context, oldSucc, newSucc Block, newParams []Value) {
	term, ok := b.Terminator(c)
	if !ok {
		return
	}
	modified := false
	switch ins := term.(type) {
	case *ConditionalBranchInstruction:
		if ins.TrueBlock.Block == oldSucc {
			ins.TrueBlock = BranchToWithArgs{Block: newSucc, Args: append([]Value{}, newParams...)}
			modified = true
		}
		if ins.FalseBlock.Block == oldSucc {
			ins.FalseBlock = BranchToWithArgs{Block: newSucc, Args: append([]Value{}, newParams...)}
			modified = true
		}
	case *BranchInstruction:
		if ins.To.Block == oldSucc {
			ins.To = BranchToWithArgs{Block: newSucc, Args: append([]Value{}, newParams...)}
			modified = true
		}
	}
	if modified {
		oldSucc.RemovePred(c, b)
		newSucc.AddPred(c, b)
	}
}

// IsTerminated reports whether the final instruction is a terminator.
func (b Block) IsTerminated(c *Context) bool {
	_, ok := b.Terminator(c)
	return ok
}

// IsTerminatedByRetOrRevert reports whether the block ends the function
// rather than branching.
func (b Block) IsTerminatedByRetOrRevert(c *Context) bool {
	term, ok := b.Terminator(c)
	if !ok {
		return false
	}
	switch term.(type) {
	case *RetInstruction, *RevertInstruction:
		return true
	}
	return false
}

// ReplaceValues applies replaceMap to the operand slots of every
// instruction in this block, following rename chains transitively.
func (b Block) ReplaceValues(c *Context, replaceMap map[Value]Value) {
	for idx := 0; idx < len(c.blocks.get(b.idx).instructions); idx++ {
		ins := c.blocks.get(b.idx).instructions[idx]
		ins.ReplaceInstructionValues(c, replaceMap)
	}
}

// RemoveInstruction unlinks instrVal from the block.  The value arena
// slot is not freed; the value merely becomes unreachable.  Removing a
// terminator is a programming fault.
func (b Block) RemoveInstruction(c *Context, instrVal Value) {
	if instrVal.IsTerminator(c) {
		panic("ir: cannot remove a terminator instruction")
	}
	content := c.blocks.get(b.idx)
	for pos, iv := range content.instructions {
		if iv == instrVal {
			content.instructions = append(content.instructions[:pos], content.instructions[pos+1:]...)
			return
		}
	}
}

// ReplaceInstruction swaps oldInstrVal for newInstrVal in place in the
// instruction list, then rewrites every other reference to the old
// value throughout the owning function.  Returns ValueNotFoundError when
// oldInstrVal is not in this block.
func (b Block) ReplaceInstruction(c *Context, oldInstrVal, newInstrVal Value) error {
	content := c.blocks.get(b.idx)
	found := false
	for pos, iv := range content.instructions {
		if iv == oldInstrVal {
			content.instructions[pos] = newInstrVal
			found = true
			break
		}
	}
	if !found {
		return ValueNotFoundError{While: "attempting to replace instruction"}
	}
	b.Function(c).ReplaceValue(c, oldInstrVal, newInstrVal, nil)
	return nil
}

// SplitAt splits the block in two around instruction index splitIdx and
// returns the (prefix, suffix) pair.
//
// With splitIdx == 0 a new empty block is spliced in before this one and
// the block arguments migrate to it, each argument's back pointer
// rewritten; the prefix is the new empty block and the suffix is this
// block, now argument free.  Otherwise a new block is spliced in after
// this one, instructions from splitIdx onward move to it, and every
// successor reached by the relocated terminator has this block replaced
// by the new block in its predecessor set.
func (b Block) SplitAt(c *Context, splitIdx int) (Block, Block) {
	function := c.blocks.get(b.idx).function
	if splitIdx == 0 {
		newBlock, err := function.CreateBlockBefore(c, b, "")
		if err != nil {
			// b is known to be in the function.
			panic(fmt.Sprintf("ir: split block missing from function: %v", err))
		}
		args := b.Args(c)
		for _, arg := range args {
			arg.setArgumentBlock(c, newBlock)
			newBlock.AddArg(c, arg)
		}
		c.blocks.get(b.idx).args = c.blocks.get(b.idx).args[:0]
		return newBlock, b
	}

	newBlock, err := function.CreateBlockAfter(c, b, "")
	if err != nil {
		panic(fmt.Sprintf("ir: split block missing from function: %v", err))
	}

	content := c.blocks.get(b.idx)
	if splitIdx > len(content.instructions) {
		splitIdx = len(content.instructions)
	}
	tail := append([]Value{}, content.instructions[splitIdx:]...)
	content.instructions = content.instructions[:splitIdx]
	newContent := c.blocks.get(newBlock.idx)
	newContent.instructions = append(newContent.instructions, tail...)

	// The relocated terminator still names its destinations; they must
	// now see the new block as their predecessor.
	for _, branch := range newBlock.Successors(c) {
		branch.Block.ReplacePred(c, b, newBlock)
	}

	return b, newBlock
}

// BlockIterator iterates over the blocks of a function.  Like the
// instruction iterator it snapshots the handle sequence at construction
// and tolerates structural mutation during traversal.
type BlockIterator struct {
	blocks []Block
	next   int
}

// NewBlockIterator snapshots function's block list.
func NewBlockIterator(c *Context, function Function) *BlockIterator {
	return &BlockIterator{
		blocks: append([]Block{}, c.functions.get(function.idx).blocks...),
	}
}

// Next returns the next block in function order.
func (it *BlockIterator) Next() (Block, bool) {
	if it.next < len(it.blocks) {
		idx := it.next
		it.next++
		return it.blocks[idx], true
	}
	return Block{}, false
}
