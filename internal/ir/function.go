package ir

import (
	"fmt"
	"strconv"
)

// A function: an ordered list of blocks with the entry block first, a
// parameter list realised as the entry block's arguments, and a return
// type.  A function always has at least one block.

// Function is a handle to a function in a context.
type Function struct {
	idx arenaIndex
}

// FunctionParam declares one parameter when creating a function.
type FunctionParam struct {
	Name string
	Ty   Type
}

type functionContent struct {
	name       string
	paramNames []string
	paramVals  []Value
	returnType Type
	blocks     []Block
	module     Module

	nextLabelIdx int
}

// NewFunction creates a function in module with an entry block whose
// arguments realise the declared parameters.
func NewFunction(c *Context, module Module, name string, params []FunctionParam, returnType Type) Function {
	fn := Function{idx: c.functions.insert(functionContent{
		name:       name,
		returnType: returnType,
		module:     module,
	})}
	mc := c.modules.get(module.idx)
	mc.functions = append(mc.functions, fn)

	entry := NewBlock(c, fn, "entry")
	content := c.functions.get(fn.idx)
	for _, param := range params {
		idx := entry.NewArg(c, param.Ty)
		argVal, _ := entry.Arg(c, idx)
		content.paramNames = append(content.paramNames, param.Name)
		content.paramVals = append(content.paramVals, argVal)
	}
	return fn
}

// Name returns the function's name.
func (f Function) Name(c *Context) string {
	return c.functions.get(f.idx).name
}

// Module returns the module containing this function.
func (f Function) Module(c *Context) Module {
	return c.functions.get(f.idx).module
}

// ReturnType returns the declared return type.
func (f Function) ReturnType(c *Context) Type {
	return c.functions.get(f.idx).returnType
}

// NumParams returns the number of declared parameters.
func (f Function) NumParams(c *Context) int {
	return len(c.functions.get(f.idx).paramVals)
}

// Params returns the parameter values in declaration order.  They are
// the entry block's arguments.
func (f Function) Params(c *Context) []Value {
	return append([]Value{}, c.functions.get(f.idx).paramVals...)
}

// ParamNames returns the parameter names in declaration order.
func (f Function) ParamNames(c *Context) []string {
	return append([]string{}, c.functions.get(f.idx).paramNames...)
}

// Param returns the parameter value with the given name.
func (f Function) Param(c *Context, name string) (Value, bool) {
	content := c.functions.get(f.idx)
	for i, paramName := range content.paramNames {
		if paramName == name {
			return content.paramVals[i], true
		}
	}
	return Value{}, false
}

// EntryBlock returns the function's first block.
func (f Function) EntryBlock(c *Context) Block {
	blocks := c.functions.get(f.idx).blocks
	if len(blocks) == 0 {
		panic(fmt.Sprintf("ir: function %q has no blocks", f.Name(c)))
	}
	return blocks[0]
}

// NumBlocks returns the number of blocks.
func (f Function) NumBlocks(c *Context) int {
	return len(c.functions.get(f.idx).blocks)
}

// Blocks returns a copy of the block list, entry first.
func (f Function) Blocks(c *Context) []Block {
	return append([]Block{}, c.functions.get(f.idx).blocks...)
}

// BlockIter returns a snapshot iterator over the function's blocks.
func (f Function) BlockIter(c *Context) *BlockIterator {
	return NewBlockIterator(c, f)
}

func (f Function) labelInUse(c *Context, label string) bool {
	for _, block := range c.functions.get(f.idx).blocks {
		if c.blocks.get(block.idx).label == label {
			return true
		}
	}
	return false
}

// UniqueLabel issues a block label unique within this function.  A
// caller supplied base is used as is when free and suffixed otherwise;
// an empty base yields a generated label.
func (f Function) UniqueLabel(c *Context, base string) string {
	if base == "" {
		for {
			content := c.functions.get(f.idx)
			label := "block" + strconv.Itoa(content.nextLabelIdx)
			content.nextLabelIdx++
			if !f.labelInUse(c, label) {
				return label
			}
		}
	}
	if !f.labelInUse(c, base) {
		return base
	}
	for suffix := 1; ; suffix++ {
		label := base + strconv.Itoa(suffix)
		if !f.labelInUse(c, label) {
			return label
		}
	}
}

func (f Function) blockIndex(c *Context, block Block) (int, bool) {
	for i, candidate := range c.functions.get(f.idx).blocks {
		if candidate == block {
			return i, true
		}
	}
	return 0, false
}

// CreateBlockBefore splices a new block into the function's block list
// immediately before anchor.
func (f Function) CreateBlockBefore(c *Context, anchor Block, label string) (Block, error) {
	pos, found := f.blockIndex(c, anchor)
	if !found {
		return Block{}, BlockNotFoundError{Label: anchor.Label(c)}
	}
	block := newDetachedBlock(c, f, label)
	content := c.functions.get(f.idx)
	content.blocks = append(content.blocks, Block{})
	copy(content.blocks[pos+1:], content.blocks[pos:])
	content.blocks[pos] = block
	return block, nil
}

// CreateBlockAfter splices a new block into the function's block list
// immediately after anchor.
func (f Function) CreateBlockAfter(c *Context, anchor Block, label string) (Block, error) {
	pos, found := f.blockIndex(c, anchor)
	if !found {
		return Block{}, BlockNotFoundError{Label: anchor.Label(c)}
	}
	block := newDetachedBlock(c, f, label)
	content := c.functions.get(f.idx)
	content.blocks = append(content.blocks, Block{})
	copy(content.blocks[pos+2:], content.blocks[pos+1:])
	content.blocks[pos+1] = block
	return block, nil
}

// ReplaceValue rewrites every operand slot holding old to new in every
// instruction of the function, or of just one block when restrictTo is
// non-nil.
func (f Function) ReplaceValue(c *Context, old, new Value, restrictTo *Block) {
	replaceMap := map[Value]Value{old: new}
	for _, block := range f.Blocks(c) {
		if restrictTo != nil && block != *restrictTo {
			continue
		}
		block.ReplaceValues(c, replaceMap)
	}
}
