package ir

// Asm blocks are opaque to the IR: an ordered list of VM instructions
// passed straight through to codegen.  Their operands are declared via
// AsmArg initializers and the return type is declared up front, which is
// all the optimizer is allowed to know about them.

// AsmBlock is a handle to an asm block body in a context.
type AsmBlock struct {
	idx arenaIndex
}

type asmBlockContent struct {
	argNames   []string
	body       []AsmInstruction
	returnType Type
	returnName string
}

// AsmArg is a named asm block argument with an optional initializer
// value from the surrounding function.
type AsmArg struct {
	Name        string
	Initializer *Value
}

// AsmInstruction is a single opaque VM instruction inside an asm block.
type AsmInstruction struct {
	OpName    string
	Args      []string
	Immediate string
}

// NewAsmBlock creates an asm block body with the declared argument
// names, instructions and return type.  returnName may be empty when the
// block's result is not a named register.
func NewAsmBlock(c *Context, argNames []string, body []AsmInstruction, returnType Type, returnName string) AsmBlock {
	return AsmBlock{idx: c.asmBlocks.insert(asmBlockContent{
		argNames:   argNames,
		body:       body,
		returnType: returnType,
		returnName: returnName,
	})}
}

// ArgNames returns the declared argument names in order.
func (a AsmBlock) ArgNames(c *Context) []string {
	return c.asmBlocks.get(a.idx).argNames
}

// Body returns the instruction list.
func (a AsmBlock) Body(c *Context) []AsmInstruction {
	return c.asmBlocks.get(a.idx).body
}

// ReturnType returns the declared return type of the block.
func (a AsmBlock) ReturnType(c *Context) Type {
	return c.asmBlocks.get(a.idx).returnType
}

// ReturnName returns the declared return register name, if any.
func (a AsmBlock) ReturnName(c *Context) (string, bool) {
	content := c.asmBlocks.get(a.idx)
	return content.returnName, content.returnName != ""
}
