package ir

// InstructionInserter is a short lived builder appending instructions to
// one block.  It is the only intended path for instruction creation:
// each constructor allocates the instruction value, appends it to the
// block, and for the branch constructors registers the block as a
// predecessor of each destination so the CFG mirror stays intact.
type InstructionInserter struct {
	c     *Context
	block Block
}

// NewInstructionInserter returns an inserter appending to block.
func NewInstructionInserter(c *Context, block Block) *InstructionInserter {
	return &InstructionInserter{c: c, block: block}
}

func (ins *InstructionInserter) append(instruction Instruction) Value {
	instructionVal := NewInstructionValue(ins.c, instruction)
	content := ins.c.blocks.get(ins.block.idx)
	content.instructions = append(content.instructions, instructionVal)
	return instructionVal
}

// AsmBlock appends an asm block built from args and body.
func (ins *InstructionInserter) AsmBlock(args []AsmArg, body []AsmInstruction, returnType Type, returnName string) Value {
	argNames := make([]string, len(args))
	for i, arg := range args {
		argNames[i] = arg.Name
	}
	asm := NewAsmBlock(ins.c, argNames, body, returnType, returnName)
	return ins.AsmBlockFromAsm(asm, args)
}

// AsmBlockFromAsm appends an asm block instruction for an existing asm
// body.
func (ins *InstructionInserter) AsmBlockFromAsm(asm AsmBlock, args []AsmArg) Value {
	return ins.append(&AsmBlockInstruction{Asm: asm, Args: args})
}

// AddrOf appends an address-of instruction.
func (ins *InstructionInserter) AddrOf(value Value) Value {
	return ins.append(&AddrOfInstruction{Val: value})
}

// BitCast appends a bit cast of value to ty.
func (ins *InstructionInserter) BitCast(value Value, ty Type) Value {
	return ins.append(&BitCastInstruction{Val: value, Ty: ty})
}

// BinaryOp appends a binary arithmetic instruction.
func (ins *InstructionInserter) BinaryOp(op BinaryOpKind, arg1, arg2 Value) Value {
	return ins.append(&BinaryOpInstruction{Op: op, Arg1: arg1, Arg2: arg2})
}

// IntToPtr appends an int-to-pointer reinterpretation.
func (ins *InstructionInserter) IntToPtr(value Value, ty Type) Value {
	return ins.append(&IntToPtrInstruction{Val: value, Ty: ty})
}

// Branch appends an unconditional branch to toBlock and registers the
// CFG edge.
func (ins *InstructionInserter) Branch(toBlock Block, destParams []Value) Value {
	branchVal := ins.append(&BranchInstruction{
		To: BranchToWithArgs{Block: toBlock, Args: destParams},
	})
	toBlock.AddPred(ins.c, ins.block)
	return branchVal
}

// Call appends a call to function with args.
func (ins *InstructionInserter) Call(function Function, args ...Value) Value {
	return ins.append(&CallInstruction{Callee: function, Args: args})
}

// Cmp appends a comparison producing a boolean.
func (ins *InstructionInserter) Cmp(pred Predicate, lhsValue, rhsValue Value) Value {
	return ins.append(&CmpInstruction{Pred: pred, Lhs: lhsValue, Rhs: rhsValue})
}

// ConditionalBranch appends a conditional branch and registers both CFG
// edges.  The destinations may be the same block.
func (ins *InstructionInserter) ConditionalBranch(condValue Value, trueBlock, falseBlock Block, trueDestParams, falseDestParams []Value) Value {
	cbrVal := ins.append(&ConditionalBranchInstruction{
		CondValue:  condValue,
		TrueBlock:  BranchToWithArgs{Block: trueBlock, Args: trueDestParams},
		FalseBlock: BranchToWithArgs{Block: falseBlock, Args: falseDestParams},
	})
	trueBlock.AddPred(ins.c, ins.block)
	falseBlock.AddPred(ins.c, ins.block)
	return cbrVal
}

// ContractCall appends a contract call forwarding coins of assetID and
// a gas allowance.
func (ins *InstructionInserter) ContractCall(returnType Type, name string, params, coins, assetID, gas Value) Value {
	return ins.append(&ContractCallInstruction{
		ReturnType: returnType,
		Name:       name,
		Params:     params,
		Coins:      coins,
		AssetID:    assetID,
		Gas:        gas,
	})
}

// ExtractElement appends an array element read.
func (ins *InstructionInserter) ExtractElement(array Value, ty Aggregate, indexVal Value) Value {
	return ins.append(&ExtractElementInstruction{Array: array, Ty: ty, IndexVal: indexVal})
}

// ExtractValue appends a struct field read through an index chain.
func (ins *InstructionInserter) ExtractValue(aggregate Value, ty Aggregate, indices ...uint64) Value {
	return ins.append(&ExtractValueInstruction{Aggregate: aggregate, Ty: ty, Indices: indices})
}

// GetStorageKey appends a storage key generator.
func (ins *InstructionInserter) GetStorageKey() Value {
	return ins.append(&GetStorageKeyInstruction{})
}

// Gtf appends a transaction field read.
func (ins *InstructionInserter) Gtf(index Value, txFieldID uint64) Value {
	return ins.append(&GtfInstruction{Index: index, TxFieldID: txFieldID})
}

// GetPtr appends a pointer-to-local instruction, minting a fresh pointer
// descriptor for the result type.
func (ins *InstructionInserter) GetPtr(basePtr Pointer, ptrTy Type, offset uint64) Value {
	ptr := NewPointer(ins.c, ptrTy, false, nil)
	return ins.append(&GetPointerInstruction{BasePtr: basePtr, PtrTy: ptr, Offset: offset})
}

// InsertElement appends an in-place array element write.
func (ins *InstructionInserter) InsertElement(array Value, ty Aggregate, value, indexVal Value) Value {
	return ins.append(&InsertElementInstruction{Array: array, Ty: ty, Value: value, IndexVal: indexVal})
}

// InsertValue appends an in-place struct field write.
func (ins *InstructionInserter) InsertValue(aggregate Value, ty Aggregate, value Value, indices ...uint64) Value {
	return ins.append(&InsertValueInstruction{Aggregate: aggregate, Ty: ty, Value: value, Indices: indices})
}

// Load appends a memory read through srcVal.
func (ins *InstructionInserter) Load(srcVal Value) Value {
	return ins.append(&LoadInstruction{SrcVal: srcVal})
}

// Log appends a log of logVal with identifier logID.
func (ins *InstructionInserter) Log(logVal Value, logTy Type, logID Value) Value {
	return ins.append(&LogInstruction{LogVal: logVal, LogTy: logTy, LogID: logID})
}

// MemCopy appends a byte copy between pointers.
func (ins *InstructionInserter) MemCopy(dstVal, srcVal Value, byteLen uint64) Value {
	return ins.append(&MemCopyInstruction{DstVal: dstVal, SrcVal: srcVal, ByteLen: byteLen})
}

// Nop appends a no-op.
func (ins *InstructionInserter) Nop() Value {
	return ins.append(&NopInstruction{})
}

// ReadRegister appends a special register read.
func (ins *InstructionInserter) ReadRegister(reg Register) Value {
	return ins.append(&ReadRegisterInstruction{Reg: reg})
}

// Ret appends a return of value.
func (ins *InstructionInserter) Ret(value Value, ty Type) Value {
	return ins.append(&RetInstruction{Val: value, Ty: ty})
}

// Revert appends a revert of VM execution.
func (ins *InstructionInserter) Revert(value Value) Value {
	return ins.append(&RevertInstruction{Val: value})
}

// Smo appends a message send.
func (ins *InstructionInserter) Smo(recipientAndMessage, messageSize, outputIndex, coins Value) Value {
	return ins.append(&SmoInstruction{
		RecipientAndMessage: recipientAndMessage,
		MessageSize:         messageSize,
		OutputIndex:         outputIndex,
		Coins:               coins,
	})
}

// StateLoadQuadWord appends a quad word storage read into loadVal.
func (ins *InstructionInserter) StateLoadQuadWord(loadVal, key Value) Value {
	return ins.append(&StateLoadQuadWordInstruction{LoadVal: loadVal, Key: key})
}

// StateLoadWord appends a single word storage read.
func (ins *InstructionInserter) StateLoadWord(key Value) Value {
	return ins.append(&StateLoadWordInstruction{Key: key})
}

// StateStoreQuadWord appends a quad word storage write.
func (ins *InstructionInserter) StateStoreQuadWord(storedVal, key Value) Value {
	return ins.append(&StateStoreQuadWordInstruction{StoredVal: storedVal, Key: key})
}

// StateStoreWord appends a single word storage write.
func (ins *InstructionInserter) StateStoreWord(storedVal, key Value) Value {
	return ins.append(&StateStoreWordInstruction{StoredVal: storedVal, Key: key})
}

// Store appends a memory write of storedVal through dstVal.
func (ins *InstructionInserter) Store(dstVal, storedVal Value) Value {
	return ins.append(&StoreInstruction{DstVal: dstVal, StoredVal: storedVal})
}
