package ir

// Side effect classification for every instruction variant.
//
// Calls, stores, memory copies, logs, messaging, state writes and the
// quad word state read (which writes through its pointer operand) all
// count as effectful, as do asm blocks, which are opaque.  Insert
// element/value also count: unlike their LLVM counterparts they do not
// have SSA semantics, they mutate the aggregate in place like stores.
//
// Loads are deliberately effect free, as are pure arithmetic,
// comparisons, extracts, address-of, casts, register and constant reads,
// and all the terminators, revert included.

func (i *AddrOfInstruction) MayHaveSideEffect() bool             { return false }
func (i *AsmBlockInstruction) MayHaveSideEffect() bool           { return true }
func (i *BinaryOpInstruction) MayHaveSideEffect() bool           { return false }
func (i *BitCastInstruction) MayHaveSideEffect() bool            { return false }
func (i *BranchInstruction) MayHaveSideEffect() bool             { return false }
func (i *CallInstruction) MayHaveSideEffect() bool               { return true }
func (i *CmpInstruction) MayHaveSideEffect() bool                { return false }
func (i *ConditionalBranchInstruction) MayHaveSideEffect() bool  { return false }
func (i *ContractCallInstruction) MayHaveSideEffect() bool       { return true }
func (i *ExtractElementInstruction) MayHaveSideEffect() bool     { return false }
func (i *ExtractValueInstruction) MayHaveSideEffect() bool       { return false }
func (i *GetPointerInstruction) MayHaveSideEffect() bool         { return false }
func (i *GetStorageKeyInstruction) MayHaveSideEffect() bool      { return false }
func (i *GtfInstruction) MayHaveSideEffect() bool                { return false }
func (i *InsertElementInstruction) MayHaveSideEffect() bool      { return true }
func (i *InsertValueInstruction) MayHaveSideEffect() bool        { return true }
func (i *IntToPtrInstruction) MayHaveSideEffect() bool           { return false }
func (i *LoadInstruction) MayHaveSideEffect() bool               { return false }
func (i *LogInstruction) MayHaveSideEffect() bool                { return true }
func (i *MemCopyInstruction) MayHaveSideEffect() bool            { return true }
func (i *NopInstruction) MayHaveSideEffect() bool                { return false }
func (i *ReadRegisterInstruction) MayHaveSideEffect() bool       { return false }
func (i *RetInstruction) MayHaveSideEffect() bool                { return false }
func (i *RevertInstruction) MayHaveSideEffect() bool             { return false }
func (i *SmoInstruction) MayHaveSideEffect() bool                { return true }
func (i *StateLoadQuadWordInstruction) MayHaveSideEffect() bool  { return true }
func (i *StateLoadWordInstruction) MayHaveSideEffect() bool      { return false }
func (i *StateStoreQuadWordInstruction) MayHaveSideEffect() bool { return true }
func (i *StateStoreWordInstruction) MayHaveSideEffect() bool     { return true }
func (i *StoreInstruction) MayHaveSideEffect() bool              { return true }
