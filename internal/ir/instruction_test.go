package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildOneOfEach constructs one instruction of every variant inside a
// scratch function so the cross cutting queries can be exercised
// uniformly.
func buildOneOfEach(c *Context, fn Function) map[string]Value {
	entry := fn.EntryBlock(c)
	scratch := NewBlock(c, fn, "scratch")
	u64 := UintType(c, 64)
	b256 := B256Type(c)

	v := func(n uint64) Value { return ConstantValueUint(c, 64, n) }
	ptr := NewPointer(c, u64, true, nil)
	ptrVal := entry.Ins(c).GetPtr(ptr, u64, 0)

	arrayAgg := ArrayAggregate(c, u64, 4)
	structAgg := StructAggregate(c, []Type{u64, b256})
	arrayVal := ConstantValueUndef(c, ArrayTypeFromAggregate(c, arrayAgg))
	structVal := ConstantValueUndef(c, StructTypeFromAggregate(c, structAgg))

	callee := NewFunction(c, fn.Module(c), "callee", nil, u64)
	init := v(9)

	ins := scratch.Ins(c)
	out := map[string]Value{
		"addr_of":  ins.AddrOf(v(1)),
		"asm":      scratch.Ins(c).AsmBlock([]AsmArg{{Name: "r1", Initializer: &init}}, []AsmInstruction{{OpName: "add", Args: []string{"r1", "r1", "r1"}}}, u64, "r1"),
		"binary":   scratch.Ins(c).BinaryOp(BinaryOpAdd, v(1), v(2)),
		"bitcast":  scratch.Ins(c).BitCast(v(1), b256),
		"call":     scratch.Ins(c).Call(callee, v(1), v(2)),
		"cmp":      scratch.Ins(c).Cmp(PredicateEqual, v(1), v(2)),
		"contract": scratch.Ins(c).ContractCall(u64, "other", structVal, v(0), v(0), v(10000)),
		"ext_elem": scratch.Ins(c).ExtractElement(arrayVal, arrayAgg, v(1)),
		"ext_val":  scratch.Ins(c).ExtractValue(structVal, structAgg, 1),
		"get_ptr":  ptrVal,
		"get_key":  scratch.Ins(c).GetStorageKey(),
		"gtf":      scratch.Ins(c).Gtf(v(2), 0x201),
		"ins_elem": scratch.Ins(c).InsertElement(arrayVal, arrayAgg, v(5), v(1)),
		"ins_val":  scratch.Ins(c).InsertValue(structVal, structAgg, v(5), 0),
		"int2ptr":  scratch.Ins(c).IntToPtr(v(1), PointerType(c, ptr)),
		"load":     scratch.Ins(c).Load(ptrVal),
		"log":      scratch.Ins(c).Log(v(1), u64, v(2)),
		"memcopy":  scratch.Ins(c).MemCopy(ptrVal, ptrVal, 8),
		"nop":      scratch.Ins(c).Nop(),
		"read_reg": scratch.Ins(c).ReadRegister(RegisterOf),
		"smo":      scratch.Ins(c).Smo(structVal, v(8), v(0), v(0)),
		"sldq":     scratch.Ins(c).StateLoadQuadWord(ptrVal, ConstantValueB256(c, [32]byte{})),
		"sldw":     scratch.Ins(c).StateLoadWord(ConstantValueB256(c, [32]byte{})),
		"sstq":     scratch.Ins(c).StateStoreQuadWord(ptrVal, ConstantValueB256(c, [32]byte{})),
		"sstw":     scratch.Ins(c).StateStoreWord(v(1), ConstantValueB256(c, [32]byte{})),
		"store":    scratch.Ins(c).Store(ptrVal, v(1)),
	}

	// Terminators, each in their own block so the one-terminator rule
	// holds.
	retBlock := NewBlock(c, fn, "ret")
	out["ret"] = retBlock.Ins(c).Ret(v(1), u64)
	revBlock := NewBlock(c, fn, "rev")
	out["revert"] = revBlock.Ins(c).Revert(v(1))
	brBlock := NewBlock(c, fn, "br")
	out["branch"] = brBlock.Ins(c).Branch(scratch, nil)
	cbrBlock := NewBlock(c, fn, "cbr")
	out["cond_branch"] = cbrBlock.Ins(c).ConditionalBranch(ConstantValueBool(c, true), scratch, retBlock, nil, nil)
	return out
}

// Operand coverage: ReplaceValues must touch exactly the slots Operands
// reports, and applying a replacement map twice must equal applying it
// once.
func TestOperandCoverageAndReplaceFixedPoint(t *testing.T) {
	c, fn := newTestFunction(t)
	values := buildOneOfEach(c, fn)

	for name, val := range values {
		t.Run(name, func(t *testing.T) {
			ins, ok := val.Instruction(c)
			require.True(t, ok)

			before := ins.Operands()
			if len(before) == 0 {
				// Nothing to rewrite; the replacement must stay a no-op.
				ins.ReplaceValues(map[Value]Value{})
				assert.Empty(t, ins.Operands())
				return
			}
			replaceMap := make(map[Value]Value)
			expected := make([]Value, len(before))
			for i, operand := range before {
				if mapped, seen := replaceMap[operand]; seen {
					expected[i] = mapped
					continue
				}
				fresh := ConstantValueUint(c, 64, uint64(100+i))
				replaceMap[operand] = fresh
				expected[i] = fresh
			}

			ins.ReplaceValues(replaceMap)
			assert.Equal(t, expected, ins.Operands(),
				"ReplaceValues must rewrite exactly the operand slots")

			ins.ReplaceValues(replaceMap)
			assert.Equal(t, expected, ins.Operands(),
				"replacement must be idempotent at the fixed point")
		})
	}
}

func TestReplaceValuesFollowsRenameChain(t *testing.T) {
	c, fn := newTestFunction(t)
	entry := fn.EntryBlock(c)

	v1 := ConstantValueUint(c, 64, 1)
	v2 := ConstantValueUint(c, 64, 2)
	v3 := ConstantValueUint(c, 64, 3)
	cast := entry.Ins(c).BitCast(v1, B256Type(c))

	cast.ReplaceInstructionValues(c, map[Value]Value{v1: v2, v2: v3})

	ins, _ := cast.Instruction(c)
	assert.Equal(t, []Value{v3}, ins.Operands())
}

func TestIsTerminator(t *testing.T) {
	c, fn := newTestFunction(t)
	values := buildOneOfEach(c, fn)

	terminators := map[string]bool{
		"branch": true, "cond_branch": true, "ret": true, "revert": true,
	}
	for name, val := range values {
		ins, ok := val.Instruction(c)
		require.True(t, ok, name)
		assert.Equal(t, terminators[name], ins.IsTerminator(), name)
	}
}

func TestMayHaveSideEffect(t *testing.T) {
	c, fn := newTestFunction(t)
	values := buildOneOfEach(c, fn)

	effectful := map[string]bool{
		"asm":      true,
		"call":     true,
		"contract": true,
		"log":      true,
		"smo":      true,
		"sldq":     true,
		"sstq":     true,
		"sstw":     true,
		"memcopy":  true,
		"store":    true,
		// Insert element/value mutate their aggregate in place; they
		// are stores, not SSA updates.
		"ins_elem": true,
		"ins_val":  true,
	}
	for name, val := range values {
		ins, ok := val.Instruction(c)
		require.True(t, ok, name)
		assert.Equal(t, effectful[name], ins.MayHaveSideEffect(), name)
	}
}

func TestInstructionTypes(t *testing.T) {
	c, fn := newTestFunction(t)
	values := buildOneOfEach(c, fn)
	u64 := UintType(c, 64)
	unit := UnitType(c)

	typed := map[string]Type{
		"addr_of":  u64,
		"asm":      u64,
		"binary":   u64,
		"bitcast":  B256Type(c),
		"call":     u64,
		"cmp":      BoolType(c),
		"contract": u64,
		"ext_elem": u64,
		"ext_val":  B256Type(c),
		"get_key":  B256Type(c),
		"gtf":      u64,
		"log":      unit,
		"memcopy":  unit,
		"read_reg": u64,
		"smo":      unit,
		"sldq":     unit,
		"sldw":     u64,
		"sstq":     unit,
		"sstw":     unit,
		"store":    unit,
	}
	untyped := map[string]bool{
		"branch": true, "cond_branch": true, "ret": true, "revert": true, "nop": true,
	}

	for name, val := range values {
		ins, ok := val.Instruction(c)
		require.True(t, ok, name)
		ty, hasType := ins.Type(c)
		if untyped[name] {
			assert.False(t, hasType, name)
			continue
		}
		require.True(t, hasType, name)
		if want, checked := typed[name]; checked {
			assert.Equal(t, want, ty, name)
		}
	}

	// Load strips the pointer from its source value's type.
	loadTy, ok := values["load"].Type(c)
	require.True(t, ok)
	assert.Equal(t, u64, loadTy)

	// Insert element/value produce the aggregate's own type.
	arrTy, ok := values["ins_elem"].Type(c)
	require.True(t, ok)
	assert.True(t, arrTy.IsArray(c))
}

func TestInstructionAggregates(t *testing.T) {
	c, fn := newTestFunction(t)
	u64 := UintType(c, 64)
	scratch := NewBlock(c, fn, "agg")

	inner := StructAggregate(c, []Type{u64})
	innerTy := StructTypeFromAggregate(c, inner)
	outer := StructAggregate(c, []Type{innerTy, u64})
	outerTy := StructTypeFromAggregate(c, outer)
	structVal := ConstantValueUndef(c, outerTy)

	// Extracting the nested struct field reports its aggregate.
	extract := scratch.Ins(c).ExtractValue(structVal, outer, 0)
	ins, _ := extract.Instruction(c)
	agg, ok := ins.AggregateType(c)
	require.True(t, ok)
	assert.Equal(t, inner, agg)

	// Extracting the scalar field reports none.
	extractScalar := scratch.Ins(c).ExtractValue(structVal, outer, 1)
	ins, _ = extractScalar.Instruction(c)
	_, ok = ins.AggregateType(c)
	assert.False(t, ok)

	// A call returning a struct reports the return aggregate.
	maker := NewFunction(c, fn.Module(c), "maker", nil, outerTy)
	call := scratch.Ins(c).Call(maker)
	ins, _ = call.Instruction(c)
	agg, ok = ins.AggregateType(c)
	require.True(t, ok)
	assert.Equal(t, outer, agg)
}

func TestAsmBlockDeclarations(t *testing.T) {
	c, fn := newTestFunction(t)
	entry := fn.EntryBlock(c)
	u64 := UintType(c, 64)

	init := ConstantValueUint(c, 64, 42)
	asmVal := entry.Ins(c).AsmBlock(
		[]AsmArg{{Name: "ra", Initializer: &init}, {Name: "rb"}},
		[]AsmInstruction{{OpName: "movi", Args: []string{"rb", "i1"}, Immediate: "1"}},
		u64, "rb",
	)

	ins, ok := asmVal.Instruction(c)
	require.True(t, ok)
	asm := ins.(*AsmBlockInstruction)

	assert.Equal(t, []string{"ra", "rb"}, asm.Asm.ArgNames(c))
	assert.Equal(t, u64, asm.Asm.ReturnType(c))
	name, ok := asm.Asm.ReturnName(c)
	require.True(t, ok)
	assert.Equal(t, "rb", name)

	// Only declared initializers are operands.
	assert.Equal(t, []Value{init}, ins.Operands())
}

func TestInstructionIteratorSnapshots(t *testing.T) {
	c, fn := newTestFunction(t)
	entry := fn.EntryBlock(c)
	u64 := UintType(c, 64)

	one := ConstantValueUint(c, 64, 1)
	a := entry.Ins(c).BitCast(one, u64)
	b := entry.Ins(c).BitCast(one, u64)
	third := entry.Ins(c).BitCast(one, u64)

	iter := entry.InstructionIter(c)
	first, ok := iter.Next()
	require.True(t, ok)
	assert.Equal(t, a, first)

	// Mutate the block mid-iteration: remove one value, append another.
	entry.RemoveInstruction(c, b)
	added := entry.Ins(c).BitCast(one, u64)

	var rest []Value
	for val, more := iter.Next(); more; val, more = iter.Next() {
		rest = append(rest, val)
	}
	assert.Equal(t, []Value{b, third}, rest,
		"iteration sees the snapshot: removed values included, additions skipped")
	assert.NotContains(t, rest, added)
}

func TestInstructionIteratorBackwards(t *testing.T) {
	c, fn := newTestFunction(t)
	entry := fn.EntryBlock(c)
	u64 := UintType(c, 64)

	one := ConstantValueUint(c, 64, 1)
	a := entry.Ins(c).BitCast(one, u64)
	b := entry.Ins(c).BitCast(one, u64)

	iter := entry.InstructionIter(c)
	last, ok := iter.NextBack()
	require.True(t, ok)
	assert.Equal(t, b, last)
	secondLast, ok := iter.NextBack()
	require.True(t, ok)
	assert.Equal(t, a, secondLast)
	_, ok = iter.NextBack()
	assert.False(t, ok)
}
