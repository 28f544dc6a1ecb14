package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUndefNeverEqual(t *testing.T) {
	c := NewContext()
	boolTy := BoolType(c)

	u1 := NewUndefConstant(boolTy)
	u2 := NewUndefConstant(boolTy)

	assert.False(t, u1.Equal(c, &u2), "two undefs of the same type are not equal")
	assert.False(t, u1.Equal(c, &u1), "undef is not even equal to itself")

	b := NewBoolConstant(c, true)
	assert.False(t, u1.Equal(c, &b))
	assert.False(t, b.Equal(c, &u1))
}

func TestConstantStructuralEquality(t *testing.T) {
	c := NewContext()

	tests := []struct {
		name  string
		lhs   Constant
		rhs   Constant
		equal bool
	}{
		{"unit", NewUnitConstant(c), NewUnitConstant(c), true},
		{"bool same", NewBoolConstant(c, true), NewBoolConstant(c, true), true},
		{"bool differs", NewBoolConstant(c, true), NewBoolConstant(c, false), false},
		{"uint same", NewUintConstant(c, 64, 42), NewUintConstant(c, 64, 42), true},
		{"uint differs", NewUintConstant(c, 64, 42), NewUintConstant(c, 64, 43), false},
		{"uint width differs", NewUintConstant(c, 32, 42), NewUintConstant(c, 64, 42), false},
		{"b256 same", NewB256Constant(c, [32]byte{1}), NewB256Constant(c, [32]byte{1}), true},
		{"b256 differs", NewB256Constant(c, [32]byte{1}), NewB256Constant(c, [32]byte{2}), false},
		{"string same", NewStringConstant(c, []byte("abc")), NewStringConstant(c, []byte("abc")), true},
		{"string differs", NewStringConstant(c, []byte("abc")), NewStringConstant(c, []byte("abd")), false},
		{"kind differs", NewBoolConstant(c, false), NewUnitConstant(c), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, tt.lhs.Equal(c, &tt.rhs))
			assert.Equal(t, tt.equal, tt.rhs.Equal(c, &tt.lhs), "equality is symmetric")
		})
	}
}

func TestAggregateConstantEquality(t *testing.T) {
	c := NewContext()
	u64 := UintType(c, 64)

	arr1 := NewArrayConstant(c, u64, []Constant{
		NewUintConstant(c, 64, 1), NewUintConstant(c, 64, 2),
	})
	arr2 := NewArrayConstant(c, u64, []Constant{
		NewUintConstant(c, 64, 1), NewUintConstant(c, 64, 2),
	})
	arr3 := NewArrayConstant(c, u64, []Constant{
		NewUintConstant(c, 64, 1), NewUintConstant(c, 64, 3),
	})
	assert.True(t, arr1.Equal(c, &arr2))
	assert.False(t, arr1.Equal(c, &arr3))

	st1 := NewStructConstant(c, []Constant{NewBoolConstant(c, true), NewUintConstant(c, 64, 5)})
	st2 := NewStructConstant(c, []Constant{NewBoolConstant(c, true), NewUintConstant(c, 64, 5)})
	assert.True(t, st1.Equal(c, &st2))

	// A nested undef poisons equality of the whole aggregate.
	withUndef1 := NewStructConstant(c, []Constant{NewUndefConstant(u64)})
	withUndef2 := NewStructConstant(c, []Constant{NewUndefConstant(u64)})
	assert.False(t, withUndef1.Equal(c, &withUndef2))
}

func TestConstantValuesHaveIdentity(t *testing.T) {
	c := NewContext()

	v1 := ConstantValueUint(c, 64, 7)
	v2 := ConstantValueUint(c, 64, 7)

	assert.NotEqual(t, v1, v2, "constants are not interned; each value is distinct")

	con1, ok := v1.Constant(c)
	require.True(t, ok)
	con2, ok := v2.Constant(c)
	require.True(t, ok)
	assert.True(t, con1.Equal(c, con2), "but their contents compare equal")
}

func TestConstantTypes(t *testing.T) {
	c := NewContext()

	assert.Equal(t, UnitType(c), NewUnitConstant(c).Ty)
	assert.Equal(t, BoolType(c), NewBoolConstant(c, false).Ty)
	assert.Equal(t, UintType(c, 32), NewUintConstant(c, 32, 1).Ty)
	assert.Equal(t, B256Type(c), NewB256Constant(c, [32]byte{}).Ty)
	assert.Equal(t, StringType(c, 5), NewStringConstant(c, []byte("hello")).Ty)

	arr := NewArrayConstant(c, BoolType(c), []Constant{NewBoolConstant(c, true)})
	assert.Equal(t, ArrayType(c, BoolType(c), 1), arr.Ty)

	st := NewStructConstant(c, []Constant{NewBoolConstant(c, true), NewUnitConstant(c)})
	assert.Equal(t, StructType(c, []Type{BoolType(c), UnitType(c)}), st.Ty)
}

func TestConstantValueGuards(t *testing.T) {
	c := NewContext()

	assert.Panics(t, func() {
		ConstantValueArray(c, NewBoolConstant(c, true))
	})
	assert.Panics(t, func() {
		ConstantValueStruct(c, NewUnitConstant(c))
	})
}
