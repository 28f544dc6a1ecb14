package ir

// Constant is a typed compile time value.  Constants are never interned:
// creating two constants with the same content yields two distinct
// values, and only their contents compare equal.

// ConstantKind discriminates the constant payload variants.
type ConstantKind int

const (
	ConstantUndef ConstantKind = iota
	ConstantUnit
	ConstantBool
	ConstantUint
	ConstantB256
	ConstantString
	ConstantArray
	ConstantStruct
)

// Constant is a Type together with one of the supported compile time
// payloads.  The Undef kind stands for an uninitialized value of the
// type.
type Constant struct {
	Ty   Type
	Kind ConstantKind

	BoolVal   bool
	UintVal   uint64
	B256Val   [32]byte
	StringVal []byte
	// Array and struct constants carry their children in order.
	Children []Constant
}

// NewUndefConstant returns an undef constant of the given type.
func NewUndefConstant(ty Type) Constant {
	return Constant{Ty: ty, Kind: ConstantUndef}
}

// NewUnitConstant returns the unit constant.
func NewUnitConstant(c *Context) Constant {
	return Constant{Ty: UnitType(c), Kind: ConstantUnit}
}

// NewBoolConstant returns a boolean constant.
func NewBoolConstant(c *Context, b bool) Constant {
	return Constant{Ty: BoolType(c), Kind: ConstantBool, BoolVal: b}
}

// NewUintConstant returns an unsigned integer constant of the given
// width.
func NewUintConstant(c *Context, bits uint16, n uint64) Constant {
	return Constant{Ty: UintType(c, bits), Kind: ConstantUint, UintVal: n}
}

// NewB256Constant returns a 256 bit constant.
func NewB256Constant(c *Context, bytes [32]byte) Constant {
	return Constant{Ty: B256Type(c), Kind: ConstantB256, B256Val: bytes}
}

// NewStringConstant returns a fixed length string constant.
func NewStringConstant(c *Context, bytes []byte) Constant {
	return Constant{
		Ty:        StringType(c, uint64(len(bytes))),
		Kind:      ConstantString,
		StringVal: append([]byte{}, bytes...),
	}
}

// NewArrayConstant returns an array constant with the given element type
// and children.
func NewArrayConstant(c *Context, elemTy Type, elems []Constant) Constant {
	return Constant{
		Ty:       ArrayType(c, elemTy, uint64(len(elems))),
		Kind:     ConstantArray,
		Children: elems,
	}
}

// NewStructConstant returns a struct constant whose type is derived from
// the field constants.
func NewStructConstant(c *Context, fields []Constant) Constant {
	fieldTypes := make([]Type, len(fields))
	for i, f := range fields {
		fieldTypes[i] = f.Ty
	}
	return Constant{
		Ty:       StructType(c, fieldTypes),
		Kind:     ConstantStruct,
		Children: fields,
	}
}

// ConstantValueUndef creates an undef constant value of type ty.
func ConstantValueUndef(c *Context, ty Type) Value {
	return NewConstantValue(c, NewUndefConstant(ty))
}

// ConstantValueUnit creates the unit constant value.
func ConstantValueUnit(c *Context) Value {
	return NewConstantValue(c, NewUnitConstant(c))
}

// ConstantValueBool creates a boolean constant value.
func ConstantValueBool(c *Context, b bool) Value {
	return NewConstantValue(c, NewBoolConstant(c, b))
}

// ConstantValueUint creates an unsigned integer constant value.
func ConstantValueUint(c *Context, bits uint16, n uint64) Value {
	return NewConstantValue(c, NewUintConstant(c, bits, n))
}

// ConstantValueB256 creates a 256 bit constant value.
func ConstantValueB256(c *Context, bytes [32]byte) Value {
	return NewConstantValue(c, NewB256Constant(c, bytes))
}

// ConstantValueString creates a string constant value.
func ConstantValueString(c *Context, bytes []byte) Value {
	return NewConstantValue(c, NewStringConstant(c, bytes))
}

// ConstantValueArray creates a constant value from an array constant
// built with NewArrayConstant.
func ConstantValueArray(c *Context, con Constant) Value {
	if !con.Ty.IsArray(c) {
		panic("ir: ConstantValueArray on non-array constant")
	}
	return NewConstantValue(c, con)
}

// ConstantValueStruct creates a constant value from a struct constant
// built with NewStructConstant.
func ConstantValueStruct(c *Context, con Constant) Value {
	if !con.Ty.IsStruct(c) {
		panic("ir: ConstantValueStruct on non-struct constant")
	}
	return NewConstantValue(c, con)
}

// Equal compares two constants structurally under their types.  Undef
// breaks reflexivity: an undef constant equals nothing, not even another
// undef of the same type, so independent undefs are never folded.
func (con *Constant) Equal(c *Context, other *Constant) bool {
	if con.Ty != other.Ty {
		return false
	}
	if con.Kind == ConstantUndef || other.Kind == ConstantUndef {
		return false
	}
	if con.Kind != other.Kind {
		return false
	}
	switch con.Kind {
	case ConstantUnit:
		return true
	case ConstantBool:
		return con.BoolVal == other.BoolVal
	case ConstantUint:
		return con.UintVal == other.UintVal
	case ConstantB256:
		return con.B256Val == other.B256Val
	case ConstantString:
		return string(con.StringVal) == string(other.StringVal)
	case ConstantArray, ConstantStruct:
		if len(con.Children) != len(other.Children) {
			return false
		}
		for i := range con.Children {
			if !con.Children[i].Equal(c, &other.Children[i]) {
				return false
			}
		}
		return true
	}
	return false
}
