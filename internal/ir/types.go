package ir

import (
	"fmt"
	"strings"
)

// Value types are interned in the context: a Type handle identifies a
// unique structural type, so two requests with equal arguments always
// return equal handles and type equality is handle equality.

// TypeKind discriminates the interned type variants.
type TypeKind int

const (
	TypeUnit TypeKind = iota
	TypeBool
	TypeUint
	TypeB256
	TypeString
	TypeArray
	TypeStruct
	TypePointer
)

// Type is a handle to an interned type in a context.
type Type struct {
	idx int
}

type typeContent struct {
	kind TypeKind

	uintBits  uint16    // TypeUint
	strLen    uint64    // TypeString
	aggregate Aggregate // TypeArray, TypeStruct
	pointer   Pointer   // TypePointer
}

func (c *Context) internType(signature string, content typeContent) Type {
	if ty, found := c.typeLookup[signature]; found {
		return ty
	}
	ty := Type{idx: len(c.types)}
	c.types = append(c.types, content)
	c.typeLookup[signature] = ty
	return ty
}

func (c *Context) typeContentOf(ty Type) *typeContent {
	if ty.idx < 0 || ty.idx >= len(c.types) {
		panic(fmt.Sprintf("ir: type handle %d out of range", ty.idx))
	}
	return &c.types[ty.idx]
}

// UnitType returns the unit type.
func UnitType(c *Context) Type {
	return c.internType("unit", typeContent{kind: TypeUnit})
}

// BoolType returns the boolean type.
func BoolType(c *Context) Type {
	return c.internType("bool", typeContent{kind: TypeBool})
}

// UintType returns the unsigned integer type of the requested width.
// Only 8, 16, 32 and 64 bit integers are supported.
func UintType(c *Context, bits uint16) Type {
	switch bits {
	case 8, 16, 32, 64:
	default:
		panic(fmt.Sprintf("ir: unsupported uint width %d", bits))
	}
	return c.internType(fmt.Sprintf("uint%d", bits), typeContent{kind: TypeUint, uintBits: bits})
}

// B256Type returns the 256 bit hash/key type.
func B256Type(c *Context) Type {
	return c.internType("b256", typeContent{kind: TypeB256})
}

// StringType returns the fixed length string type of length bytes.
func StringType(c *Context, length uint64) Type {
	return c.internType(fmt.Sprintf("str[%d]", length), typeContent{kind: TypeString, strLen: length})
}

// ArrayType returns the array type described by an interned aggregate of
// count elements of type elem.
func ArrayType(c *Context, elem Type, count uint64) Type {
	return ArrayTypeFromAggregate(c, ArrayAggregate(c, elem, count))
}

// StructType returns the struct type described by an interned aggregate
// with the given field types.
func StructType(c *Context, fields []Type) Type {
	return StructTypeFromAggregate(c, StructAggregate(c, fields))
}

// ArrayTypeFromAggregate wraps an existing array aggregate in a type.
func ArrayTypeFromAggregate(c *Context, agg Aggregate) Type {
	return c.internType(fmt.Sprintf("array(%d)", agg.idx.index),
		typeContent{kind: TypeArray, aggregate: agg})
}

// StructTypeFromAggregate wraps an existing struct aggregate in a type.
func StructTypeFromAggregate(c *Context, agg Aggregate) Type {
	return c.internType(fmt.Sprintf("struct(%d)", agg.idx.index),
		typeContent{kind: TypeStruct, aggregate: agg})
}

// PointerType returns the type for a pointer handle.  Pointers are not
// interned themselves, so each distinct pointer yields a distinct type.
func PointerType(c *Context, ptr Pointer) Type {
	return c.internType(fmt.Sprintf("ptr(%d)", ptr.idx.index),
		typeContent{kind: TypePointer, pointer: ptr})
}

// Kind returns the type's variant.
func (ty Type) Kind(c *Context) TypeKind {
	return c.typeContentOf(ty).kind
}

// IsUnit reports whether this is the unit type.
func (ty Type) IsUnit(c *Context) bool { return ty.Kind(c) == TypeUnit }

// IsBool reports whether this is the boolean type.
func (ty Type) IsBool(c *Context) bool { return ty.Kind(c) == TypeBool }

// IsUint reports whether this is an unsigned integer type.
func (ty Type) IsUint(c *Context) bool { return ty.Kind(c) == TypeUint }

// IsArray reports whether this is an array type.
func (ty Type) IsArray(c *Context) bool { return ty.Kind(c) == TypeArray }

// IsStruct reports whether this is a struct type.
func (ty Type) IsStruct(c *Context) bool { return ty.Kind(c) == TypeStruct }

// IsPointer reports whether this is a pointer type.
func (ty Type) IsPointer(c *Context) bool { return ty.Kind(c) == TypePointer }

// UintBits returns the width of an unsigned integer type.
func (ty Type) UintBits(c *Context) uint16 {
	content := c.typeContentOf(ty)
	if content.kind != TypeUint {
		panic("ir: UintBits on non-uint type")
	}
	return content.uintBits
}

// StringLen returns the length of a string type in bytes.
func (ty Type) StringLen(c *Context) uint64 {
	content := c.typeContentOf(ty)
	if content.kind != TypeString {
		panic("ir: StringLen on non-string type")
	}
	return content.strLen
}

// AggregateOf returns the aggregate descriptor behind an array or
// struct type.
func (ty Type) AggregateOf(c *Context) (Aggregate, bool) {
	content := c.typeContentOf(ty)
	if content.kind == TypeArray || content.kind == TypeStruct {
		return content.aggregate, true
	}
	return Aggregate{}, false
}

// PointerOf returns the pointer handle behind a pointer type.
func (ty Type) PointerOf(c *Context) (Pointer, bool) {
	content := c.typeContentOf(ty)
	if content.kind == TypePointer {
		return content.pointer, true
	}
	return Pointer{}, false
}

// StripPointer returns the pointee type for pointer types and the type
// itself otherwise.
func (ty Type) StripPointer(c *Context) Type {
	if ptr, ok := ty.PointerOf(c); ok {
		return ptr.PointeeType(c)
	}
	return ty
}

// String renders a short printable name for the type.
func (ty Type) String(c *Context) string {
	content := c.typeContentOf(ty)
	switch content.kind {
	case TypeUnit:
		return "()"
	case TypeBool:
		return "bool"
	case TypeUint:
		return fmt.Sprintf("u%d", content.uintBits)
	case TypeB256:
		return "b256"
	case TypeString:
		return fmt.Sprintf("str[%d]", content.strLen)
	case TypeArray:
		elem, count := content.aggregate.arrayParts(c)
		return fmt.Sprintf("[%s; %d]", elem.String(c), count)
	case TypeStruct:
		fields := content.aggregate.FieldTypes(c)
		names := make([]string, len(fields))
		for i, f := range fields {
			names[i] = f.String(c)
		}
		return "{ " + strings.Join(names, ", ") + " }"
	case TypePointer:
		return "ptr " + content.pointer.PointeeType(c).String(c)
	}
	panic("ir: unknown type kind")
}

// Aggregate describes the structural shape of an array or struct.  Like
// types, aggregates are interned: equal shapes get equal handles.
type Aggregate struct {
	idx arenaIndex
}

type aggregateContent struct {
	isArray bool
	elem    Type   // arrays
	count   uint64 // arrays
	fields  []Type // structs
}

// ArrayAggregate interns the descriptor for count elements of type elem.
func ArrayAggregate(c *Context, elem Type, count uint64) Aggregate {
	signature := fmt.Sprintf("a:%d:%d", elem.idx, count)
	if agg, found := c.aggregateLookup[signature]; found {
		return agg
	}
	agg := Aggregate{idx: c.aggregates.insert(aggregateContent{
		isArray: true,
		elem:    elem,
		count:   count,
	})}
	c.aggregateLookup[signature] = agg
	return agg
}

// StructAggregate interns the descriptor for a struct with the given
// field types.
func StructAggregate(c *Context, fields []Type) Aggregate {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%d", f.idx)
	}
	signature := "s:" + strings.Join(parts, ",")
	if agg, found := c.aggregateLookup[signature]; found {
		return agg
	}
	agg := Aggregate{idx: c.aggregates.insert(aggregateContent{
		fields: append([]Type{}, fields...),
	})}
	c.aggregateLookup[signature] = agg
	return agg
}

// IsArray reports whether the aggregate describes an array.
func (agg Aggregate) IsArray(c *Context) bool {
	return c.aggregates.get(agg.idx).isArray
}

func (agg Aggregate) arrayParts(c *Context) (Type, uint64) {
	content := c.aggregates.get(agg.idx)
	return content.elem, content.count
}

// ElemType returns the element type of an array aggregate.
func (agg Aggregate) ElemType(c *Context) (Type, bool) {
	content := c.aggregates.get(agg.idx)
	if !content.isArray {
		return Type{}, false
	}
	return content.elem, true
}

// ElemCount returns the element count of an array aggregate.
func (agg Aggregate) ElemCount(c *Context) (uint64, bool) {
	content := c.aggregates.get(agg.idx)
	if !content.isArray {
		return 0, false
	}
	return content.count, true
}

// FieldTypes returns the field types of a struct aggregate, or nil for
// arrays.
func (agg Aggregate) FieldTypes(c *Context) []Type {
	return c.aggregates.get(agg.idx).fields
}

// FieldType resolves a chain of field indices through nested struct
// aggregates, returning the type at the end of the chain.
func (agg Aggregate) FieldType(c *Context, indices []uint64) (Type, bool) {
	current := agg
	for step, index := range indices {
		content := c.aggregates.get(current.idx)
		if content.isArray || index >= uint64(len(content.fields)) {
			return Type{}, false
		}
		ty := content.fields[index]
		if step == len(indices)-1 {
			return ty, true
		}
		next, ok := ty.AggregateOf(c)
		if !ok {
			return Type{}, false
		}
		current = next
	}
	return Type{}, false
}
