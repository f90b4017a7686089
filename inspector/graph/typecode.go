package graph

import (
	"fmt"
	"strconv"
	"strings"
)

// TypeCode encodes a C++ type as a base type, an indirection level and a const qualifier.
// The low byte holds the base type, bit 8 the reference flag, bits 9..15 the pointer
// depth and bit 16 the const qualifier of the outermost value.
type TypeCode uint32

const (
	BaseMask      TypeCode = 0x000000FF
	Reference     TypeCode = 0x00000100
	PointerMask   TypeCode = 0x0000FE00
	Const         TypeCode = 0x00010000
	pointerShift           = 9
	maxPointerLvl          = int(PointerMask >> pointerShift)
)

// Base types
const (
	Unknown          TypeCode = 0x00
	Float            TypeCode = 0x01
	Void             TypeCode = 0x02
	Char             TypeCode = 0x03
	Int              TypeCode = 0x04
	Short            TypeCode = 0x05
	Long             TypeCode = 0x06
	Double           TypeCode = 0x07
	Object           TypeCode = 0x09
	IDType           TypeCode = 0x0A
	LongLong         TypeCode = 0x0B
	Int64            TypeCode = 0x0C
	SignedChar       TypeCode = 0x0D
	Bool             TypeCode = 0x0E
	SizeT            TypeCode = 0x0F
	UnsignedChar     TypeCode = 0x13
	UnsignedInt      TypeCode = 0x14
	UnsignedShort    TypeCode = 0x15
	UnsignedLong     TypeCode = 0x16
	UnsignedLongLong TypeCode = 0x1B
	UnsignedInt64    TypeCode = 0x1C
	String           TypeCode = 0x21
	FunctionPtr      TypeCode = 0x25
)

var baseNames = map[TypeCode]string{
	Unknown:          "unknown",
	Float:            "float",
	Void:             "void",
	Char:             "char",
	Int:              "int",
	Short:            "short",
	Long:             "long",
	Double:           "double",
	Object:           "object",
	IDType:           "vtkIdType",
	LongLong:         "long long",
	Int64:            "__int64",
	SignedChar:       "signed char",
	Bool:             "bool",
	SizeT:            "size_t",
	UnsignedChar:     "unsigned char",
	UnsignedInt:      "unsigned int",
	UnsignedShort:    "unsigned short",
	UnsignedLong:     "unsigned long",
	UnsignedLongLong: "unsigned long long",
	UnsignedInt64:    "unsigned __int64",
	String:           "string",
	FunctionPtr:      "function",
}

// spelled maps a normalized C++ type spelling to its base code
var spelled = map[string]TypeCode{
	"float":                  Float,
	"void":                   Void,
	"char":                   Char,
	"int":                    Int,
	"signed":                 Int,
	"signed int":             Int,
	"short":                  Short,
	"short int":              Short,
	"signed short":           Short,
	"long":                   Long,
	"long int":               Long,
	"signed long":            Long,
	"double":                 Double,
	"long double":            Double,
	"vtkIdType":              IDType,
	"long long":              LongLong,
	"long long int":          LongLong,
	"signed long long":       LongLong,
	"__int64":                Int64,
	"int64_t":                Int64,
	"signed char":            SignedChar,
	"bool":                   Bool,
	"size_t":                 SizeT,
	"std::size_t":            SizeT,
	"unsigned char":          UnsignedChar,
	"uint8_t":                UnsignedChar,
	"unsigned":               UnsignedInt,
	"unsigned int":           UnsignedInt,
	"uint32_t":               UnsignedInt,
	"unsigned short":         UnsignedShort,
	"unsigned short int":     UnsignedShort,
	"uint16_t":               UnsignedShort,
	"unsigned long":          UnsignedLong,
	"unsigned long int":      UnsignedLong,
	"unsigned long long":     UnsignedLongLong,
	"unsigned long long int": UnsignedLongLong,
	"unsigned __int64":       UnsignedInt64,
	"uint64_t":               UnsignedInt64,
	"int32_t":                Int,
	"int16_t":                Short,
	"int8_t":                 SignedChar,
	"std::string":            String,
	"string":                 String,
	"vtkStdString":           String,
}

// LookupBase returns base type code for a C++ type spelling; unrecognized names
// resolve to Object
func LookupBase(name string) TypeCode {
	name = strings.Join(strings.Fields(name), " ")
	if code, ok := spelled[name]; ok {
		return code
	}
	if name == "" {
		return Unknown
	}
	return Object
}

// Base returns base type
func (c TypeCode) Base() TypeCode {
	return c & BaseMask
}

// PointerDepth returns number of pointer indirections
func (c TypeCode) PointerDepth() int {
	return int((c & PointerMask) >> pointerShift)
}

// IsReference returns true for reference types
func (c TypeCode) IsReference() bool {
	return c&Reference != 0
}

// IsConst returns true for const qualified types
func (c TypeCode) IsConst() bool {
	return c&Const != 0
}

// WithPointer adds one pointer level, saturating at the maximum depth
func (c TypeCode) WithPointer() TypeCode {
	depth := c.PointerDepth()
	if depth >= maxPointerLvl {
		return c
	}
	return (c &^ PointerMask) | TypeCode(depth+1)<<pointerShift
}

// WithReference marks code as reference
func (c TypeCode) WithReference() TypeCode {
	return c | Reference
}

// WithConst marks code as const
func (c TypeCode) WithConst() TypeCode {
	return c | Const
}

// Unqualified drops const qualifier
func (c TypeCode) Unqualified() TypeCode {
	return c &^ Const
}

// String returns a readable form such as "const double*&"
func (c TypeCode) String() string {
	builder := strings.Builder{}
	if c.IsConst() {
		builder.WriteString("const ")
	}
	name, ok := baseNames[c.Base()]
	if !ok {
		name = fmt.Sprintf("0x%02x", uint32(c.Base()))
	}
	builder.WriteString(name)
	builder.WriteString(strings.Repeat("*", c.PointerDepth()))
	if c.IsReference() {
		builder.WriteString("&")
	}
	return builder.String()
}

// Hex returns hexadecimal representation used by hint files
func (c TypeCode) Hex() string {
	return strconv.FormatUint(uint64(c), 16)
}

// ParseTypeCode parses hexadecimal type code with or without 0x prefix
func ParseTypeCode(text string) (TypeCode, error) {
	text = strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X")
	value, err := strconv.ParseUint(text, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid type code %q: %w", text, err)
	}
	return TypeCode(value), nil
}
