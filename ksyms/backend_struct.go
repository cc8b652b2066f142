package ksyms

import (
	"bufio"
	"fmt"
	"io"
)

// structBackend is the default-mode output backend: a struct-literal-style
// header emitting plain C declarations. Grounded on the original's
// CGenerator.
type structBackend struct {
	w   *bufio.Writer
	err error
}

var structTableNames = map[TableID]string{
	SymbolCount:     "g_symbol_count",
	SymbolNames:     "g_symbol_compressed_names",
	SymbolMarkers:   "g_symbol_name_offsets",
	SymbolAddresses: "g_symbol_relative_addresses",
	SymbolBase:      "g_symbol_base",
	SymbolIndices:   "g_symbol_name_index_to_address_index",
	TokenTableID:    "g_symbol_token_table",
	TokenOffsets:    "g_symbol_token_offsets",
}

func structElemTypeName(t ValueType) string {
	switch t {
	case U8, U8Array:
		return "const u8"
	case U16, U16Array:
		return "const u16"
	case U32:
		return "const u32"
	case ASCIIString:
		return "const char"
	default:
		return "const u8"
	}
}

// NewStructBackend returns an Emitter that writes the default-mode
// structured-data table file to w, including its fixed header.
func NewStructBackend(w io.Writer) Emitter {
	b := &structBackend{w: bufio.NewWriter(w)}
	b.write("#include <common/types.h>\n")
	b.write("#include <symbols.h>\n\n")
	b.write("#include <private/symbols.h>\n\n")
	return b
}

func (b *structBackend) write(s string) {
	if b.err != nil {
		return
	}
	_, b.err = b.w.WriteString(s)
}

func (b *structBackend) emitValue(v Value) error {
	switch v.Type {
	case U8, U16, U32:
		b.write(fmt.Sprintf("%d", v.U))
		return nil
	case U8Array, U16Array:
		list, err := formatHexList(v)
		if err != nil {
			return err
		}
		b.write(list)
		return nil
	case ASCIIString:
		b.write(formatASCIIStringChars(v.Str))
		return nil
	default:
		return errWrongShape("emitValue", v.Type)
	}
}

func (b *structBackend) EmitScalar(table TableID, value Value) error {
	if value.Type == U8Array || value.Type == U16Array {
		return errWrongShape("EmitScalar", value.Type)
	}

	if table == SymbolBase {
		b.write("const ptr_t ")
		b.write(structTableNames[table])
	} else {
		b.write(structElemTypeName(value.Type))
		b.write(" ")
		b.write(structTableNames[table])
	}

	b.write(" = ")
	if table == SymbolBase {
		b.write(formatHexScalar(value) + " + (ptr_t)" + textBeginSymbol)
	} else if err := b.emitValue(value); err != nil {
		return err
	}
	b.write(";\n\n")
	return b.err
}

func (b *structBackend) Array(table TableID, elemType ValueType) (ArrayEmitter, error) {
	b.write(structElemTypeName(elemType))
	b.write(" ")
	b.write(structTableNames[table])
	b.write("[] = {\n")
	return &structArrayEmitter{backend: b}, b.err
}

func (b *structBackend) Flush() error {
	if b.err != nil {
		return b.err
	}
	return b.w.Flush()
}

type structArrayEmitter struct {
	backend *structBackend
	closed  bool
}

func (a *structArrayEmitter) Emit(value Value, comment string) error {
	a.backend.write("    ")
	if err := a.backend.emitValue(value); err != nil {
		return err
	}
	a.backend.write(",")
	if comment != "" {
		a.backend.write(fmt.Sprintf(" /* %s */\n", comment))
	} else {
		a.backend.write("\n")
	}
	return a.backend.err
}

func (a *structArrayEmitter) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.backend.write("};\n\n")
	return a.backend.err
}
