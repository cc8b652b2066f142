package ksyms

import (
	"bufio"
	"fmt"
	"io"
)

// asmBackend is the compatibility-mode output backend: GAS assembler
// directives in a read-only section. Grounded on the original's
// GASGenerator.
type asmBackend struct {
	w   *bufio.Writer
	err error
}

var asmTableLabels = map[TableID]string{
	SymbolCount:     "kallsyms_num_syms",
	SymbolNames:     "kallsyms_names",
	SymbolMarkers:   "kallsyms_markers",
	SymbolAddresses: "kallsyms_offsets",
	SymbolBase:      "kallsyms_relative_base",
	SymbolIndices:   "kallsyms_seqs_of_names",
	TokenTableID:    "kallsyms_token_table",
	TokenOffsets:    "kallsyms_token_index",
}

// NewAsmBackend returns an Emitter that writes the compatibility-mode
// assembler-directive table file to w, including its fixed header.
func NewAsmBackend(w io.Writer) Emitter {
	b := &asmBackend{w: bufio.NewWriter(w)}
	b.write("#include <asm/bitsperlong.h>\n")
	b.write("#if BITS_PER_LONG == 64\n")
	b.write("#define PTR .quad\n")
	b.write("#define ALGN .balign 8\n")
	b.write("#else\n")
	b.write("#define PTR .long\n")
	b.write("#define ALGN .balign 4\n")
	b.write("#endif\n")
	b.write("\t.section .rodata, \"a\"\n")
	return b
}

func (b *asmBackend) write(s string) {
	if b.err != nil {
		return
	}
	_, b.err = b.w.WriteString(s)
}

func (b *asmBackend) emitLabel(table TableID) {
	name := asmTableLabels[table]
	b.write(fmt.Sprintf(".globl %s\n", name))
	b.write("\tALGN\n")
	b.write(fmt.Sprintf("%s:\n", name))
}

// gasPrologue mirrors the original's _make_gas_prologue: the directive
// (".byte"/".short"/".long"/".asciz") plus a one-space separator for the
// two tables whose array elements are themselves comma-joined lists
// (SYMBOL_NAMES, SYMBOL_INDICES), a tab for everything else.
func gasPrologue(table TableID, t ValueType) string {
	directive := map[ValueType]string{
		U8: "byte", U8Array: "byte",
		U16: "short", U16Array: "short",
		U32:         "long",
		ASCIIString: "asciz",
	}[t]

	sep := "\t"
	if table == SymbolNames || table == SymbolIndices {
		sep = " "
	}
	return "." + directive + sep
}

func (b *asmBackend) EmitScalar(table TableID, value Value) error {
	b.emitLabel(table)

	if table == SymbolBase {
		if value.Type != U32 {
			return errWrongShape("EmitScalar SymbolBase", value.Type)
		}
		b.write(fmt.Sprintf("\tPTR\t_text + %s\n\n", formatHexScalar(value)))
		return b.err
	}

	prologue := gasPrologue(table, value.Type)
	b.write(fmt.Sprintf("\t%s%d\n\n", prologue, value.U))
	return b.err
}

func (b *asmBackend) Array(table TableID, elemType ValueType) (ArrayEmitter, error) {
	b.emitLabel(table)
	return &asmArrayEmitter{backend: b, table: table}, b.err
}

func (b *asmBackend) Flush() error {
	if b.err != nil {
		return b.err
	}
	return b.w.Flush()
}

type asmArrayEmitter struct {
	backend *asmBackend
	table   TableID
	closed  bool
}

func (a *asmArrayEmitter) Emit(value Value, comment string) error {
	prologue := gasPrologue(a.table, value.Type)
	a.backend.write("\t" + prologue)

	switch value.Type {
	case U8, U16, U32:
		if a.table == SymbolAddresses {
			a.backend.write(formatHexScalar(value))
		} else {
			a.backend.write(fmt.Sprintf("%d", value.U))
		}
	case U8Array, U16Array:
		list, err := formatHexList(value)
		if err != nil {
			return err
		}
		a.backend.write(list)
	case ASCIIString:
		a.backend.write(fmt.Sprintf("\"%s\"", value.Str))
	default:
		return errWrongShape("Emit", value.Type)
	}

	if comment != "" {
		a.backend.write(fmt.Sprintf("\t/* %s */\n", comment))
	} else {
		a.backend.write("\n")
	}
	return a.backend.err
}

func (a *asmArrayEmitter) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.backend.write("\n")
	return a.backend.err
}
