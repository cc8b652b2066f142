package ksyms

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
)

// Config selects the generator's mode and input binary.
type Config struct {
	// Mode selects default vs. compatibility output.
	Mode Mode

	// BinaryPath is the kernel binary to list symbols from. If empty,
	// Generate emits the empty-table output without invoking nm at all —
	// this supports a two-pass build where the first pass does not yet
	// have a kernel image.
	BinaryPath string
}

// Generate runs the full pipeline — listing acquisition, parse/filter,
// address-sort, tokenize, and table emission — and writes the finished
// output to w.
//
// The listing tool is invoked as `nm -n <binary>` and fully drained before
// parsing begins; its failure is fatal for this run.
func Generate(cfg Config, w io.Writer) error {
	var (
		symbols   []Symbol
		textBegin uint64
	)

	if cfg.BinaryPath != "" {
		listing, err := runNM(cfg.BinaryPath)
		if err != nil {
			return err
		}
		parsed, begin, err := ParseListing(bytes.NewReader(listing), cfg.Mode)
		if err != nil {
			return err
		}
		symbols = SortByAddress(parsed, cfg.Mode)
		textBegin = begin
	}

	var emitter Emitter
	if cfg.Mode == CompatMode {
		emitter = NewAsmBackend(w)
	} else {
		emitter = NewStructBackend(w)
	}

	if err := emitTables(symbols, cfg.Mode, textBegin, emitter); err != nil {
		return err
	}

	if f, ok := emitter.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("ksyms: flushing output: %w", err)
		}
	}
	return nil
}

// runNM invokes `nm -n <binary>` and returns its stdout, treating any
// failure to spawn or a non-zero exit as an I/O error.
func runNM(binaryPath string) ([]byte, error) {
	out, err := exec.Command("nm", "-n", binaryPath).Output()
	if err != nil {
		return nil, fmt.Errorf("ksyms: running nm on %q: %w", binaryPath, err)
	}
	return out, nil
}

// emitTables performs exactly the eight table emissions, in order, against
// an already address-sorted symbol slice. Grounded on the original's
// main().
func emitTables(sortedSymbols []Symbol, mode Mode, textBegin uint64, emitter Emitter) error {
	tokenTable := BuildTokenTable(sortedSymbols, mode)

	if err := emitter.EmitScalar(SymbolCount, ValueU32(uint32(len(sortedSymbols)))); err != nil {
		return err
	}

	nameMarkers, err := emitSymbolNames(emitter, sortedSymbols, tokenTable, mode)
	if err != nil {
		return err
	}
	if err := emitU32Array(emitter, SymbolMarkers, nameMarkers); err != nil {
		return err
	}

	tokenOffsets, err := emitTokenTable(emitter, tokenTable)
	if err != nil {
		return err
	}
	if err := emitU16Array(emitter, TokenOffsets, tokenOffsets); err != nil {
		return err
	}

	var firstAddr uint64
	if len(sortedSymbols) > 0 {
		firstAddr = sortedSymbols[0].Address
	}
	if err := emitSymbolAddresses(emitter, sortedSymbols, firstAddr, mode); err != nil {
		return err
	}

	base := uint32(firstAddr - textBegin)
	if err := emitter.EmitScalar(SymbolBase, ValueU32(base)); err != nil {
		return err
	}

	nameSorted := SortByName(sortedSymbols, mode)
	return emitSymbolIndices(emitter, nameSorted, mode)
}

// emitSymbolNames writes SYMBOL_NAMES and returns the per-256-symbol byte
// offset markers for SYMBOL_MARKERS. It also overwrites each symbol's
// Index to its position in the address-sorted slice, matching the
// original's inline `ctx.symbols[idx].index = idx`.
func emitSymbolNames(emitter Emitter, symbols []Symbol, tokenTable *TokenTable, mode Mode) ([]uint32, error) {
	arr, err := emitter.Array(SymbolNames, U8Array)
	if err != nil {
		return nil, err
	}

	var markers []uint32
	byteOffset := 0
	for idx, tokens := range tokenTable.Streams {
		if idx&0xFF == 0 {
			markers = append(markers, uint32(byteOffset))
		}
		symbols[idx].Index = idx

		prefix, err := encodeNameLength(len(tokens))
		if err != nil {
			_ = arr.Close()
			return nil, fmt.Errorf("ksyms: symbol %q: %w", symbols[idx].CanonicalName(mode), err)
		}
		repr := make([]byte, 0, len(prefix)+len(tokens))
		repr = append(repr, prefix...)
		repr = append(repr, tokens...)
		byteOffset += len(repr)

		if err := arr.Emit(ValueU8Array(repr), symbols[idx].CanonicalName(mode)); err != nil {
			_ = arr.Close()
			return nil, err
		}
	}
	return markers, arr.Close()
}

// emitTokenTable writes TOKEN_TABLE (256 NUL-terminated strings obtained by
// recursive expansion) and returns the byte offset of each entry for
// TOKEN_OFFSETS.
func emitTokenTable(emitter Emitter, tokenTable *TokenTable) ([]uint16, error) {
	arr, err := emitter.Array(TokenTableID, ASCIIString)
	if err != nil {
		return nil, err
	}

	offsets := make([]uint16, 0, 256)
	byteOffset := 0
	for i := 0; i < 256; i++ {
		offsets = append(offsets, uint16(byteOffset))
		unwound := tokenTable.Dict.Expand(byte(i))
		if err := arr.Emit(ValueASCIIString(string(unwound)), ""); err != nil {
			_ = arr.Close()
			return nil, err
		}
		byteOffset += len(unwound) + 1 // +1 for the NUL terminator
	}
	return offsets, arr.Close()
}

// emitSymbolAddresses writes SYMBOL_ADDRESSES: each entry is the symbol's
// address relative to the first kept symbol.
func emitSymbolAddresses(emitter Emitter, symbols []Symbol, firstAddr uint64, mode Mode) error {
	arr, err := emitter.Array(SymbolAddresses, U32)
	if err != nil {
		return err
	}
	for _, s := range symbols {
		rel := uint32(s.Address - firstAddr)
		if err := arr.Emit(ValueU32(rel), s.CanonicalName(mode)); err != nil {
			_ = arr.Close()
			return err
		}
	}
	return arr.Close()
}

// emitSymbolIndices writes SYMBOL_INDICES: for symbols in canonical-name
// order, the 3-byte big-endian address-sort index — the permutation a
// runtime resolver uses to go name -> address.
func emitSymbolIndices(emitter Emitter, nameSorted []Symbol, mode Mode) error {
	arr, err := emitter.Array(SymbolIndices, U8Array)
	if err != nil {
		return err
	}
	for _, s := range nameSorted {
		triple := encodeBigEndian24(s.Index)
		if err := arr.Emit(ValueU8Array(triple[:]), s.CanonicalName(mode)); err != nil {
			_ = arr.Close()
			return err
		}
	}
	return arr.Close()
}

func emitU32Array(emitter Emitter, table TableID, values []uint32) error {
	arr, err := emitter.Array(table, U32)
	if err != nil {
		return err
	}
	for _, v := range values {
		if err := arr.Emit(ValueU32(v), ""); err != nil {
			_ = arr.Close()
			return err
		}
	}
	return arr.Close()
}

func emitU16Array(emitter Emitter, table TableID, values []uint16) error {
	arr, err := emitter.Array(table, U16)
	if err != nil {
		return err
	}
	for _, v := range values {
		if err := arr.Emit(ValueU16(v), ""); err != nil {
			_ = arr.Close()
			return err
		}
	}
	return arr.Close()
}
