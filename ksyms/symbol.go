package ksyms

import "strings"

// Mode selects between the tool's two output dialects. It is a plain
// enumeration rather than a class hierarchy: its methods and the
// mode-checking call sites use a Mode value to determine canonical-name
// shape, section sentinel names, the name-length cap, and the
// linker-symbol heuristic.
type Mode int

const (
	// DefaultMode targets this project's own kernel: plain canonical
	// names, g_linker_symbol_* sentinels, a 127-byte name cap, and the
	// struct-literal backend.
	DefaultMode Mode = iota

	// CompatMode reproduces the Linux kallsyms build pass bit-exactly:
	// type-prefixed canonical names, _stext/_etext(+_sinittext/_einittext)
	// sentinels, a 511-byte name cap, and the assembler-directive backend.
	CompatMode
)

// maxSymbolLength returns the maximum accepted symbol-name length for mode.
func (m Mode) maxSymbolLength() int {
	if m == CompatMode {
		return 511
	}
	return 127
}

// linkerSymbolPrefix is the default-mode linker-symbol prefix.
const linkerSymbolPrefix = "g_linker_symbol_"

// textBeginSymbol and textEndSymbol are the default-mode .text sentinels.
const (
	textBeginSymbol = linkerSymbolPrefix + "text_begin"
	textEndSymbol   = linkerSymbolPrefix + "text_end"
)

// Linux-mode sentinels.
const (
	linuxTextBeginSymbol = "_stext"
	linuxTextEndSymbol   = "_etext"
	linuxInitBeginSymbol = "_sinittext"
	linuxInitEndSymbol   = "_einittext"
)

// Symbol is an immutable record parsed from one nm listing line, carrying
// both its original insertion ordinal and (once address-sorted) its
// position in the sorted array. Both exist simultaneously during the
// pipeline: insertion order breaks ties in the address sort, and the
// address-sort position is later needed as the "address index" used by the
// name-to-address permutation.
type Symbol struct {
	Name    string
	Type    byte
	Address uint64
	Index   int
}

// CanonicalName is the key under which a symbol is stored and searched.
// Compatibility mode embeds the type character.
func (s Symbol) CanonicalName(mode Mode) string {
	if mode == CompatMode {
		return string(s.Type) + s.Name
	}
	return s.Name
}

// IsWeak reports whether the symbol's nm type is 'W'.
func (s Symbol) IsWeak() bool {
	return s.Type == 'W'
}

// IsLinker reports whether the symbol is a linker-inserted section marker,
// per the mode-specific heuristic.
func (s Symbol) IsLinker(mode Mode) bool {
	if mode == CompatMode {
		return isLinuxLinkerSymbol(s.Name)
	}
	return strings.HasPrefix(s.Name, linkerSymbolPrefix)
}

// isLinuxLinkerSymbol implements the compatibility-mode linker-symbol test:
// len(name) >= 8, starts with "__", and (starts with one of __start_/
// __stop_/__end_ or ends with _start/_end).
func isLinuxLinkerSymbol(name string) bool {
	if len(name) < 8 {
		return false
	}
	if !strings.HasPrefix(name, "__") {
		return false
	}
	for _, p := range []string{"__start_", "__stop_", "__end_"} {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	for _, suf := range []string{"_start", "_end"} {
		if strings.HasSuffix(name, suf) {
			return true
		}
	}
	return false
}

// leadingUnderscores counts the leading '_' bytes in name.
func leadingUnderscores(name string) int {
	n := 0
	for n < len(name) && name[n] == '_' {
		n++
	}
	return n
}
