package ksyms

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// droppedType reports whether t is one of the always-dropped nm types:
// undefined, absolute (local/global), or debugging.
func droppedType(t byte) bool {
	return strings.IndexByte("UaAN", t) >= 0
}

// mappingSymbolPrefixes are ARM "mapping symbol" prefixes dropped
// unconditionally.
var mappingSymbolPrefixes = []string{"$a.", "$t.", "$d.", "$x."}

func isMappingSymbol(name string) bool {
	for _, p := range mappingSymbolPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// listingContext tracks the section sentinels relevant to mode while the
// listing is parsed.
type listingContext struct {
	mode     Mode
	text     section
	initText section // only meaningful in CompatMode
}

func newListingContext(mode Mode) *listingContext {
	lc := &listingContext{mode: mode}
	if mode == CompatMode {
		lc.text = newSection(linuxTextBeginSymbol, linuxTextEndSymbol)
		lc.initText = newSection(linuxInitBeginSymbol, linuxInitEndSymbol)
	} else {
		lc.text = newSection(textBeginSymbol, textEndSymbol)
	}
	return lc
}

func (lc *listingContext) observe(name string, addr uint64) {
	if lc.text.observe(name, addr) {
		return
	}
	if lc.mode == CompatMode {
		lc.initText.observe(name, addr)
	}
}

// shouldDrop applies the text-containment rule and the default-mode
// linker-symbol exclusion rule, together with the compatibility-mode
// filter exceptions.
func (lc *listingContext) shouldDrop(s Symbol) bool {
	if lc.mode == CompatMode {
		if strings.HasPrefix(s.Name, "__start_") || strings.HasPrefix(s.Name, "__stop_") {
			return false
		}
		if s.Address == lc.text.end && s.Name != lc.text.endName {
			return true
		}
		if s.Address == lc.initText.end && s.Name != lc.initText.endName {
			return true
		}
		if lc.initText.contains(s.Address) {
			return false
		}
		return !lc.text.contains(s.Address)
	}

	if !lc.text.contains(s.Address) {
		return true
	}
	return s.IsLinker(DefaultMode)
}

// ParseListing reads an `nm -n <binary>` style listing from r and returns
// the kept symbols, in insertion order, with provisional Index values, plus
// the resolved .text section begin address. mode selects the section
// sentinel names, the maximum name length, and the compatibility-mode
// filter exceptions.
//
// Both bounds for .text must be resolved by the time filtering begins; if
// either is missing, parsing fails with ErrSectionUnresolved. In CompatMode,
// .init.text is not required to be resolved — an unseen `_sinittext`/
// `_einittext` pair simply leaves that section empty (it matches no
// address), exactly as the reference implementation's zero-valued default
// Section behaves when a kernel build has no init text.
func ParseListing(r io.Reader, mode Mode) (symbols []Symbol, textBegin uint64, err error) {
	lc := newListingContext(mode)
	maxLen := mode.maxSymbolLength()

	var accepted []Symbol

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, 0, fmt.Errorf("ksyms: line %d %q: %w", lineNo, line, ErrMalformedLine)
		}

		addr, parseErr := strconv.ParseUint(fields[0], 16, 64)
		if parseErr != nil {
			return nil, 0, fmt.Errorf("ksyms: line %d %q: %w", lineNo, line, ErrMalformedLine)
		}
		typeField := fields[1]
		if len(typeField) != 1 {
			return nil, 0, fmt.Errorf("ksyms: line %d %q: %w", lineNo, line, ErrMalformedLine)
		}
		name := fields[2]

		if droppedType(typeField[0]) {
			continue
		}
		if isMappingSymbol(name) {
			continue
		}
		if len(name) > maxLen {
			return nil, 0, fmt.Errorf("ksyms: symbol %q: %w", name, ErrSymbolTooLong)
		}

		sym := Symbol{Name: name, Type: typeField[0], Address: addr, Index: len(accepted)}
		accepted = append(accepted, sym)
		lc.observe(name, addr)
	}
	if scanErr := scanner.Err(); scanErr != nil {
		return nil, 0, fmt.Errorf("ksyms: reading listing: %w", scanErr)
	}

	if !lc.text.resolved {
		return nil, 0, fmt.Errorf("ksyms: %q/%q: %w", lc.text.beginName, lc.text.endName, ErrSectionUnresolved)
	}

	kept := accepted[:0]
	for _, s := range accepted {
		if !lc.shouldDrop(s) {
			kept = append(kept, s)
		}
	}
	return kept, lc.text.begin, nil
}
