package ksyms

import "sort"

// SortByAddress stably sorts symbols by a multi-level key: address
// ascending; non-weak before weak; non-linker before linker; fewer leading
// underscores before more; original insertion index ascending. After
// sorting, it overwrites each symbol's Index with its position in the
// sorted slice — the "address index" used throughout the rest of the
// pipeline.
//
// mode determines the IsLinker test used for the linker-precedence rule.
func SortByAddress(symbols []Symbol, mode Mode) []Symbol {
	out := make([]Symbol, len(symbols))
	copy(out, symbols)

	sort.SliceStable(out, func(i, j int) bool {
		return lessByAddress(out[i], out[j], mode)
	})

	for i := range out {
		out[i].Index = i
	}
	return out
}

func lessByAddress(lhs, rhs Symbol, mode Mode) bool {
	if lhs.Address != rhs.Address {
		return lhs.Address < rhs.Address
	}
	if lhs.IsWeak() != rhs.IsWeak() {
		return !lhs.IsWeak() // non-weak first
	}
	lhsLinker, rhsLinker := lhs.IsLinker(mode), rhs.IsLinker(mode)
	if lhsLinker != rhsLinker {
		return !lhsLinker // non-linker first
	}
	lhsUnderscores, rhsUnderscores := leadingUnderscores(lhs.Name), leadingUnderscores(rhs.Name)
	if lhsUnderscores != rhsUnderscores {
		return lhsUnderscores < rhsUnderscores
	}
	return lhs.Index < rhs.Index
}

// SortByName stably sorts symbols lexicographically by canonical name, with
// ties broken by address then original (address-sort) index. It does not
// mutate Index.
func SortByName(symbols []Symbol, mode Mode) []Symbol {
	out := make([]Symbol, len(symbols))
	copy(out, symbols)

	sort.SliceStable(out, func(i, j int) bool {
		return lessByName(out[i], out[j], mode)
	})
	return out
}

func lessByName(lhs, rhs Symbol, mode Mode) bool {
	lhsName, rhsName := lhs.CanonicalName(mode), rhs.CanonicalName(mode)
	if lhsName != rhsName {
		return lhsName < rhsName
	}
	if lhs.Address != rhs.Address {
		return lhs.Address < rhs.Address
	}
	return lhs.Index < rhs.Index
}
