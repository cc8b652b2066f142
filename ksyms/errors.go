package ksyms

import "errors"

// Sentinel errors for the listing, bound, section and internal-consistency
// failures this package can encounter, usually wrapped with
// fmt.Errorf("...: %w", ...) for context. I/O failures (running nm,
// reading the listing, writing output) and value-shape errors are returned
// as other errors, not as one of these.
var (
	// ErrMalformedLine is an input-shape error: a listing line did not
	// split into exactly 3 whitespace-separated fields.
	ErrMalformedLine = errors.New("ksyms: malformed listing line")

	// ErrSymbolTooLong is a bound error: a symbol name exceeds MAX_LEN.
	ErrSymbolTooLong = errors.New("ksyms: symbol name too long")

	// ErrNameEncodingTooLong is a bound error: a compressed name's length
	// prefix does not fit in 2 ULEB128 bytes (> 16383).
	ErrNameEncodingTooLong = errors.New("ksyms: compressed name exceeds 2-byte ULEB128 length")

	// ErrSectionUnresolved is a section error: a .text bound sentinel
	// symbol was never observed while parsing. Missing .init.text bounds in
	// compatibility mode do not produce it.
	ErrSectionUnresolved = errors.New("ksyms: required section sentinel symbol missing")

	// ErrEmptyDictionarySlot is an internal-consistency error: a symbol's
	// token stream referenced a dictionary slot that was never assigned an
	// entry. The token-table builder guarantees this cannot happen; it is
	// asserted defensively rather than trusted silently.
	ErrEmptyDictionarySlot = errors.New("ksyms: internal error: empty token dictionary slot referenced")
)
