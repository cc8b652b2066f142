// Package ksyms builds the kernel symbol tables consumed by the runtime
// stack-trace resolver.
//
// # Overview
//
// ksyms turns the symbol listing of a compiled kernel binary (the output of
// `nm -n <binary>`) into a compact, statically-linkable table: a bounded
// byte-pair token dictionary compresses the symbol names, and eight logical
// tables (count, compressed names, per-256 offset markers, relative
// addresses, base address, name-to-address index permutation, token
// dictionary, token offsets) describe how to walk them at runtime.
//
// # Two modes
//
// Default mode targets this project's own kernel: plain canonical names,
// `g_linker_symbol_*` sentinels, a 127-byte name cap, and a struct-literal
// output backend.
//
// Compatibility mode reproduces the Linux kallsyms build pass bit-exactly:
// type-prefixed canonical names, `_stext`/`_etext`/`_sinittext`/`_einittext`
// sentinels, the `__start_`/`__stop_`/`_start`/`_end` linker-symbol
// heuristic, a 511-byte name cap, and an assembler-directive output backend.
//
// # Basic usage
//
//	cfg := ksyms.Config{Mode: ksyms.DefaultMode}
//	listing, _ := os.Open("symbols.nm")
//	syms, textBegin, err := ksyms.ParseListing(listing, cfg.Mode)
//	syms = ksyms.SortByAddress(syms, cfg.Mode)
//	tokens := ksyms.BuildTokenTable(syms, cfg.Mode)
//	_ = textBegin
//
// Most callers should use Generate, which drives this pipeline end to end:
// it runs `nm -n` on the binary named in its Config and writes the finished
// tables to an io.Writer.
//
// # Determinism
//
// For a fixed input, both backends produce byte-identical output on every
// run, on every platform: there is no concurrency, no randomized tie-break,
// and no non-deterministic iteration order anywhere in the pipeline.
package ksyms
