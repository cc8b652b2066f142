package ksyms

import "testing"

func TestCanonicalName(t *testing.T) {
	s := Symbol{Name: "foo", Type: 'T'}
	if got := s.CanonicalName(DefaultMode); got != "foo" {
		t.Fatalf("DefaultMode: got %q, want %q", got, "foo")
	}
	if got := s.CanonicalName(CompatMode); got != "Tfoo" {
		t.Fatalf("CompatMode: got %q, want %q", got, "Tfoo")
	}
}

func TestIsWeak(t *testing.T) {
	if !(Symbol{Type: 'W'}).IsWeak() {
		t.Fatalf("type W should be weak")
	}
	if (Symbol{Type: 'T'}).IsWeak() {
		t.Fatalf("type T should not be weak")
	}
}

func TestIsLinkerDefaultMode(t *testing.T) {
	s := Symbol{Name: "g_linker_symbol_text_begin"}
	if !s.IsLinker(DefaultMode) {
		t.Fatalf("expected linker symbol prefix to be recognized")
	}
	if (Symbol{Name: "g_other"}).IsLinker(DefaultMode) {
		t.Fatalf("non-prefixed name should not be linker symbol")
	}
}

func TestIsLinkerCompatMode(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"__start_builtin_fw", true},
		{"__stop_builtin_fw", true},
		{"__end_rodata", true},
		{"__irqentry_text_start", true},
		{"__irqentry_text_end", true},
		{"__short", false}, // under 8 bytes
		{"plain_symbol", false},
		{"__custom_module_start", true},   // genuine "__" prefix, "_start" suffix
		{"_single_underscore_start", false}, // only one leading underscore
	}
	for _, c := range cases {
		if got := (Symbol{Name: c.name}).IsLinker(CompatMode); got != c.want {
			t.Errorf("IsLinker(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestLeadingUnderscores(t *testing.T) {
	cases := map[string]int{
		"foo":    0,
		"_foo":   1,
		"__foo":  2,
		"___":    3,
		"":       0,
	}
	for name, want := range cases {
		if got := leadingUnderscores(name); got != want {
			t.Errorf("leadingUnderscores(%q) = %d, want %d", name, got, want)
		}
	}
}

func TestMaxSymbolLength(t *testing.T) {
	if got := DefaultMode.maxSymbolLength(); got != 127 {
		t.Fatalf("DefaultMode max length = %d, want 127", got)
	}
	if got := CompatMode.maxSymbolLength(); got != 511 {
		t.Fatalf("CompatMode max length = %d, want 511", got)
	}
}
