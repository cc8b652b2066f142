package ksyms

import "testing"

func TestSectionObserve(t *testing.T) {
	s := newSection("begin", "end")
	if s.resolved {
		t.Fatalf("new section should not be resolved")
	}
	if !s.observe("begin", 0x100) {
		t.Fatalf("observe(begin) should report a match")
	}
	if s.resolved {
		t.Fatalf("section should not resolve with only one bound seen")
	}
	if s.observe("unrelated", 0x200) {
		t.Fatalf("observe(unrelated) should not report a match")
	}
	if !s.observe("end", 0x300) {
		t.Fatalf("observe(end) should report a match")
	}
	if !s.resolved {
		t.Fatalf("section should resolve once both bounds are seen")
	}
}

func TestSectionContains(t *testing.T) {
	s := newSection("begin", "end")
	s.observe("begin", 0x100)
	s.observe("end", 0x200)

	cases := []struct {
		addr uint64
		want bool
	}{
		{0x0ff, false},
		{0x100, true},
		{0x180, true},
		{0x200, true},
		{0x201, false},
	}
	for _, c := range cases {
		if got := s.contains(c.addr); got != c.want {
			t.Errorf("contains(0x%x) = %v, want %v", c.addr, got, c.want)
		}
	}
}

func TestSectionContainsUnresolved(t *testing.T) {
	s := newSection("begin", "end")
	s.observe("begin", 0x100)
	if s.contains(0x100) {
		t.Fatalf("an unresolved section must never report containment")
	}
}
