package ksyms

// pairCounts is the dense occurrence-count array: cell (hi<<8)|lo holds the
// current count of the ordered token pair (lo, hi) across all tokenized
// symbols.
//
// fsst/counters.go packs this into high/low byte pairs and a nibble-packed
// sparse structure because it must survive 5 training rounds over a
// 512-code alphabet under a tight memory budget. kallsyms has neither
// constraint: one pass, a 256-slot alphabet at any instant, bounded input.
// A flat uint32 array is the right generalization of the same idea, not a
// simplification of convenience.
type pairCounts [0x10000]uint32

func pairKey(lo, hi byte) int {
	return int(hi)<<8 | int(lo)
}

// add increments the count for the ordered pair (lo, hi) by delta (delta
// may be negative when removing a symbol's contribution before a rewrite).
func (p *pairCounts) add(lo, hi byte, delta int32) {
	p[pairKey(lo, hi)] = uint32(int32(p[pairKey(lo, hi)]) + delta)
}

// best returns the pair with the largest count, breaking ties by lowest
// packed key (first-wins in an ascending linear scan). ok is false if
// every cell is zero.
func (p *pairCounts) best() (lo, hi byte, count uint32, ok bool) {
	var bestCount uint32
	bestKey := -1
	for key, c := range p {
		if c > bestCount {
			bestCount = c
			bestKey = key
		}
	}
	if bestKey < 0 {
		return 0, 0, 0, false
	}
	return byte(bestKey & 0xFF), byte(bestKey >> 8), bestCount, true
}
