package ksyms

import (
	"fmt"
	"strings"
)

func Example() {
	listing := strings.Join([]string{
		"0000000000001000 T g_linker_symbol_text_begin",
		"0000000000001020 T helper",
		"0000000000001010 T main",
		"0000000000001030 T g_linker_symbol_text_end",
	}, "\n") + "\n"

	symbols, _, err := ParseListing(strings.NewReader(listing), DefaultMode)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, s := range SortByAddress(symbols, DefaultMode) {
		fmt.Println(s.Name)
	}
	// Output:
	// main
	// helper
}
