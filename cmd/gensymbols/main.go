// Command gensymbols builds the kernel symbol tables consumed by the
// runtime stack-trace resolver from a compiled kernel binary's symbol
// listing.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/UltraOS/Ultra/ksyms"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "gensymbols: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		binaryPath string
		linuxMode  bool
	)

	cmd := &cobra.Command{
		Use:   "gensymbols <out_file>",
		Short: "Generate the kernel symbol tables",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return run(args[0], binaryPath, linuxMode)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVar(&binaryPath, "binary", "",
		"path to the kernel binary; produces empty symbol tables if omitted")
	cmd.Flags().BoolVar(&linuxMode, "linux-mode", false,
		"enable the GAS backend and Linux-specific symbol heuristics (kallsyms-compatible)")

	return cmd
}

// run acquires the output file with scoped lifecycle (opened before
// emission, closed and flushed on every exit path) and drives
// ksyms.Generate against it.
func run(outPath, binaryPath string, linuxMode bool) (err error) {
	mode := ksyms.DefaultMode
	if linuxMode {
		mode = ksyms.CompatMode
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %q: %w", outPath, err)
	}
	defer func() {
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
	}()

	cfg := ksyms.Config{Mode: mode, BinaryPath: binaryPath}
	return ksyms.Generate(cfg, out)
}
