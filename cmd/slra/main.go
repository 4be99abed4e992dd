package main

import (
	"fmt"
	"os"

	"github.com/quillbyte/slra/internal/diagnostics"
	"github.com/quillbyte/slra/slra"
	"github.com/spf13/cobra"
)

var (
	regsFlag   string
	spillSlots int
	traceFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "slra",
	Short: "straight-line linear-scan register allocator",
	Long: `slra runs a target-independent register allocator over a textual
instruction listing.

INSTRUCTION FORMAT
  One instruction per line, blank lines and lines starting with ';' ignored:

    mnemonic [op[, op]...]

  Each operand is [=|~]('v'|'r')<index><class>, where '=' marks a write,
  '~' a read-modify-write, nothing a plain read; 'v' is a virtual register,
  'r' a real one; class is one of i (int), f (float), x (vector).

    def  =v0i
    add  =v1i, v0i, r0i
    use  v1i`,
}

var allocCmd = &cobra.Command{
	Use:   "alloc <file>",
	Short: "run the allocator over an instruction listing and print the result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		slra.Trace = traceFlag
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		prog, err := parseProgram(f)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", args[0], err)
		}
		allocatable, err := parseAllocatable(regsFlag)
		if err != nil {
			return fmt.Errorf("parsing --regs: %w", err)
		}

		out, err := slra.Allocate(prog, countVRegs(prog), allocatable, hooksFor(), spillSlots)
		if err != nil {
			diagnostics.Report(os.Stderr, args[0], err)
			os.Exit(1)
		}
		for _, instr := range out {
			fmt.Println(instr.(*textInstr).String())
		}
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "run the allocator and report only pass/fail, for use in CI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		prog, err := parseProgram(f)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", args[0], err)
		}
		allocatable, err := parseAllocatable(regsFlag)
		if err != nil {
			return fmt.Errorf("parsing --regs: %w", err)
		}

		if _, err := slra.Allocate(prog, countVRegs(prog), allocatable, hooksFor(), spillSlots); err != nil {
			diagnostics.Report(os.Stderr, args[0], err)
			os.Exit(1)
		}
		fmt.Println("ok")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&regsFlag, "regs", "", "comma-separated allocatable real registers, e.g. r0i,r1i,r0f")
	rootCmd.PersistentFlags().IntVar(&spillSlots, "spill-slots", 16, "compile-time bound on the spill-slot table")
	rootCmd.PersistentFlags().BoolVar(&traceFlag, "trace", false, "print stage-by-stage allocator tracing to stdout")
	rootCmd.AddCommand(allocCmd, checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
