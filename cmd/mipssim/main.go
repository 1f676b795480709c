// Package main provides the entry point for mipssim, a cycle-accurate
// 5-stage MIPS pipeline simulator.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/sarchlab/mipspipe/asm"
	"github.com/sarchlab/mipspipe/report"
	"github.com/sarchlab/mipspipe/timing/core"
	"github.com/sarchlab/mipspipe/timing/latency"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func usage(stderr *os.File) {
	fmt.Fprintln(stderr, "Usage: mipssim [-latency-config path] -s m n c input_file output_file  (single-cycle mode)")
	fmt.Fprintln(stderr, "   or: mipssim [-latency-config path] -b m n c input_file output_file  (batch mode)")
	fmt.Fprintln(stderr, "m, n, c are the cycle counts for multiply, other EX ops, and memory access")
}

// extractLatencyConfig pulls "-latency-config path" (or
// "-latency-config=path") out of args, returning the remaining
// positional arguments. The -s/-b mode switch also starts with a dash,
// so this is parsed by hand rather than with the flag package, which
// would otherwise treat "-s"/"-b" as unrecognized flags.
func extractLatencyConfig(args []string) (path string, rest []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-latency-config" && i+1 < len(args):
			path = args[i+1]
			i++
		case len(arg) > len("-latency-config=") && arg[:len("-latency-config=")] == "-latency-config=":
			path = arg[len("-latency-config="):]
		default:
			rest = append(rest, arg)
		}
	}
	return path, rest
}

func run(args []string, stdin *os.File, stdout, stderr *os.File) int {
	latencyConfigPath, rest := extractLatencyConfig(args)

	if len(rest) != 6 {
		usage(stderr)
		return 1
	}

	var singleStep bool
	switch rest[0] {
	case "-s":
		singleStep = true
	case "-b":
		singleStep = false
	default:
		fmt.Fprintf(stderr, "unrecognized mode %q\n", rest[0])
		usage(stderr)
		return 1
	}

	cfg, err := buildConfig(latencyConfigPath, rest[1], rest[2], rest[3])
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	inputPath, outputPath := rest[4], rest[5]

	input, err := os.Open(inputPath)
	if err != nil {
		fmt.Fprintf(stderr, "unable to open input file: %v\n", err)
		return 1
	}
	defer input.Close()

	output, err := os.Create(outputPath)
	if err != nil {
		fmt.Fprintf(stderr, "cannot create output file: %v\n", err)
		return 1
	}
	defer output.Close()

	prog, err := asm.ParseProgram(input)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	c, err := core.NewCore(prog, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	if singleStep {
		if err := runSingleStep(c, stdin, stdout); err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 1
		}
		return 0
	}

	if err := c.Run(); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	stats := c.Stats()
	util := report.Utilization(stats.Utilization, stats.Cycles)
	if err := report.WriteBatch(output, inputPath, util, c.Registers(), c.PC()); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	return 0
}

func runSingleStep(c *core.Core, stdin *os.File, stdout *os.File) error {
	prompt := bufio.NewReader(stdin)
	var cycle uint64
	for !c.Halted() {
		if err := c.Tick(); err != nil {
			return err
		}
		if err := report.WriteSingleStep(stdout, prompt, cycle, c.Registers(), c.PC()); err != nil {
			return err
		}
		cycle++
	}
	return nil
}

func buildConfig(latencyConfigPath, mArg, nArg, cArg string) (*latency.Config, error) {
	if latencyConfigPath != "" {
		return latency.LoadConfig(latencyConfigPath)
	}

	m, err := strconv.ParseUint(mArg, 10, 64)
	if err != nil || m == 0 {
		return nil, fmt.Errorf("invalid multiply cycle count %q", mArg)
	}
	n, err := strconv.ParseUint(nArg, 10, 64)
	if err != nil || n == 0 {
		return nil, fmt.Errorf("invalid other-op cycle count %q", nArg)
	}
	c, err := strconv.ParseUint(cArg, 10, 64)
	if err != nil || c == 0 {
		return nil, fmt.Errorf("invalid memory-access cycle count %q", cArg)
	}

	cfg := &latency.Config{Mul: m, Other: n, MemIF: c}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
