// Copyright The TipCk Authors. All rights reserved. Use of this source
// code is governed by a license that can be found in the License file.

// Command tipck is a sequential hardware model checker for AIGER
// circuits (spec §6), driving the bmc/sce/fairness engines against a
// sequential circuit read from an AIGER 1.9 file.
package main

import (
	"compress/gzip"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/GaloisInc/tip/bmc"
	"github.com/GaloisInc/tip/fairness"
	"github.com/GaloisInc/tip/internal/logz"
	"github.com/GaloisInc/tip/sce"
	"github.com/GaloisInc/tip/seq"
	"github.com/GaloisInc/tip/unroll"
)

var (
	bv      = flag.Int("bv", 0, "BMC variant: 0=basic 1=simplifying 2=simplifying-v2")
	k       = flag.Int("k", -1, "maximum unroll depth (default: unbounded)")
	safe    = flag.Int("safe", -1, "restrict to safety property index i")
	live    = flag.Int("live", -1, "restrict to liveness property index i")
	kind    = flag.Int("kind", 0, "liveness sub-algorithm selector (0=standard 1=stable-live)")
	verb    = flag.Int("verb", 0, "verbosity 0..10")
	sceFlag = flag.Int("sce", 0, "semantic constraint extraction: 0=off 1=minimize 2=sequential")
	// coif is accepted for command-line compatibility but not wired to
	// anything: original_source's -coif drives a standalone
	// removeUnusedLogic cone-of-influence pass, run separately from SCE and
	// out of scope here (a Non-goal); it never affects SCE's own onlyCoi
	// parameter, which the real pipeline always calls with false.
	coif = flag.Bool("coif", false, "run cone-of-influence pruning initially (accepted, not implemented)")
	td      = flag.Bool("td", false, "run temporal decomposition")
	xsafe   = flag.Bool("xsafe", false, "extract extra safety properties from outputs")
	alg     = flag.String("alg", "bmc", "top-level engine: bmc,rip,live,biere,bierebmc")
	ripBmc  = flag.Int("rip-bmc", 0, "BMC mode fed to the PDR engine")
	prof    = flag.Bool("prof", false, "use exit() in the signal handler instead of _exit()")
)

func main() {
	flag.Parse()
	log := logz.New(*verb)

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: tipck [flags] input.aig [result.aig]")
		os.Exit(1)
	}
	inPath := args[0]
	var outPath string
	if len(args) >= 2 {
		outPath = args[1]
	}

	installSignalHandler(*prof)

	circ, err := readInput(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tipck: %v\n", err)
		os.Exit(1)
	}
	log.Logf(1, "read %s: %s", inPath, circ.Stats())

	if *xsafe {
		// original_source's -xsafe: legacy outputs treated as safety
		// properties (SPEC_FULL.md §6 supplement). The flag changes nothing
		// here: seq.ReadAiger already turns every output into a safety
		// property whenever the file has no B section, with or without
		// -xsafe, and adds no outputs when a B section is present.
	}

	if *safe >= 0 {
		circ.SelectSafety(*safe)
	} else if *live >= 0 {
		circ.SelectLiveness(*live)
	}

	if len(circ.LiveProps) > 0 {
		kindSel := fairness.Standard
		if *kind == 1 {
			kindSel = fairness.StableLive
		}
		fairness.Embed(circ, kindSel)
	}

	if *sceFlag != 0 {
		sceAlg := sce.Sequential
		if *sceFlag == 1 {
			sceAlg = sce.Minimize
		}
		// original_source's Main.cc always calls tc.sce(..., only_coi=false);
		// -coif is unrelated to this parameter (see its declaration above).
		stats := sce.Run(circ, sceAlg, false)
		log.Logf(1, "sce: %d candidates, %d survived, %d skipped, dead=%v",
			stats.Candidates, stats.Survived, stats.Skipped, stats.Dead)
	}

	stop := *k
	if stop < 0 {
		stop = 1 << 20 // spec §6 "-k=N ... default: unbounded"; a large finite bound stands in for it
	}

	mode := unroll.Reset
	var result bmc.Result
	switch *bv {
	case 1, 2:
		eng := bmc.NewSimplifying(circ, 1024)
		result = eng.Run(mode, 0, stop)
	default:
		eng := bmc.NewBasic(circ, 1024)
		result = eng.Run(mode, 0, stop)
	}
	log.Logf(1, "bmc: unresolved=%d stoppedEarly=%v", result.Unresolved, result.StoppedEarly)

	if outPath != "" {
		if err := writeResult(circ, outPath); err != nil {
			fmt.Fprintf(os.Stderr, "tipck: %v\n", err)
			os.Exit(1)
		}
	}

	os.Exit(0)
}

func readInput(path string) (*seq.Circ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("gunzip %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}
	return seq.ReadAiger(r)
}

func writeResult(circ *seq.Circ, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return seq.WriteResultsAiger(circ, f)
}

// installSignalHandler prints a banner and terminates on SIGINT/SIGTERM
// (spec §7 "Interruption"): via _exit (skipping allocator teardown)
// unless -prof requests a clean exit for profiling tools that need it.
func installSignalHandler(profiling bool) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ch
		fmt.Fprintln(os.Stderr, "tipck: interrupted")
		if profiling {
			os.Exit(1)
		}
		syscall.Exit(1)
	}()
}
