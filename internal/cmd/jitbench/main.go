package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/fschutt/gsr-jit/internal/compile"
	"github.com/fschutt/gsr-jit/internal/config"
	"github.com/fschutt/gsr-jit/internal/jitmem"
)

// sampleSource is benchmarked when no source file is given.
const sampleSource = `package main

//jit:start
func main() u8 {
	4
}
`

type benchmark struct {
	name string
	src  string
}

type phase struct {
	name    string
	samples []time.Duration
}

func (p *phase) add(d time.Duration) {
	p.samples = append(p.samples, d)
}

func (p *phase) report(w io.Writer) {
	if len(p.samples) == 0 {
		return
	}
	minD, maxD, total := p.samples[0], p.samples[0], time.Duration(0)
	for _, d := range p.samples {
		if d < minD {
			minD = d
		}
		if d > maxD {
			maxD = d
		}
		total += d
	}
	mean := total / time.Duration(len(p.samples))
	fmt.Fprintf(w, "%-8s min %-12v mean %-12v max %v\n", p.name, minD, mean, maxD)
}

// iterate performs one compile, load and run, feeding each phase's timing.
func (b *benchmark) iterate(compileP, loadP, runP *phase) error {
	start := time.Now()
	prog, err := compile.CompileProgram(b.name, b.src)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}
	compileP.add(time.Since(start))

	start = time.Now()
	region, err := jitmem.FromCode(prog.Code)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	loadP.add(time.Since(start))
	defer region.Close()

	start = time.Now()
	runWidth(region, prog.Width)
	runP.add(time.Since(start))

	return nil
}

func (b *benchmark) run() error {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)

	n := fs.Int("n", 0, "the number of iterations (default: bench_iterations from gsrjit.yml)")
	srcPath := fs.String("src", "", "source file to benchmark (default: a built-in sample)")
	configPath := fs.String("config", "", "config file path")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return fmt.Errorf("failed to parse args: %w", err)
	}

	if runtime.GOARCH != "amd64" {
		return fmt.Errorf("generated code targets amd64 (running on %s)", runtime.GOARCH)
	}

	cfg := config.Load(*configPath)
	iterations := cfg.BenchIterations
	if *n > 0 {
		iterations = *n
	}

	b.name = "sample.gsr"
	b.src = sampleSource
	if *srcPath != "" {
		data, err := os.ReadFile(*srcPath)
		if err != nil {
			return fmt.Errorf("read source: %w", err)
		}
		b.name = filepath.Base(*srcPath)
		b.src = string(data)
	}

	compileP := &phase{name: "compile"}
	loadP := &phase{name: "load"}
	runP := &phase{name: "run"}

	// Warm caches and surface source errors before the measured loop.
	if err := b.iterate(&phase{}, &phase{}, &phase{}); err != nil {
		return err
	}

	pb := progressbar.Default(int64(iterations))
	defer pb.Close()

	for range iterations {
		if err := b.iterate(compileP, loadP, runP); err != nil {
			return err
		}
		pb.Add(1)
	}

	fmt.Printf("\n%d iterations of %s\n", iterations, b.name)
	compileP.report(os.Stdout)
	loadP.report(os.Stdout)
	runP.report(os.Stdout)

	return nil
}

// runWidth invokes the region at the width the compiled move defined.
func runWidth(r *jitmem.Region, width int) uint64 {
	switch width {
	case 1:
		return uint64(jitmem.Run[uint8](r))
	case 2:
		return uint64(jitmem.Run[uint16](r))
	case 4:
		return uint64(jitmem.Run[uint32](r))
	default:
		return jitmem.Run[uint64](r)
	}
}

func main() {
	b := benchmark{}

	if err := b.run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run benchmark: %v\n", err)
		os.Exit(1)
	}
}
