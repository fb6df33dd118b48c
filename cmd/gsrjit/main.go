package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"time"

	"github.com/fschutt/gsr-jit/internal/compile"
	"github.com/fschutt/gsr-jit/internal/config"
	"github.com/fschutt/gsr-jit/internal/jitmem"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gsrjit: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	watch := flag.Bool("watch", false, "Recompile and rerun whenever the source file changes")
	dump := flag.Bool("dump", false, "Hex dump the executable region after each load")
	configPath := flag.String("config", "", "Config file path (default: gsrjit.yml in the working directory)")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <source file>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Compile a source file to x86-64 machine code and run it in-process.\n\n")
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  %s prog.gsr\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -watch -dump prog.gsr\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *debug {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
	}

	if runtime.GOARCH != "amd64" {
		return fmt.Errorf("generated code targets amd64 (running on %s)", runtime.GOARCH)
	}

	args := flag.Args()
	if len(args) != 1 {
		flag.Usage()
		return fmt.Errorf("source file required")
	}

	cfg := config.Load(*configPath)

	s := &session{
		path: args[0],
		out:  os.Stdout,
		dump: *dump || cfg.Dump,
	}
	defer s.close()

	if !*watch {
		return s.cycle()
	}

	// Interrupt cancels the watch loop so the deferred cleanup runs.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		cancel()
	}()

	return s.watch(ctx, cfg)
}

// session holds the state of one compile-and-run loop. The region swaps on
// every successful rebuild; a failed rebuild leaves the previous region
// loaded and runnable.
type session struct {
	path   string
	out    io.Writer
	dump   bool
	region *jitmem.Region
	width  int
}

// rebuild reads the source, compiles it and loads the code into a fresh
// region. The old region is released only after the new one is live.
func (s *session) rebuild() error {
	src, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	prog, err := compile.CompileProgram(filepath.Base(s.path), string(src))
	if err != nil {
		return err
	}
	slog.Debug("compiled", "entry", prog.Entry, "kind", prog.Kind, "bytes", len(prog.Code))

	region, err := jitmem.FromCode(prog.Code)
	if err != nil {
		return err
	}

	if s.region != nil {
		s.region.Close()
	}
	s.region = region
	s.width = prog.Width

	if s.dump {
		if err := region.Dump(s.out); err != nil {
			return fmt.Errorf("dump region: %w", err)
		}
	}
	return nil
}

// execute invokes the loaded code and prints the returned value and the
// execution time.
func (s *session) execute() {
	start := time.Now()
	value := runWidth(s.region, s.width)
	elapsed := time.Since(start)

	fmt.Fprintf(s.out, "the returned value is: %d\n", value)
	fmt.Fprintf(s.out, "Execution time: %d ns\n", elapsed.Nanoseconds())
}

func (s *session) cycle() error {
	if err := s.rebuild(); err != nil {
		return err
	}
	s.execute()
	return nil
}

func (s *session) close() {
	if s.region != nil {
		s.region.Close()
		s.region = nil
	}
}

// runWidth invokes the region at the width the compiled move defined, so
// narrowed results never carry garbage high bits.
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
