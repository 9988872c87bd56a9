// Command dwarfbind reads a linked ELF executable carrying DWARF debug
// information and emits, per compilation unit, a Python source file
// exposing the unit's globals, functions, and type definitions as
// ctypes-backed handles a test harness can read, write, and invoke over
// the runtime backend contract (spec §1, §6).
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/memprobe/dwarfbind/backend"
	"github.com/memprobe/dwarfbind/dieattr"
	"github.com/memprobe/dwarfbind/dwarfbinderr"
	"github.com/memprobe/dwarfbind/emit"
	"github.com/memprobe/dwarfbind/loader"
	"github.com/memprobe/dwarfbind/unit"
)

// verboseFlag implements flag.Value so -v/--verbose can repeat (spec §6).
type verboseFlag int

func (v *verboseFlag) String() string { return fmt.Sprintf("%d", int(*v)) }
func (v *verboseFlag) Set(string) error {
	*v++
	return nil
}
func (v *verboseFlag) IsBoolFlag() bool { return true }

func main() {
	var (
		dst         = flag.String("dst", "./output", "output directory for generated sources")
		logPath     = flag.String("log", "", "write logs to this path instead of stderr")
		print       = flag.Bool("print", false, "write emitted source to stdout instead of files")
		withBackend = flag.Bool("withbackend", false, "also emit the runtime backend source")
		onlyBackend = flag.Bool("onlybackend", false, "emit only the backend source and exit")
		progress    = flag.Bool("progress", false, "render a live progress TUI instead of plain log lines")
		version     = flag.Bool("version", false, "print the version and exit")
	)
	var verbose verboseFlag
	flag.Var(&verbose, "v", "raise log verbosity one step (repeatable)")
	flag.Var(&verbose, "verbose", "raise log verbosity one step (repeatable)")
	flag.CommandLine.Init(os.Args[0], flag.ContinueOnError)
	if err := flag.CommandLine.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(exOK)
		}
		os.Exit(exUsage)
	}

	if *version {
		fmt.Println("dwarfbind " + Version)
		os.Exit(exOK)
	}

	log, err := setupLogger(int(verbose), *logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dwarfbind: %v\n", err)
		os.Exit(exSoftware)
	}
	defer log.Sync()

	if *onlyBackend {
		if err := writeOutput(os.Stdout, *print, *dst, backend.FileName, backend.Source()); err != nil {
			fmt.Fprintf(os.Stderr, "dwarfbind: %v\n", err)
			os.Exit(classifyExit(err))
		}
		os.Exit(exOK)
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: dwarfbind [flags] <elffile>")
		flag.PrintDefaults()
		os.Exit(exUsage)
	}

	cfg := runConfig{
		elfPath:     flag.Arg(0),
		dst:         *dst,
		print:       *print,
		withBackend: *withBackend,
	}

	if *progress {
		err = runWithProgress(cfg, log)
	} else {
		err = run(cfg, log)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "dwarfbind: %v\n", err)
		os.Exit(classifyExit(err))
	}
}

type runConfig struct {
	elfPath     string
	dst         string
	print       bool
	withBackend bool
}

// run drives the full pipeline of spec §2 in plain (non-TUI) mode:
// load -> per-unit classify/resolve -> correlate -> emit -> write.
func run(cfg runConfig, log *zap.Logger) error {
	bin, err := loader.Open(cfg.elfPath)
	if err != nil {
		return err
	}

	loaderUnits, err := bin.Units()
	if err != nil {
		return err
	}

	counter := &dieattr.UnnamedCounter{}
	var files []*unit.File
	for _, u := range loaderUnits {
		f, err := unit.Assemble(u, counter, bin.ByteOrder, int64(bin.AddressSize), log)
		if err != nil {
			name, _ := u.Name()
			log.Error("failed to assemble unit", zap.String("unit", name), zap.Error(err))
			return err
		}
		files = append(files, f)
	}

	ordered := unit.Correlate(files, bin.Symbols)

	for _, f := range ordered {
		src, err := emit.File(f)
		if err != nil {
			log.Error("failed to emit unit", zap.String("unit", f.Name), zap.Error(err))
			return err
		}
		name := emit.FileName(f.Name)
		if err := writeOutput(os.Stdout, cfg.print, cfg.dst, name, src); err != nil {
			return err
		}
		log.Info("emitted unit", zap.String("unit", f.Name), zap.String("file", name))
	}

	if cfg.withBackend {
		if err := writeOutput(os.Stdout, cfg.print, cfg.dst, backend.FileName, backend.Source()); err != nil {
			return err
		}
	}

	return nil
}

// runWithProgress runs the same pipeline as run, but drives it from a
// goroutine and renders per-unit phase transitions through a bubbletea
// program (spec §7 supplemented feature, §5 domain stack).
func runWithProgress(cfg runConfig, log *zap.Logger) error {
	bin, err := loader.Open(cfg.elfPath)
	if err != nil {
		return err
	}

	loaderUnits, err := bin.Units()
	if err != nil {
		return err
	}

	names := make([]string, len(loaderUnits))
	for i, u := range loaderUnits {
		n, _ := u.Name()
		names[i] = n
	}

	model := newProgressModel(names)
	program := tea.NewProgram(model)

	var runErr error
	go func() {
		runErr = driveWithProgress(cfg, bin, loaderUnits, log, program)
		program.Send(progressDoneMsg{err: runErr})
	}()

	if _, err := program.Run(); err != nil {
		return dwarfbinderr.New(dwarfbinderr.PhaseEmit, dwarfbinderr.KindNonResolvedReference).
			Cause(err).
			Detail("progress TUI exited with an error").
			Build()
	}
	return runErr
}

func driveWithProgress(cfg runConfig, bin *loader.Binary, loaderUnits []*loader.Unit, log *zap.Logger, program *tea.Program) error {
	counter := &dieattr.UnnamedCounter{}
	var files []*unit.File
	for i, u := range loaderUnits {
		program.Send(setPhaseMsg{idx: i, phase: phaseClassifying})
		f, err := unit.Assemble(u, counter, bin.ByteOrder, int64(bin.AddressSize), log)
		if err != nil {
			program.Send(setPhaseMsg{idx: i, phase: phaseFailed})
			return err
		}
		program.Send(setPhaseMsg{idx: i, phase: phaseResolving})
		files = append(files, f)
	}

	ordered := unit.Correlate(files, bin.Symbols)
	byName := make(map[string]int, len(loaderUnits))
	for i, n := range loaderUnits {
		name, _ := n.Name()
		byName[name] = i
	}

	for _, f := range ordered {
		idx := byName[f.Name]
		program.Send(setPhaseMsg{idx: idx, phase: phaseEmitting})
		src, err := emit.File(f)
		if err != nil {
			program.Send(setPhaseMsg{idx: idx, phase: phaseFailed})
			return err
		}
		if err := writeOutput(os.Stdout, cfg.print, cfg.dst, emit.FileName(f.Name), src); err != nil {
			program.Send(setPhaseMsg{idx: idx, phase: phaseFailed})
			return err
		}
		program.Send(setPhaseMsg{idx: idx, phase: phaseDone})
	}

	if cfg.withBackend {
		return writeOutput(os.Stdout, cfg.print, cfg.dst, backend.FileName, backend.Source())
	}
	return nil
}
