// Command signalchain runs a WAV file through a simulated ADC/DAC chain.
//
// The input is normalized, sampled at the converter rate, low-pass filtered,
// held back onto the source time grid and smoothed by a reconstruction
// filter. The DAC output before and after reconstruction is written as WAV.
//
// Usage:
//
//	signalchain -input noisy_sine.wav
//	signalchain -config chain.yaml -plot stages.png -html stages.html
//	signalchain -rate 4000 -cutoff 1500 -order 5 -final out.wav
//
// Settings come from the config file, then SIGCHAIN_* environment
// variables, then flags that were set explicitly.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	"github.com/rs/zerolog"
	signalchain "github.com/tphakala/go-signal-chain"
	"github.com/tphakala/go-signal-chain/internal/config"
	"github.com/tphakala/go-signal-chain/internal/logging"
	"github.com/tphakala/go-signal-chain/internal/viz"
	"github.com/tphakala/go-signal-chain/internal/wavio"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// cliFlags holds the parsed command line.
type cliFlags struct {
	configPath string
	cpuprofile string
	verbose    bool
	set        map[string]bool

	input     string
	preRecon  string
	final     string
	rate      float64
	cutoff    float64
	order     int
	bitDepth  int
	plotPNG   string
	plotHTML  string
	windowMS  float64
	logFormat string
}

func parseFlags(args []string, stderr io.Writer) (*cliFlags, error) {
	f := &cliFlags{set: make(map[string]bool)}
	fs := flag.NewFlagSet("signalchain", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&f.configPath, "config", "", "Config file (YAML); default searches ./signalchain.yaml")
	fs.StringVar(&f.cpuprofile, "cpuprofile", "", "Write CPU profile to file")
	fs.BoolVar(&f.verbose, "v", false, "Verbose output (debug logging)")

	fs.StringVar(&f.input, "input", "", "Input WAV file")
	fs.StringVar(&f.preRecon, "pre-recon", "", "Output WAV for the DAC signal before reconstruction")
	fs.StringVar(&f.final, "final", "", "Output WAV for the reconstructed signal")
	fs.Float64Var(&f.rate, "rate", 0, "ADC/DAC sample rate in Hz")
	fs.Float64Var(&f.cutoff, "cutoff", 0, "Low-pass cutoff in Hz")
	fs.IntVar(&f.order, "order", 0, "Butterworth filter order")
	fs.IntVar(&f.bitDepth, "bits", 0, "Output bit depth: 8, 16, 24, 32")
	fs.StringVar(&f.plotPNG, "plot", "", "Write a PNG of all stages")
	fs.StringVar(&f.plotHTML, "html", "", "Write an interactive HTML report of all stages")
	fs.Float64Var(&f.windowMS, "window", 0, "Plot window in milliseconds")
	fs.StringVar(&f.logFormat, "log-format", "", "Log format: console, json")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

// apply overrides cfg with every flag given on the command line.
func (f *cliFlags) apply(cfg *config.Config) {
	if f.set["input"] {
		cfg.Input = f.input
	}
	if f.set["pre-recon"] {
		cfg.Outputs.PreReconstruction = f.preRecon
	}
	if f.set["final"] {
		cfg.Outputs.Final = f.final
	}
	if f.set["rate"] {
		cfg.Chain.TargetRate = f.rate
	}
	if f.set["cutoff"] {
		cfg.Chain.CutoffHz = f.cutoff
	}
	if f.set["order"] {
		cfg.Chain.Order = f.order
	}
	if f.set["bits"] {
		cfg.WAV.BitDepth = f.bitDepth
	}
	if f.set["plot"] {
		cfg.Plot.PNG = f.plotPNG
	}
	if f.set["html"] {
		cfg.Plot.HTML = f.plotHTML
	}
	if f.set["window"] {
		cfg.Plot.WindowMS = f.windowMS
	}
	if f.set["log-format"] {
		cfg.Logging.Format = f.logFormat
	}
	if f.verbose {
		cfg.Logging.Level = "debug"
	}
}

func run(args []string, stdout io.Writer) (err error) {
	flags, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}
	flags.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, closer, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	if flags.cpuprofile != "" {
		f, err := os.Create(flags.cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	start := time.Now()
	p, err := simulate(cfg, logger)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if cfg.Plot.PNG != "" {
		if err := viz.SavePNG(p, cfg.Plot.WindowMS, cfg.Plot.PNG); err != nil {
			return err
		}
		logger.Info().Str("path", cfg.Plot.PNG).Msg("wrote stage plot")
	}
	if cfg.Plot.HTML != "" {
		if err := viz.SaveHTML(p, cfg.Plot.WindowMS, cfg.Plot.HTML); err != nil {
			return err
		}
		logger.Info().Str("path", cfg.Plot.HTML).Msg("wrote stage report")
	}

	return printSummary(stdout, cfg, p, elapsed)
}

// simulate wires the WAV source and sink to a pipeline and runs it once.
func simulate(cfg *config.Config, logger zerolog.Logger) (*signalchain.Pipeline, error) {
	p, err := signalchain.New(cfg.Chain.PipelineConfig(), signalchain.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	src := wavio.NewFileSource(cfg.Input)
	sink, err := wavio.NewFileSink(cfg.Outputs.Paths(), cfg.WAV.BitDepth, wavio.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	if err := p.Run(src, sink); err != nil {
		return nil, err
	}

	info := src.Info()
	logger.Debug().
		Int("rate", info.SampleRate).
		Int("channels", info.Channels).
		Int("bits", info.BitDepth).
		Int("frames", info.Frames).
		Msg("input format")
	return p, nil
}

func printSummary(w io.Writer, cfg *config.Config, p *signalchain.Pipeline, elapsed time.Duration) error {
	chain := p.Config()
	digital := p.DigitalFilter()

	fmt.Fprintf(w, "Simulated %s\n", filepath.Base(cfg.Input))
	fmt.Fprintf(w, "  Converter: %.0f Hz, order %d Butterworth at %.0f Hz\n",
		chain.TargetRate, chain.Order, chain.CutoffHz)
	fmt.Fprintf(w, "  Digital filter: %d taps feed-forward, %d feedback\n", len(digital.B), len(digital.A))
	for _, path := range []string{cfg.Outputs.PreReconstruction, cfg.Outputs.Final} {
		if path != "" {
			fmt.Fprintf(w, "  Wrote %s\n", path)
		}
	}
	fmt.Fprintf(w, "  Duration: %.3fs\n\n", elapsed.Seconds())

	return viz.WriteSummary(w, viz.Summarize(p))
}
