// Command analyze-filter prints the coefficients and gain of the chain's
// Butterworth low-pass filters at the converter and source rates.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	signalchain "github.com/tphakala/go-signal-chain"
)

const (
	defaultSourceRate = 8000.0

	// Response table layout
	defaultResponsePoints = 16
	stopbandDecades       = 2
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("analyze-filter", flag.ContinueOnError)
	rate := fs.Float64("rate", signalchain.DefaultTargetRate, "ADC/DAC sample rate in Hz")
	sourceRate := fs.Float64("source-rate", defaultSourceRate, "Source sample rate in Hz")
	cutoff := fs.Float64("cutoff", signalchain.DefaultCutoffHz, "Cutoff frequency in Hz")
	order := fs.Int("order", signalchain.DefaultOrder, "Butterworth order")
	points := fs.Int("points", defaultResponsePoints, "Number of response table rows")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *points < 2 {
		return fmt.Errorf("points must be at least 2, got %d", *points)
	}

	fmt.Fprintln(w, "=== Analyzing Butterworth Low-pass Filters ===")

	for _, stage := range []struct {
		name string
		rate float64
	}{
		{"Digital filter (converter rate)", *rate},
		{"Reconstruction filter (source rate)", *sourceRate},
	} {
		if err := analyze(w, stage.name, *order, *cutoff, stage.rate, *points); err != nil {
			return err
		}
	}
	return nil
}

func analyze(w io.Writer, name string, order int, cutoffHz, sampleRate float64, points int) error {
	wn := signalchain.NormalizedCutoff(cutoffHz, sampleRate)
	c, err := signalchain.DesignLowpass(order, wn)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	fmt.Fprintf(w, "\n%s\n", name)
	fmt.Fprintf(w, "  Sample rate: %.1f Hz, cutoff: %.1f Hz (Wn = %.6f)\n", sampleRate, cutoffHz, wn)
	fmt.Fprintf(w, "  Order: %d\n", c.Order())
	for i := range c.B {
		fmt.Fprintf(w, "  b[%d] = %+.12f   a[%d] = %+.12f\n", i, c.B[i], i, c.A[i])
	}

	fmt.Fprintf(w, "  DC gain: %.10f\n", signalchain.Magnitude(c, 0))
	fmt.Fprintf(w, "  Gain at cutoff: %.4f dB\n", signalchain.MagnitudeDB(c, wn))
	if stop := wn * stopbandDecades; stop < 1 {
		fmt.Fprintf(w, "  Gain at %.0f Hz: %.2f dB\n", cutoffHz*stopbandDecades, signalchain.MagnitudeDB(c, stop))
	}

	fmt.Fprintln(w, "  Frequency (Hz)   Gain (dB)")
	nyquist := sampleRate / 2
	for i := range points {
		f := float64(i) / float64(points-1)
		db := signalchain.MagnitudeDB(c, f)
		if math.IsInf(db, -1) {
			fmt.Fprintf(w, "  %14.1f   %9s\n", f*nyquist, "-inf")
			continue
		}
		fmt.Fprintf(w, "  %14.1f   %9.2f\n", f*nyquist, db)
	}
	return nil
}
