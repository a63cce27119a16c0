// Package viz renders and summarizes the intermediate signals of a pipeline run.
package viz

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	signalchain "github.com/tphakala/go-signal-chain"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const msPerSecond = 1000.0

// StageSource exposes the signals of a run. *signalchain.Pipeline implements it.
type StageSource interface {
	Signal(stage signalchain.Stage) (signalchain.Signal, bool)
}

// StageStats summarizes one stage.
type StageStats struct {
	Stage   signalchain.Stage
	Samples int
	Rate    float64
	Peak    float64
	RMS     float64
	Mean    float64
	StdDev  float64
}

// Summarize computes statistics for every stage the run reached.
func Summarize(src StageSource) []StageStats {
	var out []StageStats
	for _, stage := range signalchain.AllStages() {
		s, ok := src.Signal(stage)
		if !ok {
			continue
		}
		out = append(out, summarize(stage, s))
	}
	return out
}

func summarize(stage signalchain.Stage, s signalchain.Signal) StageStats {
	st := StageStats{
		Stage:   stage,
		Samples: s.Len(),
		Rate:    s.Rate(),
		Peak:    s.Peak(),
	}
	if s.Len() == 0 {
		return st
	}
	x := s.Samples()
	st.RMS = math.Sqrt(floats.Dot(x, x) / float64(len(x)))
	st.Mean, st.StdDev = stat.MeanStdDev(x, nil)
	if len(x) < 2 {
		st.StdDev = 0
	}
	return st
}

// WriteSummary prints stats as an aligned table.
func WriteSummary(w io.Writer, stats []StageStats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "stage\tsamples\trate (Hz)\tpeak\trms\tmean\tstd dev\t")
	for _, st := range stats {
		fmt.Fprintf(tw, "%s\t%d\t%.1f\t%.4f\t%.4f\t%.4f\t%.4f\t\n",
			st.Stage, st.Samples, st.Rate, st.Peak, st.RMS, st.Mean, st.StdDev)
	}
	return tw.Flush()
}

// window returns the (t, v) pairs of s with t below limit seconds, t in milliseconds.
func window(s signalchain.Signal, limit float64) (ts, vs []float64) {
	samples := s.Samples()
	for i, v := range samples {
		t := s.TimeAt(i)
		if t >= limit {
			break
		}
		ts = append(ts, t*msPerSecond)
		vs = append(vs, v)
	}
	return ts, vs
}
