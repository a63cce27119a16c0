package viz

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	signalchain "github.com/tphakala/go-signal-chain"
)

// RenderHTML writes an interactive page with one line chart per reached
// stage, limited to the first windowMS milliseconds.
func RenderHTML(w io.Writer, src StageSource, windowMS float64) error {
	if windowMS <= 0 {
		return fmt.Errorf("plot window must be positive, got %v ms", windowMS)
	}

	page := components.NewPage()
	page.PageTitle = "Signal chain stages"

	n := 0
	for _, stage := range signalchain.AllStages() {
		s, ok := src.Signal(stage)
		if !ok {
			continue
		}
		page.AddCharts(stageChart(stage, s, windowMS/msPerSecond))
		n++
	}
	if n == 0 {
		return ErrNoStages
	}

	return page.Render(w)
}

// SaveHTML renders the stage page to path.
func SaveHTML(src StageSource, windowMS float64, path string) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	return RenderHTML(f, src, windowMS)
}

func stageChart(stage signalchain.Stage, s signalchain.Signal, limit float64) *charts.Line {
	ts, vs := window(s, limit)
	data := make([]opts.LineData, len(ts))
	for i := range ts {
		data[i] = opts.LineData{Value: []interface{}{ts[i], vs[i]}}
	}

	subtitle := fmt.Sprintf("samples=%d peak=%.4f", s.Len(), s.Peak())
	if s.IsUniform() {
		subtitle = fmt.Sprintf("rate=%.0f Hz %s", s.Rate(), subtitle)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "320px"}),
		charts.WithTitleOpts(opts.Title{Title: stageTitles[stage], Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Time (ms)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Amplitude"}),
	)
	line.AddSeries(stage.String(), data)
	return line
}
