package viz

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	signalchain "github.com/tphakala/go-signal-chain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	pngWidth       = 14 * vg.Inch
	pngPanelHeight = 3 * vg.Inch
	markerRadius   = 2
	lineWidth      = 1
)

// ErrNoStages is returned when the run produced nothing to draw.
var ErrNoStages = errors.New("no stages to plot")

var stageColors = map[signalchain.Stage]color.Color{
	signalchain.StageOriginal:      color.RGBA{R: 31, G: 119, B: 180, A: 255},
	signalchain.StageSampled:       color.RGBA{R: 255, G: 127, B: 14, A: 255},
	signalchain.StageFiltered:      color.RGBA{R: 44, G: 160, B: 44, A: 255},
	signalchain.StageHeld:          color.RGBA{R: 214, G: 39, B: 40, A: 255},
	signalchain.StageReconstructed: color.RGBA{R: 148, G: 103, B: 189, A: 255},
}

var stageTitles = map[signalchain.Stage]string{
	signalchain.StageOriginal:      "Original signal (normalized)",
	signalchain.StageSampled:       "ADC output (sampled)",
	signalchain.StageFiltered:      "Digital low-pass output",
	signalchain.StageHeld:          "DAC output (zero-order hold)",
	signalchain.StageReconstructed: "Reconstruction filter output",
}

// SavePNG draws one panel per reached stage, limited to the first windowMS
// milliseconds, stacked vertically into a single PNG image.
func SavePNG(src StageSource, windowMS float64, path string) (err error) {
	if windowMS <= 0 {
		return fmt.Errorf("plot window must be positive, got %v ms", windowMS)
	}

	var panels [][]*plot.Plot
	for _, stage := range signalchain.AllStages() {
		s, ok := src.Signal(stage)
		if !ok {
			continue
		}
		p, err := stagePlot(stage, s, windowMS/msPerSecond)
		if err != nil {
			return fmt.Errorf("failed to plot %s stage: %w", stage, err)
		}
		panels = append(panels, []*plot.Plot{p})
	}
	if len(panels) == 0 {
		return ErrNoStages
	}

	img := vgimg.New(pngWidth, pngPanelHeight*vg.Length(len(panels)))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: len(panels),
		Cols: 1,
		PadX: vg.Millimeter,
		PadY: vg.Millimeter,
	}
	canvases := plot.Align(panels, tiles, dc)
	for i := range panels {
		panels[i][0].Draw(canvases[i][0])
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create plot directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create plot file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write plot: %w", err)
	}
	return nil
}

func stagePlot(stage signalchain.Stage, s signalchain.Signal, limit float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = stageTitles[stage]
	p.X.Label.Text = "Time (ms)"
	p.Y.Label.Text = "Amplitude"
	p.Add(plotter.NewGrid())

	ts, vs := window(s, limit)
	pts := make(plotter.XYs, len(ts))
	for i := range ts {
		pts[i] = plotter.XY{X: ts[i], Y: vs[i]}
	}
	if len(pts) == 0 {
		return p, nil
	}

	c := stageColors[stage]
	switch stage {
	case signalchain.StageSampled, signalchain.StageFiltered:
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Color = c
		sc.GlyphStyle.Radius = vg.Points(markerRadius)
		p.Add(sc)
	default:
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, err
		}
		line.Color = c
		line.Width = vg.Points(lineWidth)
		if stage == signalchain.StageHeld {
			line.StepStyle = plotter.PostStep
		}
		p.Add(line)
	}
	return p, nil
}
