package report

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/user/fluvis_go/internal/analysis"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var plotColors = []color.Color{
	color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 255}, // Blue
	color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 255}, // Red
	color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 255}, // Green
	color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 255}, // Orange
	color.RGBA{R: 0x94, G: 0x67, B: 0xbd, A: 255}, // Purple
	color.RGBA{R: 0x17, G: 0xbe, B: 0xcf, A: 255}, // Teal
}

// CreateEpidemicCurvePlot draws the number of cells in each state per day,
// plus the daily new infections as a dashed line. Returns PNG bytes.
func CreateEpidemicCurvePlot(res *analysis.CensusResults, labels StateLabeler) ([]byte, error) {
	if res == nil || len(res.Days) == 0 {
		return nil, fmt.Errorf("no census results to plot")
	}
	labels = labelerOrDefault(labels)

	p := plot.New()
	p.Title.Text = "Cells per State by Day"
	p.X.Label.Text = "Day"
	p.Y.Label.Text = "Cells"
	p.X.Min = 0
	p.X.Max = float64(len(res.Days) - 1)
	p.Y.Min = 0
	if len(res.Days) == 1 {
		p.X.Max = 1
	}
	p.X.Tick.Marker = plot.ConstantTicks(generateTicks(len(res.Days)))
	p.Add(plotter.NewGrid())

	for i, state := range res.States {
		pts := make(plotter.XYs, len(res.Days))
		for j, d := range res.Days {
			pts[j] = plotter.XY{X: float64(d.Day), Y: float64(d.Count(state))}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to create line for state %d: %v", state, err)
		}
		line.Color = plotColors[i%len(plotColors)]
		line.LineStyle.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(labels.Label(state), line)
	}

	newPts := make(plotter.XYs, len(res.Days))
	for j, d := range res.Days {
		newPts[j] = plotter.XY{X: float64(d.Day), Y: float64(d.NewInfections)}
	}
	newLine, err := plotter.NewLine(newPts)
	if err != nil {
		return nil, fmt.Errorf("failed to create new infections line: %v", err)
	}
	newLine.Color = color.Gray{Y: 96}
	newLine.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
	p.Add(newLine)
	p.Legend.Add("New infections", newLine)

	p.Legend.Top = true
	p.Legend.XOffs = vg.Points(-10)

	writer, err := p.WriterTo(vg.Points(800), vg.Points(400), "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %v", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %v", err)
	}
	return buf.Bytes(), nil
}

// generateTicks labels at most about ten days along the X axis.
func generateTicks(days int) []plot.Tick {
	step := 1
	for days/step > 10 {
		step++
	}
	ticks := make([]plot.Tick, 0, days/step+1)
	for i := 0; i < days; i += step {
		ticks = append(ticks, plot.Tick{Value: float64(i), Label: fmt.Sprintf("%d", i)})
	}
	return ticks
}
