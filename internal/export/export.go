// Package export writes radar snapshots to disk: the current frame as a PNG,
// and the range map as a static plot and an interactive chart.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/Vladimir-Herdman/Ultrasonic-Raycaster/internal/config"
)

// Exporter writes timestamped files into a directory.
type Exporter struct {
	dir string
	now func() time.Time
}

// New creates an exporter writing into dir. The directory is created on the
// first export.
func New(dir string) *Exporter {
	return &Exporter{dir: dir, now: time.Now}
}

// Dir returns the output directory.
func (e *Exporter) Dir() string {
	return e.dir
}

// Frame writes frame as radar_<timestamp>.png and returns its path.
func (e *Exporter) Frame(frame image.Image) (string, error) {
	path, err := e.path("radar", ".png")
	if err != nil {
		return "", err
	}
	return path, WriteFramePNG(path, frame)
}

// RangeMap writes ranges as rangemap_<timestamp>.png and as an interactive
// rangemap_<timestamp>.html chart, and returns both paths.
func (e *Exporter) RangeMap(ranges map[int]int) ([]string, error) {
	plotPath, err := e.path("rangemap", ".png")
	if err != nil {
		return nil, err
	}
	if err := PlotRangeMap(plotPath, ranges); err != nil {
		return nil, err
	}
	chartPath := strings.TrimSuffix(plotPath, ".png") + ".html"
	if err := ChartRangeMap(chartPath, ranges); err != nil {
		return []string{plotPath}, err
	}
	return []string{plotPath, chartPath}, nil
}

func (e *Exporter) path(prefix, ext string) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	return filepath.Join(e.dir, prefix+"_"+FormatTimestamp(e.now())+ext), nil
}

// FormatTimestamp generates the timestamp used in export file names.
func FormatTimestamp(t time.Time) string {
	return t.Format("20060102_150405")
}

// WriteFramePNG encodes frame to path.
func WriteFramePNG(path string, frame image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create frame file: %w", err)
	}
	if err := png.Encode(f, frame); err != nil {
		f.Close()
		return fmt.Errorf("encode frame: %w", err)
	}
	return f.Close()
}

// RangeMapPoints converts angle→distance entries into sensor-plane
// coordinates in cm, x to the right and y away from the sensor.
func RangeMapPoints(ranges map[int]int) plotter.XYs {
	pts := make(plotter.XYs, 0, len(ranges))
	for angle, d := range ranges {
		rad := float64(angle) * math.Pi / 180
		pts = append(pts, plotter.XY{
			X: math.Cos(rad) * float64(d),
			Y: math.Sin(rad) * float64(d),
		})
	}
	return pts
}

// PlotRangeMap saves a scatter plot of ranges to path. The format follows
// the file extension.
func PlotRangeMap(path string, ranges map[int]int) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Range map (%d angles)", len(ranges))
	p.X.Label.Text = "x (cm)"
	p.Y.Label.Text = "y (cm)"
	p.X.Min, p.X.Max = -config.MaxRange, config.MaxRange
	p.Y.Min, p.Y.Max = 0, config.MaxRange
	p.Add(plotter.NewGrid())

	if len(ranges) > 0 {
		echoes, err := plotter.NewScatter(RangeMapPoints(ranges))
		if err != nil {
			return fmt.Errorf("range map points: %w", err)
		}
		echoes.GlyphStyle.Color = color.RGBA{R: 200, G: 30, B: 0, A: 255}
		echoes.GlyphStyle.Radius = vg.Points(2)
		echoes.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(echoes)
		p.Legend.Add("echo", echoes)
	}

	sensor, err := plotter.NewScatter(plotter.XYs{{X: 0, Y: 0}})
	if err != nil {
		return fmt.Errorf("sensor point: %w", err)
	}
	sensor.GlyphStyle.Color = color.RGBA{G: 140, A: 255}
	sensor.GlyphStyle.Radius = vg.Points(4)
	sensor.GlyphStyle.Shape = draw.TriangleGlyph{}
	p.Add(sensor)
	p.Legend.Add("sensor", sensor)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save range map: %w", err)
	}
	return nil
}

// ChartRangeMap renders ranges as a standalone HTML scatter chart.
func ChartRangeMap(path string, ranges map[int]int) error {
	pts := RangeMapPoints(ranges)
	data := make([]opts.ScatterData, 0, len(pts))
	for _, pt := range pts {
		data = append(data, opts.ScatterData{Value: []interface{}{pt.X, pt.Y}})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Range map", Theme: "dark", Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Range map", Subtitle: fmt.Sprintf("angles=%d", len(ranges))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: -config.MaxRange, Max: config.MaxRange, Name: "x (cm)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: config.MaxRange, Name: "y (cm)", NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries("echo", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := scatter.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("render range chart: %w", err)
	}
	return f.Close()
}
