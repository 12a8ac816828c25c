// Package chart renders charger and vehicle statistics as PNG charts.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"

	"github.com/katiamach/ev-charging-analysis/internal/logger"
	"github.com/katiamach/ev-charging-analysis/internal/model"
	"github.com/katiamach/ev-charging-analysis/internal/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Chart file names.
const (
	MapFile              = "chargers_map.png"
	InstalledFile        = "chargers_installed.png"
	RegistrationsFile    = "ulev_registrations.png"
	InstalledVsPlugsFile = "chargers_vs_plugins.png"
)

var ErrNoData = errors.New("nothing to plot")

var (
	installedColor = color.RGBA{R: 0x24, G: 0x53, B: 0x6c, A: 0xff}
	bevColor       = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	phevColor      = color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}
	otherColor     = color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff}
	gridColor      = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x80}
)

// Renderer writes all charts of a report into a directory.
type Renderer struct {
	dir string
}

// NewRenderer creates new Renderer.
func NewRenderer(dir string) *Renderer {
	return &Renderer{dir: dir}
}

// Render draws the four charts, charts without data are skipped.
func (r *Renderer) Render(chargers []*model.ChargerRecord, report *model.Report) error {
	err := os.MkdirAll(r.dir, 0o755)
	if err != nil {
		return fmt.Errorf("failed to create charts directory: %w", err)
	}

	charts := []struct {
		file string
		draw func(path string) error
	}{
		{MapFile, func(path string) error { return ChargersMap(chargers, path) }},
		{InstalledFile, func(path string) error { return InstalledBar(report.Chargers, path) }},
		{RegistrationsFile, func(path string) error { return RegistrationsStackedBar(report.Vehicles, path) }},
		{InstalledVsPlugsFile, func(path string) error { return InstalledVsRegistered(report.Joined, path) }},
	}

	for _, c := range charts {
		path := filepath.Join(r.dir, c.file)

		err := c.draw(path)
		if errors.Is(err, ErrNoData) {
			logger.Warn(fmt.Sprintf("Skipping chart %s: %v", c.file, err))
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to draw %s: %w", c.file, err)
		}

		logger.Info(fmt.Sprintf("Chart saved to %s", path))
	}

	return nil
}

// ChargersMap draws charger locations inside the UK.
func ChargersMap(records []*model.ChargerRecord, path string) error {
	inside := stats.WithinBounds(records, stats.UKBounds)
	if len(inside) == 0 {
		return ErrNoData
	}

	points := make(plotter.XYs, len(inside))
	for i, r := range inside {
		points[i].X = r.Longitude
		points[i].Y = r.Latitude
	}

	p := plot.New()
	p.Title.Text = "EV Chargers location distribution in the UK"
	p.X.Label.Text = "longitude"
	p.Y.Label.Text = "latitude"
	p.X.Min, p.X.Max = stats.UKBounds.MinLon, stats.UKBounds.MaxLon
	p.Y.Min, p.Y.Max = stats.UKBounds.MinLat, stats.UKBounds.MaxLat

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(1)
	scatter.GlyphStyle.Color = installedColor

	p.Add(newGrid(), scatter)

	return p.Save(8*vg.Inch, 6*vg.Inch, path)
}

// InstalledBar draws number of chargers installed each year with a label on every bar.
func InstalledBar(counts []*model.YearlyChargerCount, path string) error {
	if len(counts) == 0 {
		return ErrNoData
	}

	values := make(plotter.Values, len(counts))
	years := make([]string, len(counts))
	labels := plotter.XYLabels{
		XYs:    make([]plotter.XY, len(counts)),
		Labels: make([]string, len(counts)),
	}

	for i, c := range counts {
		values[i] = float64(c.Installed)
		years[i] = strconv.Itoa(c.Year)
		labels.XYs[i] = plotter.XY{X: float64(i), Y: float64(c.Installed)}
		labels.Labels[i] = strconv.Itoa(c.Installed)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Number EV charges installed between %d and %d", counts[0].Year, counts[len(counts)-1].Year)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Number chargers installed"

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return err
	}
	bars.Color = installedColor
	bars.LineStyle.Width = vg.Length(0)

	valueLabels, err := plotter.NewLabels(labels)
	if err != nil {
		return err
	}
	for i := range valueLabels.TextStyle {
		valueLabels.TextStyle[i].XAlign = draw.XCenter
	}
	valueLabels.Offset = vg.Point{Y: vg.Points(3)}

	p.Add(bars, valueLabels)
	p.NominalX(years...)

	return p.Save(12*vg.Inch, 8*vg.Inch, path)
}

// RegistrationsStackedBar draws BEV on top of PHEV on top of other ULEVs per year.
func RegistrationsStackedBar(vehicles []*model.ULEVYearRecord, path string) error {
	if len(vehicles) == 0 {
		return ErrNoData
	}

	bev := make(plotter.Values, len(vehicles))
	phev := make(plotter.Values, len(vehicles))
	other := make(plotter.Values, len(vehicles))
	years := make([]string, len(vehicles))

	for i, v := range vehicles {
		bev[i] = v.BatteryElectric
		phev[i] = v.PlugInHybrid
		other[i] = v.OtherULEVs
		years[i] = strconv.Itoa(v.Year)
	}

	width := vg.Points(25)

	otherBars, err := plotter.NewBarChart(other, width)
	if err != nil {
		return err
	}
	otherBars.Color = otherColor

	phevBars, err := plotter.NewBarChart(phev, width)
	if err != nil {
		return err
	}
	phevBars.Color = phevColor
	phevBars.StackOn(otherBars)

	bevBars, err := plotter.NewBarChart(bev, width)
	if err != nil {
		return err
	}
	bevBars.Color = bevColor
	bevBars.StackOn(phevBars)

	p := plot.New()
	p.Title.Text = "ULEVs registered for the first time in the UK"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Number cars"
	p.X.Label.TextStyle.Font.Size = vg.Points(14)
	p.Y.Label.TextStyle.Font.Size = vg.Points(14)

	p.Add(otherBars, phevBars, bevBars)
	p.Legend.Add("BEV", bevBars)
	p.Legend.Add("PHEV", phevBars)
	p.Legend.Add("other ULEVs", otherBars)
	p.Legend.Top = true
	p.Legend.Left = true
	p.NominalX(years...)

	return p.Save(12*vg.Inch, 8*vg.Inch, path)
}

// InstalledVsRegistered draws chargers installed and plug-in cars registered per joined year.
func InstalledVsRegistered(joined []*model.JoinedYearRecord, path string) error {
	if len(joined) == 0 {
		return ErrNoData
	}

	installed := make(plotter.XYs, len(joined))
	registered := make(plotter.XYs, len(joined))

	for i, j := range joined {
		installed[i] = plotter.XY{X: float64(j.Year), Y: float64(j.Installed)}
		registered[i] = plotter.XY{X: float64(j.Year), Y: j.BatteryElectric + j.PlugInHybrid}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Charges installed vs Plug-In Cars registered between %d and %d",
		minYear(joined), maxYear(joined))
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Number"
	p.X.Tick.Marker = yearTicks{}

	installedLine, err := plotter.NewLine(installed)
	if err != nil {
		return err
	}
	installedLine.Color = installedColor
	installedLine.Width = vg.Points(2)

	registeredLine, err := plotter.NewLine(registered)
	if err != nil {
		return err
	}
	registeredLine.Color = phevColor
	registeredLine.Width = vg.Points(2)

	p.Add(newGrid(), installedLine, registeredLine)
	p.Legend.Add("charges_installed", installedLine)
	p.Legend.Add("plug_cars_registered", registeredLine)
	p.Legend.Top = true
	p.Legend.Left = true

	return p.Save(12*vg.Inch, 8*vg.Inch, path)
}

func newGrid() *plotter.Grid {
	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Horizontal.Color = gridColor
	return grid
}

func minYear(joined []*model.JoinedYearRecord) int {
	year := joined[0].Year
	for _, j := range joined[1:] {
		if j.Year < year {
			year = j.Year
		}
	}
	return year
}

func maxYear(joined []*model.JoinedYearRecord) int {
	year := joined[0].Year
	for _, j := range joined[1:] {
		if j.Year > year {
			year = j.Year
		}
	}
	return year
}

// yearTicks puts a labeled tick on every whole year.
type yearTicks struct{}

func (yearTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for y := int(min); float64(y) <= max; y++ {
		if float64(y) < min {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: float64(y), Label: strconv.Itoa(y)})
	}
	return ticks
}
