package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/machbase/neo-noise/mods/logging"
	"github.com/machbase/neo-noise/mods/nums"
	"github.com/machbase/neo-noise/mods/presets"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/sync/errgroup"
)

type grid struct {
	recipe presets.Recipe
	width  int
	height int
	values []float32
	// time spent on each row
	timer gometrics.Timer
}

func (g *grid) row(y int) []float32 {
	return g.values[y*g.width : (y+1)*g.width]
}

// sampleGrid samples the grid flags of cmd, one goroutine per row up to
// the number of CPUs.
func sampleGrid(cmd *cobra.Command) (*grid, error) {
	r, err := recipeFromFlags(cmd)
	if err != nil {
		return nil, err
	}
	n, err := presets.Build(r)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	width, _ := flags.GetInt("width")
	height, _ := flags.GetInt("height")
	step, _ := flags.GetFloat32("step")
	x, _ := flags.GetFloat32("x")
	y, _ := flags.GetFloat32("y")
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid grid size %dx%d", width, height)
	}

	locs := nums.Grid2(mgl32.Vec2{x, y}, step, width, height)
	ret := &grid{
		recipe: r,
		width:  width,
		height: height,
		values: make([]float32, len(locs)),
		timer:  gometrics.NewTimer(),
	}
	eg := errgroup.Group{}
	eg.SetLimit(runtime.NumCPU())
	for row := 0; row < height; row++ {
		row := row
		eg.Go(func() error {
			start := time.Now()
			for i := row * width; i < (row+1)*width; i++ {
				ret.values[i] = n.Sample(locs[i])
			}
			ret.timer.UpdateSince(start)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	log := logging.Wrap(logging.GetLog("noiz"))
	log.Info("sampled",
		"kind", r.Kind,
		"seed", r.Seed,
		"samples", len(locs),
		"elapsed", time.Duration(ret.timer.Sum()),
	)
	return ret, nil
}

func doSample(cmd *cobra.Command, args []string) error {
	g, err := sampleGrid(cmd)
	if err != nil {
		return err
	}
	if output, _ := cmd.Flags().GetString("output"); output != "" {
		return writeImage(g, output)
	}

	format, _ := cmd.Flags().GetString("format")
	out := cmd.OutOrStdout()
	switch format {
	case "table":
		box := newBox(cmd)
		for y := 0; y < g.height; y++ {
			row := make(table.Row, g.width)
			for x, v := range g.row(y) {
				row[x] = fmt.Sprintf("%.3f", v)
			}
			box.AppendRow(row)
		}
		box.Render()
	case "csv":
		for y := 0; y < g.height; y++ {
			toks := make([]string, g.width)
			for x, v := range g.row(y) {
				toks[x] = fmt.Sprintf("%g", v)
			}
			fmt.Fprintln(out, strings.Join(toks, ","))
		}
	case "pgm":
		writePGM(out, g)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return nil
}

// gray maps the unorm range to 0..255; snorm recipes are shifted first.
func (g *grid) gray(v float32) uint8 {
	if g.recipe.SNorm {
		v = v*0.5 + 0.5
	}
	return uint8(nums.Clamp(v, 0, 1)*255 + 0.5)
}

func writePGM(w io.Writer, g *grid) {
	fmt.Fprintf(w, "P2\n%d %d\n255\n", g.width, g.height)
	for y := 0; y < g.height; y++ {
		toks := make([]string, g.width)
		for x, v := range g.row(y) {
			toks[x] = fmt.Sprintf("%d", g.gray(v))
		}
		fmt.Fprintln(w, strings.Join(toks, " "))
	}
}

func writeImage(g *grid, path string) error {
	img := image.NewGray(image.Rect(0, 0, g.width, g.height))
	for y := 0; y < g.height; y++ {
		for x, v := range g.row(y) {
			img.SetGray(x, y, color.Gray{Y: g.gray(v)})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(f, img)
	case ".bmp":
		err = bmp.Encode(f, img)
	case ".tif", ".tiff":
		err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = fmt.Errorf("unsupported image type %q", path)
	}
	if err != nil {
		return err
	}
	return f.Close()
}

func doStats(cmd *cobra.Command, args []string) error {
	g, err := sampleGrid(cmd)
	if err != nil {
		return err
	}
	bins, _ := cmd.Flags().GetInt("bins")

	s := nums.Summarize(nums.Float64s(g.values))
	box := newBox(cmd, "STAT", "VALUE")
	box.AppendRows([]table.Row{
		{"kind", g.recipe.Kind},
		{"count", s.Count},
		{"min", fmt.Sprintf("%.4f", s.Min)},
		{"max", fmt.Sprintf("%.4f", s.Max)},
		{"mean", fmt.Sprintf("%.4f", s.Mean)},
		{"stddev", fmt.Sprintf("%.4f", s.StdDev)},
		{"p50", fmt.Sprintf("%.4f", s.P50)},
		{"p90", fmt.Sprintf("%.4f", s.P90)},
		{"p99", fmt.Sprintf("%.4f", s.P99)},
		{"ns/sample", fmt.Sprintf("%.1f", float64(g.timer.Sum())/float64(s.Count))},
	})
	box.Render()

	hist := &nums.Histogram{Min: 0, Max: 1, NumBins: bins}
	if g.recipe.SNorm {
		hist.Min = -1
	}
	for _, v := range g.values {
		hist.Add(float64(v))
	}
	box = newBox(cmd, "LOW", "HIGH", "COUNT", "")
	for _, b := range hist.Bins() {
		bar := strings.Repeat("#", b.Count()*40/max(hist.Total(), 1))
		box.AppendRow(table.Row{fmt.Sprintf("%.2f", b.Low), fmt.Sprintf("%.2f", b.High), b.Count(), bar})
	}
	box.Render()
	return nil
}

func doSpectrum(cmd *cobra.Command, args []string) error {
	r, err := recipeFromFlags(cmd)
	if err != nil {
		return err
	}
	n, err := presets.Build(r)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	count, _ := flags.GetInt("samples")
	step, _ := flags.GetFloat32("step")
	npeaks, _ := flags.GetInt("peaks")

	values := make([]float64, count)
	for i := range values {
		values[i] = float64(n.Sample(mgl32.Vec2{float32(i) * step, 0}))
	}
	peaks := nums.DominantPeaks(nums.Spectrum(values, float64(step)), npeaks)

	box := newBox(cmd, "FREQUENCY", "PERIOD", "AMPLITUDE")
	for _, p := range peaks {
		box.AppendRow(table.Row{
			fmt.Sprintf("%.4f", p.Frequency),
			fmt.Sprintf("%.2f", 1/p.Frequency),
			fmt.Sprintf("%.4f", p.Amplitude),
		})
	}
	box.Render()
	return nil
}
