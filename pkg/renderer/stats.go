package renderer

import (
	"bytes"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/olekukonko/tablewriter"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width, Height    int
	TotalPixels      int           // Total number of pixels rendered
	TotalSamples     int           // Total number of samples taken
	SamplesPerPixel  int           // Samples taken per pixel
	Tiles            int           // Number of tiles the image was split into
	Workers          int           // Number of parallel workers
	Duration         time.Duration // Wall clock time of the render
	FastestTile      time.Duration
	SlowestTile      time.Duration
	AverageRadiance  core.Vec3 // Mean linear pixel value
	AverageLuminance float64   // Mean luminance of the gamma corrected image
}

// TileStats is reported by a worker for every finished tile
type TileStats struct {
	TileID   int
	Pixels   int
	Samples  int
	Duration time.Duration
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics. Non-finite
// samples are counted but contribute nothing.
func (ps *PixelStats) AddSample(color core.Vec3) {
	if color.IsFinite() {
		ps.ColorAccum = ps.ColorAccum.Add(color)
	}
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// addTile merges the statistics of a finished tile
func (s *RenderStats) addTile(tile TileStats) {
	s.TotalPixels += tile.Pixels
	s.TotalSamples += tile.Samples
	if s.FastestTile == 0 || tile.Duration < s.FastestTile {
		s.FastestTile = tile.Duration
	}
	s.SlowestTile = max(s.SlowestTile, tile.Duration)
}

// Table builds a tabular representation of the render statistics
func (s RenderStats) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Statistic", "Value"})
	table.Append([]string{"Resolution", fmt.Sprintf("%dx%d", s.Width, s.Height)})
	table.Append([]string{"Pixels", fmt.Sprintf("%d", s.TotalPixels)})
	table.Append([]string{"Samples", fmt.Sprintf("%d (%d spp)", s.TotalSamples, s.SamplesPerPixel)})
	table.Append([]string{"Tiles", fmt.Sprintf("%d", s.Tiles)})
	table.Append([]string{"Workers", fmt.Sprintf("%d", s.Workers)})
	table.Append([]string{"Tile time", fmt.Sprintf("%s .. %s", s.FastestTile, s.SlowestTile)})
	table.Append([]string{"Mean radiance", s.AverageRadiance.String()})
	table.Append([]string{"Mean luminance", fmt.Sprintf("%.4f", s.AverageLuminance)})
	table.SetFooter([]string{"Render time", s.Duration.String()})

	table.Render()
	return buf.String()
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image
// with channels mapped to [0, 1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	n := bounds.Dx() * bounds.Dy()
	if n == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += core.NewVec3(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255).Luminance709()
		}
	}
	return total / float64(n)
}
