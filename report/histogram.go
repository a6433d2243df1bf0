// Package report renders the distribution of per-round validation scores.
package report

import (
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/sciboot/pkg/errors"
)

// DefaultBins is used when Histogram is called with bins <= 0.
const DefaultBins = 20

const (
	width  = 6 * vg.Inch
	height = 4 * vg.Inch
)

var formats = map[string]bool{
	".png": true, ".svg": true, ".pdf": true, ".eps": true, ".jpg": true, ".jpeg": true, ".tif": true, ".tiff": true,
}

// Histogram draws a histogram of values and saves it to path. The image
// format follows the file extension (png, svg, pdf, ...). NaN values, such as
// scores of rounds with an empty test set, are skipped.
func Histogram(values []float64, title, xLabel string, bins int, path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !formats[ext] {
		return errors.NewValidationError("path", "unsupported image format", ext)
	}

	finite := make(plotter.Values, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return errors.NewValueError("report.Histogram", "no finite values to plot")
	}
	if bins <= 0 {
		bins = DefaultBins
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "rounds"

	h, err := plotter.NewHist(finite, bins)
	if err != nil {
		return errors.Wrap(err, "report: build histogram")
	}
	p.Add(h)

	if err := p.Save(width, height, path); err != nil {
		return errors.Wrapf(err, "report: save %s", path)
	}
	return nil
}
