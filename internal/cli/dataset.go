package cli

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/sciboot/pkg/errors"
)

// dataset is a numeric table split into features and a target column.
type dataset struct {
	features []string
	target   string
	X        *mat.Dense
	y        *mat.Dense
}

func loadCSV(path, target string) (*dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return readCSV(f, target)
}

// readCSV parses a headered CSV whose cells are all numeric. Every column
// other than target becomes a feature.
func readCSV(r io.Reader, target string) (*dataset, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read csv")
	}
	if len(records) < 2 {
		return nil, errors.NewValueError("readCSV", "need a header and at least one data row")
	}

	header := records[0]
	targetCol := -1
	var features []string
	for j, name := range header {
		name = strings.TrimSpace(name)
		if name == target {
			targetCol = j
			continue
		}
		features = append(features, name)
	}
	if targetCol < 0 {
		return nil, errors.NewValidationError("target", "column not found in header", target)
	}
	if len(features) == 0 {
		return nil, errors.NewValueError("readCSV", "no feature columns besides the target")
	}

	rows := records[1:]
	X := mat.NewDense(len(rows), len(features), nil)
	y := mat.NewDense(len(rows), 1, nil)
	for i, row := range rows {
		col := 0
		for j, cell := range row {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, errors.Wrapf(err, "row %d column %q", i+2, header[j])
			}
			if j == targetCol {
				y.Set(i, 0, v)
				continue
			}
			X.Set(i, col, v)
			col++
		}
	}
	return &dataset{features: features, target: target, X: X, y: y}, nil
}
