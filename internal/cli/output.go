package cli

import (
	"encoding/json"
	"io"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/sciboot/pkg/errors"
)

// write encodes v as indented JSON or YAML.
func write(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "encode yaml")
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(v), "encode json")
	}
}

// score is a metric value that encodes NaN as null.
type score float64

func (s score) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(s)) || math.IsInf(float64(s), 0) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(s))
}

func (s score) MarshalYAML() (any, error) {
	if math.IsNaN(float64(s)) || math.IsInf(float64(s), 0) {
		return nil, nil
	}
	return float64(s), nil
}
