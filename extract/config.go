package extract

import (
	"encoding/json"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
)

// JSONConfig is the on-disk job description consumed by the cmd tools, so a
// batch run can be described once and replayed.
type JSONConfig struct {
	ConfigPath string

	Name             string  `json:"name"`
	SamplesPerDegree float64 `json:"samples_per_degree"`
	Expansion        int     `json:"expansion"`
	MaxDistance      float64 `json:"max_distance"`
	MinCells         int     `json:"min_cells"`
	RingPath         string  `json:"ring_path"`
	OutputPath       string  `json:"output_path"`
}

// ParseJSONConfigFromPath loads a JSONConfig, expanding a leading ~ in any
// path fields.
func ParseJSONConfigFromPath(path string) (JSONConfig, error) {
	out := JSONConfig{ConfigPath: path}

	f, err := os.Open(path)
	if err != nil {
		return out, pfx.Err(err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&out); err != nil {
		if e, ok := err.(*json.SyntaxError); ok {
			log.Printf("syntax error at byte offset %d", e.Offset)
		}

		return out, pfx.Err(err)
	}

	out.ConfigPath = expandHomeDir(out.ConfigPath)
	out.RingPath = expandHomeDir(out.RingPath)
	out.OutputPath = expandHomeDir(out.OutputPath)

	return out, nil
}

// Options converts the file form into job options.
func (c JSONConfig) Options() Options {
	return Options{
		Name:             c.Name,
		SamplesPerDegree: c.SamplesPerDegree,
		Expansion:        c.Expansion,
		MaxDistance:      c.MaxDistance,
		MinCells:         c.MinCells,
	}
}

// Via https://stackoverflow.com/a/17617721/199475
func expandHomeDir(path string) string {
	usr, err := user.Current()
	if err != nil {
		return path
	}

	dir := usr.HomeDir

	if path == "~" {
		path = dir
	} else if strings.HasPrefix(path, "~/") {
		path = filepath.Join(dir, path[2:])
	}

	return path
}
