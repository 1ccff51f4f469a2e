/*
Copyright © 2026 the acidbase authors.
This file is part of acidbase.

acidbase is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

acidbase is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with acidbase.  If not, see <http://www.gnu.org/licenses/>.
*/

package acidbaseutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spf13/cast"
)

// checkOutputVars removes end lines and expands environment
// variables in the output variables.
func checkOutputVars(vars map[string]string) map[string]string {
	o := make(map[string]string, len(vars))
	for k, v := range vars {
		v = strings.Replace(v, "\r\n", " ", -1)
		v = strings.Replace(v, "\n", " ", -1)
		o[os.ExpandEnv(k)] = os.ExpandEnv(v)
	}
	return o
}

// checkOutputFile makes sure that the output file is specified, has a
// supported extension, and that its directory exists, and expands
// any environment variables.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`acidbase: you need to specify an output file configuration variable (for example: OutputFile="results.csv")`)
	}
	f = os.ExpandEnv(f)
	switch ext := strings.ToLower(filepath.Ext(f)); ext {
	case ".csv", ".xlsx":
	default:
		return f, fmt.Errorf("acidbase: OutputFile must end in .csv or .xlsx, but has extension '%s'", ext)
	}
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("acidbase: the OutputFile directory doesn't exist: %v", err)
	}
	return f, nil
}

// checkPlotFile expands environment variables in the plot file
// path. An empty path means no plot is wanted.
func checkPlotFile(f string) (string, error) {
	if f == "" {
		return "", nil
	}
	f = os.ExpandEnv(f)
	switch ext := strings.ToLower(filepath.Ext(f)); ext {
	case ".png", ".svg", ".pdf", ".eps", ".jpg", ".jpeg", ".tif", ".tiff":
	default:
		return f, fmt.Errorf("acidbase: Sweep.PlotFile has unsupported image extension '%s'", ext)
	}
	if _, err := os.Stat(filepath.Dir(f)); err != nil {
		return f, fmt.Errorf("acidbase: the Sweep.PlotFile directory doesn't exist: %v", err)
	}
	return f, nil
}

// GetStringMapString returns a map[string]string from a viper configuration,
// accounting for the fact that it might be a json object if it was set
// from a command line argument.
func GetStringMapString(varName string, cfg *viper.Viper) (map[string]string, error) {
	i := cfg.Get(varName)
	switch v := i.(type) {
	case map[string]string:
		return v, nil
	case map[string]interface{}:
		return cast.ToStringMapStringE(v)
	case string:
		o := make(map[string]string)
		if v == "" {
			return o, nil
		}
		d := json.NewDecoder(bytes.NewBufferString(v))
		if err := d.Decode(&o); err != nil {
			return nil, fmt.Errorf("acidbase: parsing %s as a JSON object: %v", varName, err)
		}
		return o, nil
	case nil:
		return map[string]string{}, nil
	default:
		return nil, fmt.Errorf("acidbase: invalid type for map variable %s: %#v", varName, i)
	}
}

// getFloat reads a numeric configuration value.
func getFloat(varName string, cfg *viper.Viper) (float64, error) {
	v, err := cast.ToFloat64E(cfg.Get(varName))
	if err != nil {
		return 0, fmt.Errorf("acidbase: reading %s: %v", varName, err)
	}
	return v, nil
}

// positiveFloat reads a configuration value that must be greater than zero.
func positiveFloat(varName string, cfg *viper.Viper) (float64, error) {
	v, err := getFloat(varName, cfg)
	if err != nil {
		return 0, err
	}
	if !(v > 0) {
		return 0, fmt.Errorf("acidbase: %s must be greater than zero but is %g", varName, v)
	}
	return v, nil
}
