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
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
)

func TestSetConfig(t *testing.T) {
	dir, err := ioutil.TempDir("", "acidbase")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	cfgFile := filepath.Join(dir, "config.toml")
	err = ioutil.WriteFile(cfgFile, []byte(`verbose = true

[Sweep]
MaxConc = 0.5
PlotVariable = "pOH"
`), 0644)
	if err != nil {
		t.Fatal(err)
	}

	Cfg.Set("config", cfgFile)
	defer func() {
		// Clear the values read from the file.
		Cfg.Set("config", "")
		Cfg.SetConfigType("toml")
		Cfg.ReadConfig(strings.NewReader(""))
		setVerbosity(false)
	}()
	if err := setConfig(); err != nil {
		t.Fatal(err)
	}
	if v := Cfg.GetFloat64("Sweep.MaxConc"); v != 0.5 {
		t.Errorf("Sweep.MaxConc: have %g, want 0.5", v)
	}
	if v := Cfg.GetString("Sweep.PlotVariable"); v != "pOH" {
		t.Errorf("Sweep.PlotVariable: have %s, want pOH", v)
	}
	if l := Log.(*logrus.Logger).Level; l != logrus.DebugLevel {
		t.Errorf("log level: have %v, want debug", l)
	}
}

func TestSetConfigMissingFile(t *testing.T) {
	Cfg.Set("config", "does_not_exist.toml")
	defer Cfg.Set("config", "")
	if err := setConfig(); err == nil {
		t.Error("expected an error for a missing configuration file")
	}
}

func TestGetStringMapString(t *testing.T) {
	cfg := viper.New()
	for _, test := range []struct {
		name string
		val  interface{}
		want map[string]string
	}{
		{name: "json", val: `{"pOH":"14 - pH"}`, want: map[string]string{"pOH": "14 - pH"}},
		{name: "empty", val: "", want: map[string]string{}},
		{name: "map", val: map[string]string{"H": "pow10(-pH)"}, want: map[string]string{"H": "pow10(-pH)"}},
		{name: "interface map", val: map[string]interface{}{"h": "pow10(-pH)"}, want: map[string]string{"h": "pow10(-pH)"}},
	} {
		t.Run(test.name, func(t *testing.T) {
			cfg.Set("vars", test.val)
			have, err := GetStringMapString("vars", cfg)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(have, test.want) {
				t.Errorf("have %v, want %v", have, test.want)
			}
		})
	}
	cfg.Set("vars", "{not json")
	if _, err := GetStringMapString("vars", cfg); err == nil {
		t.Error("expected an error for invalid JSON")
	}
}

func TestCheckOutputFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "acidbase")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	os.Setenv("ACIDBASE_TEST_DIR", dir)
	defer os.Unsetenv("ACIDBASE_TEST_DIR")

	f, err := checkOutputFile("${ACIDBASE_TEST_DIR}/out.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "out.xlsx"); f != want {
		t.Errorf("have %s, want %s", f, want)
	}
	for _, bad := range []string{"", filepath.Join(dir, "out.shp"), filepath.Join(dir, "missing", "out.csv")} {
		if _, err := checkOutputFile(bad); err == nil {
			t.Errorf("%q: expected an error", bad)
		}
	}
}

func TestCheckOutputVars(t *testing.T) {
	os.Setenv("ACIDBASE_TEST_PKW", "14")
	defer os.Unsetenv("ACIDBASE_TEST_PKW")
	have := checkOutputVars(map[string]string{"pOH": "${ACIDBASE_TEST_PKW} -\npH"})
	want := map[string]string{"pOH": "14 - pH"}
	if !reflect.DeepEqual(have, want) {
		t.Errorf("have %v, want %v", have, want)
	}
}

func TestPositiveFloat(t *testing.T) {
	cfg := viper.New()
	for _, test := range []struct {
		val     interface{}
		want    float64
		wantErr bool
	}{
		{val: 0.5, want: 0.5},
		{val: "1e-3", want: 1.e-3},
		{val: 0.0, wantErr: true},
		{val: -1.0, wantErr: true},
		{val: "x", wantErr: true},
	} {
		t.Run(fmt.Sprint(test.val), func(t *testing.T) {
			cfg.Set("v", test.val)
			have, err := positiveFloat("v", cfg)
			if (err != nil) != test.wantErr {
				t.Fatalf("error: %v", err)
			}
			if have != test.want {
				t.Errorf("have %g, want %g", have, test.want)
			}
		})
	}
}
