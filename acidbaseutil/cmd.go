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

// Package acidbaseutil contains the command-line interface to the
// acidbase equilibrium calculator.
package acidbaseutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/acidbase"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to acidbase.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "verbose",
			usage: `
              verbose specifies whether to log debugging information,
              such as which form of the dissociation constant equation was used.`,
			shorthand:  "v",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "pH",
			usage: `
              pH is the pH of the acid solution.`,
			defaultVal: 2.89,
			flagsets:   []*pflag.FlagSet{kaCmd.Flags()},
		},
		{
			name: "Ka",
			usage: `
              Ka is the acid dissociation constant.`,
			defaultVal: 1.8e-5,
			flagsets:   []*pflag.FlagSet{phCmd.Flags(), pkaCmd.Flags(), alphaCmd.Flags(), sweepCmd.Flags()},
		},
		{
			name: "pKa",
			usage: `
              pKa is the negative base-10 logarithm of the acid dissociation constant.`,
			defaultVal: 4.76,
			flagsets:   []*pflag.FlagSet{kaFromPKaCmd.Flags(), bufferCmd.Flags()},
		},
		{
			name: "conc",
			usage: `
              conc is the initial concentration of the acid in mol/L.`,
			shorthand:  "c",
			defaultVal: 0.1,
			flagsets:   []*pflag.FlagSet{kaCmd.Flags(), phCmd.Flags(), alphaCmd.Flags()},
		},
		{
			name: "approx",
			usage: `
              approx specifies whether Ka may be calculated as [H+]²/C when
              [H+]/C < 0.05. If false, or if the five percent rule does not hold,
              the exact form [H+]²/(C - [H+]) is used.`,
			defaultVal: acidbase.DefaultApproximation,
			flagsets:   []*pflag.FlagSet{kaCmd.Flags()},
		},
		{
			name: "acid",
			usage: `
              acid is the concentration of the weak acid in a buffer, in mol/L.`,
			defaultVal: 0.1,
			flagsets:   []*pflag.FlagSet{bufferCmd.Flags()},
		},
		{
			name: "salt",
			usage: `
              salt is the concentration of the conjugate base (salt) in a buffer, in mol/L.`,
			defaultVal: 0.1,
			flagsets:   []*pflag.FlagSet{bufferCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path to the desired output file location. The
              format is chosen by the extension: .csv or .xlsx. It can
              include environment variables.`,
			defaultVal: "acidbase_output.csv",
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags(), batchCmd.Flags()},
		},
		{
			name: "OutputVariables",
			usage: `
              OutputVariables specifies additional variables to be calculated
              from the results and included in the output file, as a map of
              variable names to expressions. Expressions can use the result
              columns, other output variables, and the functions
              log10(x), pow10(x), and exp(x). It can include environment variables.`,
			defaultVal: map[string]string{
				"pOH": "14 - pH",
			},
			flagsets: []*pflag.FlagSet{sweepCmd.Flags(), batchCmd.Flags()},
		},
		{
			name: "Sweep.MinConc",
			usage: `
              Sweep.MinConc is the lowest initial acid concentration in the sweep, in mol/L.`,
			defaultVal: 1.e-4,
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "Sweep.MaxConc",
			usage: `
              Sweep.MaxConc is the highest initial acid concentration in the sweep, in mol/L.`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "Sweep.Points",
			usage: `
              Sweep.Points is the number of logarithmically spaced concentrations
              in the sweep.`,
			defaultVal: 50,
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "Sweep.PlotFile",
			usage: `
              Sweep.PlotFile is the path to an image file where a plot of
              Sweep.PlotVariable against concentration should be saved.
              If it is empty, no plot is created.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "Sweep.PlotVariable",
			usage: `
              Sweep.PlotVariable is the output column to plot. It can be
              pH, alpha, or one of the OutputVariables.`,
			defaultVal: "alpha",
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
		{
			name: "Batch.File",
			usage: `
              Batch.File is the path to a TOML file containing [[Calculation]]
              entries. It can include environment variables.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{batchCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("ACIDBASE")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				set.StringP(option.name, option.shorthand, v, option.usage)
			case bool:
				set.BoolP(option.name, option.shorthand, v, option.usage)
			case int:
				set.IntP(option.name, option.shorthand, v, option.usage)
			case float64:
				set.Float64P(option.name, option.shorthand, v, option.usage)
			case map[string]string:
				b := bytes.NewBuffer(nil)
				e := json.NewEncoder(b)
				e.Encode(v)
				set.StringP(option.name, option.shorthand, b.String(), option.usage)
			default:
				panic("invalid argument type")
			}
		}
		Cfg.BindPFlag(option.name, option.flagsets[0].Lookup(option.name))
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(kaCmd)
	Root.AddCommand(phCmd)
	Root.AddCommand(pkaCmd)
	Root.AddCommand(kaFromPKaCmd)
	Root.AddCommand(alphaCmd)
	Root.AddCommand(bufferCmd)
	Root.AddCommand(examplesCmd)
	Root.AddCommand(sweepCmd)
	Root.AddCommand(batchCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets the logging level.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("acidbase: problem reading configuration file: %v", err)
		}
	}
	setVerbosity(Cfg.GetBool("verbose"))
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "acidbase",
	Short: "An acid-base equilibrium calculator.",
	Long: `acidbase calculates equilibrium properties of monoprotic weak acids:
dissociation constants (Ka and pKa), pH, degree of dissociation, and the pH
of buffer solutions. Use the subcommands specified below to access the
calculations.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'ACIDBASE_var' where 'var' is the
name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of acidbase.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "acidbase v%s\n", acidbase.Version)
	},
	DisableAutoGenTag: true,
}

// kaCmd calculates Ka from pH.
var kaCmd = &cobra.Command{
	Use:   "ka",
	Short: "Calculate Ka from pH",
	Long: `ka calculates the acid dissociation constant from the pH of a
solution and the initial acid concentration. When --approx is true and
[H+]/C < 0.05, the weak-acid approximation Ka = [H+]²/C is used;
otherwise Ka = [H+]²/(C - [H+]).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pH, err := getFloat("pH", Cfg)
		if err != nil {
			return err
		}
		c, err := getFloat("conc", Cfg)
		if err != nil {
			return err
		}
		approx := Cfg.GetBool("approx")
		ka, err := acidbase.KaFromPH(pH, c, approx)
		if err != nil {
			return err
		}
		h := math.Pow(10, -pH)
		Log.WithFields(logrus.Fields{
			"H/C":         h / c,
			"approximate": approx && acidbase.FivePercentRule(h, c),
		}).Debug("calculated Ka from pH")
		fmt.Fprintf(cmd.OutOrStdout(), "Ka = %g\n", ka)
		return nil
	},
	DisableAutoGenTag: true,
}

// phCmd calculates pH from Ka.
var phCmd = &cobra.Command{
	Use:   "ph",
	Short: "Calculate pH from Ka",
	Long: `ph calculates the pH of a weak acid solution from the acid
dissociation constant and the initial acid concentration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ka, err := getFloat("Ka", Cfg)
		if err != nil {
			return err
		}
		c, err := getFloat("conc", Cfg)
		if err != nil {
			return err
		}
		pH, err := acidbase.PHFromKa(ka, c)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "pH = %g\n", pH)
		return nil
	},
	DisableAutoGenTag: true,
}

// pkaCmd calculates pKa from Ka.
var pkaCmd = &cobra.Command{
	Use:   "pka",
	Short: "Calculate pKa from Ka",
	Long:  `pka calculates pKa = -log10(Ka).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ka, err := getFloat("Ka", Cfg)
		if err != nil {
			return err
		}
		pKa, err := acidbase.PKaFromKa(ka)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "pKa = %g\n", pKa)
		return nil
	},
	DisableAutoGenTag: true,
}

// kaFromPKaCmd calculates Ka from pKa.
var kaFromPKaCmd = &cobra.Command{
	Use:   "kafrompka",
	Short: "Calculate Ka from pKa",
	Long:  `kafrompka calculates Ka = 10^(-pKa).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pKa, err := getFloat("pKa", Cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Ka = %g\n", acidbase.KaFromPKa(pKa))
		return nil
	},
	DisableAutoGenTag: true,
}

// alphaCmd calculates the degree of dissociation.
var alphaCmd = &cobra.Command{
	Use:   "alpha",
	Short: "Calculate the degree of dissociation",
	Long: `alpha calculates the fraction of acid molecules that have
ionized, [H+]/C, from the acid dissociation constant and the initial
acid concentration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ka, err := getFloat("Ka", Cfg)
		if err != nil {
			return err
		}
		c, err := getFloat("conc", Cfg)
		if err != nil {
			return err
		}
		α, err := acidbase.DegreeOfDissociation(ka, c)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "alpha = %g\n", α)
		return nil
	},
	DisableAutoGenTag: true,
}

// bufferCmd calculates the pH of a buffer.
var bufferCmd = &cobra.Command{
	Use:   "buffer",
	Short: "Calculate buffer pH",
	Long: `buffer calculates the pH of a buffer solution using the
Henderson-Hasselbalch equation pH = pKa + log10([salt]/[acid]).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pKa, err := getFloat("pKa", Cfg)
		if err != nil {
			return err
		}
		acid, err := getFloat("acid", Cfg)
		if err != nil {
			return err
		}
		salt, err := getFloat("salt", Cfg)
		if err != nil {
			return err
		}
		pH, err := acidbase.BufferPH(pKa, acid, salt)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "pH = %g\n", pH)
		return nil
	},
	DisableAutoGenTag: true,
}

var examplesCmd = &cobra.Command{
	Use:   "examples",
	Short: "Print worked examples",
	Long: `examples prints three worked examples: Ka and pKa from the pH of
a 0.100 M acid solution, the pH of 0.10 M acetic acid, and the pH of an
equimolar acetic acid/acetate buffer.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Examples(cmd.OutOrStdout())
	},
	DisableAutoGenTag: true,
}

// sweepCmd calculates pH and degree of dissociation over a range of
// concentrations.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Calculate a dilution curve",
	Long: `sweep calculates the pH and degree of dissociation (alpha) of a weak
acid with the given Ka at logarithmically spaced concentrations between
Sweep.MinConc and Sweep.MaxConc, and saves the results to OutputFile.
If Sweep.PlotFile is specified, a plot of Sweep.PlotVariable against
concentration is saved there.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ka, err := getFloat("Ka", Cfg)
		if err != nil {
			return err
		}
		minConc, err := positiveFloat("Sweep.MinConc", Cfg)
		if err != nil {
			return err
		}
		maxConc, err := positiveFloat("Sweep.MaxConc", Cfg)
		if err != nil {
			return err
		}
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		plotFile, err := checkPlotFile(Cfg.GetString("Sweep.PlotFile"))
		if err != nil {
			return err
		}
		outputVars, err := GetStringMapString("OutputVariables", Cfg)
		if err != nil {
			return err
		}

		t, err := Sweep(ka, minConc, maxConc, Cfg.GetInt("Sweep.Points"))
		if err != nil {
			return err
		}
		if err = t.AddVariables(checkOutputVars(outputVars)); err != nil {
			return err
		}
		if err = t.Write(outputFile); err != nil {
			return err
		}
		Log.WithField("file", outputFile).Info("wrote sweep results")
		if plotFile != "" {
			title := fmt.Sprintf("Ka = %g", ka)
			if err = t.Plot(plotFile, title, "C", Cfg.GetString("Sweep.PlotVariable"), true); err != nil {
				return err
			}
			Log.WithField("file", plotFile).Info("wrote sweep plot")
		}
		return nil
	},
	DisableAutoGenTag: true,
}

// batchCmd runs the calculations in a batch file.
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run a batch of calculations",
	Long: `batch runs the calculations listed in the TOML file Batch.File and
saves the results to OutputFile. Each calculation is a [[Calculation]] table
with a Name, a Kind (ka, ph, pka, kafrompka, alpha, or buffer), and the
inputs that kind requires: pH, Ka, pKa, Conc, Acid, Salt, and Approx.
For example:

	[[Calculation]]
	Name = "acetic acid"
	Kind = "ph"
	Ka = 1.8e-5
	Conc = 0.1

If any calculation fails, no output is written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		batchFile := os.ExpandEnv(Cfg.GetString("Batch.File"))
		if batchFile == "" {
			return fmt.Errorf("acidbase: you need to specify a batch file (for example: --Batch.File=calculations.toml)")
		}
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		outputVars, err := GetStringMapString("OutputVariables", Cfg)
		if err != nil {
			return err
		}

		f, err := os.Open(batchFile)
		if err != nil {
			return fmt.Errorf("acidbase: opening batch file: %v", err)
		}
		defer f.Close()
		b, err := ReadBatch(f)
		if err != nil {
			return err
		}
		Log.WithFields(logrus.Fields{
			"file":         batchFile,
			"calculations": len(b.Calculation),
		}).Info("running batch")

		t, err := RunBatch(b)
		if err != nil {
			return err
		}
		if err = t.AddVariables(checkOutputVars(outputVars)); err != nil {
			return err
		}
		if err = t.Write(outputFile); err != nil {
			return err
		}
		Log.WithField("file", outputFile).Info("wrote batch results")
		return nil
	},
	DisableAutoGenTag: true,
}
