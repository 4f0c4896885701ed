/*
battery-dva - Differential voltage analysis of battery measurements
Copyright (C) 2026, The Cacophony Project

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package calc

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/TheCacophonyProject/battery-dva/dva"
	"github.com/TheCacophonyProject/battery-dva/internal/config"
	"github.com/TheCacophonyProject/battery-dva/output"
	"github.com/TheCacophonyProject/go-utils/logging"
	arg "github.com/alexflint/go-arg"
	"github.com/google/uuid"
)

var version = "No version provided"

var log = logging.NewLogger("info")

type Args struct {
	Input  string `arg:"positional,required" help:"Measurement file (.csv or .xlsx)"`
	Out    string `arg:"--out" help:"Directory to write the result to, nothing is written if not set"`
	Format string `arg:"--format" help:"Result format (json, yaml, xlsx)"`
	config.Flags
	logging.LogArgs
}

func (Args) Version() string {
	return version
}

var defaultArgs = Args{
	Format: string(output.FormatJSON),
}

func procArgs(input []string) (Args, error) {
	args := defaultArgs

	parser, err := arg.NewParser(arg.Config{}, &args)
	if err != nil {
		return Args{}, err
	}
	err = parser.Parse(input)
	if errors.Is(err, arg.ErrHelp) {
		parser.WriteHelp(os.Stdout)
		os.Exit(0)
	}
	if errors.Is(err, arg.ErrVersion) {
		fmt.Println(version)
		os.Exit(0)
	}
	return args, err
}

func Run(inputArgs []string, ver string) error {
	version = ver
	args, err := procArgs(inputArgs)
	if err != nil {
		return fmt.Errorf("failed to parse args: %v", err)
	}

	log = logging.NewLogger(args.LogLevel)
	log.Info("Running version: ", version)

	return run(args, os.Stdout)
}

func run(args Args, stdout io.Writer) error {
	cfg, err := config.Load(args.Flags)
	if err != nil {
		return err
	}
	var writer output.Writer
	if args.Out != "" {
		if writer, err = output.NewWriter(output.Format(args.Format)); err != nil {
			return err
		}
	}

	log.Debugf("Calculating %s of %s", cfg.Mode, args.Input)
	res, err := dva.CalculateFile(args.Input, cfg)
	if err != nil {
		return err
	}
	for _, d := range res.Diagnostics {
		logDiagnostic(args.Input, d)
	}
	printSummary(stdout, args.Input, res)

	if writer == nil {
		return nil
	}
	if err := os.MkdirAll(args.Out, 0755); err != nil {
		return err
	}
	path, err := output.WriteFile(args.Out, writer, output.NewDocument(uuid.NewString(), args.Input, res))
	if err != nil {
		return err
	}
	log.Info("Saved result to ", path)
	return nil
}

func logDiagnostic(file string, d dva.Diagnostic) {
	if d.Severity == dva.SeverityWarning {
		log.Warnf("%s: %s", file, d.Message)
	} else {
		log.Infof("%s: %s", file, d.Message)
	}
}

func printSummary(w io.Writer, input string, res *dva.Result) {
	direction := "charge"
	if res.Discharge {
		direction = "discharge"
	}
	fmt.Fprintf(w, "File:        %s\n", input)
	fmt.Fprintf(w, "Curve:       %s (%s)\n", res.Mode, direction)
	fmt.Fprintf(w, "Points:      %d\n", len(res.Time))
	if n := len(res.Charge); n > 0 {
		fmt.Fprintf(w, "Charge:      %.4g\n", max(res.Charge[0], res.Charge[n-1]))
	}
	fmt.Fprintf(w, "Noise level: %.2f dB\n", res.NoiseLevel)
}
