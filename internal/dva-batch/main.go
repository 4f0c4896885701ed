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

package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/TheCacophonyProject/battery-dva/dva"
	"github.com/TheCacophonyProject/battery-dva/internal/config"
	"github.com/TheCacophonyProject/battery-dva/output"
	"github.com/TheCacophonyProject/go-utils/logging"
	arg "github.com/alexflint/go-arg"
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

var version = "No version provided"

var log = logging.NewLogger("info")

type Args struct {
	In     string `arg:"--in" help:"Directory holding the measurement files"`
	Out    string `arg:"--out" help:"Directory the results are written to"`
	Format string `arg:"--format" help:"Result format (json, yaml, xlsx)"`
	config.Flags
	logging.LogArgs
}

func (Args) Version() string {
	return version
}

var defaultArgs = Args{
	In:     "data_in",
	Out:    "data_out",
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

	return run(args)
}

// run calculates every measurement in args.In. A file that fails is logged
// and skipped, the failures are returned together once all files are done.
func run(args Args) error {
	cfg, err := config.Load(args.Flags)
	if err != nil {
		return err
	}
	writer, err := output.NewWriter(output.Format(args.Format))
	if err != nil {
		return err
	}

	files, err := findMeasurements(args.In)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		log.Infof("No measurements found in '%s'", args.In)
		return nil
	}
	if err := os.MkdirAll(args.Out, 0755); err != nil {
		return err
	}

	runID := uuid.NewString()
	log.Infof("Run %s: calculating %s for %d files", runID, cfg.Mode, len(files))

	var errs error
	written := map[string]string{}
	done := 0
	for _, path := range files {
		name := filepath.Base(path)

		resultName := output.FileName(path, writer)
		if other, ok := written[resultName]; ok {
			err := fmt.Errorf("%s: result %s is already used by %s", name, resultName, other)
			log.Error(err)
			errs = multierr.Append(errs, err)
			continue
		}

		log.Debugf("Processing %s", name)
		res, err := dva.CalculateFile(path, cfg)
		if err != nil {
			log.Errorf("Failed to calculate %s: %v", name, err)
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		for _, d := range res.Diagnostics {
			logDiagnostic(name, d)
		}

		saved, err := output.WriteFile(args.Out, writer, output.NewDocument(runID, path, res))
		if err != nil {
			log.Errorf("Failed to save result of %s: %v", name, err)
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		written[resultName] = name
		done++
		log.Infof("Saved result of %s to %s", name, saved)
	}

	log.Infof("Run %s: finished %d of %d files", runID, done, len(files))
	return errs
}

// findMeasurements lists the .csv and .xlsx files in dir in name order.
// Lock files left by spreadsheet programs are skipped.
func findMeasurements(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), "~$") {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".csv", ".xlsx":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

func logDiagnostic(file string, d dva.Diagnostic) {
	if d.Severity == dva.SeverityWarning {
		log.Warnf("%s: %s", file, d.Message)
	} else {
		log.Infof("%s: %s", file, d.Message)
	}
}
