// Command tracefit fits an analytic pulse shape to a recorded detector
// trace and reports the resulting shape parameters.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/kelseymh/tracefit"
	"github.com/kelseymh/tracefit/overlay"
	"github.com/kelseymh/tracefit/trace"
)

// errUsage marks command-line mistakes so main can exit with 2 instead
// of the generic failure code.
var errUsage = errors.New("usage")

var (
	detname     string
	eventIndex  int
	channel     int
	sensorName  string
	makePlots   bool
	verbose     bool
	configPath  string
	templateDir string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tracefit: %v\n", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tracefit [flags] <file>",
		Short:         "Fit analytic pulse shapes to detector traces",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("%w: expected exactly one input file, got %d", errUsage, len(args))
			}
			return nil
		},
		RunE: run,
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})

	cmd.Flags().StringVarP(&detname, "detector", "d", "", "detector name used in report and plot titles")
	cmd.Flags().IntVarP(&eventIndex, "event", "e", 0, "event index within the file")
	cmd.Flags().IntVarP(&channel, "channel", "c", 0, "channel index within the event")
	cmd.Flags().StringVarP(&sensorName, "sensor", "s", "TES", "sensor type (TES or FET)")
	cmd.Flags().BoolVarP(&makePlots, "plots", "p", false, "write overlay plots (.eps and .png)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log fit diagnostics to stderr")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML file with fitter tuning settings")
	cmd.Flags().StringVar(&templateDir, "template-dir", "", "directory with response template CSVs for plots")

	return cmd
}

func run(_ *cobra.Command, args []string) error {
	sensor, err := tracefit.ParseSensor(sensorName)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	cfg := tracefit.Config{}
	fileCfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	applyFloatConfig(&cfg.CutFraction, fileCfg.Fit.Cut)
	applyIntConfig(&cfg.FETLookahead, fileCfg.Fit.FETLookahead)
	applyIntConfig(&cfg.MaxIter, fileCfg.Fit.MaxIter)
	applyFloatConfig(&cfg.Tau, fileCfg.Fit.Tau)
	applyFloatConfig(&cfg.GradTol, fileCfg.Fit.GradTol)
	applyFloatConfig(&cfg.StepTol, fileCfg.Fit.StepTol)
	applyFloatConfig(&cfg.ObjectiveTol, fileCfg.Fit.ObjectiveTol)
	if verbose {
		cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	fitter, err := tracefit.NewFitter(cfg)
	if err != nil {
		return err
	}

	bins, trc, scalars, err := trace.ReadTrace(args[0], eventIndex, channel, sensor)
	if err != nil {
		return err
	}

	res, err := fitter.Fit(bins, trc, sensor)
	if err != nil {
		return err
	}

	switch sensor {
	case tracefit.TES:
		peakOverE := 0.0
		if scalars.PhononE != 0 {
			peakOverE = peakValue(trc) / scalars.PhononE
		}
		tracefit.WriteTESReport(os.Stdout, detname, res, scalars.I0, peakOverE)
	case tracefit.FET:
		tracefit.WriteFETReport(os.Stdout, detname, res)
	}

	if makePlots {
		template, err := trace.ReadTemplate(templateDir, detname, channel, sensor)
		if err != nil {
			return err
		}
		if err := overlay.Save(".", detname, res, bins, trc, template); err != nil {
			return err
		}
	}
	return nil
}

func peakValue(trc []float64) float64 {
	m := math.Inf(-1)
	for _, v := range trc {
		if v > m {
			m = v
		}
	}
	return m
}
