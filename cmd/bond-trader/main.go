package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/iwvelando/bond-trader/internal/batch"
	"github.com/iwvelando/bond-trader/internal/config"
	"github.com/iwvelando/bond-trader/internal/trader"
	"github.com/iwvelando/bond-trader/pkg/constants"
	"github.com/iwvelando/bond-trader/pkg/lotfile"
	"github.com/iwvelando/bond-trader/pkg/output"
	"github.com/iwvelando/bond-trader/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	inputFlag := flag.String("input", "", "lot file to solve (overrides input.path)")
	outputFlag := flag.String("output", "", "result file, or - for stdout (overrides output.path)")
	outputFormatFlag := flag.String("output-format", "", "type of output override: text, pretty, csv, yaml")
	algorithmFlag := flag.String("algorithm", "", "solver override: auto, subset, knapsack")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	crossCheck := flag.Bool("cross-check", false, "run both solvers and fail if they disagree")
	flag.Parse()

	// A missing config file is fine; flags and defaults cover everything.
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
			os.Exit(1)
		}
		conf = config.Defaults()
	}

	logger, err := config.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI overrides take precedence over config
	if *inputFlag != "" {
		conf.Input.Path = *inputFlag
	}
	if *outputFlag != "" {
		conf.Output.Path = *outputFlag
	}
	if *outputFormatFlag != "" {
		conf.Output.Format = *outputFormatFlag
	}
	if *algorithmFlag != "" {
		conf.Solver.Algorithm = *algorithmFlag
	}
	if *crossCheck {
		conf.Solver.CrossCheck = true
	}
	if conf.Output.Path == "-" {
		conf.Output.Path = ""
	}

	if err := conf.Validate(); err != nil {
		logger.Fatal("invalid configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	alg, err := conf.Algorithm()
	if err != nil {
		logger.Fatal("invalid algorithm",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if paths := flag.Args(); len(paths) > 0 {
		if !runBatch(ctx, logger, conf, alg, paths) {
			_ = logger.Sync()
			os.Exit(1)
		}
		return
	}

	inst, err := lotfile.ReadFile(conf.Input.Path)
	if err != nil {
		logger.Fatal("failed to read lot file",
			zap.String("op", "main"),
			zap.String("path", conf.Input.Path),
			zap.Error(err),
		)
	}

	planned := alg
	if planned == trader.Auto {
		planned = trader.Select(inst)
	}
	for _, warning := range validation.ScaleWarnings(planned.String(), len(inst.Lots), inst.TotalFunds, conf.Solver.CrossCheck) {
		logger.Warn(warning, zap.String("op", "main"))
	}

	runner := trader.NewRunner(logger,
		trader.WithAlgorithm(alg),
		trader.WithCrossCheck(conf.Solver.CrossCheck),
	)
	res, err := runner.Run(ctx, inst, conf.BondParams())
	if err != nil {
		logger.Fatal("failed to solve",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if err := writeResult(conf, inst, res); err != nil {
		logger.Fatal("failed to write result",
			zap.String("op", "main"),
			zap.String("path", conf.Output.Path),
			zap.Error(err),
		)
	}
}

// runBatch solves every path and prints each result to stdout. It reports
// whether all files were solved.
func runBatch(ctx context.Context, logger *zap.Logger, conf *config.Configuration, alg trader.Algorithm, paths []string) bool {
	items, err := batch.Run(ctx, logger, paths, conf.BondParams(), batch.Options{Algorithm: alg})
	if err != nil {
		logger.Error("batch interrupted",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	ok := err == nil
	for _, item := range items {
		if item.Err != nil {
			ok = false
			continue
		}
		fmt.Printf("==> %s <==\n", item.Path)
		if werr := output.Write(os.Stdout, conf.Output.Format, item.Instance, conf.BondParams(), item.Result); werr != nil {
			logger.Error("failed to write result",
				zap.String("op", "main"),
				zap.String("path", item.Path),
				zap.Error(werr),
			)
			ok = false
		}
	}
	return ok
}

func writeResult(conf *config.Configuration, inst trader.Instance, res trader.Result) error {
	if conf.Output.Path == "" {
		return output.Write(os.Stdout, conf.Output.Format, inst, conf.BondParams(), res)
	}
	if conf.Output.Format == constants.OutputFormatText {
		return lotfile.WriteFile(conf.Output.Path, inst, res)
	}

	if dir := filepath.Dir(conf.Output.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(conf.Output.Path)
	if err != nil {
		return err
	}
	return closeAfter(f, output.Write(f, conf.Output.Format, inst, conf.BondParams(), res))
}

func closeAfter(c io.Closer, err error) error {
	if cerr := c.Close(); err == nil {
		err = cerr
	}
	return err
}
