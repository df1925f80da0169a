package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/duplex3d/printflow/internal/artifact"
	"github.com/duplex3d/printflow/internal/command"
	"github.com/duplex3d/printflow/internal/config"
	"github.com/duplex3d/printflow/internal/env"
	"github.com/duplex3d/printflow/internal/envvar"
	"github.com/duplex3d/printflow/internal/logger"
	"github.com/duplex3d/printflow/internal/pipeline"
	"github.com/duplex3d/printflow/internal/toolchain"
	"github.com/duplex3d/printflow/internal/xfs"
)

const version = "1.2.0"

func usage() {
	fmt.Println("Usage: printflow [options] <input_file> <output_directory>")
	fmt.Println()
	fmt.Println("printflow prepares a 3D model for two-sided robot printing: it orients")
	fmt.Println("the mesh, slices each side, and converts the toolpaths to robot programs.")
	fmt.Println()
	fmt.Println("Options:")
	pflag.PrintDefaults()
}

func main() {
	os.Exit(run())
}

func run() int {
	configFlag := pflag.StringP("config", "c", "", "Path to the driver config file")
	logFileFlag := pflag.String("log-file", "", "Also write logs to this file")
	verboseFlag := pflag.BoolP("verbose", "v", false, "Enable debug logging")
	versionFlag := pflag.BoolP("version", "V", false, "Print version information")
	helpFlag := pflag.BoolP("help", "h", false, "Show this help message")
	pflag.Usage = usage
	pflag.Parse()

	if *helpFlag {
		usage()
		return 0
	}

	if *versionFlag {
		fmt.Printf("printflow version %s\n", version)
		return 0
	}

	args := pflag.Args()
	if len(args) != 2 {
		usage()
		return 1
	}
	inputModel, outputDir := args[0], args[1]

	environment := env.FromEnv()

	logOpts := []logger.Option{}
	if *verboseFlag {
		logOpts = append(logOpts, logger.WithLevel(slog.LevelDebug))
	}
	logFile := *logFileFlag
	if logFile == "" {
		logFile = os.Getenv(envvar.PrintflowLogFile)
	}
	if logFile != "" {
		logOpts = append(logOpts, logger.WithLogToFile(true), logger.WithLogFile(logFile))
	}
	slog.SetDefault(logger.New(environment, logOpts...).With("run_id", uuid.NewString()))

	set, err := preflight(inputModel, outputDir)
	if err != nil {
		fmt.Printf("Cannot start pipeline: %v\n", err)
		return 1
	}

	cfg, err := config.Load(configPath(*configFlag))
	if err != nil {
		fmt.Printf("Invalid driver config: %v\n", err)
		return 1
	}

	ctx := context.Background()
	runner := command.ExecRunner{}

	resolver := &toolchain.Resolver{
		Search:    toolchain.LocateSearch{Runner: runner},
		GOOS:      runtime.GOOS,
		Out:       os.Stdout,
		Overrides: cfg.Tools,
	}

	tc, err := resolver.Resolve(ctx)
	if err != nil {
		fmt.Printf("Cannot resolve toolchain: %v\n", err)
		return 1
	}

	slog.Info("starting pipeline", "input", inputModel, "output_dir", outputDir, "stem", set.Stem)

	sequencer := &pipeline.Sequencer{
		Runner:  runner,
		Out:     os.Stdout,
		Timeout: cfg.Stages.Timeout.Std(),
	}

	code, _ := sequencer.Run(ctx, pipeline.Stages(tc, set))
	return code
}

// preflight validates the input model and creates the output directory, then
// derives the artifact set. It must complete before any stage runs: every
// stage deposits its files under the output directory.
func preflight(inputModel, outputDir string) (artifact.Set, error) {
	if !xfs.IsRegularFile(inputModel) {
		return artifact.Set{}, fmt.Errorf("input file %s does not exist", inputModel)
	}

	if err := xfs.EnsureDir(outputDir); err != nil {
		return artifact.Set{}, fmt.Errorf("cannot create output directory %s: %w", outputDir, err)
	}

	return artifact.Derive(inputModel, outputDir), nil
}

// configPath picks the driver config location: flag, then environment, then
// the platform config directory.
func configPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if fromEnv := os.Getenv(envvar.PrintflowConfig); fromEnv != "" {
		return fromEnv
	}
	return filepath.Join(config.DefaultConfigPath(), "printflow.yaml")
}
