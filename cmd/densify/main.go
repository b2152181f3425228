package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/densify/internal/pipeline"
	"github.com/ajitpratap0/densify/pkg/compression"
	"github.com/ajitpratap0/densify/pkg/config"
	"github.com/ajitpratap0/densify/pkg/logger"
	"github.com/ajitpratap0/densify/pkg/sink"
	"github.com/ajitpratap0/densify/pkg/sparse"
)

var version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	root := &cobra.Command{
		Use:   "densify",
		Short: "Densify - sparse counts matrix to dense delimited table",
		Long: `Densify converts CSR sparse count matrices (e.g. single-cell expression
matrices exported from AnnData) into dense delimited text tables, filling
implicit zeros, for tools that cannot read the native sparse container.`,
	}

	// Version command
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Densify v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	// Types command to show the supported value sets
	root.AddCommand(&cobra.Command{
		Use:   "types",
		Short: "List supported element types, delimiters, and orientations",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Supported element types:")
			for _, name := range sparse.SupportedTypes() {
				fmt.Printf("  - %s\n", name)
			}
			fmt.Println("\nSupported delimiters:")
			for _, name := range sink.Delimiters() {
				fmt.Printf("  - %s\n", name)
			}
			fmt.Println("\nSupported orientations:")
			for _, name := range sparse.Orientations() {
				fmt.Printf("  - %s\n", name)
			}
			fmt.Println("\nSupported output compression:")
			for _, name := range compression.Algorithms() {
				fmt.Printf("  - %s\n", name)
			}
		},
	})

	// Main convert command
	var configFile, inputFile, outputFile string
	var orientation, delimiter, compressionAlgo, logLevel string
	var compressionLevel, flushEvery int
	var overwrite, enableMetrics bool
	var timeout time.Duration

	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a CSR container to a dense delimited table",
		Long: `Convert a CSR counts matrix container to a dense delimited table with
implicit zeros filled in.

Example:
  densify convert -f counts.json -c var-names -d comma -o counts.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, configFile, convertFlags{
				input:            inputFile,
				output:           outputFile,
				orientation:      orientation,
				delimiter:        delimiter,
				compression:      compressionAlgo,
				compressionLevel: compressionLevel,
				flushEvery:       flushEvery,
				overwrite:        overwrite,
				enableMetrics:    enableMetrics,
				logLevel:         logLevel,
			})
			if err != nil {
				return err
			}
			return runConvert(cfg, timeout)
		},
	}

	convertCmd.Flags().StringVarP(&inputFile, "file", "f", "", "Path to the CSR container JSON file (required unless --config provides it)")
	convertCmd.Flags().StringVarP(&outputFile, "outfile", "o", "out.csv", "Path of the output file")
	convertCmd.Flags().StringVarP(&orientation, "column-orient", "c", "var-names", "Column orientation: var-names or obs-names")
	convertCmd.Flags().StringVarP(&delimiter, "delimiter", "d", "comma", "Field delimiter: comma, tab, colon, pipe, semicolon")
	convertCmd.Flags().StringVar(&compressionAlgo, "compression", "none", "Output compression: none, gzip, snappy, lz4, zstd, s2, deflate")
	convertCmd.Flags().IntVar(&compressionLevel, "compression-level", int(compression.Default), "Compression level (1 fastest .. 9 best)")
	convertCmd.Flags().IntVar(&flushEvery, "flush-every", 1000, "Flush buffered records every N rows")
	convertCmd.Flags().BoolVar(&overwrite, "overwrite", true, "Overwrite an existing output file")
	convertCmd.Flags().BoolVar(&enableMetrics, "enable-metrics", false, "Enable Prometheus metrics collection")
	convertCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	convertCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Minute, "Conversion timeout")
	convertCmd.Flags().StringVar(&configFile, "config", "", "Path to a JSON or YAML configuration file (flags override)")

	root.AddCommand(convertCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// convertFlags carries the convert command's flag values
type convertFlags struct {
	input            string
	output           string
	orientation      string
	delimiter        string
	compression      string
	compressionLevel int
	flushEvery       int
	overwrite        bool
	enableMetrics    bool
	logLevel         string
}

// buildConfig layers explicitly-set flags over an optional config file
func buildConfig(cmd *cobra.Command, configFile string, flags convertFlags) (*config.Config, error) {
	var cfg *config.Config
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.New()
	}

	set := cmd.Flags().Changed
	if set("file") || cfg.Input.Path == "" {
		cfg.Input.Path = flags.input
	}
	if set("outfile") || cfg.Output.Path == "" {
		cfg.Output.Path = flags.output
	}
	if set("column-orient") {
		cfg.Output.Orientation = flags.orientation
	}
	if set("delimiter") {
		cfg.Output.Delimiter = flags.delimiter
	}
	if set("compression") {
		cfg.Output.Compression = flags.compression
	}
	if set("compression-level") {
		cfg.Output.CompressionLevel = flags.compressionLevel
	}
	if set("flush-every") {
		cfg.Output.FlushEvery = flags.flushEvery
	}
	if set("overwrite") {
		cfg.Output.Overwrite = flags.overwrite
	}
	if set("enable-metrics") {
		cfg.Observability.EnableMetrics = flags.enableMetrics
	}
	if set("log-level") {
		cfg.Logging.Level = flags.logLevel
	}

	return cfg, nil
}

// runConvert initializes logging and executes the conversion pipeline
func runConvert(cfg *config.Config, timeout time.Duration) error {
	if err := logger.Init(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		Encoding:    cfg.Logging.Encoding,
	}); err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get().With(
		zap.String("component", "densify-cli"),
		zap.String("input", cfg.Input.Path),
		zap.String("output", cfg.Output.Path))

	log.Info("starting conversion",
		zap.String("orientation", cfg.Output.Orientation),
		zap.String("delimiter", cfg.Output.Delimiter))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	startTime := time.Now()
	if err := pipeline.New(cfg).Run(ctx); err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	log.Info("conversion finished", zap.Duration("duration", time.Since(startTime)))
	return nil
}
