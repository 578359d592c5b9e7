package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/vanityforge/create2-miner/internal/config"
	logpkg "github.com/vanityforge/create2-miner/internal/logger"
)

var (
	cfg    = config.NewConfig()
	logger *logpkg.Logger
)

func main() {
	// Environment first, so explicit flags override it
	if err := cfg.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	var rootCmd = &cobra.Command{
		Use:   "create2-miner",
		Short: "CREATE2 vanity address miner",
		Long: `Derives deterministic CREATE2 deployment addresses and mines salts
whose resulting address ends with a chosen hexadecimal suffix.`,
	}

	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")
	rootCmd.PersistentFlags().StringVarP(&cfg.LogFile, "log-file", "l", "", "Log file (default: stdout)")

	rootCmd.AddCommand(newServeCmd(), newMineCmd(), newComputeCmd(), newEstimateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogging() {
	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		logger = logpkg.NewWriter(file)
		logger.SetFlags(log.LstdFlags | log.Lmicroseconds)
	} else {
		logger = logpkg.New()
		logger.SetFlags(log.LstdFlags)
	}
	logger.SetVerbose(cfg.Verbose)
}
