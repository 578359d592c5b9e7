package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/vanityforge/create2-miner/pkg/create2"
	"github.com/vanityforge/create2-miner/pkg/difficulty"
	minerpkg "github.com/vanityforge/create2-miner/pkg/miner"
	"github.com/vanityforge/create2-miner/pkg/types"
)

var (
	mineDeployer     string
	mineInitCodeHash string
	mineTermination  string
	mineAttemptCap   int64
)

func newMineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mine",
		Short: "Mine a salt whose CREATE2 address ends with a suffix",
		Run:   runMine,
	}

	cmd.Flags().StringVarP(&mineDeployer, "deployer", "d", "", "Deployer (factory) address (required)")
	cmd.Flags().StringVar(&mineInitCodeHash, "init-code-hash", "", "32-byte init-code hash (hex)")
	cmd.Flags().StringVarP(&cfg.Bytecode, "bytecode", "B", "", "Contract bytecode to hash into the init-code hash (hex)")
	cmd.Flags().StringVarP(&cfg.BytecodeFile, "bytecode-file", "F", "", "File containing contract bytecode (hex)")
	cmd.Flags().StringVarP(&mineTermination, "termination", "t", "", "Desired address suffix, 1-8 hex chars (required)")
	cmd.Flags().Int64VarP(&mineAttemptCap, "attempt-cap", "c", cfg.MaxAttemptCap, "Maximum salts to try")
	cmd.Flags().IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "Number of worker goroutines")
	cmd.Flags().IntVarP(&cfg.LogInterval, "log-interval", "i", cfg.LogInterval, "Progress logging interval in seconds")

	cobra.CheckErr(cmd.MarkFlagRequired("deployer"))
	cobra.CheckErr(cmd.MarkFlagRequired("termination"))

	return cmd
}

func runMine(cmd *cobra.Command, args []string) {
	setupLogging()

	deployer, err := create2.ParseAddress(mineDeployer)
	if err != nil {
		logger.Fatalf("Invalid deployer: %v", err)
	}
	initCodeHash, err := resolveInitCodeHash(mineInitCodeHash)
	if err != nil {
		logger.Fatalf("Invalid init code: %v", err)
	}

	attemptCap := cfg.ClampAttemptCap(mineAttemptCap)

	if est := difficulty.Estimate(mineTermination); est.Valid {
		logger.Printf("Difficulty: %s (~%d expected attempts, %s)",
			est.Tier, est.ExpectedAttempts, est.TimeEstimate)
	}
	logger.Printf("Mining suffix %q with %d workers, attempt cap %d...",
		mineTermination, cfg.Workers, attemptCap)

	// Ctrl+C cancels the search and reports attempts performed
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := minerpkg.NewMiner(minerpkg.Options{
		Workers:     cfg.Workers,
		BatchSize:   cfg.BatchSize,
		LogInterval: time.Duration(cfg.LogInterval) * time.Second,
	}, logger)

	result, err := m.Mine(ctx, types.SearchSpec{
		Deployer:     deployer,
		InitCodeHash: initCodeHash,
		Termination:  mineTermination,
		AttemptCap:   attemptCap,
	})

	var cancelled *types.CancelledError
	var exhausted *types.ExhaustedError
	switch {
	case err == nil:
		logger.Printf("Found match!")
		logger.Printf("Salt: 0x%s", result.Salt)
		logger.Printf("Address: %s", result.Address)
		logger.Printf("Attempts: %d", result.Attempts)
		logger.Printf("Duration: %v", result.Duration)
		rate := 0.0
		if result.Duration.Seconds() > 0 {
			rate = float64(result.Attempts) / result.Duration.Seconds()
		}
		logger.Printf("Rate: %.2f hashes/sec", rate)
	case errors.As(err, &cancelled):
		logger.Fatalf("Mining cancelled after %d attempts", cancelled.Attempts)
	case errors.As(err, &exhausted):
		logger.Fatalf("No match within %d attempts; retry with a larger cap or shorter suffix", exhausted.Attempts)
	default:
		logger.Fatalf("Mining failed: %v", err)
	}
}

// resolveInitCodeHash takes the hash directly when given, otherwise hashes
// the supplied bytecode.
func resolveInitCodeHash(hashHex string) (common.Hash, error) {
	if hashHex != "" {
		return create2.ParseHash(hashHex)
	}
	code, err := cfg.GetBytecode()
	if err != nil {
		return common.Hash{}, err
	}
	return create2.InitCodeHash(code), nil
}
