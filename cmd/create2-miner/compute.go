package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanityforge/create2-miner/pkg/create2"
	"github.com/vanityforge/create2-miner/pkg/difficulty"
)

var (
	computeDeployer     string
	computeSalt         string
	computeInitCodeHash string
)

func newComputeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute the CREATE2 address for a known salt",
		Run:   runCompute,
	}

	cmd.Flags().StringVarP(&computeDeployer, "deployer", "d", "", "Deployer (factory) address (required)")
	cmd.Flags().StringVarP(&computeSalt, "salt", "s", "", "32-byte salt (hex) (required)")
	cmd.Flags().StringVar(&computeInitCodeHash, "init-code-hash", "", "32-byte init-code hash (hex)")
	cmd.Flags().StringVarP(&cfg.Bytecode, "bytecode", "B", "", "Contract bytecode to hash into the init-code hash (hex)")
	cmd.Flags().StringVarP(&cfg.BytecodeFile, "bytecode-file", "F", "", "File containing contract bytecode (hex)")

	cobra.CheckErr(cmd.MarkFlagRequired("deployer"))
	cobra.CheckErr(cmd.MarkFlagRequired("salt"))

	return cmd
}

func runCompute(cmd *cobra.Command, args []string) {
	setupLogging()

	deployer, err := create2.ParseAddress(computeDeployer)
	if err != nil {
		logger.Fatalf("Invalid deployer: %v", err)
	}
	salt, err := create2.ParseSalt(computeSalt)
	if err != nil {
		logger.Fatalf("Invalid salt: %v", err)
	}
	initCodeHash, err := resolveInitCodeHash(computeInitCodeHash)
	if err != nil {
		logger.Fatalf("Invalid init code: %v", err)
	}

	fmt.Println(create2.Derive(deployer, salt, initCodeHash).Hex())
}

func newEstimateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "estimate <termination>",
		Short: "Estimate the difficulty of a vanity suffix search",
		Args:  cobra.ExactArgs(1),
		Run:   runEstimate,
	}
}

func runEstimate(cmd *cobra.Command, args []string) {
	report := difficulty.Estimate(args[0])
	if !report.Valid {
		fmt.Printf("Invalid termination %q: %s (max %d hex chars)\n",
			report.Termination, report.Reason, report.MaxLength)
		return
	}
	fmt.Printf("Termination: %s\n", report.Termination)
	fmt.Printf("Expected attempts: %d\n", report.ExpectedAttempts)
	fmt.Printf("Difficulty: %s (%s)\n", report.Tier, report.TimeEstimate)
}
