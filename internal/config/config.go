package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Errors
var (
	ErrNoBytecodeSpecified = errors.New("must specify either --bytecode or --bytecode-file")
	ErrInvalidPort         = errors.New("port must be between 1 and 65535")
	ErrInvalidWorkers      = errors.New("workers must be at least 1")
	ErrInvalidAttemptCap   = errors.New("max attempt cap must be at least 1")
)

// Defaults
const (
	DefaultPort          = 8080
	DefaultMaxAttemptCap = 1_000_000
	DefaultBatchSize     = 1000
	DefaultLogInterval   = 5  // seconds
	DefaultMineTimeout   = 60 // seconds, request-level HTTP mining deadline
)

// Config holds the application configuration
type Config struct {
	Port          int
	Workers       int
	MaxAttemptCap int64 // system-wide ceiling; caller caps are clamped to it
	BatchSize     int64
	MineTimeout   int // seconds; HTTP request deadline, distinct from the attempt cap
	Verbose       bool
	LogFile       string
	LogInterval   int // seconds

	// CLI mining inputs
	Bytecode     string
	BytecodeFile string
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	return &Config{
		Port:          DefaultPort,
		Workers:       runtime.NumCPU(),
		MaxAttemptCap: DefaultMaxAttemptCap,
		BatchSize:     DefaultBatchSize,
		MineTimeout:   DefaultMineTimeout,
		LogInterval:   DefaultLogInterval,
	}
}

// LoadEnv overlays configuration from the environment. A .env file in the
// working directory is read first when present; missing files are fine.
func (c *Config) LoadEnv() error {
	_ = godotenv.Load()

	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Port = p
	}
	if v := os.Getenv("WORKERS"); v != "" {
		w, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid WORKERS %q: %w", v, err)
		}
		c.Workers = w
	}
	if v := os.Getenv("MAX_ATTEMPT_CAP"); v != "" {
		cap64, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid MAX_ATTEMPT_CAP %q: %w", v, err)
		}
		c.MaxAttemptCap = cap64
	}
	if v := os.Getenv("BATCH_SIZE"); v != "" {
		b, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid BATCH_SIZE %q: %w", v, err)
		}
		c.BatchSize = b
	}
	if v := os.Getenv("MINE_TIMEOUT"); v != "" {
		t, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MINE_TIMEOUT %q: %w", v, err)
		}
		c.MineTimeout = t
	}
	if v := os.Getenv("VERBOSE"); v != "" {
		c.Verbose = v == "1" || strings.EqualFold(v, "true")
	}
	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return ErrInvalidPort
	}
	if c.Workers < 1 {
		return ErrInvalidWorkers
	}
	if c.MaxAttemptCap < 1 {
		return ErrInvalidAttemptCap
	}
	return nil
}

// ClampAttemptCap bounds a caller-supplied attempt cap by the system-wide
// maximum. Non-positive requests get the full maximum.
func (c *Config) ClampAttemptCap(requested int64) int64 {
	if requested <= 0 || requested > c.MaxAttemptCap {
		return c.MaxAttemptCap
	}
	return requested
}

// GetBytecode returns the deployment bytecode for init-code hashing
func (c *Config) GetBytecode() ([]byte, error) {
	if c.BytecodeFile != "" {
		return readBytecodeFromFile(c.BytecodeFile)
	}
	if c.Bytecode != "" {
		return decodeBytecode(c.Bytecode)
	}
	return nil, ErrNoBytecodeSpecified
}

// readBytecodeFromFile reads bytecode from a file
func readBytecodeFromFile(filename string) ([]byte, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return decodeBytecode(strings.TrimSpace(string(content)))
}

func decodeBytecode(code string) ([]byte, error) {
	if len(code) > 2 && code[:2] == "0x" {
		code = code[2:]
	}
	// Ensure even length by padding with 0 if necessary
	if len(code)%2 != 0 {
		code = code + "0"
	}
	return hex.DecodeString(code)
}
