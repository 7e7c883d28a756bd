package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Colour modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const (
	defaultOutput = "2048.board"
	defaultSize   = 4
)

// Config holds CLI configuration
type Config struct {
	Input    string
	Output   string
	Size     int
	Seed     *uint64
	Format   string
	Color    string
	BoardDir string
	Verbose  bool
}

// DefaultConfig returns a Config with default values, overridden by the
// environment
func DefaultConfig() *Config {
	return &Config{
		Output:   getEnvOrDefault("MERGE2048_OUTPUT", defaultOutput),
		Size:     getEnvIntOrDefault("MERGE2048_SIZE", defaultSize),
		Format:   getEnvOrDefault("MERGE2048_FORMAT", FormatText),
		Color:    getEnvOrDefault("MERGE2048_COLOR", ColorAuto),
		BoardDir: os.Getenv("MERGE2048_BOARD_DIR"),
		Verbose:  false,
	}
}

// BindFlags registers the global flags onto fs, defaulting to c's values
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.Input, "input", "i", c.Input, "Board file to load")
	fs.StringVarP(&c.Output, "output", "o", c.Output, "Board file to save to (env: MERGE2048_OUTPUT)")
	fs.IntVarP(&c.Size, "size", "s", c.Size, "Size of a new board, ignored with -i (env: MERGE2048_SIZE)")
	fs.Uint64("seed", 0, "Seed for deterministic tile spawns")
	fs.StringVar(&c.Format, "format", c.Format, "Output format: text, json (env: MERGE2048_FORMAT)")
	fs.StringVar(&c.Color, "color", c.Color, "Colour output: auto, always, never (env: MERGE2048_COLOR)")
	fs.StringVar(&c.BoardDir, "board-dir", c.BoardDir, "Directory for relative board paths (env: MERGE2048_BOARD_DIR)")
	fs.BoolVarP(&c.Verbose, "verbose", "v", c.Verbose, "Debug logging on stderr")
}

// LoadEnvFile loads a .env file into the environment if one exists. Variables
// already set are not overridden.
func LoadEnvFile(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// Normalize applies fallbacks and checks enumerated settings
func (c *Config) Normalize() error {
	if c.Size < 2 {
		c.Size = defaultSize
	}
	if c.Output == "" {
		c.Output = defaultOutput
	}
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return newUsageError(fmt.Errorf("invalid format %q: must be text or json", c.Format))
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return newUsageError(fmt.Errorf("invalid color %q: must be auto, always or never", c.Color))
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
