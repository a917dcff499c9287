// Package config loads the defaults of the command line from the
// environment, after loading an optional .env file
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by Load
const (
	EnvPreset      = "CLIFFWALK_PRESET"
	EnvSeed        = "CLIFFWALK_SEED"
	EnvTrials      = "CLIFFWALK_TRIALS"
	EnvMaxEpisodes = "CLIFFWALK_MAX_EPISODES"
	EnvCSV         = "CLIFFWALK_CSV"
	EnvChart       = "CLIFFWALK_CHART"
	EnvNoColor     = "CLIFFWALK_NO_COLOR"
)

// Config holds the defaults of the command line flags
type Config struct {
	Preset      string // Name of the gridworld preset
	Seed        uint64 // Seed of the first trial
	Trials      int    // Trials per agent configuration
	MaxEpisodes int    // Episode cap per trial, 0 for none
	CSV         string // Path of the sweep CSV file, empty for stdout
	Chart       string // Path of the sweep HTML chart, empty for none
	NoColor     bool   // Disable coloured grid rendering
}

// Default is the Config used when no environment variable is set
var Default = Config{
	Preset:      "CliffWalk",
	Seed:        0,
	Trials:      1000,
	MaxEpisodes: 100_000,
}

// Load loads the given .env files, or .env in the working directory if
// none are given, and returns Default overridden by any CLIFFWALK_*
// environment variables. A missing .env file is not an error, and the
// variables already set in the environment take precedence over it.
func Load(filenames ...string) (Config, error) {
	if err := godotenv.Load(filenames...); err != nil &&
		!os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load: %w", err)
	}

	c := Default
	c.Preset = getEnvWithDefault(EnvPreset, c.Preset)
	c.CSV = getEnvWithDefault(EnvCSV, c.CSV)
	c.Chart = getEnvWithDefault(EnvChart, c.Chart)

	var err error
	if c.Seed, err = getEnvAsUint(EnvSeed, c.Seed); err != nil {
		return Config{}, err
	}
	if c.Trials, err = getEnvAsInt(EnvTrials, c.Trials); err != nil {
		return Config{}, err
	}
	if c.MaxEpisodes, err = getEnvAsInt(EnvMaxEpisodes,
		c.MaxEpisodes); err != nil {
		return Config{}, err
	}
	if c.NoColor, err = getEnvAsBool(EnvNoColor, c.NoColor); err != nil {
		return Config{}, err
	}

	return c, nil
}

// getEnvWithDefault retrieves the value of an environment variable or
// returns a default value if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an "+
			"integer: %w", key, err)
	}
	return i, nil
}

func getEnvAsUint(key string, defaultValue uint64) (uint64, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	i, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an "+
			"unsigned integer: %w", key, err)
	}
	return i, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("environment variable %s must be a "+
			"boolean: %w", key, err)
	}
	return b, nil
}
