package config

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	// flags
	configName          = flag.StringP("config", "c", "config", "Filename of the config file without the file extension")
	configDirPath       = flag.StringP("config-dir", "d", ".", "Path to the directory containing the config file")
	envFile             = flag.String("env-file", ".env", "Path to an optional .env file")
	skipConfigAvailable = flag.Bool("skip-config", false, "Skip config file availability check")

	node = viper.New()
)

// Node returns the configuration of the faucet node.
func Node() *viper.Viper {
	return node
}

// Load parses the command line and reads the configuration from the config file, the environment and the flags (in
// increasing precedence).
func Load(arguments []string) error {
	if err := flag.CommandLine.Parse(arguments); err != nil {
		return errors.Errorf("failed to parse flags: %w", err)
	}

	return fetch(node, flag.CommandLine, *configDirPath, *configName, *envFile, *skipConfigAvailable)
}

// fetch fills v from a config file starting with configName in configDir (ending with .json, .toml, .yaml or .yml),
// the environment (dots replaced by underscores, .env files included) and the given flags.
func fetch(v *viper.Viper, flags *flag.FlagSet, configDir, configName, envFile string, skipConfig bool) error {
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(errors.UnwrapAll(err)) {
		return errors.Errorf("failed to load %s: %w", envFile, err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return errors.Errorf("failed to bind flags: %w", err)
	}

	v.SetConfigName(configName)
	v.AddConfigPath(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && skipConfig {
			return nil
		}
		return errors.Errorf("failed to read config file %s in %s: %w", configName, configDir, err)
	}

	return nil
}
