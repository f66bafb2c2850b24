package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/crewsight/vocalis/logging"
)

var (
	configFile   string
	verbose      bool
	logLevel     string
	outputFormat string
	noColor      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vocalis",
	Short: "CrewSight voice acoustic analysis suite",
	Long: `Acoustic indicator extraction for radio voice recordings.
Computes fatigue, stress, cognitive load and transmission clarity scores
from mel-cepstral, LPC, pitch, perturbation and prosodic features.

Key features:
- Mel-cepstral and delta feature extraction
- LPC residual and spectral envelope tracking
- Pitch, jitter, shimmer and HNR measurement
- Pause and rhythm prosody profiling
- Role-aware indicator scoring with risk classification`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()
		return bindFlags(cmd, viper.GetViper())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default is $HOME/.config/vocalis/vocalis.yaml)")

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "json",
		"output format (json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"disable colored log output")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("output_format", rootCmd.PersistentFlags().Lookup("output"))
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		viper.AddConfigPath(filepath.Join(home, ".config", "vocalis"))
		viper.AddConfigPath("/etc/vocalis")
		viper.AddConfigPath(".")
		viper.SetConfigName("vocalis")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("VOCALIS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
		}
	}
}

// bindFlags binds each cobra flag to its associated viper configuration
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))

		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				lastErr = err
			}
		}

		if err := v.BindPFlag(f.Name, f); err != nil {
			lastErr = err
		}

		if err := v.BindEnv(f.Name, "VOCALIS_"+envVarSuffix); err != nil {
			lastErr = err
		}
	})

	return lastErr
}

func setupLogging() {
	logger := logging.NewDefaultLogger()
	switch strings.ToLower(viper.GetString("log_level")) {
	case "debug":
		logger.SetLevel(logging.DebugLevel)
	case "warn":
		logger.SetLevel(logging.WarnLevel)
	case "error":
		logger.SetLevel(logging.ErrorLevel)
	default:
		logger.SetLevel(logging.InfoLevel)
	}
	if verbose {
		logger.SetLevel(logging.DebugLevel)
	}
	logging.SetGlobalLogger(logger)
	if noColor {
		logging.DisableColors()
	}
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("output_format", "json")

	viper.SetDefault("audio.sample_rate", 22050)
	viper.SetDefault("audio.frame_ms", 25)
	viper.SetDefault("audio.hop_ms", 10)

	viper.SetDefault("analysis.role", "default")
	viper.SetDefault("analysis.report", false)
}
